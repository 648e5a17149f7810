// Package view renders the shop and admin HTML pages.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"AgroShopAPI/internal/model"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

// Page names accepted by Renderer.
const (
	Products         = "products"
	Cart             = "cart"
	Checkout         = "checkout"
	AdminLogin       = "admin_login"
	AdminDashboard   = "admin_dashboard"
	AdminOrders      = "admin_orders"
	AdminProducts    = "admin_products"
	AdminAddProduct  = "admin_add_product"
	AdminEditProduct = "admin_edit_product"
)

// EditProductPage is the data of the edit form.
type EditProductPage struct {
	Product model.Product
	Error   string
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	t *template.Template
}

func New() (*Renderer, error) {
	t, err := template.ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name+".html", data)
}
