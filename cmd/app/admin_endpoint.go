package main

import (
	"errors"
	"net/http"
	"strings"

	"AgroShopAPI/internal/middleware"
	"AgroShopAPI/internal/model"
	"AgroShopAPI/internal/services"
	"AgroShopAPI/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// adminAuth is what the admin pages need to issue and check tokens.
type adminAuth struct {
	Service    *services.AuthService
	Secret     []byte
	TokenHours int
}

type adminServices struct {
	Products *services.ProductService
	Orders   *services.OrderService
	Stats    *services.StatsService
}

// registerAdminRoutes mounts the admin panel. Login and logout are open; every
// other page requires the admin token.
func registerAdminRoutes(e *echo.Echo, auth adminAuth, svc adminServices) {
	g := e.Group("/admin")

	g.GET("/login", func(c echo.Context) error {
		return c.Render(http.StatusOK, view.AdminLogin, nil)
	})

	g.POST("/login", func(c echo.Context) error {
		a, err := auth.Service.Login(c.Request().Context(), c.FormValue("username"), c.FormValue("password"))
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.String(http.StatusUnauthorized, "Invalid login")
		}
		if err != nil {
			return textError(c, err)
		}
		token, err := middleware.GenerateToken(auth.Secret, a.ID, a.Username, auth.TokenHours)
		if err != nil {
			return textError(c, err)
		}
		middleware.SetAdminCookie(c, token, auth.TokenHours)
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	})

	g.GET("/logout", func(c echo.Context) error {
		middleware.ClearAdminCookie(c)
		return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	})

	p := g.Group("", middleware.AdminGate(auth.Secret))

	p.GET("/dashboard", func(c echo.Context) error {
		st, err := svc.Stats.Summary(c.Request().Context())
		if err != nil {
			return textError(c, err)
		}
		return c.Render(http.StatusOK, view.AdminDashboard, st)
	})

	p.GET("/orders", func(c echo.Context) error {
		list, err := svc.Orders.List(c.Request().Context())
		if err != nil {
			return textError(c, err)
		}
		return c.Render(http.StatusOK, view.AdminOrders, list)
	})

	p.GET("/products", func(c echo.Context) error {
		list, err := svc.Products.List(c.Request().Context())
		if err != nil {
			return textError(c, err)
		}
		return c.Render(http.StatusOK, view.AdminProducts, list)
	})

	p.GET("/products/add", func(c echo.Context) error {
		return c.Render(http.StatusOK, view.AdminAddProduct, nil)
	})

	p.POST("/products/add", func(c echo.Context) error {
		price, err := formPrice(c)
		if err != nil {
			return c.Render(http.StatusBadRequest, view.AdminAddProduct, err.Error())
		}
		_, err = svc.Products.Create(c.Request().Context(), c.FormValue("name"), price)
		if services.IsValidation(err) {
			return c.Render(http.StatusBadRequest, view.AdminAddProduct, err.Error())
		}
		if err != nil {
			return textError(c, err)
		}
		return c.Redirect(http.StatusSeeOther, "/admin/products")
	})

	p.GET("/products/delete/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.String(http.StatusNotFound, "Product not found")
		}
		// deleting twice is fine
		if _, err := svc.Products.Delete(c.Request().Context(), id); err != nil {
			return textError(c, err)
		}
		return c.Redirect(http.StatusSeeOther, "/admin/products")
	})

	p.GET("/products/edit/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.String(http.StatusNotFound, "Product not found")
		}
		prod, err := svc.Products.Get(c.Request().Context(), id)
		if err != nil {
			return textError(c, err)
		}
		return c.Render(http.StatusOK, view.AdminEditProduct, view.EditProductPage{Product: *prod})
	})

	p.POST("/products/edit/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.String(http.StatusNotFound, "Product not found")
		}
		name := c.FormValue("name")
		page := view.EditProductPage{Product: model.Product{ID: id, Name: name}}

		price, err := formPrice(c)
		if err != nil {
			page.Error = err.Error()
			return c.Render(http.StatusBadRequest, view.AdminEditProduct, page)
		}
		page.Product.Price = price

		_, err = svc.Products.Update(c.Request().Context(), id, model.ProductPatch{Name: &name, Price: &price})
		if services.IsValidation(err) {
			page.Error = err.Error()
			return c.Render(http.StatusBadRequest, view.AdminEditProduct, page)
		}
		if err != nil {
			return textError(c, err)
		}
		return c.Redirect(http.StatusSeeOther, "/admin/products")
	})
}

func formPrice(c echo.Context) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("price")))
	if err != nil {
		return decimal.Zero, errors.New("price must be a number")
	}
	return price, nil
}
