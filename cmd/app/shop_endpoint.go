package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"AgroShopAPI/internal/middleware"
	"AgroShopAPI/internal/model"
	"AgroShopAPI/internal/services"
	"AgroShopAPI/internal/view"

	"github.com/labstack/echo/v4"
)

// registerShopRoutes mounts the storefront pages. Every visitor gets a session
// cookie that keys the cart.
func registerShopRoutes(e *echo.Echo, ps *services.ProductService, cs *services.CartService, sessionTTL time.Duration) {
	g := e.Group("", middleware.Session(sessionTTL))

	g.GET("/", func(c echo.Context) error {
		list, err := ps.List(c.Request().Context())
		if err != nil {
			return textError(c, err)
		}
		return c.Render(http.StatusOK, view.Products, list)
	})

	g.GET("/add/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.String(http.StatusNotFound, "Product not found")
		}
		if _, err := cs.Add(c.Request().Context(), middleware.SessionID(c), id); err != nil {
			return textError(c, err)
		}
		return c.Redirect(http.StatusFound, "/cart")
	})

	g.GET("/cart", func(c echo.Context) error {
		cart, err := cs.View(c.Request().Context(), middleware.SessionID(c))
		if err != nil {
			return textError(c, err)
		}
		return c.Render(http.StatusOK, view.Cart, cart)
	})

	g.POST("/update/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.String(http.StatusNotFound, "Product not found")
		}
		qty, err := strconv.Atoi(strings.TrimSpace(c.FormValue("qty")))
		if err != nil {
			return c.String(http.StatusBadRequest, "qty must be a whole number")
		}
		if err := cs.SetQuantity(c.Request().Context(), middleware.SessionID(c), id, qty); err != nil {
			return textError(c, err)
		}
		return c.Redirect(http.StatusFound, "/cart")
	})

	g.GET("/checkout", func(c echo.Context) error {
		cart, err := cs.View(c.Request().Context(), middleware.SessionID(c))
		if err != nil {
			return textError(c, err)
		}
		return c.Render(http.StatusOK, view.Checkout, cart)
	})

	g.POST("/checkout", func(c echo.Context) error {
		in := model.PlaceOrder{
			CustomerName: c.FormValue("name"),
			Phone:        c.FormValue("phone"),
			Address:      c.FormValue("address"),
		}
		if _, err := cs.Checkout(c.Request().Context(), middleware.SessionID(c), in); err != nil {
			return textError(c, err)
		}
		return c.String(http.StatusOK, "Order placed successfully!")
	})
}
