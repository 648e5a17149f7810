package main

import (
	"net/http"

	"AgroShopAPI/internal/model"
	"AgroShopAPI/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type createProductRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// registerProductRoutes mounts the product API:
//
//	GET    /products      -> list
//	GET    /products/:id  -> get
//	POST   /products      -> create
//	PUT    /products/:id  -> partial update
//	DELETE /products/:id  -> delete
func registerProductRoutes(g *echo.Group, ps *services.ProductService) {
	g.GET("/products", func(c echo.Context) error {
		list, err := ps.List(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/products/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		p, err := ps.Get(c.Request().Context(), id)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, p)
	})

	g.POST("/products", func(c echo.Context) error {
		req := new(createProductRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if req.Name == nil || req.Price == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name and price required"})
		}
		p, err := ps.Create(c.Request().Context(), *req.Name, *req.Price)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, p)
	})

	g.PUT("/products/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		if c.Request().ContentLength == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "JSON data required"})
		}
		var patch model.ProductPatch
		if err := c.Bind(&patch); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		p, err := ps.Update(c.Request().Context(), id, patch)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, p)
	})

	g.DELETE("/products/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		removed, err := ps.Delete(c.Request().Context(), id)
		if err != nil {
			return jsonError(c, err)
		}
		if !removed {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
	})
}
