package main

import (
	"net/http"

	"AgroShopAPI/internal/model"
	"AgroShopAPI/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type orderItemRequest struct {
	ProductID *int64 `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

// pointers tell an absent key apart from a zero value
type createOrderRequest struct {
	CustomerName *string             `json:"customer_name"`
	Phone        *string             `json:"phone"`
	Address      *string             `json:"address"`
	Items        *[]orderItemRequest `json:"items"`
}

type orderCreatedResponse struct {
	ID           int64             `json:"id"`
	CustomerName string            `json:"customer_name"`
	Phone        string            `json:"phone"`
	Address      string            `json:"address"`
	Total        decimal.Decimal   `json:"total"`
	Items        []model.OrderItem `json:"items"`
	Message      string            `json:"message"`
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService) {
	g.GET("/orders", func(c echo.Context) error {
		list, err := os.List(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/orders/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		o, err := os.Get(c.Request().Context(), id)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, o)
	})

	g.POST("/orders", func(c echo.Context) error {
		req := new(createOrderRequest)
		if err := c.Bind(req); err != nil {
			return jsonError(c, os.Reject(services.ReasonMissingFields, "invalid request"))
		}
		if req.CustomerName == nil || req.Phone == nil || req.Address == nil || req.Items == nil {
			return jsonError(c, os.Reject(services.ReasonMissingFields, "Required fields: customer_name, phone, address, items"))
		}

		in := model.PlaceOrder{
			CustomerName: *req.CustomerName,
			Phone:        *req.Phone,
			Address:      *req.Address,
			Lines:        make([]model.OrderLine, 0, len(*req.Items)),
		}
		for _, it := range *req.Items {
			if it.ProductID == nil || it.Quantity == nil {
				return jsonError(c, os.Reject(services.ReasonInvalidItem, "Each item must have product_id and quantity"))
			}
			in.Lines = append(in.Lines, model.OrderLine{ProductID: *it.ProductID, Quantity: *it.Quantity})
		}

		o, err := os.Place(c.Request().Context(), in)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, orderCreatedResponse{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			Phone:        o.Phone,
			Address:      o.Address,
			Total:        o.Total,
			Items:        o.Items,
			Message:      "Order created successfully",
		})
	})
}
