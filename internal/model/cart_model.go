package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents an entry in the orders table
type Order struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []OrderItem     `json:"items"`
}

// OrderItem represents a row in the order_items table. ProductName and Price
// are copies taken when the order was placed, not references to products.
type OrderItem struct {
	ID          int64           `json:"-"`
	OrderID     int64           `json:"-"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderLine is one requested (product, quantity) pair, from a cart or an API body.
type OrderLine struct {
	ProductID int64
	Quantity  int
}

// PlaceOrder is the input of the order materializer.
type PlaceOrder struct {
	CustomerName string
	Phone        string
	Address      string
	Lines        []OrderLine
}

// CartItem is one resolved cart line priced against the live catalog
type CartItem struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"qty"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartResponse is what the cart and checkout pages render
type CartResponse struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Stats is returned by GET /api/v1/stats
type Stats struct {
	ProductsCount int64           `json:"products_count"`
	OrdersCount   int64           `json:"orders_count"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	RecentOrders  int64           `json:"recent_orders"`
	Timestamp     string          `json:"timestamp"`
}
