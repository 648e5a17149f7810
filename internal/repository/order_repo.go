package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"AgroShopAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type OrderRepository struct {
	DB DB
}

func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// CreateOrderTx inserts the order header and fills in its id.
func (r *OrderRepository) CreateOrderTx(ctx context.Context, tx pgx.Tx, o *model.Order) error {
	query := `INSERT INTO orders (customer_name, phone, address, total, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return tx.QueryRow(ctx, query, o.CustomerName, o.Phone, o.Address, o.Total, o.CreatedAt).Scan(&o.ID)
}

// CreateOrderItemsTx inserts all line items of an order with a single
// statement and fills in their ids.
func (r *OrderRepository) CreateOrderItemsTx(ctx context.Context, tx pgx.Tx, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	var sb strings.Builder
	args := make([]any, 0, len(items)*5)
	sb.WriteString("INSERT INTO order_items (order_id, product_name, quantity, price, subtotal) VALUES ")
	for i, it := range items {
		if i > 0 {
			sb.WriteString(",")
		}
		// placeholders: ($1,$2,$3,$4,$5), ($6,...), ...
		pi := i*5 + 1
		sb.WriteString(fmt.Sprintf("($%d,$%d,$%d,$%d,$%d)", pi, pi+1, pi+2, pi+3, pi+4))
		args = append(args, orderID, it.ProductName, it.Quantity, it.Price, it.Subtotal)
	}
	sb.WriteString(" RETURNING id")

	rows, err := tx.Query(ctx, sb.String(), args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(items) {
			break
		}
		if err := rows.Scan(&items[i].ID); err != nil {
			return err
		}
		items[i].OrderID = orderID
		i++
	}
	return rows.Err()
}

// GetOrderByID returns the order row with its items
func (r *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	query := `SELECT id, customer_name, phone, address, total, created_at FROM orders WHERE id=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&o.ID, &o.CustomerName, &o.Phone, &o.Address, &o.Total, &o.CreatedAt); err != nil {
		return nil, noRecord(err)
	}
	items, err := r.itemsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]
	if o.Items == nil {
		o.Items = []model.OrderItem{}
	}
	return &o, nil
}

// ListOrders returns every order, newest first, each with its items.
func (r *OrderRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	query := `SELECT id, customer_name, phone, address, total, created_at FROM orders ORDER BY id DESC`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Order{}
	var ids []int64
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.Phone, &o.Address, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(ids) == 0 {
		return list, nil
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Items = items[list[i].ID]
		if list[i].Items == nil {
			list[i].Items = []model.OrderItem{}
		}
	}
	return list, nil
}

func (r *OrderRepository) itemsFor(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderItem, error) {
	query := `SELECT id, order_id, product_name, quantity, price, subtotal FROM order_items WHERE order_id = ANY($1) ORDER BY id`
	rows, err := r.DB.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductName, &it.Quantity, &it.Price, &it.Subtotal); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *OrderRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE created_at >= $1`, since).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Revenue is the sum of all order totals, zero when there are none.
func (r *OrderRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.DB.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0) FROM orders`).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
