package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AgroShopAPI/internal/model"
)

var (
	orderCols = []string{"id", "customer_name", "phone", "address", "total", "created_at"}
	itemCols  = []string{"id", "order_id", "product_name", "quantity", "price", "subtotal"}
)

func TestOrderRepository_CreateInTx(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	ctx := context.Background()

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	o := &model.Order{CustomerName: "Ali", Phone: "+998901234567", Address: "Tashkent", Total: decimal.NewFromInt(34000), CreatedAt: now}
	items := []model.OrderItem{
		{ProductName: "Sabzi", Quantity: 2, Price: decimal.NewFromInt(12000), Subtotal: decimal.NewFromInt(24000)},
		{ProductName: "Kartoshka", Quantity: 1, Price: decimal.NewFromInt(10000), Subtotal: decimal.NewFromInt(10000)},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("Ali", "+998901234567", "Tashkent", o.Total, now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery(`INSERT INTO order_items .+ VALUES \(\$1,\$2,\$3,\$4,\$5\),\(\$6,\$7,\$8,\$9,\$10\) RETURNING id`).
		WithArgs(int64(11), "Sabzi", 2, items[0].Price, items[0].Subtotal, int64(11), "Kartoshka", 1, items[1].Price, items[1].Subtotal).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(101)).AddRow(int64(102)))
	mock.ExpectCommit()

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrderTx(ctx, tx, o))
	require.NoError(t, repo.CreateOrderItemsTx(ctx, tx, o.ID, items))
	require.NoError(t, tx.Commit(ctx))

	assert.Equal(t, int64(11), o.ID)
	assert.Equal(t, int64(101), items[0].ID)
	assert.Equal(t, int64(102), items[1].ID)
	assert.Equal(t, int64(11), items[1].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetOrderByID(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery("FROM orders WHERE id").WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(orderCols).AddRow(int64(5), "Ali", "1", "Tashkent", decimal.NewFromInt(24000), now))
	mock.ExpectQuery("FROM order_items WHERE order_id = ANY").WithArgs([]int64{5}).
		WillReturnRows(pgxmock.NewRows(itemCols).AddRow(int64(1), int64(5), "Sabzi", 2, decimal.NewFromInt(12000), decimal.NewFromInt(24000)))

	o, err := repo.GetOrderByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Ali", o.CustomerName)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Sabzi", o.Items[0].ProductName)
	assert.True(t, o.Items[0].Subtotal.Equal(decimal.NewFromInt(24000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetOrderByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectQuery("FROM orders WHERE id").WithArgs(int64(404)).WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetOrderByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestOrderRepository_ListOrders_GroupsItems(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery("FROM orders ORDER BY id DESC").
		WillReturnRows(pgxmock.NewRows(orderCols).
			AddRow(int64(2), "Vali", "2", "Samarkand", decimal.NewFromInt(10000), now).
			AddRow(int64(1), "Ali", "1", "Tashkent", decimal.NewFromInt(24000), now))
	mock.ExpectQuery("FROM order_items WHERE order_id = ANY").WithArgs([]int64{2, 1}).
		WillReturnRows(pgxmock.NewRows(itemCols).
			AddRow(int64(1), int64(1), "Sabzi", 2, decimal.NewFromInt(12000), decimal.NewFromInt(24000)))

	list, err := repo.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Empty(t, list[0].Items)
	assert.NotNil(t, list[0].Items)
	require.Len(t, list[1].Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListOrders_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectQuery("FROM orders ORDER BY id DESC").WillReturnRows(pgxmock.NewRows(orderCols))

	list, err := repo.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Revenue(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectQuery("COALESCE").WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(decimal.RequireFromString("34000.50")))

	got, err := repo.Revenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "34000.5", got.String())
}
