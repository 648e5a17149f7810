package services

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AgroShopAPI/internal/model"
	"AgroShopAPI/internal/repository"
	"AgroShopAPI/internal/session"
)

func newCartService(t *testing.T) (*CartService, pgxmock.PgxPoolIface, *session.MemoryStore) {
	t.Helper()
	mock := newMock(t)
	orders, m := newOrderService(mock, &recordingPublisher{})
	store := session.NewMemoryStore(time.Hour)
	return NewCartService(store, repository.NewProductRepository(mock), orders, m, zerolog.Nop()), mock, store
}

func TestCartService_AddAccumulates(t *testing.T) {
	svc, _, store := newCartService(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.Add(ctx, "s1", 2)
		require.NoError(t, err)
	}

	items, err := store.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{2: 4}, items)
	assert.Equal(t, 4.0, testutil.ToFloat64(svc.Metrics.CartItems))
}

func TestCartService_SetQuantity(t *testing.T) {
	svc, _, store := newCartService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", 3)
	require.NoError(t, err)

	require.NoError(t, svc.SetQuantity(ctx, "s1", 1, 5))
	require.NoError(t, svc.SetQuantity(ctx, "s1", 3, 0))

	items, err := store.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 5}, items)
}

func TestCartService_ViewSkipsDeletedProducts(t *testing.T) {
	svc, mock, store := newCartService(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", 1, 2))
	require.NoError(t, store.Set(ctx, "s1", 7, 1))
	require.NoError(t, store.Set(ctx, "s1", 3, 1))

	mock.ExpectQuery("FROM products WHERE id = ANY").
		WithArgs([]int64{1, 3, 7}).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(int64(3), "Qovun", decimal.NewFromInt(10050)).
			AddRow(int64(1), "Sabzi", decimal.NewFromInt(12000)))

	cart, err := svc.View(ctx, "s1")
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, int64(1), cart.Items[0].Product.ID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Items[0].Subtotal.Equal(decimal.NewFromInt(24000)))
	assert.Equal(t, int64(3), cart.Items[1].Product.ID)
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(34050)), "total %s", cart.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartService_ViewEmpty(t *testing.T) {
	svc, mock, _ := newCartService(t)

	cart, err := svc.View(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartService_CheckoutClearsCart(t *testing.T) {
	svc, mock, store := newCartService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", 1)
	require.NoError(t, err)

	mock.ExpectBegin()
	expectProduct(mock, 1, "Sabzi", 12000)
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("Ali", "+998901234567", "Tashkent", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(int64(1), "Sabzi", 2, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	o, err := svc.Checkout(ctx, "s1", customer())
	require.NoError(t, err)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(24000)))

	items, err := store.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartService_CheckoutEmptyCart(t *testing.T) {
	svc, mock, _ := newCartService(t)

	_, err := svc.Checkout(context.Background(), "s1", customer())
	assert.True(t, IsValidation(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.CheckoutFailure.WithLabelValues(ReasonEmptyCart)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartService_CheckoutKeepsCartOnFailure(t *testing.T) {
	svc, mock, store := newCartService(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", 9, 1))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, price FROM products WHERE id=").
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows(productCols))
	mock.ExpectRollback()

	_, err := svc.Checkout(ctx, "s1", model.PlaceOrder{CustomerName: "Ali", Phone: "1", Address: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := store.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{9: 1}, items)
}
