package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AgroShopAPI/internal/metrics"
	"AgroShopAPI/internal/model"
	"AgroShopAPI/internal/repository"
)

func newProductService(t *testing.T) (*ProductService, pgxmock.PgxPoolIface) {
	mock := newMock(t)
	return NewProductService(repository.NewProductRepository(mock), metrics.New(metrics.AppInfo{})), mock
}

func TestProductService_Create(t *testing.T) {
	svc, mock := newProductService(t)

	price := decimal.RequireFromString("15000.50")
	mock.ExpectQuery("INSERT INTO products").
		WithArgs("Olma", price).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(6)))

	p, err := svc.Create(context.Background(), "  Olma ", price)
	require.NoError(t, err)
	assert.Equal(t, &model.Product{ID: 6, Name: "Olma", Price: price}, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_CreateValidation(t *testing.T) {
	svc, mock := newProductService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, " ", decimal.NewFromInt(1))
	assert.True(t, IsValidation(err))

	for _, price := range []string{"-1", "-0.001", "1000000000000", "999999999999.995"} {
		_, err = svc.Create(ctx, "Olma", decimal.RequireFromString(price))
		assert.True(t, IsValidation(err), "price %s: got %v", price, err)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_UpdateKeepsOmittedFields(t *testing.T) {
	svc, mock := newProductService(t)

	mock.ExpectQuery("FROM products WHERE id").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(productCols).AddRow(int64(2), "Kartoshka", decimal.NewFromInt(10000)))
	newPrice := decimal.NewFromInt(11000)
	mock.ExpectExec("UPDATE products").
		WithArgs("Kartoshka", newPrice.Round(2), int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	p, err := svc.Update(context.Background(), 2, model.ProductPatch{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "Kartoshka", p.Name)
	assert.True(t, p.Price.Equal(newPrice))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_PriceIsRoundedToCents(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"12000", "12000"},
		{"999999999999.99", "999999999999.99"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			svc, mock := newProductService(t)
			want := decimal.RequireFromString(tc.want)

			mock.ExpectQuery("INSERT INTO products").
				WithArgs("Olma", pgxmock.AnyArg()).
				WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(9)))
			mock.ExpectQuery("FROM products WHERE id").
				WithArgs(int64(9)).
				WillReturnRows(pgxmock.NewRows(productCols).AddRow(int64(9), "Olma", decimal.NewFromInt(1)))
			mock.ExpectExec("UPDATE products").
				WithArgs("Olma", pgxmock.AnyArg(), int64(9)).
				WillReturnResult(pgxmock.NewResult("UPDATE", 1))

			created, err := svc.Create(context.Background(), "Olma", decimal.RequireFromString(tc.in))
			require.NoError(t, err)
			assert.True(t, created.Price.Equal(want), "created %s", created.Price)

			in := decimal.RequireFromString(tc.in)
			updated, err := svc.Update(context.Background(), 9, model.ProductPatch{Price: &in})
			require.NoError(t, err)
			assert.True(t, updated.Price.Equal(want), "updated %s", updated.Price)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductService_UpdateRejectsOversizedPrice(t *testing.T) {
	svc, mock := newProductService(t)

	huge := decimal.New(1, 12)
	_, err := svc.Update(context.Background(), 1, model.ProductPatch{Price: &huge})
	assert.True(t, IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_UpdateMissing(t *testing.T) {
	svc, mock := newProductService(t)

	mock.ExpectQuery("FROM products WHERE id").WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)

	name := "X"
	_, err := svc.Update(context.Background(), 99, model.ProductPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_UpdateRejectsBlankName(t *testing.T) {
	svc, mock := newProductService(t)

	blank := "   "
	_, err := svc.Update(context.Background(), 1, model.ProductPatch{Name: &blank})
	assert.True(t, IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_DeleteTouchesOnlyProducts(t *testing.T) {
	svc, mock := newProductService(t)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM products WHERE id").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM products WHERE id").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	removed, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, removed)

	// no statement against order_items was issued
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_ListSetsGauge(t *testing.T) {
	svc, mock := newProductService(t)

	mock.ExpectQuery("FROM products ORDER BY id").
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(int64(1), "Sabzi", decimal.NewFromInt(12000)).
			AddRow(int64(2), "Kartoshka", decimal.NewFromInt(10000)))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(svc.Metrics.ProductsCount))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.DatabaseOps.WithLabelValues("SELECT", "products")))
}
