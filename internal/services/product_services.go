package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"AgroShopAPI/internal/metrics"
	"AgroShopAPI/internal/model"
	"AgroShopAPI/internal/repository"

	"github.com/shopspring/decimal"
)

// Money columns are NUMERIC(14,2): two decimal places, below 10^12.
const moneyPlaces = 2

var maxMoney = decimal.New(1, 12)

// normalizePrice rounds to cents the way the column would and rejects values
// the column cannot hold.
func normalizePrice(price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, invalid("price must be >= 0")
	}
	price = price.Round(moneyPlaces)
	if price.GreaterThanOrEqual(maxMoney) {
		return decimal.Zero, invalid("price must be below %s", maxMoney)
	}
	return price, nil
}

type ProductService struct {
	Repo    *repository.ProductRepository
	Metrics *metrics.Collector
}

func NewProductService(r *repository.ProductRepository, m *metrics.Collector) *ProductService {
	return &ProductService{Repo: r, Metrics: m}
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	list, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	s.Metrics.DBOp("SELECT", "products")
	s.Metrics.SetProducts(len(list))
	return list, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNoRecord) {
		return nil, &NotFoundError{Entity: "product", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	s.Metrics.DBOp("SELECT", "products")
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, name string, price decimal.Decimal) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	price, err := normalizePrice(price)
	if err != nil {
		return nil, err
	}
	id, err := s.Repo.Create(ctx, name, price)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.Metrics.DBOp("INSERT", "products")
	return &model.Product{ID: id, Name: name, Price: price}, nil
}

// Update applies the non-nil fields of patch on top of the stored product.
func (s *ProductService) Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, invalid("name must not be blank")
	}
	var price decimal.Decimal
	if patch.Price != nil {
		var err error
		if price, err = normalizePrice(*patch.Price); err != nil {
			return nil, err
		}
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		p.Price = price
	}

	err = s.Repo.Update(ctx, p)
	if errors.Is(err, repository.ErrNoRecord) {
		// deleted between read and write
		return nil, &NotFoundError{Entity: "product", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	s.Metrics.DBOp("UPDATE", "products")
	return p, nil
}

// Delete reports whether a product was removed. A missing id is not an error.
// Past order items are left as they are.
func (s *ProductService) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}
	s.Metrics.DBOp("DELETE", "products")
	return removed, nil
}
