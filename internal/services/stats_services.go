package services

import (
	"context"
	"fmt"
	"time"

	"AgroShopAPI/internal/metrics"
	"AgroShopAPI/internal/model"
	"AgroShopAPI/internal/repository"
)

const recentWindow = 7 * 24 * time.Hour

type StatsService struct {
	Products *repository.ProductRepository
	Orders   *repository.OrderRepository
	Metrics  *metrics.Collector

	now func() time.Time
}

func NewStatsService(pr *repository.ProductRepository, or *repository.OrderRepository, m *metrics.Collector) *StatsService {
	return &StatsService{Products: pr, Orders: or, Metrics: m, now: time.Now}
}

// Summary counts products and orders, sums revenue and counts orders placed
// in the last seven days.
func (s *StatsService) Summary(ctx context.Context) (*model.Stats, error) {
	now := s.now().UTC()

	products, err := s.Products.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	orders, err := s.Orders.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	revenue, err := s.Orders.Revenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	recent, err := s.Orders.CountSince(ctx, now.Add(-recentWindow))
	if err != nil {
		return nil, fmt.Errorf("count recent orders: %w", err)
	}

	s.Metrics.SetProducts(int(products))
	s.Metrics.SetOrders(int(orders))
	return &model.Stats{
		ProductsCount: products,
		OrdersCount:   orders,
		TotalRevenue:  revenue,
		RecentOrders:  recent,
		Timestamp:     now.Format(time.RFC3339),
	}, nil
}
