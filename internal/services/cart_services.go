package services

import (
	"context"
	"fmt"
	"sort"

	"AgroShopAPI/internal/metrics"
	"AgroShopAPI/internal/model"
	"AgroShopAPI/internal/repository"
	"AgroShopAPI/internal/session"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type CartService struct {
	Store    session.Store
	Products *repository.ProductRepository
	Orders   *OrderService
	Metrics  *metrics.Collector
	Log      zerolog.Logger
}

func NewCartService(st session.Store, pr *repository.ProductRepository, osvc *OrderService, m *metrics.Collector, log zerolog.Logger) *CartService {
	return &CartService{Store: st, Products: pr, Orders: osvc, Metrics: m, Log: log}
}

// Add puts one more unit of productID in the cart. The product is not looked up.
func (s *CartService) Add(ctx context.Context, sessionID string, productID int64) (int, error) {
	qty, err := s.Store.Incr(ctx, sessionID, productID, 1)
	if err != nil {
		return 0, fmt.Errorf("add to cart: %w", err)
	}
	s.Metrics.CartItemAdded()
	return qty, nil
}

// SetQuantity stores qty exactly; qty <= 0 drops the line.
func (s *CartService) SetQuantity(ctx context.Context, sessionID string, productID int64, qty int) error {
	if err := s.Store.Set(ctx, sessionID, productID, qty); err != nil {
		return fmt.Errorf("set cart quantity: %w", err)
	}
	return nil
}

// View prices the cart against the current catalog. Lines whose product is
// gone are left out.
func (s *CartService) View(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	entries, err := s.Store.Items(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	ids := sortedIDs(entries)

	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("price cart: %w", err)
	}
	if len(ids) > 0 {
		s.Metrics.DBOp("SELECT", "products")
	}

	resp := &model.CartResponse{Items: []model.CartItem{}, Total: decimal.Zero}
	for _, id := range ids {
		p, ok := products[id]
		if !ok {
			s.Log.Warn().Str("session", sessionID).Int64("product_id", id).Msg("cart references missing product")
			continue
		}
		qty := entries[id]
		sub := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		resp.Items = append(resp.Items, model.CartItem{Product: p, Quantity: qty, Subtotal: sub})
		resp.Total = resp.Total.Add(sub)
	}
	return resp, nil
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.Store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Checkout places an order for everything in the cart and empties it.
// Customer fields come from in; in.Lines is replaced by the cart contents.
func (s *CartService) Checkout(ctx context.Context, sessionID string, in model.PlaceOrder) (*model.Order, error) {
	entries, err := s.Store.Items(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	in.Lines = make([]model.OrderLine, 0, len(entries))
	for _, id := range sortedIDs(entries) {
		in.Lines = append(in.Lines, model.OrderLine{ProductID: id, Quantity: entries[id]})
	}

	o, err := s.Orders.Place(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Clear(ctx, sessionID); err != nil {
		// the order is already committed
		s.Log.Error().Err(err).Str("session", sessionID).Int64("order_id", o.ID).Msg("clear cart after checkout")
	}
	return o, nil
}

func sortedIDs(entries map[int64]int) []int64 {
	ids := make([]int64, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
