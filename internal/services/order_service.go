package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"AgroShopAPI/internal/events"
	"AgroShopAPI/internal/metrics"
	"AgroShopAPI/internal/model"
	"AgroShopAPI/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Checkout failure reasons, used as the checkout_failure_total label.
const (
	ReasonMissingFields   = "missing_fields"
	ReasonEmptyCart       = "empty_cart"
	ReasonInvalidItem     = "invalid_item_format"
	ReasonProductNotFound = "product_not_found"
	ReasonInternal        = "internal"
)

type OrderService struct {
	DB        repository.DB
	Repo      *repository.OrderRepository
	Products  *repository.ProductRepository
	Publisher events.OrderPublisher
	Metrics   *metrics.Collector
	Log       zerolog.Logger

	now func() time.Time
}

func NewOrderService(db repository.DB, or *repository.OrderRepository, pr *repository.ProductRepository,
	pub events.OrderPublisher, m *metrics.Collector, log zerolog.Logger) *OrderService {
	if pub == nil {
		pub = events.Noop{}
	}
	return &OrderService{DB: db, Repo: or, Products: pr, Publisher: pub, Metrics: m, Log: log, now: time.Now}
}

// Place turns the requested lines into an order with priced items. Prices are
// read once per product inside the transaction; either the order and all of
// its items are stored or nothing is.
func (s *OrderService) Place(ctx context.Context, in model.PlaceOrder) (*model.Order, error) {
	if reason, err := validateOrder(&in); err != nil {
		s.Metrics.CheckoutFailed(reason)
		return nil, err
	}

	o, err := s.materialize(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			s.Metrics.CheckoutFailed(ReasonProductNotFound)
		case IsValidation(err):
			s.Metrics.CheckoutFailed(ReasonInvalidItem)
		default:
			s.Metrics.CheckoutFailed(ReasonInternal)
		}
		return nil, err
	}

	s.Metrics.DBOp("INSERT", "orders")
	s.Metrics.DBOp("INSERT", "order_items")
	s.Metrics.CheckoutSucceeded(o.Total.InexactFloat64())

	if err := s.Publisher.OrderCreated(ctx, o); err != nil {
		s.Log.Error().Err(err).Int64("order_id", o.ID).Msg("publish order.created failed")
	}
	s.Log.Info().Int64("order_id", o.ID).Str("total", o.Total.String()).Int("items", len(o.Items)).Msg("order placed")
	return o, nil
}

// Reject counts a request turned away before it reached Place, for example a
// body missing required keys, and returns it as a ValidationError.
func (s *OrderService) Reject(reason, msg string) error {
	s.Metrics.CheckoutFailed(reason)
	return &ValidationError{Msg: msg}
}

func validateOrder(in *model.PlaceOrder) (string, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	if in.CustomerName == "" || in.Phone == "" || in.Address == "" {
		return ReasonMissingFields, invalid("customer_name, phone and address are required")
	}
	if len(in.Lines) == 0 {
		return ReasonEmptyCart, invalid("order has no items")
	}
	for i, l := range in.Lines {
		// unknown ids, zero included, are left to the product lookup
		if l.Quantity <= 0 || l.Quantity > math.MaxInt32 {
			return ReasonInvalidItem, invalid("item %d: quantity must be between 1 and %d", i, math.MaxInt32)
		}
	}
	return "", nil
}

func (s *OrderService) materialize(ctx context.Context, in model.PlaceOrder) (*model.Order, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	snapshot := make(map[int64]*model.Product, len(in.Lines))
	items := make([]model.OrderItem, 0, len(in.Lines))
	total := decimal.Zero
	for _, l := range in.Lines {
		p, ok := snapshot[l.ProductID]
		if !ok {
			p, err = s.Products.GetByIDTx(ctx, tx, l.ProductID)
			if errors.Is(err, repository.ErrNoRecord) {
				return nil, &NotFoundError{Entity: "product", ID: l.ProductID}
			}
			if err != nil {
				return nil, fmt.Errorf("read product %d: %w", l.ProductID, err)
			}
			snapshot[l.ProductID] = p
		}
		sub := p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		total = total.Add(sub)
		items = append(items, model.OrderItem{
			ProductName: p.Name,
			Quantity:    l.Quantity,
			Price:       p.Price,
			Subtotal:    sub,
		})
	}

	if total.GreaterThanOrEqual(maxMoney) {
		return nil, invalid("order total must be below %s", maxMoney)
	}

	o := &model.Order{
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Address:      in.Address,
		Total:        total,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.Repo.CreateOrderTx(ctx, tx, o); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	if err := s.Repo.CreateOrderItemsTx(ctx, tx, o.ID, items); err != nil {
		return nil, fmt.Errorf("insert order items: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}
	o.Items = items
	return o, nil
}

// List returns all orders, newest first.
func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	list, err := s.Repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	s.Metrics.DBOp("SELECT", "orders")
	s.Metrics.SetOrders(len(list))
	return list, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	o, err := s.Repo.GetOrderByID(ctx, id)
	if errors.Is(err, repository.ErrNoRecord) {
		return nil, &NotFoundError{Entity: "order", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	s.Metrics.DBOp("SELECT", "orders")
	return o, nil
}
