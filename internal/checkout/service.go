// Package checkout turns the cart into a placed order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imrishuroy/halfkg-storefront/internal/cart"
	"github.com/imrishuroy/halfkg-storefront/internal/idempotency"
	"github.com/imrishuroy/halfkg-storefront/internal/orders"
)

var (
	// ErrEmptyCart is returned when checking out a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingKey is returned when PlaceOrder is called without a confirmation key.
	ErrMissingKey = errors.New("missing idempotency key")
	// ErrCheckoutInProgress is returned when the key belongs to a checkout that has not finished.
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	// ErrPreviousAttemptFailed is returned when the key belongs to a failed checkout.
	// Retry with a fresh key.
	ErrPreviousAttemptFailed = errors.New("previous checkout attempt failed")
)

// Cart is the part of the cart store checkout needs.
type Cart interface {
	Snapshot() cart.Snapshot
	Clear()
}

// OrderStore persists placed orders.
type OrderStore interface {
	Create(order orders.Order) error
	Get(orderID string) (*orders.Order, error)
}

// KeyStore records checkout confirmation keys.
type KeyStore interface {
	CreateIfNotExists(ctx context.Context, key, orderID string) (bool, error)
	Get(ctx context.Context, key string) (*idempotency.Record, error)
	MarkDone(ctx context.Context, key, orderID string) error
	MarkFailed(ctx context.Context, key, note string) error
}

// Service places orders from the session cart.
type Service struct {
	cart        Cart
	orders      OrderStore
	keys        KeyStore
	deliveryFee int64
	logger      *zap.Logger
	nowFunc     func() time.Time
	newID       func() string
}

// NewService wires a checkout service. A negative deliveryFee uses
// DefaultDeliveryFee; a nil logger disables logging.
func NewService(c Cart, o OrderStore, k KeyStore, deliveryFee int64, logger *zap.Logger) *Service {
	if deliveryFee < 0 {
		deliveryFee = DefaultDeliveryFee
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cart:        c,
		orders:      o,
		keys:        k,
		deliveryFee: deliveryFee,
		logger:      logger.Named("checkout"),
		nowFunc:     time.Now,
		newID:       newOrderID,
	}
}

// newOrderID returns an id like ORD-1A2B3C4D.
func newOrderID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(id[:8])
}

// Quote prices the current cart.
func (s *Service) Quote() Quote {
	return newQuote(s.cart.Snapshot(), s.deliveryFee)
}

// PlaceOrder places an order for the current cart under key. Repeating a key
// that already produced an order returns that order and leaves the cart alone.
func (s *Service) PlaceOrder(ctx context.Context, key string) (*orders.Order, error) {
	if key == "" {
		return nil, ErrMissingKey
	}

	rec, err := s.keys.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("idempotency check: %w", err)
	}
	if rec != nil {
		return s.replay(rec)
	}

	q := s.Quote()
	if len(q.Items) == 0 {
		return nil, ErrEmptyCart
	}

	orderID := s.newID()
	created, err := s.keys.CreateIfNotExists(ctx, key, orderID)
	if err != nil {
		return nil, fmt.Errorf("idempotency create: %w", err)
	}
	if !created {
		return nil, ErrCheckoutInProgress
	}

	order := orders.Order{
		OrderID:     orderID,
		PlacedAt:    s.nowFunc(),
		Status:      orders.StatusProcessing,
		Subtotal:    q.Subtotal,
		DeliveryFee: q.DeliveryFee,
		Total:       q.Total,
	}
	for _, it := range q.Items {
		order.Items = append(order.Items, orders.OrderItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.UnitPrice,
			ImageURL: it.ImageURL,
		})
	}

	if err := s.orders.Create(order); err != nil {
		if merr := s.keys.MarkFailed(ctx, key, fmt.Sprintf("store_order_failed: %v", err)); merr != nil {
			s.logger.Warn("mark idempotency key failed", zap.String("key", key), zap.Error(merr))
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	if err := s.keys.MarkDone(ctx, key, orderID); err != nil {
		s.logger.Warn("mark idempotency key done", zap.String("key", key), zap.Error(err))
	}
	s.cart.Clear()

	s.logger.Info("order placed",
		zap.String("order_id", orderID),
		zap.Int("items", order.ItemCount()),
		zap.Int64("total", order.Total))
	return &order, nil
}

// replay resolves a key that was seen before.
func (s *Service) replay(rec *idempotency.Record) (*orders.Order, error) {
	switch rec.Status {
	case idempotency.StatusDone:
		o, err := s.orders.Get(rec.OrderID)
		if err != nil {
			return nil, fmt.Errorf("load order %s: %w", rec.OrderID, err)
		}
		if o == nil {
			return nil, fmt.Errorf("%w: %s", orders.ErrOrderNotFound, rec.OrderID)
		}
		s.logger.Info("replayed checkout", zap.String("key", rec.Key), zap.String("order_id", o.OrderID))
		return o, nil
	case idempotency.StatusInProgress:
		return nil, ErrCheckoutInProgress
	case idempotency.StatusFailed:
		return nil, fmt.Errorf("%w: %s", ErrPreviousAttemptFailed, rec.Note)
	default:
		return nil, fmt.Errorf("unknown idempotency status %q", rec.Status)
	}
}
