// Package orders keeps the session's order history in memory.
package orders

import (
	"errors"
	"fmt"
	"sort"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/imrishuroy/halfkg-storefront/internal/validation"
)

var (
	// ErrStatusMismatch is returned by UpdateStatus when the current status is not the expected one.
	ErrStatusMismatch = errors.New("status mismatch")
	// ErrOrderNotFound is returned when mutating an order id that isn't stored.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateOrder is returned by Create for an order id that is already stored.
	ErrDuplicateOrder = errors.New("order already exists")
	// ErrFinalStatus is returned by Advance for a delivered order.
	ErrFinalStatus = errors.New("order is already delivered")
	// ErrInvalidStatus is returned by UpdateStatus for a status outside the order lifecycle.
	ErrInvalidStatus = errors.New("invalid order status")
)

// statusRule mirrors the Status tag on Order.
const statusRule = "required,oneof=Processing 'In Transit' Delivered"

// Store holds orders keyed by id. Like the cart, it belongs to one session
// goroutine and is not safe for concurrent use.
type Store struct {
	orders   map[string]*Order
	validate *validatorv10.Validate
	logger   *zap.Logger
	nowFunc  func() time.Time
}

// NewStore creates an empty order store. A nil logger disables logging.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := validation.New()
	v.RegisterStructValidation(orderTotalsValidation, Order{})
	return &Store{
		orders:   map[string]*Order{},
		validate: v,
		logger:   logger.Named("orders"),
		nowFunc:  time.Now,
	}
}

// orderTotalsValidation checks Total = Subtotal + DeliveryFee for orders that
// carry a subtotal. Fixture orders only record a total.
func orderTotalsValidation(sl validatorv10.StructLevel) {
	o := sl.Current().Interface().(Order)
	if o.Subtotal == 0 && o.DeliveryFee == 0 {
		return
	}
	if o.Total != o.Subtotal+o.DeliveryFee {
		sl.ReportError(o.Total, "total", "Total", "total_match_subtotal",
			fmt.Sprintf("subtotal %d + delivery %d != total %d", o.Subtotal, o.DeliveryFee, o.Total))
	}
}

// Create validates and stores order. PlacedAt defaults to now.
func (s *Store) Create(order Order) error {
	if order.PlacedAt.IsZero() {
		order.PlacedAt = s.nowFunc()
	}
	if err := validation.Check(s.validate, order); err != nil {
		return fmt.Errorf("create order %s: %w", order.OrderID, err)
	}
	if _, ok := s.orders[order.OrderID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateOrder, order.OrderID)
	}

	o := order
	o.Items = append([]OrderItem(nil), order.Items...)
	s.orders[o.OrderID] = &o
	s.logger.Info("order created",
		zap.String("order_id", o.OrderID),
		zap.String("status", o.Status),
		zap.Int64("total", o.Total))
	return nil
}

// Get fetches an order by id. Returns (nil, nil) if not found.
func (s *Store) Get(orderID string) (*Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]OrderItem(nil), o.Items...)
	return &cp, nil
}

// List returns the orders with the given status, newest first. An empty
// status or StatusAll returns every order.
func (s *Store) List(status string) []Order {
	out := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		if status != "" && status != StatusAll && o.Status != status {
			continue
		}
		cp := *o
		cp.Items = append([]OrderItem(nil), o.Items...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PlacedAt.Equal(out[j].PlacedAt) {
			return out[i].PlacedAt.After(out[j].PlacedAt)
		}
		return out[i].OrderID > out[j].OrderID
	})
	return out
}

// UpdateStatus moves an order from expectedStatus to newStatus.
// Returns ErrStatusMismatch if the order is in any other status and
// ErrInvalidStatus if newStatus is outside the order lifecycle.
func (s *Store) UpdateStatus(orderID, expectedStatus, newStatus string) error {
	if err := s.validate.Var(newStatus, statusRule); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}
	o, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if o.Status != expectedStatus {
		return ErrStatusMismatch
	}
	o.Status = newStatus
	s.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("from", expectedStatus),
		zap.String("to", newStatus))
	return nil
}

// Advance moves an order one step along Processing -> In Transit -> Delivered
// and returns the new status.
func (s *Store) Advance(orderID string) (string, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	next, ok := nextStatus[o.Status]
	if !ok {
		return o.Status, ErrFinalStatus
	}
	if err := s.UpdateStatus(orderID, o.Status, next); err != nil {
		return "", err
	}
	return next, nil
}

// Len is the number of stored orders.
func (s *Store) Len() int {
	return len(s.orders)
}
