// Package cart holds the session's shopping cart.
//
// A Store is created empty at session start and handed to every screen that
// needs it. It is not safe for concurrent use: the front-end drives it from a
// single goroutine and each call, observers included, returns before the next
// one starts.
package cart

import (
	"go.uber.org/zap"

	"github.com/imrishuroy/halfkg-storefront/internal/catalog"
)

// Store owns the cart line items.
type Store struct {
	items  []LineItem // insertion order of first add
	pub    publisher
	logger *zap.Logger
}

// NewStore returns an empty cart. A nil logger disables logging.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger.Named("cart")}
}

// Subscribe registers fn to receive a snapshot after every change and returns
// a func that unregisters it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	return s.pub.subscribe(fn)
}

// Add puts quantity units of p in the cart. If p is already present its
// quantity grows and the price and descriptive fields captured on the first
// add are kept.
func (s *Store) Add(p catalog.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Quantity += quantity
		s.logger.Debug("incremented item",
			zap.Int64("product_id", p.ID),
			zap.Int("added", quantity),
			zap.Int("quantity", s.items[i].Quantity))
		s.notify()
		return nil
	}

	if p.Price < 0 {
		return ErrInvalidPrice
	}
	s.items = append(s.items, LineItem{
		ProductID:   p.ID,
		Name:        p.Name,
		ImageURL:    p.ImageURL,
		WeightLabel: p.WeightLabel,
		UnitPrice:   p.Price,
		Quantity:    quantity,
	})
	s.logger.Debug("added item",
		zap.Int64("product_id", p.ID),
		zap.Int64("unit_price", p.Price),
		zap.Int("quantity", quantity))
	s.notify()
	return nil
}

// AddOne is Add with a quantity of 1.
func (s *Store) AddOne(p catalog.Product) error {
	return s.Add(p, 1)
}

// Remove drops the line item for productID. Unknown ids are ignored.
func (s *Store) Remove(productID int64) {
	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.logger.Debug("removed item", zap.Int64("product_id", productID))
	s.notify()
}

// UpdateQuantity adds delta to the item's quantity, flooring at zero. An
// item that reaches zero is removed. Unknown ids are ignored.
func (s *Store) UpdateQuantity(productID int64, delta int) {
	i := s.indexOf(productID)
	if i < 0 || delta == 0 {
		return
	}

	qty := s.items[i].Quantity + delta
	if qty <= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.logger.Debug("removed item at zero quantity",
			zap.Int64("product_id", productID),
			zap.Int("delta", delta))
		s.notify()
		return
	}

	s.items[i].Quantity = qty
	s.logger.Debug("updated quantity",
		zap.Int64("product_id", productID),
		zap.Int("delta", delta),
		zap.Int("quantity", qty))
	s.notify()
}

// ItemQuantity returns the quantity of productID in the cart, or 0.
func (s *Store) ItemQuantity(productID int64) int {
	if i := s.indexOf(productID); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

// Clear empties the cart.
func (s *Store) Clear() {
	if len(s.items) == 0 {
		return
	}
	n := len(s.items)
	s.items = nil
	s.logger.Debug("cleared cart", zap.Int("line_items", n))
	s.notify()
}

// TotalItems is the sum of quantities.
func (s *Store) TotalItems() int {
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity. Delivery fees are the
// caller's business.
func (s *Store) TotalPrice() int64 {
	var total int64
	for _, it := range s.items {
		total += it.LineTotal()
	}
	return total
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// IsEmpty reports whether the cart has no line items.
func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// Snapshot returns the items together with both totals.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Items:      s.Items(),
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice(),
	}
}

func (s *Store) indexOf(productID int64) int {
	for i, it := range s.items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) notify() {
	if s.pub.len() == 0 {
		return
	}
	s.pub.publish(s.Snapshot())
}
