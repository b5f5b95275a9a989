package checkout

import (
	"time"

	"github.com/imrishuroy/halfkg-storefront/internal/cart"
)

// DefaultDeliveryFee is the flat delivery charge in whole rupees.
const DefaultDeliveryFee int64 = 50

// Delivery window for a new order, counted from placement.
const (
	MinDeliveryDays = 2
	MaxDeliveryDays = 3
)

// Quote is the order summary shown before confirming a checkout.
type Quote struct {
	Items       []cart.LineItem
	Subtotal    int64
	DeliveryFee int64
	Total       int64
}

// newQuote prices a cart snapshot. An empty cart costs nothing, delivery included.
func newQuote(snap cart.Snapshot, deliveryFee int64) Quote {
	q := Quote{Items: snap.Items, Subtotal: snap.TotalPrice}
	if len(snap.Items) > 0 {
		q.DeliveryFee = deliveryFee
	}
	q.Total = q.Subtotal + q.DeliveryFee
	return q
}

// EstimatedDelivery returns the earliest and latest delivery dates for an
// order placed at placed.
func EstimatedDelivery(placed time.Time) (earliest, latest time.Time) {
	return placed.AddDate(0, 0, MinDeliveryDays), placed.AddDate(0, 0, MaxDeliveryDays)
}
