package orders

import "time"

// Order statuses, in lifecycle order.
const (
	StatusProcessing = "Processing"
	StatusInTransit  = "In Transit"
	StatusDelivered  = "Delivered"
)

// StatusAll is the order-history filter chip that matches every status.
const StatusAll = "All"

// Statuses returns the order-history filter chips.
func Statuses() []string {
	return []string{StatusAll, StatusProcessing, StatusInTransit, StatusDelivered}
}

// nextStatus maps a status to the one that follows it.
var nextStatus = map[string]string{
	StatusProcessing: StatusInTransit,
	StatusInTransit:  StatusDelivered,
}

// OrderItem is a line of a placed order.
type OrderItem struct {
	Name     string `validate:"required"`
	Quantity int    `validate:"min=1"`
	Price    int64  `validate:"min=0"` // unit price in whole rupees
	ImageURL string
}

// Order is a placed order in the session's order history.
type Order struct {
	OrderID     string      `validate:"required"`
	PlacedAt    time.Time
	Status      string      `validate:"required,oneof=Processing 'In Transit' Delivered"`
	Items       []OrderItem `validate:"required,min=1,dive"`
	Subtotal    int64       `validate:"min=0"`
	DeliveryFee int64       `validate:"min=0"`
	Total       int64       `validate:"min=0"`
}

// ItemCount is the sum of item quantities.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
