package cart

// LineItem is one product in the cart. Descriptive fields and UnitPrice are
// captured on the first add and never refreshed.
type LineItem struct {
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url,omitempty"`
	WeightLabel string `json:"weight_label,omitempty"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

// LineTotal is UnitPrice * Quantity.
func (li LineItem) LineTotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Snapshot is a point-in-time copy of the cart handed to observers.
type Snapshot struct {
	Items      []LineItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice int64      `json:"total_price"`
}

func (s Snapshot) clone() Snapshot {
	s.Items = append([]LineItem(nil), s.Items...)
	return s
}

// Observer is called synchronously after every mutation that changed the cart.
// Each observer gets its own copy of the snapshot. An observer may mutate the
// cart; the resulting snapshot reaches every observer after the current one
// has been delivered to all of them.
type Observer func(Snapshot)
