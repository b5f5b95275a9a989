package orders

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

// csvRow is one line of the order-history export.
type csvRow struct {
	OrderID     string `csv:"order_id"`
	PlacedOn    string `csv:"placed_on"`
	Status      string `csv:"status"`
	Items       int    `csv:"items"`
	Subtotal    int64  `csv:"subtotal"`
	DeliveryFee int64  `csv:"delivery_fee"`
	Total       int64  `csv:"total"`
}

// WriteCSV writes one row per order, with a header, to w.
func WriteCSV(w io.Writer, orders []Order) error {
	rows := make([]*csvRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, &csvRow{
			OrderID:     o.OrderID,
			PlacedOn:    o.PlacedAt.Format(time.DateOnly),
			Status:      o.Status,
			Items:       o.ItemCount(),
			Subtotal:    o.Subtotal,
			DeliveryFee: o.DeliveryFee,
			Total:       o.Total,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write orders csv: %w", err)
	}
	return nil
}
