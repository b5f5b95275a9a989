package orders

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"
)

//go:embed history.yaml
var historyYAML []byte

type historyRecord struct {
	ID     string `yaml:"id"`
	Date   string `yaml:"date"`
	Status string `yaml:"status"`
	Total  int64  `yaml:"total"`
	Items  []struct {
		Name     string `yaml:"name"`
		Quantity int    `yaml:"quantity"`
		Price    int64  `yaml:"price"`
		Image    string `yaml:"image"`
	} `yaml:"items"`
}

// LoadHistory parses the embedded order-history fixture.
func LoadHistory(loc *time.Location) ([]Order, error) {
	return ParseHistory(historyYAML, loc)
}

// ParseHistory decodes an order-history fixture. Dates are read in loc
// (UTC when nil) and may use any layout dateparse understands.
func ParseHistory(data []byte, loc *time.Location) ([]Order, error) {
	if loc == nil {
		loc = time.UTC
	}
	var fx struct {
		Orders []historyRecord `yaml:"orders"`
	}
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("decode order history: %w", err)
	}

	out := make([]Order, 0, len(fx.Orders))
	for _, rec := range fx.Orders {
		placed, err := dateparse.ParseIn(rec.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("order %s: parse date %q: %w", rec.ID, rec.Date, err)
		}
		o := Order{
			OrderID:  rec.ID,
			PlacedAt: placed,
			Status:   rec.Status,
			Total:    rec.Total,
		}
		for _, it := range rec.Items {
			o.Items = append(o.Items, OrderItem{
				Name:     it.Name,
				Quantity: it.Quantity,
				Price:    it.Price,
				ImageURL: it.Image,
			})
		}
		out = append(out, o)
	}
	return out, nil
}

// Seed stores every order, stopping at the first one that fails validation.
func (s *Store) Seed(orders []Order) error {
	for _, o := range orders {
		if err := s.Create(o); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}
