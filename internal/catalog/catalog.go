// Package catalog provides the static product catalog.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/imrishuroy/halfkg-storefront/internal/money"
	"github.com/imrishuroy/halfkg-storefront/internal/validation"
)

//go:embed products.yaml
var productsYAML []byte

var (
	// ErrInvalidPrice marks a fixture product whose display price can't be normalized.
	ErrInvalidPrice = errors.New("invalid product price")
	// ErrDuplicateProduct marks two fixture products sharing an id.
	ErrDuplicateProduct = errors.New("duplicate product id")
)

// Catalog is an immutable, ordered set of products.
type Catalog struct {
	products   []Product
	byID       map[int64]int
	categories []string
}

// Load parses the embedded product fixture.
func Load() (*Catalog, error) {
	return Parse(productsYAML)
}

// Parse decodes, validates and normalizes a YAML product fixture.
func Parse(data []byte) (*Catalog, error) {
	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := validation.Check(validation.New(), fx); err != nil {
		if hasPriceError(err) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPrice, err)
		}
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	c := &Catalog{
		products: make([]Product, 0, len(fx.Products)),
		byID:     make(map[int64]int, len(fx.Products)),
	}
	for _, rec := range fx.Products {
		if _, ok := c.byID[rec.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateProduct, rec.ID)
		}
		price, err := money.Parse(rec.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d: %w", ErrInvalidPrice, rec.ID, err)
		}
		c.byID[rec.ID] = len(c.products)
		c.products = append(c.products, Product{
			ID:           rec.ID,
			Name:         rec.Name,
			Category:     rec.Category,
			DisplayPrice: rec.Price,
			Price:        price,
			ImageURL:     rec.Image,
			WeightLabel:  rec.Weight,
			Description:  rec.Description,
		})
	}

	c.categories = normalizeCategories(fx.Categories, c.products)
	return c, nil
}

func hasPriceError(err error) bool {
	for ns := range validation.Fields(err) {
		if strings.HasSuffix(ns, ".Price") {
			return true
		}
	}
	return false
}

// normalizeCategories puts "All" first and appends any product category the
// fixture forgot to list.
func normalizeCategories(listed []string, products []Product) []string {
	seen := map[string]bool{CategoryAll: true}
	out := []string{CategoryAll}
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	for _, name := range listed {
		add(name)
	}
	for _, p := range products {
		add(p.Category)
	}
	return out
}

// Products returns every product in fixture order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks up a product by id.
func (c *Catalog) Get(id int64) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Categories returns the category filter chips, "All" first.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Filter returns the products in category whose name contains search,
// case-insensitively. An empty category or "All" matches every category.
func (c *Catalog) Filter(category, search string) []Product {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if category != "" && category != CategoryAll && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}
