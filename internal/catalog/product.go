package catalog

// CategoryAll matches every product in Filter.
const CategoryAll = "All"

// originalPriceMarkup is the gap between the sale price and the struck-through
// "was" price on the product detail view.
const originalPriceMarkup = 50

// Product is a read-only catalog entry. Price is the integer form of
// DisplayPrice, derived once when the catalog is loaded.
type Product struct {
	ID           int64
	Name         string
	Category     string
	DisplayPrice string
	Price        int64
	ImageURL     string
	WeightLabel  string
	Description  string
}

// OriginalPrice is the pre-discount price shown next to Price.
func (p Product) OriginalPrice() int64 {
	return p.Price + originalPriceMarkup
}

// productRecord is the fixture shape of a product.
type productRecord struct {
	ID          int64  `yaml:"id" validate:"required,gt=0"`
	Name        string `yaml:"name" validate:"required"`
	Price       string `yaml:"price" validate:"required,display_price"`
	Image       string `yaml:"image" validate:"omitempty,url"`
	Category    string `yaml:"category" validate:"required"`
	Weight      string `yaml:"weight" validate:"required"`
	Description string `yaml:"description"`
}

type fixture struct {
	Categories []string        `yaml:"categories"`
	Products   []productRecord `yaml:"products" validate:"required,min=1,dive"`
}
