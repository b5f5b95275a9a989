package validation

import (
	"regexp"

	validatorv10 "github.com/go-playground/validator/v10"
)

// displayPricePattern matches a currency symbol followed by whole minor units,
// e.g. "₹120" or "₹120.00".
var displayPricePattern = regexp.MustCompile(`^[^\d\s+\-.,]+\d+(\.0+)?$`)

// New returns a configured validator with the storefront's custom tags registered.
//
//	display_price: a string of the form "<symbol><digits>"
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// registration only fails for an empty tag or a nil func
	_ = v.RegisterValidation("display_price", displayPrice)

	v.RegisterStructValidation(addItemStructValidation, AddItemRequest{})

	return v
}

// IsDisplayPrice reports whether s has the "<symbol><digits>" shape the catalog expects.
func IsDisplayPrice(s string) bool {
	return displayPricePattern.MatchString(s)
}

func displayPrice(fl validatorv10.FieldLevel) bool {
	return IsDisplayPrice(fl.Field().String())
}

// addItemStructValidation caps a single add so a mistyped quantity can't flood the cart.
func addItemStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(AddItemRequest)
	if req.Quantity > MaxAddQuantity {
		sl.ReportError(req.Quantity, "quantity", "Quantity", "max_add_quantity", "")
	}
}
