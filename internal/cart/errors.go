package cart

import "errors"

var (
	// ErrInvalidQuantity is returned by Add for a quantity below 1.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidPrice is returned by Add for a product with a negative price.
	ErrInvalidPrice = errors.New("product price must not be negative")
)
