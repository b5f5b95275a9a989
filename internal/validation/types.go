package validation

// MaxAddQuantity is the largest quantity a single add-to-cart request may carry.
const MaxAddQuantity = 99

// AddItemRequest is the input of an add-to-cart action from the front-end.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,min=1"` // must be >= 1
}
