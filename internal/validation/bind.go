package validation

import (
	"errors"
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"
)

// ErrInvalid wraps every error returned by Check.
var ErrInvalid = errors.New("validation failed")

// Check runs struct validation on in. Failures are wrapped with ErrInvalid;
// use Fields to get the per-field messages.
func Check(v *validatorv10.Validate, in interface{}) error {
	if err := v.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Fields flattens validator errors into namespace -> message.
func Fields(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.StructNamespace()] = fe.Error()
		}
	} else if err != nil {
		out["error"] = err.Error()
	}
	return out
}
