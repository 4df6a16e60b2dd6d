package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags of a record and wraps failures in ErrDecode.
func Validate(record any) error {
	if err := validate.Struct(record); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
