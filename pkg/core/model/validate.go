package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("band", func(fl validator.FieldLevel) bool {
		return ValidBand(fl.Field().String())
	})
	validate.RegisterValidation("mode", func(fl validator.FieldLevel) bool {
		return ValidMode(fl.Field().String())
	})
}

// Validate checks the struct tags of a document before a trusted write
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
