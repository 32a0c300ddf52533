// Package validator adapts go-playground/validator to echo's Validator
// interface so request DTOs are checked during Bind+Validate in handlers.
package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator validates request DTOs against their `validate` tags.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds the validator used by the API server. The notblank rule
// rejects strings that are whitespace only, which `required` alone
// would accept for meeting names and query text.
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &CustomValidator{validate: v}
}

// Validate checks i against its validation tags.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validate.Struct(i)
}
