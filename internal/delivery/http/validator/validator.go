// Package validator adapts go-playground/validator to echo's Validator
// interface. Struct tags on request DTOs drive the checks; failures surface
// as VALIDATION_FAILED with per-field details.
package validator

import (
	"errors"

	domainerrors "pulse/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New creates the validator installed on the echo server.
func New() *echoValidator {
	return &echoValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (v *echoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	details := map[string]string{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
	}

	return domainerrors.ErrValidationFailed.WithDetails(details)
}
