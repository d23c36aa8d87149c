// Package validation reports missing or malformed user input.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Error is returned when a required field is missing or invalid.
// It is surfaced to the user as-is and never retried.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// New creates a validation error for the given field.
func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// Is reports whether err is (or wraps) a validation error.
func Is(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

// Required fails when value is empty after trimming whitespace.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return New(field, "is required")
	}
	return nil
}

// Struct validates s against its `validate` tags and returns the first
// failing field as an *Error.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	return fromFieldError(fieldErrs[0])
}

func fromFieldError(e validator.FieldError) *Error {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required", "notblank":
		return New(field, "is required")
	case "min":
		return New(field, fmt.Sprintf("must be at least %s", e.Param()))
	case "max":
		return New(field, fmt.Sprintf("must be at most %s", e.Param()))
	case "oneof":
		return New(field, fmt.Sprintf("must be one of: %s", e.Param()))
	default:
		return New(field, "is invalid")
	}
}
