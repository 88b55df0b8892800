package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/deppfellow/heartbeat/internal/errs"
)

// Validatable is implemented by types that know how to validate themselves,
// usually by calling validator.Struct and adding custom checks.
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single issue that cannot be
// expressed with a validator tag.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// Error is returned by Validate. Errors lists every failing field.
type Error struct {
	Message string
	Errors  []errs.FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+" "+fe.Error)
	}
	if len(parts) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// Validate calls v.Validate and converts a failure into *Error.
func Validate(v Validatable) error {
	if err := v.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err)
		return &Error{Message: msg, Errors: fieldErrors}
	}
	return nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	switch e := err.(type) {
	case validator.ValidationErrors:
		for _, fe := range e {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: strings.ToLower(fe.Field()),
				Error: tagMessage(fe),
			})
		}
	case CustomValidationErrors:
		for _, ce := range e {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
	default:
		return err.Error(), nil
	}

	return "Validation failed", fieldErrors
}

// tagMessage converts a validator failure into a readable message.
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		// For strings min is a length, for numbers and durations a value.
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "http_url":
		return "must be an http:// or https:// URL"

	case "startswith":
		return fmt.Sprintf("must start with %q", fe.Param())

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag())
	}
}
