// Package errs defines the error types returned to API clients.
//
// Every framework error (unknown route, wrong method, recovered panic)
// is converted into an HTTPError so clients always see the same JSON
// shape. The heartbeat route itself never produces one: bad input there
// degrades to defaults instead.
package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "url", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
// It implements error and is serialized directly to JSON.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`

	// Override lets the error handler replace Message before it reaches the client.
	Override bool `json:"override"`

	Errors []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is makes errors.Is match any *HTTPError, regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
