package errs

import (
	"net/http"
)

// New builds an HTTPError whose code is derived from the status text,
// e.g. 405 -> "METHOD_NOT_ALLOWED".
func New(status int, message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message:  message,
		Status:   status,
		Override: override,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
// code replaces the default "NOT_FOUND" when non-nil.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	err := New(http.StatusNotFound, message, override)
	if code != nil {
		err.Code = *code
	}
	return err
}

// NewMethodNotAllowedError creates a 405 Method Not Allowed HTTPError.
func NewMethodNotAllowedError(message string) *HTTPError {
	return New(http.StatusMethodNotAllowed, message, false)
}

// NewInternalServerError creates a generic 500. The real cause is only
// logged, never sent to the client.
func NewInternalServerError() *HTTPError {
	return New(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false)
}
