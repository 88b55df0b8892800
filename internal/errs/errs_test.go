package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Route not found", false, nil)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "Route not found", err.Error())

	code := "NO_ROUTE"
	err = NewNotFoundError("Route not found", true, &code)
	assert.Equal(t, "NO_ROUTE", err.Code)
	assert.True(t, err.Override)
}

func TestNewInternalServerError(t *testing.T) {
	err := NewInternalServerError()
	assert.Equal(t, "INTERNAL_SERVER_ERROR", err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "Internal Server Error", err.Message)
}

func TestHTTPError_IsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("routing: %w", NewMethodNotAllowedError("nope"))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusMethodNotAllowed, httpErr.Status)
	assert.Equal(t, "METHOD_NOT_ALLOWED", httpErr.Code)
}

func TestHTTPError_WithMessage(t *testing.T) {
	base := NewNotFoundError("a", false, nil)
	copied := base.WithMessage("b")

	assert.Equal(t, "a", base.Message)
	assert.Equal(t, "b", copied.Message)
	assert.Equal(t, base.Code, copied.Code)
}
