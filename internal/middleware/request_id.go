package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/heartbeat/internal/sanitizer"
)

const (
	// RequestIDHeader carries the request correlation ID in both directions.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the Echo context key of the request ID.
	RequestIDKey = "request_id"

	// maxRequestIDLength bounds caller supplied IDs before they reach the logs.
	maxRequestIDLength = 64
)

// RequestID returns an Echo middleware that ensures each request has a request ID.
//
// A caller supplied X-Request-ID is reused after sanitizing, since it ends
// up in every log line of the request. Otherwise a UUID is generated. The
// ID is stored in the Echo context and echoed on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := sanitizer.String(c.Request().Header.Get(RequestIDHeader), maxRequestIDLength, "")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

// GetRequestID retrieves the request ID from Echo context, or "".
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
