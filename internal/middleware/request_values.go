package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/heartbeat/internal/sanitizer"
)

// Caps for request values copied into logs and trace attributes.
const (
	maxMethodLength    = 32
	maxUserAgentLength = 256
	maxHostLength      = 255
	maxURILength       = 2048
)

// clientIP is the caller address as logged: c.RealIP() when it looks like
// an IP address, "unknown" otherwise.
func clientIP(c echo.Context) string {
	return sanitizer.IP(c.RealIP())
}

func requestMethod(c echo.Context) string {
	return sanitizer.String(c.Request().Method, maxMethodLength, "")
}

func userAgent(c echo.Context) string {
	return sanitizer.String(c.Request().UserAgent(), maxUserAgentLength, "")
}

func logValue(value string, maxLength int) string {
	return sanitizer.String(value, maxLength, "")
}
