package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/heartbeat/internal/logger"
	"github.com/deppfellow/heartbeat/internal/server"
)

// LoggerKey is the Echo context key of the request-scoped logger.
const LoggerKey = "logger"

// ContextEnhancer builds a request-scoped logger carrying request_id,
// method, path and ip (plus trace.id/span.id when New Relic is on) and
// stores it in both the Echo context and the request context.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a new ContextEnhancer using the app Server container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns an Echo middleware. It must run after RequestID.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", requestMethod(c)).
				Str("path", c.Path()).
				Str("ip", clientIP(c)).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)

			// Code that only sees a context.Context reads it with zerolog.Ctx.
			ctx := contextLogger.WithContext(c.Request().Context())
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetLogger retrieves the request-scoped logger from Echo context.
// Without EnhanceContext it returns a no-op logger.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
