package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/heartbeat/internal/server"
)

// TracingMiddleware owns the New Relic middleware. Requests pass through
// untouched when nrApp is nil.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

// NewTracingMiddleware constructs TracingMiddleware.
func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware starts a transaction per request and stores it in
// the request context.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing tags the transaction with the sanitized request
// attributes, notices handler errors and records the final status.
// It must run after NewRelicMiddleware and RequestID.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			for key, value := range tm.requestAttributes(c) {
				txn.AddAttribute(key, value)
			}

			err := next(c)
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}

			txn.AddAttribute("http.status_code", c.Response().Status)

			return err
		}
	}
}

// requestAttributes are the per-request transaction attributes. Caller
// controlled values go through the same sanitizing as the logs.
func (tm *TracingMiddleware) requestAttributes(c echo.Context) map[string]any {
	attrs := map[string]any{
		"http.real_ip":        clientIP(c),
		"http.user_agent":     userAgent(c),
		"service.environment": tm.server.Config.Primary.Env,
	}

	if requestID := GetRequestID(c); requestID != "" {
		attrs["request.id"] = requestID
	}

	return attrs
}
