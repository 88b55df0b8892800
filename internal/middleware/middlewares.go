package middleware

import (
	"github.com/deppfellow/heartbeat/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server,
// built once from the application container.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers
	// and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches a request-scoped logger to every request.
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware; a no-op without New Relic.
	Tracing *TracingMiddleware
}

// NewMiddlewares constructs all middleware components.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
	}
}
