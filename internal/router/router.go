// Package router builds the Echo router.
//
// It registers the middleware chain and maps paths to handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/heartbeat/internal/handler"
	"github.com/deppfellow/heartbeat/internal/middleware"
	"github.com/deppfellow/heartbeat/internal/server"
)

// NewRouter returns the configured Echo instance.
//
// Middleware order matters: the request ID must exist before the
// context logger is built, and the New Relic transaction must exist
// before EnhanceTracing reads it.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerHeartbeatRoutes(router, s, h)
	registerSystemRoutes(router, s, h)

	return router
}
