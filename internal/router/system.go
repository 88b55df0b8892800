package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/heartbeat/internal/handler"
	"github.com/deppfellow/heartbeat/internal/server"
)

// registerSystemRoutes registers endpoints that are not part of the
// heartbeat itself: status and Prometheus metrics.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", handler.Handle(h.Health.Handler, h.Health.CheckHealth, http.StatusOK))

	if metricsCfg := s.Config.Observability.Metrics; metricsCfg.Enabled {
		r.GET(metricsCfg.Path, echo.WrapHandler(s.Metrics.Handler()))
	}
}
