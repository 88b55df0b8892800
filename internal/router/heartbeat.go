package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/heartbeat/internal/handler"
	"github.com/deppfellow/heartbeat/internal/server"
)

// registerHeartbeatRoutes mounts the heartbeat endpoint for every method.
//
// Any covers Echo's known methods. Other methods (PURGE, custom tokens)
// match the path without a method handler, where Echo prefers the
// path's not-found route over its 405 handler.
func registerHeartbeatRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	ping := handler.HandleText(h.Heartbeat.Handler, h.Heartbeat.Ping, http.StatusOK)

	r.Any(s.Config.Heartbeat.Path, ping)
	r.RouteNotFound(s.Config.Heartbeat.Path, ping)
}
