package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/heartbeat/internal/server"
	"github.com/deppfellow/heartbeat/internal/service"
)

// pingResponse is the fixed body of every heartbeat response.
const pingResponse = "ok"

// HeartbeatHandler serves the heartbeat route.
type HeartbeatHandler struct {
	Handler
	heartbeatService *service.HeartbeatService
}

// NewHeartbeatHandler constructs a HeartbeatHandler.
func NewHeartbeatHandler(s *server.Server, heartbeatService *service.HeartbeatService) *HeartbeatHandler {
	return &HeartbeatHandler{
		Handler:          NewHandler(s),
		heartbeatService: heartbeatService,
	}
}

// Ping records the heartbeat and acknowledges it. It accepts any method
// and never fails: bad input only degrades the recorded fields.
func (h *HeartbeatHandler) Ping(c echo.Context) (string, error) {
	req := c.Request()

	h.heartbeatService.Record(req.Context(), req.Body, req.Header)

	return pingResponse, nil
}
