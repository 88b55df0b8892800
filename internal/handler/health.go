package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/heartbeat/internal/middleware"
	"github.com/deppfellow/heartbeat/internal/server"
)

// HealthHandler exposes the status endpoint used by monitors and load balancers.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Uptime      string    `json:"uptime"`
}

// CheckHealth reports that the process is serving. The service has no
// downstream dependencies, so it is healthy whenever it can answer.
func (h *HealthHandler) CheckHealth(c echo.Context) (StatusResponse, error) {
	now := time.Now()

	response := StatusResponse{
		Status:      "healthy",
		Timestamp:   now.UTC(),
		Environment: h.server.Config.Primary.Env,
		Uptime:      now.Sub(h.server.StartedAt).Round(time.Second).String(),
	}

	middleware.GetLogger(c).Debug().
		Str("operation", "health_check").
		Str("uptime", response.Uptime).
		Msg("health check passed")

	return response, nil
}
