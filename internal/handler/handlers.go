package handler

import (
	"github.com/deppfellow/heartbeat/internal/server"
	"github.com/deppfellow/heartbeat/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Heartbeat *HeartbeatHandler
	Health    *HealthHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Heartbeat: NewHeartbeatHandler(s, services.Heartbeat),
		Health:    NewHealthHandler(s),
	}
}
