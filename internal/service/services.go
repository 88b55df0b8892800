package service

import (
	"github.com/deppfellow/heartbeat/internal/server"
)

// Services is the container of every service, built once at startup.
type Services struct {
	Heartbeat *HeartbeatService
}

// NewService wires services from the application container.
func NewService(s *server.Server) (*Services, error) {
	return &Services{
		Heartbeat: NewHeartbeatService(s),
	}, nil
}
