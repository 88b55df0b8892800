// Package agent is the client side of the heartbeat: it sends pings to a
// heartbeat endpoint once or on a fixed interval.
package agent

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultInterval is the pause between daemon pings.
	DefaultInterval = 60 * time.Second

	// NoteOnce and NoteManual are sent by single-ping runs.
	NoteOnce   = "single ping"
	NoteManual = "manual ping"
)

// Options is the agent configuration assembled from flags and environment.
type Options struct {
	URL      string        `validate:"required,http_url"`
	Device   string        `validate:"required,max=100"`
	Interval time.Duration `validate:"min=1s"`
}

// Validate checks the options against their validator tags.
// Device is capped at the length the server keeps.
func (o *Options) Validate() error {
	return validator.New().Struct(o)
}
