package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// MaxConsecutiveFailures is the failure streak after which every further
// failure is logged as a warning.
const MaxConsecutiveFailures = 5

// Pinger sends one heartbeat. *Client implements it.
type Pinger interface {
	Send(ctx context.Context, device, note string) error
}

// Runner pings on a fixed interval until its context is cancelled.
type Runner struct {
	pinger   Pinger
	device   string
	interval time.Duration
	logger   zerolog.Logger

	now      func() time.Time
	failures int
}

// NewRunner constructs a Runner.
func NewRunner(pinger Pinger, device string, interval time.Duration, logger zerolog.Logger) *Runner {
	return &Runner{
		pinger:   pinger,
		device:   device,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run pings immediately and then once per interval. It returns nil when
// ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info().
		Str("device", r.device).
		Dur("interval", r.interval).
		Msg("starting heartbeat daemon")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("heartbeat daemon stopped")
			return nil
		case <-timer.C:
		}

		r.ping(ctx)
		timer.Reset(r.interval)
	}
}

func (r *Runner) ping(ctx context.Context) {
	note := fmt.Sprintf("daemon ping #%d", r.now().Unix())

	err := r.pinger.Send(ctx, r.device, note)
	if err == nil {
		r.failures = 0
		return
	}

	// A ping cut short by shutdown is not a connectivity failure.
	if ctx.Err() != nil {
		return
	}

	r.failures++
	r.logger.Error().Err(err).Int("consecutive_failures", r.failures).Msg("ping failed")

	if r.failures >= MaxConsecutiveFailures {
		r.logger.Warn().
			Int("consecutive_failures", r.failures).
			Msg("check your internet connection and the heartbeat endpoint")
	}
}
