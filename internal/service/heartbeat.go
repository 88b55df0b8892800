package service

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/heartbeat/internal/heartbeat"
	"github.com/deppfellow/heartbeat/internal/metrics"
	"github.com/deppfellow/heartbeat/internal/sanitizer"
	"github.com/deppfellow/heartbeat/internal/server"
)

// customEventType is the New Relic event type recorded per heartbeat.
const customEventType = "Heartbeat"

// HeartbeatService turns raw request data into a Record and emits it.
type HeartbeatService struct {
	sink    heartbeat.Sink
	metrics *metrics.Metrics
	nrApp   *newrelic.Application

	// maxBodyBytes bounds how much of a request body is decoded.
	maxBodyBytes int64

	// now is the clock used for record timestamps.
	now func() time.Time
}

// NewHeartbeatService builds the service from the application container.
func NewHeartbeatService(s *server.Server) *HeartbeatService {
	return &HeartbeatService{
		sink:    s.Sink,
		metrics: s.Metrics,
		nrApp:   s.LoggerService.GetApplication(),

		maxBodyBytes: s.Config.Heartbeat.MaxBodyBytes,
		now:          time.Now,
	}
}

// Record reads and parses the body, builds the sanitized record, emits
// it to the sink and returns it. body may be nil.
//
// It never fails from the caller's point of view: an unreadable, oversized
// or malformed body is treated as empty, and a sink failure is logged and
// dropped, since the heartbeat is best-effort telemetry.
func (hs *HeartbeatService) Record(ctx context.Context, body io.Reader, headers http.Header) heartbeat.Record {
	logger := zerolog.Ctx(ctx)

	parsed := hs.readBody(ctx, body)
	if parsed.Malformed && hs.metrics != nil {
		hs.metrics.ObserveMalformedBody()
	}

	rec := heartbeat.NewRecord(parsed.Body, headers, hs.now())

	if err := hs.sink.Emit(ctx, rec); err != nil {
		logger.Error().Err(err).Msg("failed to emit heartbeat record")
	}

	if hs.metrics != nil {
		hs.metrics.ObserveHeartbeat(rec.IP != sanitizer.Unknown, rec.Device != sanitizer.Unknown)
	}

	if hs.nrApp != nil {
		hs.nrApp.RecordCustomEvent(customEventType, map[string]interface{}{
			"ts":     rec.TS,
			"device": rec.Device,
			"ip":     rec.IP,
			"note":   rec.Note,
		})
	}

	return rec
}

// readBody reads at most maxBodyBytes and parses them. Read errors and
// bodies over the limit count as malformed.
func (hs *HeartbeatService) readBody(ctx context.Context, body io.Reader) heartbeat.ParseResult {
	if body == nil {
		return heartbeat.ParseBody(nil)
	}

	raw, err := io.ReadAll(io.LimitReader(body, hs.maxBodyBytes+1))
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("failed to read heartbeat body, using defaults")
		return heartbeat.ParseResult{Body: heartbeat.Body{}, Malformed: true}
	}

	if int64(len(raw)) > hs.maxBodyBytes {
		zerolog.Ctx(ctx).Debug().Int64("limit", hs.maxBodyBytes).Msg("heartbeat body too large, using defaults")
		return heartbeat.ParseResult{Body: heartbeat.Body{}, Malformed: true}
	}

	parsed := heartbeat.ParseBody(raw)
	if parsed.Malformed {
		zerolog.Ctx(ctx).Debug().Int("body_bytes", len(raw)).Msg("heartbeat body is not a JSON object, using defaults")
	}

	return parsed
}
