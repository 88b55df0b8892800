package heartbeat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// LinePrefix starts every line written by LineSink.
const LinePrefix = "heartbeat: "

// Sink receives one Record per request.
type Sink interface {
	Emit(ctx context.Context, rec Record) error
}

// LineSink writes records as `heartbeat: {"ts":...,"device":...,"ip":...,"note":...}`
// lines, one per record, for the log aggregator scraping the process output.
type LineSink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewLineSink returns a LineSink writing to out.
func NewLineSink(out io.Writer) *LineSink {
	return &LineSink{out: out}
}

// Emit writes rec as a single line. Concurrent calls never interleave.
func (s *LineSink) Emit(_ context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal heartbeat record: %w", err)
	}

	line := make([]byte, 0, len(LinePrefix)+len(payload)+1)
	line = append(line, LinePrefix...)
	line = append(line, payload...)
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.out.Write(line); err != nil {
		return fmt.Errorf("failed to write heartbeat line: %w", err)
	}

	return nil
}

// LogSink emits records as structured zerolog events named "heartbeat".
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink returns a LogSink using logger.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(_ context.Context, rec Record) error {
	s.logger.Info().
		Int64("ts", rec.TS).
		Str("device", rec.Device).
		Str("ip", rec.IP).
		Str("note", rec.Note).
		Msg("heartbeat")

	return nil
}
