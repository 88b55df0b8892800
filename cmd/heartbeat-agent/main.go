package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/heartbeat/internal/agent"
	"github.com/deppfellow/heartbeat/internal/validation"
)

const (
	envURL    = "HEARTBEAT_URL"
	envDevice = "HEARTBEAT_DEVICE"
)

type flags struct {
	url      string
	device   string
	interval int
	daemon   bool
	once     bool
	verbose  bool
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "heartbeat-agent",
		Short: "Send heartbeat pings to a heartbeat endpoint",
		Example: `  heartbeat-agent --url https://monitor.example.com/api/ping --device dl-home --once
  heartbeat-agent --url https://monitor.example.com/api/ping --device dl-home
  heartbeat-agent --interval 120 --daemon --verbose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.url, "url", os.Getenv(envURL), "endpoint URL (default: "+envURL+" env var)")
	cmd.Flags().StringVar(&f.device, "device", defaultDevice(), "device identifier (default: "+envDevice+" env var or hostname)")
	cmd.Flags().IntVar(&f.interval, "interval", int(agent.DefaultInterval/time.Second), "ping interval in seconds")
	cmd.Flags().BoolVar(&f.daemon, "daemon", false, "keep pinging every interval until interrupted")
	cmd.Flags().BoolVar(&f.once, "once", false, "send a single ping and exit")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "enable verbose logging")

	return cmd
}

func defaultDevice() string {
	if device := os.Getenv(envDevice); device != "" {
		return device
	}
	hostname, _ := os.Hostname()
	return hostname
}

func run(ctx context.Context, f *flags) error {
	level := zerolog.InfoLevel
	if f.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()

	opts := agent.Options{
		URL:      f.url,
		Device:   f.device,
		Interval: time.Duration(f.interval) * time.Second,
	}
	if err := validation.Validate(&opts); err != nil {
		logValidationError(logger, err)
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := agent.NewClient(opts.URL, logger)

	switch {
	case f.once:
		return sendOnce(ctx, client, opts.Device, agent.NoteOnce, logger)
	case f.daemon:
		return agent.NewRunner(client, opts.Device, opts.Interval, logger).Run(ctx)
	default:
		return sendOnce(ctx, client, opts.Device, agent.NoteManual, logger)
	}
}

// logValidationError logs one line per invalid option.
func logValidationError(logger zerolog.Logger, err error) {
	var verr *validation.Error
	if !errors.As(err, &verr) || len(verr.Errors) == 0 {
		logger.Error().Err(err).Msg("invalid options")
		return
	}

	for _, fe := range verr.Errors {
		event := logger.Error().Str("option", fe.Field).Str("problem", fe.Error)
		if fe.Field == "url" {
			event = event.Str("hint", "use --url or set "+envURL)
		}
		event.Msg("invalid option")
	}
}

func sendOnce(ctx context.Context, client *agent.Client, device, note string, logger zerolog.Logger) error {
	if err := client.Send(ctx, device, note); err != nil {
		logger.Error().Err(err).Msg("ping failed")
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}
