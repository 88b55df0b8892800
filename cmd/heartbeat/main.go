package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/heartbeat/internal/config"
	"github.com/deppfellow/heartbeat/internal/handler"
	"github.com/deppfellow/heartbeat/internal/logger"
	"github.com/deppfellow/heartbeat/internal/router"
	"github.com/deppfellow/heartbeat/internal/server"
	"github.com/deppfellow/heartbeat/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// The logger is built from config, so there is nothing better to log with yet.
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)

	log := logger.NewLogger(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	services, err := service.NewService(srv)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
