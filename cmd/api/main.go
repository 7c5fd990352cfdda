package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Notifuse/newsletter/config"
	"github.com/Notifuse/newsletter/internal/app"
	"github.com/Notifuse/newsletter/pkg/logger"
)

const (
	// a bulk send keeps its request open until every email is handed to
	// the provider
	drainTimeout    = 45 * time.Second
	shutdownTimeout = 50 * time.Second
	forceGrace      = 2 * time.Second
)

var errForcedShutdown = errors.New("forced shutdown")

// osExit is a variable to allow mocking os.Exit in tests
var osExit = os.Exit

// signalNotify is replaced in tests to deliver signals directly
var signalNotify = signal.Notify

// NewAppFunc builds the application; tests pass a fake
type NewAppFunc func(cfg *config.Config, opts ...app.AppOption) app.AppInterface

// runServer initializes the app and serves until the server fails or a
// termination signal arrives
func runServer(cfg *config.Config, appLogger logger.Logger, newApp NewAppFunc) error {
	instance := newApp(cfg, app.WithLogger(appLogger))

	if err := instance.Initialize(); err != nil {
		appLogger.WithField("error", err.Error()).Error("Failed to initialize application")
		return err
	}

	signals := make(chan os.Signal, 2)
	signalNotify(signals, os.Interrupt, syscall.SIGTERM)

	served := make(chan error, 1)
	go func() {
		served <- instance.Start()
	}()

	select {
	case err := <-served:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithField("error", err.Error()).Error("Server error")
			return err
		}
		return nil
	case sig := <-signals:
		appLogger.WithField("signal", sig.String()).
			WithField("active_requests", instance.GetActiveRequestCount()).
			Info("Shutdown signal received, draining requests")
		return shutdownApp(instance, appLogger, signals)
	}
}

// shutdownApp runs the graceful shutdown. Another signal on signals
// cancels it.
func shutdownApp(instance app.AppInterface, appLogger logger.Logger, signals <-chan os.Signal) error {
	instance.SetShutdownTimeout(drainTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- instance.Shutdown(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Shutdown finished with errors")
			return err
		}
		appLogger.Info("Server stopped")
		return nil
	case sig := <-signals:
		appLogger.WithField("signal", sig.String()).Warn("Second signal received, aborting graceful shutdown")
		cancel()

		select {
		case <-done:
		case <-time.After(forceGrace):
		}
		return errForcedShutdown
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	appLogger.Info(fmt.Sprintf("Starting newsletter API %s on %s:%d", cfg.Version, cfg.Server.Host, cfg.Server.Port))

	if err := runServer(cfg, appLogger, app.NewApp); err != nil {
		osExit(1)
	}
}
