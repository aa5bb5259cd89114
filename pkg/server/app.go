package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"SignalPulse/internal/domain/repository"
	"SignalPulse/pkg/config"
	xhttp "SignalPulse/pkg/http"
	applogger "SignalPulse/pkg/logger"
)

// CycleRunner is the scheduling loop the app owns.
type CycleRunner interface {
	Start(ctx context.Context)
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	scheduler  CycleRunner
	handler    xhttp.Handler
	publisher  repository.SignalPublisher
	log        *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	scheduler CycleRunner,
	handler xhttp.Handler,
	publisher repository.SignalPublisher,
	log *applogger.Logger,
) *App {
	return &App{
		cfg:       cfg,
		scheduler: scheduler,
		handler:   handler,
		publisher: publisher,
		log:       log,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler, a.log,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(a.cfg.Metrics.Path),
	)

	// Start the cycle scheduler
	go a.scheduler.Start(ctx)
	a.log.Info("scheduler started",
		applogger.Strings("symbols", a.cfg.Engine.Symbols),
		applogger.Duration("poll_interval_ms", a.cfg.Engine.PollInterval))

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx, cancel)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context, cancel context.CancelFunc) error {
	// Stop scheduler and delivery pipeline
	cancel()

	// Shutdown HTTP server
	shutdownCtx, done := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer done()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	// Close the firehose
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("firehose close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
