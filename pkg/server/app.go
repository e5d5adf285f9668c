package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"Wallboard/internal/repository"
	"Wallboard/internal/usecase"
	"Wallboard/pkg/config"
	xhttp "Wallboard/pkg/http"
	applogger "Wallboard/pkg/logger"
	"Wallboard/pkg/scheduler"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	loop       *scheduler.Loop
	refresh    *usecase.RefreshOrchestrator
	rotator    *usecase.SceneRotator
	ws         *repository.WSDisplay
	terminal   *repository.TerminalDisplay
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. ws, terminal and
// httpServer are optional.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	loop *scheduler.Loop,
	refresh *usecase.RefreshOrchestrator,
	rotator *usecase.SceneRotator,
	ws *repository.WSDisplay,
	terminal *repository.TerminalDisplay,
	httpServer *xhttp.Server,
) *App {
	if log == nil {
		log = applogger.Nop()
	}
	return &App{
		cfg:        cfg,
		log:        log,
		loop:       loop,
		refresh:    refresh,
		rotator:    rotator,
		ws:         ws,
		terminal:   terminal,
		httpServer: httpServer,
	}
}

// Run starts the controllers and blocks until interrupted, ctx is cancelled
// or the terminal display quits.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// fetches outlive the signal so teardown never interrupts one mid-flight
	fetchCtx, cancelFetches := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelFetches()

	go a.loop.Run(context.Background())
	a.loop.Post(func() {
		a.refresh.Start(fetchCtx)
		a.rotator.Start()
	})
	a.log.Info("wallboard started",
		applogger.String("instance", a.refresh.ID()),
		applogger.String("snapshot_url", a.cfg.SnapshotURL()),
		applogger.String("display", a.cfg.Display.Mode),
		applogger.Bool("websocket", a.ws != nil),
	)

	if a.httpServer != nil {
		if err := a.httpServer.Start(); err != nil {
			a.log.Error("http server start error", applogger.Error(err))
			return err
		}
	}

	if a.terminal != nil {
		a.terminal.OnQuit(cancel)
		go func() {
			if err := a.terminal.Run(ctx); err != nil {
				a.log.Error("terminal display error", applogger.Error(err))
			}
			cancel()
		}()
	}

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown stops timers on the loop thread, then drains the loop and the
// HTTP server within the configured shutdown timeout.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	a.loop.Post(func() {
		a.refresh.Stop()
		a.rotator.Stop()
		close(stopped)
	})
	select {
	case <-stopped:
	case <-ctx.Done():
		a.log.Warn("controllers did not stop in time")
	}
	a.loop.Close()

	var errs []error
	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			a.log.Error("http shutdown error", applogger.Error(err))
			errs = append(errs, err)
		}
	}
	if a.ws != nil {
		a.ws.Close()
	}
	if err := a.loop.Wait(ctx); err != nil {
		a.log.Warn("scheduler drain timed out", applogger.Error(err))
	}

	a.log.Info("shutdown complete")
	return errors.Join(errs...)
}
