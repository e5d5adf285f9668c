package di

import (
	"fmt"
	"net/http"
	"os"

	"golang.org/x/term"

	drepo "Wallboard/internal/domain/repository"
	"Wallboard/internal/handler/api"
	"Wallboard/internal/repository"
	"Wallboard/internal/service/configclient"
	"Wallboard/internal/service/ratelimit"
	"Wallboard/internal/service/snapshot"
	"Wallboard/internal/usecase"
	"Wallboard/pkg/config"
	xhttp "Wallboard/pkg/http"
	applogger "Wallboard/pkg/logger"
	"Wallboard/pkg/metrics"
	"Wallboard/pkg/scheduler"
	"Wallboard/pkg/server"
)

const (
	DisplayAuto     = "auto"
	DisplayTerminal = "terminal"
	DisplayLog      = "log"
	DisplayNone     = "none"

	loopQueueSize = 64

	// scene selection: bursts of 5, one per second sustained, per client IP
	selectBurst = 5
	selectRate  = 1
)

// ResolveDisplayMode turns "auto" into terminal or log depending on whether
// stdout is a TTY.
func ResolveDisplayMode(mode string, isTTY bool) string {
	if mode != DisplayAuto {
		return mode
	}
	if isTTY {
		return DisplayTerminal
	}
	return DisplayLog
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder, or nil when metrics
// are disabled.
func ProvideMetrics(cfg *config.Config) drepo.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New()
}

// ProvideScheduler creates the loop every controller callback runs on.
func ProvideScheduler() *scheduler.Loop {
	return scheduler.NewLoop(loopQueueSize)
}

// ProvideHTTPClient creates the outbound client shared by the fetcher and
// the admin client.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(cfg.API.Timeout))
}

// ProvideSnapshotSource creates the snapshot fetcher.
func ProvideSnapshotSource(client *xhttp.Client, cfg *config.Config) drepo.SnapshotSource {
	return snapshot.New(client, cfg.API.BaseURL, cfg.API.SnapshotPath)
}

// ProvideConfigClient creates the admin configuration client.
func ProvideConfigClient(client *xhttp.Client, cfg *config.Config) *configclient.Client {
	return configclient.New(client, cfg.API.BaseURL, cfg.API.ConfigPath)
}

// ProvideWSDisplay creates the websocket display, or nil when disabled or
// when there is no HTTP server to serve it.
func ProvideWSDisplay(cfg *config.Config, log *applogger.Logger) *repository.WSDisplay {
	if !cfg.Display.WebSocket || !cfg.Server.Enabled {
		return nil
	}
	return repository.NewWSDisplay(log)
}

// ProvideTerminalDisplay creates the terminal display when the resolved
// display mode is terminal.
func ProvideTerminalDisplay(cfg *config.Config, log *applogger.Logger) *repository.TerminalDisplay {
	if ResolveDisplayMode(cfg.Display.Mode, stdoutIsTerminal()) != DisplayTerminal {
		return nil
	}
	return repository.NewTerminalDisplay(log, nil, nil)
}

// ProvideDisplay fans out to every enabled display.
func ProvideDisplay(cfg *config.Config, log *applogger.Logger, ws *repository.WSDisplay, terminal *repository.TerminalDisplay) drepo.Display {
	var displays []drepo.Display
	if terminal != nil {
		displays = append(displays, terminal)
	}
	if ResolveDisplayMode(cfg.Display.Mode, stdoutIsTerminal()) == DisplayLog {
		displays = append(displays, repository.NewLogDisplay(log))
	}
	if ws != nil {
		displays = append(displays, ws)
	}
	return repository.NewMultiDisplay(displays...)
}

// ProvideFreshnessTracker creates the freshness tracker.
func ProvideFreshnessTracker(cfg *config.Config) *usecase.FreshnessTracker {
	return usecase.NewFreshnessTracker(cfg.Refresh.FreshFor, cfg.Refresh.StaleAfter)
}

// ProvideRefreshOrchestrator creates the refresh controller.
func ProvideRefreshOrchestrator(
	cfg *config.Config,
	source drepo.SnapshotSource,
	loop *scheduler.Loop,
	display drepo.Display,
	m drepo.Metrics,
	fresh *usecase.FreshnessTracker,
	log *applogger.Logger,
) *usecase.RefreshOrchestrator {
	return usecase.NewRefreshOrchestrator(source, loop, display, m, fresh, log, usecase.OrchestratorConfig{
		Interval:      cfg.Refresh.Interval,
		ClockInterval: cfg.Clock.Interval,
		Location:      cfg.TimeLocation(),
	})
}

// ProvideSceneRotator creates the carousel and binds the terminal scene keys
// to it.
func ProvideSceneRotator(
	cfg *config.Config,
	loop *scheduler.Loop,
	display drepo.Display,
	m drepo.Metrics,
	log *applogger.Logger,
	terminal *repository.TerminalDisplay,
) *usecase.SceneRotator {
	r := usecase.NewSceneRotator(loop, display, m, log, cfg.Carousel.Interval)
	if terminal != nil {
		terminal.OnSelect(func(i int) { r.RequestSelect(i) })
	}
	return r
}

// ProvideRateLimiter limits explicit scene selection per client.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New(selectBurst, selectRate)
}

// ProvideHTTPServer creates the local HTTP surface, or nil when disabled.
func ProvideHTTPServer(
	cfg *config.Config,
	log *applogger.Logger,
	refresh *usecase.RefreshOrchestrator,
	rotator *usecase.SceneRotator,
	ws *repository.WSDisplay,
	limiter *ratelimit.Limiter,
) *xhttp.Server {
	if !cfg.Server.Enabled {
		return nil
	}

	var wsHandler http.Handler
	if ws != nil {
		wsHandler = ws
	}
	h := api.NewWallboardEchoHandler(log, refresh, rotator, wsHandler, limiter)

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(h, log,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(metricsPath),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	loop *scheduler.Loop,
	refresh *usecase.RefreshOrchestrator,
	rotator *usecase.SceneRotator,
	ws *repository.WSDisplay,
	terminal *repository.TerminalDisplay,
	httpServer *xhttp.Server,
) *server.App {
	return server.New(cfg, log, loop, refresh, rotator, ws, terminal, httpServer)
}
