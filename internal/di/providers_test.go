package di

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"Wallboard/internal/repository"
	"Wallboard/pkg/config"
	applogger "Wallboard/pkg/logger"
)

func TestResolveDisplayMode(t *testing.T) {
	tests := []struct {
		mode  string
		isTTY bool
		want  string
	}{
		{DisplayAuto, true, DisplayTerminal},
		{DisplayAuto, false, DisplayLog},
		{DisplayLog, true, DisplayLog},
		{DisplayTerminal, false, DisplayTerminal},
		{DisplayNone, true, DisplayNone},
	}
	for _, tt := range tests {
		if got := ResolveDisplayMode(tt.mode, tt.isTTY); got != tt.want {
			t.Errorf("ResolveDisplayMode(%q, %v) = %q, want %q", tt.mode, tt.isTTY, got, tt.want)
		}
	}
}

func TestProvideDisplay_NoneKeepsOnlyWebsocket(t *testing.T) {
	cfg := config.Default()
	cfg.Display.Mode = DisplayNone

	ws := ProvideWSDisplay(cfg, applogger.Nop())
	if ws == nil {
		t.Fatal("websocket display enabled by default")
	}
	defer ws.Close()

	d := ProvideDisplay(cfg, applogger.Nop(), ws, nil)
	multi, ok := d.(repository.MultiDisplay)
	if !ok || len(multi) != 1 {
		t.Fatalf("display = %#v", d)
	}
}

func TestProvideWSDisplay_DisabledWithoutServer(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Enabled = false
	if ProvideWSDisplay(cfg, applogger.Nop()) != nil {
		t.Fatal("websocket display needs the HTTP server")
	}
	if ProvideHTTPServer(cfg, applogger.Nop(), nil, nil, nil, nil) != nil {
		t.Fatal("server disabled")
	}
}

func TestProvideHTTPServer_Routes(t *testing.T) {
	cfg := config.Default()
	cfg.Display.Mode = DisplayNone
	cfg.Metrics.Enabled = false
	log := applogger.Nop()

	ws := ProvideWSDisplay(cfg, log)
	defer ws.Close()
	loop := ProvideScheduler()
	display := ProvideDisplay(cfg, log, ws, nil)
	source := ProvideSnapshotSource(ProvideHTTPClient(cfg), cfg)
	refresh := ProvideRefreshOrchestrator(cfg, source, loop, display, nil, ProvideFreshnessTracker(cfg), log)
	rotator := ProvideSceneRotator(cfg, loop, display, nil, log, nil)

	srv := ProvideHTTPServer(cfg, log, refresh, rotator, ws, ProvideRateLimiter())
	if srv == nil {
		t.Fatal("server enabled by default")
	}

	tests := []struct {
		path string
		want int
	}{
		{"/health/live", http.StatusOK},
		{"/health/ready", http.StatusServiceUnavailable},
		{"/status", http.StatusOK},
		{"/metrics", http.StatusNotFound},
		// plain GET without upgrade headers
		{"/ws", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}
