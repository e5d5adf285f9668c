//go:build wireinject
// +build wireinject

package di

import (
	"Wallboard/internal/service/configclient"
	"Wallboard/pkg/config"
	"Wallboard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideScheduler,

		// Outbound
		ProvideHTTPClient,
		ProvideSnapshotSource,

		// Displays
		ProvideWSDisplay,
		ProvideTerminalDisplay,
		ProvideDisplay,

		// Use cases
		ProvideFreshnessTracker,
		ProvideRefreshOrchestrator,
		ProvideSceneRotator,

		// Local HTTP surface
		ProvideRateLimiter,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

// InitializeConfigClient wires the admin configuration client.
func InitializeConfigClient(cfg *config.Config) *configclient.Client {
	wire.Build(ProvideHTTPClient, ProvideConfigClient)
	return nil
}
