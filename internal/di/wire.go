//go:build wireinject
// +build wireinject

package di

import (
	"SignalPulse/pkg/config"
	"SignalPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCache,
		ProvidePriceProvider,
		ProvideBroadcaster,
		ProvideOrderSink,
		ProvideSubscriptionStore,
		ProvideVAPIDKeys,
		ProvidePushSink,
		ProvideSignalPublisher,

		// Use cases
		ProvideAnalyzer,
		ProvideDispatcher,
		ProvideNotifyPipeline,
		ProvideScheduler,

		// HTTP surface
		ProvideRateLimiter,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
