//go:build wireinject
// +build wireinject

package di

import (
	"FXBrief/pkg/config"
	"FXBrief/pkg/server"

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
		ProvideClickHouseClient,
		ProvideCache,
		ProvideBarSource,

		// Domain
		ProvideUniverse,
		ProvideTechnicalEngine,
		ProvideEventEngine,
		ProvideCARSEngine,
		ProvideSessionEngine,
		ProvideFXFactorEngine,
		ProvideETFFactorEngine,

		// Use cases
		ProvideReportUseCase,
		ProvideBarsUseCase,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
