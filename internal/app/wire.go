//go:build wireinject
// +build wireinject

package app

import (
	"github.com/defihorse/horse-deploy/internal/adapters"
	"github.com/defihorse/horse-deploy/internal/config"
	"github.com/defihorse/horse-deploy/internal/logging"
	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewListContracts,
		usecase.NewListAccounts,
		usecase.NewListNetworks,
		usecase.NewShowConfig,

		// App
		NewApp,
	)
	return nil, nil
}
