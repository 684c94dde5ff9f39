package app

import (
	"log/slog"

	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/defihorse/horse-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployContract *usecase.DeployContract
	ListContracts  *usecase.ListContracts
	ListAccounts   *usecase.ListAccounts
	ListNetworks   *usecase.ListNetworks
	ShowConfig     *usecase.ShowConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployContract *usecase.DeployContract,
	listContracts *usecase.ListContracts,
	listAccounts *usecase.ListAccounts,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
) (*App, error) {
	return &App{
		Config:         cfg,
		Log:            log,
		DeployContract: deployContract,
		ListContracts:  listContracts,
		ListAccounts:   listAccounts,
		ListNetworks:   listNetworks,
		ShowConfig:     showConfig,
	}, nil
}
