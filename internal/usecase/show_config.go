package usecase

import (
	"context"
	"fmt"

	internalconfig "github.com/defihorse/horse-deploy/internal/config"
	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
)

// ShowConfigResult contains the resolved configuration with credentials masked
type ShowConfigResult struct {
	ProjectRoot   string
	ConfigPath    string // empty when the built-in defaults are in use
	SecretsPath   string
	ActiveNetwork string
	Deploy        *internalconfig.DeployFile
	Local         *domain.LocalConfig
	LocalPath     string
	LocalExists   bool
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	config *config.RuntimeConfig
	store  LocalConfigStore
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, store LocalConfigStore) *ShowConfig {
	return &ShowConfig{
		config: cfg,
		store:  store,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	if uc.config.Deploy == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ShowConfigResult{
		ProjectRoot: uc.config.ProjectRoot,
		ConfigPath:  uc.config.ConfigPath,
		SecretsPath: uc.config.SecretsPath,
		Deploy:      internalconfig.ToDeployFile(uc.config.Deploy, true),
		Local:       local,
		LocalPath:   uc.store.GetPath(),
		LocalExists: uc.store.Exists(),
	}
	if uc.config.Network != nil {
		result.ActiveNetwork = uc.config.Network.Name
	}
	return result, nil
}
