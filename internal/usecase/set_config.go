package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/defihorse/horse-deploy/internal/domain"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *domain.LocalConfig
	ConfigPath    string
	Key           domain.ConfigKey
	Value         string
}

// SetConfig is a use case for setting local defaults
type SetConfig struct {
	store LocalConfigStore
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigStore) *SetConfig {
	return &SetConfig{
		store: store,
	}
}

// Run executes the set config use case
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := parseConfigKey(params.Key)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Value) == "" {
		return nil, fmt.Errorf("value for %s must not be empty", key)
	}

	config, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	config.Set(key, params.Value)

	if err := uc.store.Save(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: config,
		ConfigPath:    uc.store.GetPath(),
		Key:           key,
		Value:         params.Value,
	}, nil
}

func parseConfigKey(raw string) (domain.ConfigKey, error) {
	key := strings.ToLower(raw)
	if !domain.IsValidConfigKey(key) {
		validKeys := make([]string, 0, len(domain.ValidConfigKeys()))
		for _, k := range domain.ValidConfigKeys() {
			validKeys = append(validKeys, string(k))
		}
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", raw, strings.Join(validKeys, ", "))
	}
	return domain.ConfigKey(key), nil
}
