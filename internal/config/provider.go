package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		SecretsPath:    resolvePath(projectRoot, v.GetString("secrets"), DefaultSecretsFile),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
	}

	// Secrets come first: a broken secrets file aborts before anything else
	secrets, err := LoadSecrets(cfg.SecretsPath)
	if err != nil {
		return nil, err
	}
	cfg.Secrets = secrets

	configFlag := v.GetString("config")
	configPath := resolvePath(projectRoot, configFlag, DefaultConfigFile)
	deployConfig, fromFile, err := LoadDeployConfig(projectRoot, configPath, configFlag != "", secrets)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Deploy = deployConfig
	if fromFile {
		cfg.ConfigPath = configPath
	}

	networkName := v.GetString("network")
	if networkName == "" {
		networkName = deployConfig.DefaultNetwork
	}
	network, err := ResolveNetwork(deployConfig, networkName)
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	return cfg, nil
}

// ResolveNetwork selects the active profile by name
func ResolveNetwork(cfg *config.DeployConfig, name string) (*config.NetworkProfile, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: no network selected and no defaultNetwork configured", domain.ErrUnknownNetwork)
	}
	profile, ok := cfg.Networks[name]
	if !ok {
		return nil, domain.UnknownNetworkErr{Name: name, Suggestions: SuggestNames(name, NetworkNames(cfg))}
	}
	return profile, nil
}

// NetworkNames returns the configured network names in sorted order
func NetworkNames(cfg *config.DeployConfig) []string {
	names := lo.Keys(cfg.Networks)
	sort.Strings(names)
	return names
}

// FindProjectRoot walks up from the current directory to find deploy.toml.
// Without one, the current directory is the project root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, DefaultConfigFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Persisted local defaults (e.g. a preferred network)
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".horse"))

	v.SetEnvPrefix("HORSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}

func resolvePath(projectRoot, path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectRoot, path)
}
