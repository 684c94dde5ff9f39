package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"
)

// DefaultConfigFile is the project configuration file name
const DefaultConfigFile = "deploy.toml"

// DeployFile represents the raw deploy.toml structure
type DeployFile struct {
	DefaultNetwork string                  `toml:"defaultNetwork" json:"defaultNetwork" yaml:"defaultNetwork"`
	Networks       map[string]NetworkEntry `toml:"networks" json:"networks" yaml:"networks"`
	Etherscan      EtherscanEntry          `toml:"etherscan" json:"etherscan" yaml:"etherscan"`
	Solidity       SolidityEntry           `toml:"solidity" json:"solidity" yaml:"solidity"`
	Paths          map[string]string       `toml:"paths" json:"paths" yaml:"paths"`
	Mocha          MochaEntry              `toml:"mocha" json:"mocha" yaml:"mocha"`
}

// NetworkEntry is a [networks.<name>] table
type NetworkEntry struct {
	URL      string   `toml:"url,omitempty" json:"url,omitempty" yaml:"url,omitempty"`
	ChainID  uint64   `toml:"chainId,omitempty" json:"chainId,omitempty" yaml:"chainId,omitempty"`
	GasPrice uint64   `toml:"gasPrice,omitempty" json:"gasPrice,omitempty" yaml:"gasPrice,omitempty"`
	Accounts []string `toml:"accounts,omitempty" json:"accounts,omitempty" yaml:"accounts,omitempty"`
}

type EtherscanEntry struct {
	APIKey string `toml:"apiKey,omitempty" json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	APIURL string `toml:"apiUrl,omitempty" json:"apiUrl,omitempty" yaml:"apiUrl,omitempty"`
}

type SolidityEntry struct {
	Version  string           `toml:"version" json:"version" yaml:"version"`
	Settings SoliditySettings `toml:"settings" json:"settings" yaml:"settings"`
}

type SoliditySettings struct {
	Optimizer OptimizerEntry `toml:"optimizer" json:"optimizer" yaml:"optimizer"`
}

type OptimizerEntry struct {
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`
	Runs    int  `toml:"runs,omitempty" json:"runs,omitempty" yaml:"runs,omitempty"`
}

// MochaEntry holds the test timeout in milliseconds
type MochaEntry struct {
	Timeout int64 `toml:"timeout,omitempty" json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// DefaultDeployFile returns the stock configuration of the project.
// Credentials are referenced from the secrets file, never inlined.
func DefaultDeployFile() *DeployFile {
	return &DeployFile{
		DefaultNetwork: "mainnet",
		Networks: map[string]NetworkEntry{
			"localhost": {URL: "http://127.0.0.1:8545"},
			"hardhat":   {},
			"testnet": {
				URL:      "https://data-seed-prebsc-1-s1.binance.org:8545",
				ChainID:  97,
				GasPrice: 20_000_000_000,
				Accounts: []string{"${key}"},
			},
			"mainnet": {
				URL:      "https://bsc-dataseed.binance.org/",
				ChainID:  56,
				GasPrice: 20_000_000_000,
				Accounts: []string{"${key}"},
			},
		},
		Etherscan: EtherscanEntry{APIKey: "${explorerApiKey}"},
		Solidity: SolidityEntry{
			Version:  "0.8.2",
			Settings: SoliditySettings{Optimizer: OptimizerEntry{Enabled: true, Runs: 200}},
		},
		Paths: map[string]string{
			"sources":   "./contracts",
			"tests":     "./test",
			"cache":     "./cache",
			"artifacts": "./artifacts",
		},
		Mocha: MochaEntry{Timeout: 20000},
	}
}

// loadEnvFiles loads .env files from the project root so that ${VAR}
// references in deploy.toml can be expanded
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// readDeployFile decodes deploy.toml. A missing file is only an error when
// the path was given explicitly; otherwise the defaults apply.
func readDeployFile(path string, explicit bool) (*DeployFile, bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return nil, false, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return DefaultDeployFile(), false, nil
	}

	var raw DeployFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &raw, true, nil
}

// LoadDeployConfig reads, expands and validates the project configuration.
// It returns the resolved config and whether a file was read.
func LoadDeployConfig(projectRoot, path string, explicit bool, secrets *config.Secrets) (*config.DeployConfig, bool, error) {
	loadEnvFiles(projectRoot)

	raw, fromFile, err := readDeployFile(path, explicit)
	if err != nil {
		return nil, false, err
	}

	cfg, err := resolveDeployFile(raw, NewExpander(secrets))
	if err != nil {
		return nil, false, err
	}
	return cfg, fromFile, nil
}

// resolveDeployFile converts the raw file into a validated DeployConfig
func resolveDeployFile(raw *DeployFile, expand func(string) string) (*config.DeployConfig, error) {
	defaults := DefaultDeployFile()

	cfg := &config.DeployConfig{
		DefaultNetwork: expand(raw.DefaultNetwork),
		Networks:       make(map[string]*config.NetworkProfile),
		Etherscan: config.EtherscanConfig{
			APIKey: expand(raw.Etherscan.APIKey),
			APIURL: expand(raw.Etherscan.APIURL),
		},
		Solidity: config.CompilerProfile{
			Version:          raw.Solidity.Version,
			OptimizerEnabled: raw.Solidity.Settings.Optimizer.Enabled,
			OptimizerRuns:    raw.Solidity.Settings.Optimizer.Runs,
		},
		Paths: config.PathsConfig{
			Sources:   pathOr(raw.Paths, "sources", defaults.Paths),
			Tests:     pathOr(raw.Paths, "tests", defaults.Paths),
			Cache:     pathOr(raw.Paths, "cache", defaults.Paths),
			Artifacts: pathOr(raw.Paths, "artifacts", defaults.Paths),
		},
		Mocha: config.MochaConfig{
			Timeout: time.Duration(raw.Mocha.Timeout) * time.Millisecond,
		},
	}

	if cfg.Solidity.Version == "" {
		cfg.Solidity.Version = defaults.Solidity.Version
	}
	if cfg.Solidity.OptimizerEnabled && cfg.Solidity.OptimizerRuns == 0 {
		cfg.Solidity.OptimizerRuns = defaults.Solidity.Settings.Optimizer.Runs
	}
	if cfg.Mocha.Timeout == 0 {
		cfg.Mocha.Timeout = time.Duration(defaults.Mocha.Timeout) * time.Millisecond
	}

	for name, entry := range raw.Networks {
		profile := &config.NetworkProfile{
			Name:     name,
			URL:      expand(entry.URL),
			ChainID:  entry.ChainID,
			GasPrice: entry.GasPrice,
		}
		for _, account := range entry.Accounts {
			profile.Accounts = append(profile.Accounts, expand(account))
		}
		cfg.Networks[name] = profile
	}

	if err := ValidateDeployConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateDeployConfig checks every network profile. Public networks
// must carry a usable signing key.
func ValidateDeployConfig(cfg *config.DeployConfig) error {
	if len(cfg.Networks) == 0 {
		return fmt.Errorf("no networks configured")
	}

	names := NetworkNames(cfg)
	for _, name := range names {
		profile := cfg.Networks[name]
		if profile.URL == "" && !profile.IsInProcess() {
			return fmt.Errorf("network %s: url is required", name)
		}
		if !profile.IsLocal() && !profile.HasSigningKey() {
			return fmt.Errorf("network %s: %w: accounts must list at least one private key", name, domain.ErrMissingSigningKey)
		}
		for i, account := range profile.Accounts {
			if account == "" {
				if profile.IsLocal() {
					continue
				}
				return fmt.Errorf("network %s: account #%d: %w", name, i, domain.ErrMissingSigningKey)
			}
			if _, err := ParsePrivateKey(account); err != nil {
				return fmt.Errorf("network %s: account #%d: %w", name, i, err)
			}
		}
	}

	if cfg.DefaultNetwork != "" {
		if _, ok := cfg.Networks[cfg.DefaultNetwork]; !ok {
			return domain.UnknownNetworkErr{Name: cfg.DefaultNetwork, Suggestions: SuggestNames(cfg.DefaultNetwork, names)}
		}
	}

	return nil
}

// ParsePrivateKey parses a hex private key with or without 0x prefix
func ParsePrivateKey(hexKey string) (*PrivateKey, error) {
	trimmed := hexKey
	if len(trimmed) >= 2 && (trimmed[:2] == "0x" || trimmed[:2] == "0X") {
		trimmed = trimmed[2:]
	}
	key, err := crypto.HexToECDSA(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSigningKey, err)
	}
	return &PrivateKey{Key: key, Address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// RedactedValue replaces credentials in printed configuration
const RedactedValue = "***"

// ToDeployFile converts a resolved configuration back to its file form.
// With redact set, signing keys and the explorer API key are masked.
func ToDeployFile(cfg *config.DeployConfig, redact bool) *DeployFile {
	mask := func(value string) string {
		if redact && value != "" {
			return RedactedValue
		}
		return value
	}

	file := &DeployFile{
		DefaultNetwork: cfg.DefaultNetwork,
		Networks:       make(map[string]NetworkEntry, len(cfg.Networks)),
		Etherscan: EtherscanEntry{
			APIKey: mask(cfg.Etherscan.APIKey),
			APIURL: cfg.Etherscan.APIURL,
		},
		Solidity: SolidityEntry{
			Version: cfg.Solidity.Version,
			Settings: SoliditySettings{Optimizer: OptimizerEntry{
				Enabled: cfg.Solidity.OptimizerEnabled,
				Runs:    cfg.Solidity.OptimizerRuns,
			}},
		},
		Paths: map[string]string{
			"sources":   cfg.Paths.Sources,
			"tests":     cfg.Paths.Tests,
			"cache":     cfg.Paths.Cache,
			"artifacts": cfg.Paths.Artifacts,
		},
		Mocha: MochaEntry{Timeout: cfg.Mocha.Timeout.Milliseconds()},
	}

	for name, profile := range cfg.Networks {
		entry := NetworkEntry{
			URL:      profile.URL,
			ChainID:  profile.ChainID,
			GasPrice: profile.GasPrice,
		}
		for _, account := range profile.Accounts {
			entry.Accounts = append(entry.Accounts, mask(account))
		}
		file.Networks[name] = entry
	}
	return file
}

func pathOr(paths map[string]string, role string, defaults map[string]string) string {
	if p, ok := paths[role]; ok && p != "" {
		return p
	}
	return defaults[role]
}
