package config

import (
	"net"
	"net/url"
	"path/filepath"
	"time"
)

// InProcessNetwork is the name of the ephemeral chain that lives inside the process
const InProcessNetwork = "hardhat"

// DeployConfig represents the resolved deploy.toml configuration
type DeployConfig struct {
	DefaultNetwork string
	Networks       map[string]*NetworkProfile
	Etherscan      EtherscanConfig
	Solidity       CompilerProfile
	Paths          PathsConfig
	Mocha          MochaConfig
}

// NetworkProfile holds the connection parameters of a single network.
// Profiles are immutable once loaded.
type NetworkProfile struct {
	Name     string   `json:"name" yaml:"name" toml:"-"`
	URL      string   `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty"`
	ChainID  uint64   `json:"chainId,omitempty" yaml:"chainId,omitempty" toml:"chainId,omitempty"`
	GasPrice uint64   `json:"gasPrice,omitempty" yaml:"gasPrice,omitempty" toml:"gasPrice,omitempty"`
	Accounts []string `json:"accounts,omitempty" yaml:"accounts,omitempty" toml:"accounts,omitempty"`
}

// IsInProcess reports whether the profile targets the in-process chain
func (n *NetworkProfile) IsInProcess() bool {
	return n.Name == InProcessNetwork && n.URL == ""
}

// IsLocal reports whether the profile targets a development chain.
// Local profiles may run without persistent signing keys.
func (n *NetworkProfile) IsLocal() bool {
	if n.IsInProcess() {
		return true
	}
	u, err := url.Parse(n.URL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// HasSigningKey reports whether at least one non-empty account is configured
func (n *NetworkProfile) HasSigningKey() bool {
	for _, account := range n.Accounts {
		if account != "" {
			return true
		}
	}
	return false
}

// CompilerProfile describes how the artifacts were compiled
type CompilerProfile struct {
	Version          string `json:"version" yaml:"version"`
	OptimizerEnabled bool   `json:"optimizerEnabled" yaml:"optimizerEnabled"`
	OptimizerRuns    int    `json:"optimizerRuns" yaml:"optimizerRuns"`
}

// EtherscanConfig represents block explorer verification settings
type EtherscanConfig struct {
	APIKey string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	APIURL string `json:"apiUrl,omitempty" yaml:"apiUrl,omitempty"` // overrides the per-chain default
}

// PathsConfig maps project roles to directories
type PathsConfig struct {
	Sources   string `json:"sources" yaml:"sources"`
	Tests     string `json:"tests" yaml:"tests"`
	Cache     string `json:"cache" yaml:"cache"`
	Artifacts string `json:"artifacts" yaml:"artifacts"`
}

// Resolve makes a configured path absolute relative to the project root
func (p PathsConfig) Resolve(projectRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectRoot, path)
}

// MochaConfig holds the test runner settings of the project
type MochaConfig struct {
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Secrets holds credentials read from the secrets file
type Secrets struct {
	Key            string `json:"key"`
	ExplorerAPIKey string `json:"explorerApiKey"`
}
