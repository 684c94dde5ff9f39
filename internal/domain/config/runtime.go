package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	ConfigPath  string // empty when built-in defaults are in use
	SecretsPath string

	// Active network, exactly one per process
	Network *NetworkProfile

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Resolved configurations
	Deploy  *DeployConfig
	Secrets *Secrets
}

// ArtifactsDir returns the absolute artifacts directory
func (c *RuntimeConfig) ArtifactsDir() string {
	return c.Deploy.Paths.Resolve(c.ProjectRoot, c.Deploy.Paths.Artifacts)
}

// CacheDir returns the absolute cache directory
func (c *RuntimeConfig) CacheDir() string {
	return c.Deploy.Paths.Resolve(c.ProjectRoot, c.Deploy.Paths.Cache)
}
