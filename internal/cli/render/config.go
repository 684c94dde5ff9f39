package render

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	internalconfig "github.com/defihorse/horse-deploy/internal/config"
	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Output formats of the config command
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

type configView struct {
	ProjectRoot   string                     `json:"projectRoot" yaml:"projectRoot"`
	ConfigFile    string                     `json:"configFile,omitempty" yaml:"configFile,omitempty"`
	SecretsFile   string                     `json:"secretsFile" yaml:"secretsFile"`
	ActiveNetwork string                     `json:"activeNetwork" yaml:"activeNetwork"`
	Local         *domain.LocalConfig        `json:"local,omitempty" yaml:"local,omitempty"`
	Settings      *internalconfig.DeployFile `json:"settings" yaml:"settings"`
}

// RenderConfig renders the resolved configuration in the given format
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult, format string) error {
	view := configView{
		ProjectRoot:   result.ProjectRoot,
		ConfigFile:    result.ConfigPath,
		SecretsFile:   result.SecretsPath,
		ActiveNetwork: result.ActiveNetwork,
		Settings:      result.Deploy,
	}
	if result.LocalExists {
		view.Local = result.Local
	}

	switch format {
	case FormatJSON:
		return writeJSON(r.out, view)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML, "":
		r.printHeader(result)
		return toml.NewEncoder(r.out).Encode(result.Deploy)
	default:
		return fmt.Errorf("unsupported format %q (use %s, %s or %s)", format, FormatTOML, FormatYAML, FormatJSON)
	}
}

// printHeader writes where the settings come from as TOML comments
func (r *ConfigRenderer) printHeader(result *usecase.ShowConfigResult) {
	source := relativePath(result.ConfigPath)
	if result.ConfigPath == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(r.out, "# project:  %s\n", result.ProjectRoot)
	fmt.Fprintf(r.out, "# config:   %s\n", source)
	fmt.Fprintf(r.out, "# secrets:  %s\n", relativePath(result.SecretsPath))
	fmt.Fprintf(r.out, "# network:  %s\n", result.ActiveNetwork)
	if result.LocalExists {
		for _, key := range domain.ValidConfigKeys() {
			if value := result.Local.Get(key); value != "" {
				fmt.Fprintf(r.out, "# local %s: %s (%s)\n", key, value, relativePath(result.LocalPath))
			}
		}
	}
	fmt.Fprintln(r.out)
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintln(r.out, successStyle.Sprintf("✅ Set %s to: %s", result.Key, result.Value))
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", relativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch {
	case result.RemovedValue == "":
		fmt.Fprintln(r.out, warningStyle.Sprintf("⚠️  %s was not set", result.Key))
	case result.Key == domain.ConfigKeyNetwork:
		fmt.Fprintln(r.out, successStyle.Sprint("✅ Removed network from config (defaultNetwork from deploy.toml applies)"))
	default:
		fmt.Fprintln(r.out, successStyle.Sprintf("✅ Removed %s from config", result.Key))
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", relativePath(result.ConfigPath))
	return nil
}
