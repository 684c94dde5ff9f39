package template

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"text/template"

	internalconfig "github.com/defihorse/horse-deploy/internal/config"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/defihorse/horse-deploy/internal/usecase"
)

const deployConfigTemplate = `# Networks and compiler settings for horse-deploy.
# ${key} and ${explorerApiKey} are read from {{ .SecretsFile }}, ${VAR} from the environment or .env.

defaultNetwork = {{ quote .DefaultNetwork }}
{{ range .NetworkNames }}{{ $network := index $.Networks . }}
[networks.{{ . }}]
{{- with $network.URL }}
url = {{ quote . }}
{{- end }}
{{- with $network.ChainID }}
chainId = {{ . }}
{{- end }}
{{- with $network.GasPrice }}
gasPrice = {{ . }}
{{- end }}
{{- with $network.Accounts }}
accounts = [{{ range $i, $account := . }}{{ if $i }}, {{ end }}{{ quote $account }}{{ end }}]
{{- end }}
{{ end }}
[etherscan]
apiKey = {{ quote .Etherscan.APIKey }}
{{- with .Etherscan.APIURL }}
apiUrl = {{ quote . }}
{{- end }}

[solidity]
version = {{ quote .Solidity.Version }}

[solidity.settings.optimizer]
enabled = {{ .Solidity.Settings.Optimizer.Enabled }}
runs = {{ .Solidity.Settings.Optimizer.Runs }}

[paths]
{{- range $role := .PathRoles }}
{{ $role }} = {{ quote (index $.Paths $role) }}
{{- end }}

[mocha]
# milliseconds
timeout = {{ .Mocha.Timeout }}
`

var deployConfig = template.Must(template.New("deploy.toml").
	Funcs(template.FuncMap{"quote": strconv.Quote}).
	Parse(deployConfigTemplate))

// ProjectTemplatesAdapter renders the files created by init
type ProjectTemplatesAdapter struct{}

// NewProjectTemplatesAdapter creates a new template adapter
func NewProjectTemplatesAdapter() *ProjectTemplatesAdapter {
	return &ProjectTemplatesAdapter{}
}

type deployConfigData struct {
	*internalconfig.DeployFile
	SecretsFile  string
	NetworkNames []string
	PathRoles    []string
}

// DeployConfig renders deploy.toml with the stock networks
func (g *ProjectTemplatesAdapter) DeployConfig(ctx context.Context) (string, error) {
	file := internalconfig.DefaultDeployFile()
	data := deployConfigData{
		DeployFile:   file,
		SecretsFile:  internalconfig.DefaultSecretsFile,
		NetworkNames: sortedKeys(file.Networks),
		PathRoles:    sortedKeys(file.Paths),
	}

	var buf bytes.Buffer
	if err := deployConfig.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute deploy config template: %w", err)
	}
	return buf.String(), nil
}

// SecretsExample renders an empty secrets file
func (g *ProjectTemplatesAdapter) SecretsExample(ctx context.Context) (string, error) {
	data, err := json.MarshalIndent(config.Secrets{}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render secrets example: %w", err)
	}
	return string(data) + "\n", nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Ensure the adapter implements the interface
var _ usecase.ProjectTemplates = (*ProjectTemplatesAdapter)(nil)
