package render

import (
	"fmt"
	"io"

	"github.com/defihorse/horse-deploy/internal/domain/models"
)

// DeployRenderer prints deployment output
type DeployRenderer struct {
	out    io.Writer
	asJSON bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, asJSON bool) *DeployRenderer {
	return &DeployRenderer{
		out:    out,
		asJSON: asJSON,
	}
}

// PrintDeploying announces a deployment before its transaction is sent
func (r *DeployRenderer) PrintDeploying(message string) {
	if r.asJSON {
		return
	}
	fmt.Fprintln(r.out, message)
}

// Render prints the deployed address, or the whole result as JSON
func (r *DeployRenderer) Render(result *models.DeploymentResult) error {
	if r.asJSON {
		return writeJSON(r.out, result)
	}
	_, err := fmt.Fprintf(r.out, "%s deployed to: %s\n", result.ContractName, result.Address.Hex())
	return err
}

var _ Renderer[*models.DeploymentResult] = (*DeployRenderer)(nil)
