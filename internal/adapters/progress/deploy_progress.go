package progress

import (
	"context"
	"io"

	"github.com/defihorse/horse-deploy/internal/cli/render"
	"github.com/defihorse/horse-deploy/internal/usecase"
)

// DeployProgress prints the deployment announcement and spins while the
// transaction is being confirmed
type DeployProgress struct {
	renderer *render.DeployRenderer
	spinner  *SpinnerProgressReporter
}

// NewDeployProgress creates a sink printing through renderer. The spinner
// writes to status and only animates when interactive.
func NewDeployProgress(renderer *render.DeployRenderer, status io.Writer, interactive bool) *DeployProgress {
	return &DeployProgress{
		renderer: renderer,
		spinner:  NewSpinnerProgressReporter(status, interactive && IsTerminal(status)),
	}
}

// OnProgress handles progress events
func (p *DeployProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	p.spinner.OnProgress(ctx, event)

	if event.Stage == string(usecase.StageDeploying) {
		p.renderer.PrintDeploying(event.Message)
	}
}

// Info forwards info messages to the spinner
func (p *DeployProgress) Info(message string) {
	p.spinner.Info(message)
}

// Error forwards error messages to the spinner
func (p *DeployProgress) Error(message string) {
	p.spinner.Error(message)
}

// Ensure DeployProgress implements ProgressSink
var _ usecase.ProgressSink = (*DeployProgress)(nil)
