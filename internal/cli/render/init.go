package render

import (
	"fmt"
	"io"

	internalconfig "github.com/defihorse/horse-deploy/internal/config"
	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/fatih/color"
)

// InitRenderer renders init command results
type InitRenderer struct {
	out io.Writer
}

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer) *InitRenderer {
	return &InitRenderer{out: out}
}

// Render renders the init project result
func (r *InitRenderer) Render(result *usecase.InitProjectResult) error {
	for _, step := range result.Steps {
		if step.Success {
			message := step.Message
			if message == "" {
				message = step.Name
			}
			fmt.Fprintln(r.out, successStyle.Sprintf("✅ %s", message))
			continue
		}

		fmt.Fprintln(r.out, errorStyle.Sprintf("❌ %s", step.Name))
		if step.Error != nil {
			fmt.Fprintf(r.out, "   %s\n", step.Error.Error())
		}
		return nil
	}

	r.printNextSteps(result)
	return nil
}

func (r *InitRenderer) printNextSteps(result *usecase.InitProjectResult) {
	fmt.Fprintln(r.out)
	if result.AlreadyInitialized {
		fmt.Fprintln(r.out, warningStyle.Sprintf("⚠️  %s already existed and was left untouched", internalconfig.DefaultConfigFile))
	} else {
		fmt.Fprintln(r.out, color.New(color.FgGreen, color.Bold).Sprint("🎉 Project initialized"))
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, color.New(color.FgCyan, color.Bold).Sprint("📋 Next steps:"))
	fmt.Fprintf(r.out, "1. Copy %s to %s and set your deployer key\n", internalconfig.SecretsExampleFile, internalconfig.DefaultSecretsFile)
	fmt.Fprintln(r.out, "2. Compile the contracts so that artifacts/ is populated")
	fmt.Fprintln(r.out, "3. Deploy:")
	fmt.Fprintln(r.out, faintStyle.Sprint("   horse-deploy deploy-horse --network testnet"))
	fmt.Fprintln(r.out, faintStyle.Sprint("   horse-deploy deploy-ibco --network testnet"))
}

var _ Renderer[*usecase.InitProjectResult] = (*InitRenderer)(nil)
