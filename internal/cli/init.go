package cli

import (
	"github.com/defihorse/horse-deploy/internal/adapters/fs"
	"github.com/defihorse/horse-deploy/internal/adapters/template"
	"github.com/defihorse/horse-deploy/internal/cli/render"
	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold deploy.toml and the secrets template",
		Long: `Initialize a deployment project: write a default deploy.toml with the
BSC testnet and mainnet profiles, write secrets.example.json and make sure
secrets.json is listed in .gitignore. Existing files are left untouched.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{standaloneAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot(cmd)
			if err != nil {
				return err
			}

			uc := usecase.NewInitProject(root, fs.NewFileWriterAdapter(), template.NewProjectTemplatesAdapter())
			result, err := uc.Run(cmd.Context())

			renderer := render.NewInitRenderer(cmd.OutOrStdout())
			if result != nil {
				// Partial results are rendered on failure too
				if renderErr := renderer.Render(result); renderErr != nil && err == nil {
					return renderErr
				}
			}
			return err
		},
	}
}
