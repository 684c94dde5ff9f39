package cli

import (
	"github.com/defihorse/horse-deploy/internal/cli/render"
	"github.com/defihorse/horse-deploy/internal/domain/models"
	"github.com/spf13/cobra"
)

// NewScriptCmds creates one command per fixed deployment of the project
func NewScriptCmds() []*cobra.Command {
	scripts := models.DeployScripts()
	cmds := make([]*cobra.Command, 0, len(scripts))
	for _, script := range scripts {
		cmds = append(cmds, newScriptCmd(script))
	}
	return cmds
}

func newScriptCmd(script models.DeployScript) *cobra.Command {
	return &cobra.Command{
		Use:   script.Command,
		Short: script.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployContract.Run(cmd.Context(), script.Request())
			if err != nil {
				return err
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.Render(result)
		},
	}
}

// NewDeployCmd creates the generic deploy command
func NewDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy [contract] [args...]",
		Short: "Deploy any compiled contract",
		Long: `Deploy a compiled contract from the artifacts directory.

Constructor arguments are parsed against the constructor ABI. Without a
contract name an interactive picker is shown, unless --non-interactive is set.

Examples:
  horse-deploy deploy DefiHorse --network testnet
  horse-deploy deploy DefiHorseIBCO 0x5fdAb5BDbad5277B383B3482D085f4bFef68828C 0xe9e7cea3dedca5984780bafc599bd69add087d56`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var name string
			var rawArgs []string
			if len(args) > 0 {
				name, rawArgs = args[0], args[1:]
			}

			req, err := app.DeployContract.PrepareRequest(cmd.Context(), name, rawArgs)
			if err != nil {
				return err
			}

			result, err := app.DeployContract.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.Render(result)
		},
	}
}
