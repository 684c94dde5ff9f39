package cli

import (
	"github.com/defihorse/horse-deploy/internal/adapters/fs"
	"github.com/defihorse/horse-deploy/internal/cli/render"
	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration horse-deploy runs with: deploy.toml (or the
built-in defaults) after expansion, and the local defaults stored in
.horse/config.local.json. Private keys and API keys are redacted.

Available subcommands:
  config           Show current config
  config set       Set a local default
  config remove    Remove a local default`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowConfig.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON && !cmd.Flags().Changed("format") {
				format = render.FormatJSON
			}

			renderer := render.NewConfigRenderer(cmd.OutOrStdout())
			return renderer.RenderConfig(result, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", render.FormatTOML, "Output format (toml, yaml, json)")

	cmd.AddCommand(NewConfigSetCmd())
	cmd.AddCommand(NewConfigRemoveCmd())

	return cmd
}

// NewConfigSetCmd creates the config set subcommand
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a local default",
		Long: `Set a default in .horse/config.local.json.
Available keys: network, secrets

Flags and HORSE_* environment variables still take precedence.

Examples:
  horse-deploy config set network testnet
  horse-deploy config set secrets ../keys/defihorse.json`,
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{standaloneAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot(cmd)
			if err != nil {
				return err
			}

			uc := usecase.NewSetConfig(fs.NewLocalConfigStore(root))
			result, err := uc.Run(cmd.Context(), usecase.SetConfigParams{
				Key:   args[0],
				Value: args[1],
			})
			if err != nil {
				return err
			}

			renderer := render.NewConfigRenderer(cmd.OutOrStdout())
			return renderer.RenderSet(result)
		},
	}
}

// NewConfigRemoveCmd creates the config remove subcommand
func NewConfigRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a local default",
		Long: `Remove a default from .horse/config.local.json.
Removing network falls back to defaultNetwork in deploy.toml.

Examples:
  horse-deploy config remove network`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{standaloneAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot(cmd)
			if err != nil {
				return err
			}

			uc := usecase.NewRemoveConfig(fs.NewLocalConfigStore(root))
			result, err := uc.Run(cmd.Context(), usecase.RemoveConfigParams{Key: args[0]})
			if err != nil {
				return err
			}

			renderer := render.NewConfigRenderer(cmd.OutOrStdout())
			return renderer.RenderRemove(result)
		},
	}
}
