package cli

import (
	"github.com/defihorse/horse-deploy/internal/cli/render"
	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewContractsCmd creates the contracts command
func NewContractsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "List deployable contracts and their constructors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListContracts.Run(cmd.Context(), usecase.ListContractsParams{All: all})
			if err != nil {
				return err
			}

			renderer := render.NewContractsRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.Render(result)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include interfaces and abstract contracts")

	return cmd
}

// NewAccountsCmd creates the accounts command
func NewAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "Print the signer accounts of the active network",
		Long: `Print the addresses derived from the accounts of the active network
profile, with their balance and nonce.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListAccounts.Run(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewAccountsRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.Render(result)
		},
	}
}

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List configured network profiles",
		Long: `List the network profiles configured in deploy.toml.

With --probe every endpoint is asked for its chain ID. Results are cached
under paths.cache and shown for unprobed profiles without a chainId.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Probe: probe})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.Render(result)
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "Query each endpoint for its chain ID")

	return cmd
}
