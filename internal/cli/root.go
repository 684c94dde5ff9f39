package cli

import (
	"context"
	"fmt"

	"github.com/defihorse/horse-deploy/internal/adapters/progress"
	"github.com/defihorse/horse-deploy/internal/app"
	"github.com/defihorse/horse-deploy/internal/cli/render"
	"github.com/defihorse/horse-deploy/internal/config"
	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"

	// standaloneAnnotation marks commands that run without the wired app,
	// i.e. without a secrets file or a resolved network
	standaloneAnnotation = "standalone"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "horse-deploy",
		Short: "Deploy the DefiHorse contracts to Binance Smart Chain",
		Long: `horse-deploy publishes the compiled DefiHorse contracts to BSC or any EVM chain.

Network profiles are read from deploy.toml; credentials are read from
secrets.json, which must never be committed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if isStandalone(cmd) {
				return nil
			}

			root, err := projectRoot(cmd)
			if err != nil {
				return err
			}
			v := config.SetupViper(root, cmd)

			var sink usecase.ProgressSink = usecase.NopProgress{}
			if !v.GetBool("json") {
				renderer := render.NewDeployRenderer(cmd.OutOrStdout(), false)
				sink = progress.NewDeployProgress(renderer, cmd.ErrOrStderr(), !v.GetBool("non_interactive"))
			}

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network profile to use (e.g. hardhat, testnet, mainnet)")
	rootCmd.PersistentFlags().String("root", "", "Project root (defaults to the nearest directory holding deploy.toml)")
	rootCmd.PersistentFlags().String("secrets", "", "Path to the secrets file (default secrets.json)")
	rootCmd.PersistentFlags().String("config", "", "Path to the configuration file (default deploy.toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort if the deployment is not confirmed in time (0 waits forever)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "deploy",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "inspect",
		Title: "Inspection Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "project",
		Title: "Project Commands",
	})

	// Deployment commands
	for _, scriptCmd := range NewScriptCmds() {
		scriptCmd.GroupID = "deploy"
		rootCmd.AddCommand(scriptCmd)
	}

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "deploy"
	rootCmd.AddCommand(deployCmd)

	// Inspection commands
	contractsCmd := NewContractsCmd()
	contractsCmd.GroupID = "inspect"
	rootCmd.AddCommand(contractsCmd)

	accountsCmd := NewAccountsCmd()
	accountsCmd.GroupID = "inspect"
	rootCmd.AddCommand(accountsCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "inspect"
	rootCmd.AddCommand(networksCmd)

	// Project commands
	configCmd := NewConfigCmd()
	configCmd.GroupID = "project"
	rootCmd.AddCommand(configCmd)

	initCmd := NewInitCmd()
	initCmd.GroupID = "project"
	rootCmd.AddCommand(initCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// isStandalone reports whether cmd runs without the wired app
func isStandalone(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", "version":
			return true
		}
		if c.Annotations[standaloneAnnotation] == "true" {
			return true
		}
	}
	return false
}

// projectRoot returns --root, or the nearest directory holding deploy.toml
func projectRoot(cmd *cobra.Command) (string, error) {
	if f := cmd.Flag("root"); f != nil && f.Value.String() != "" {
		return f.Value.String(), nil
	}
	root, err := config.FindProjectRoot()
	if err != nil {
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	return root, nil
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
