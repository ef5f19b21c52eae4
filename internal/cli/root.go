package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/counter-cli/internal/adapters/progress"
	"github.com/trebuchet-org/counter-cli/internal/app"
	"github.com/trebuchet-org/counter-cli/internal/config"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cleanup func()

	rootCmd := &cobra.Command{
		Use:   "counter",
		Short: "Deploy and wire up the Midnight counter contract",
		Long: `counter deploys the counter contract to a local Midnight network and
prepares the frontend by copying proving keys and vendoring the compiled contract.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			// Set up viper
			v := config.SetupViper(projectRoot, cmd)

			var sink usecase.ProgressSink
			if v.GetBool("non-interactive") {
				sink = progress.NewPlainSink(cmd.OutOrStdout())
			} else {
				sink = progress.NewSpinnerProgressReporterTo(cmd.OutOrStdout())
			}

			// Initialize app with DI
			appInstance, appCleanup, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			cleanup = appCleanup

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)

			return nil
		},
	}

	// Runs after every command, including failed ones
	cobra.OnFinalize(func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	})

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts (uses the genesis seed unless COUNTER_WALLET_SEED is set)")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network profile to use (defaults to 'local')")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Timeout for indexer, node and probe requests (proof generation is not bounded)")
	rootCmd.PersistentFlags().String("project-root", "", "Project root (defaults to the directory holding counter.toml, or the working directory)")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	assetsCmd := NewAssetsCmd()
	assetsCmd.GroupID = "main"
	rootCmd.AddCommand(assetsCmd)

	showCmd := NewShowCmd()
	showCmd.GroupID = "management"
	rootCmd.AddCommand(showCmd)

	networkCmd := NewNetworkCmd()
	networkCmd.GroupID = "management"
	rootCmd.AddCommand(networkCmd)

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
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
