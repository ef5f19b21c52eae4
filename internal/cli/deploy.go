package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/counter-cli/internal/cli/render"
	"github.com/trebuchet-org/counter-cli/internal/config"
	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the counter contract and keep the wallet open",
		Long: `Deploy the counter contract with an initial private counter of zero.

You are asked for a wallet seed; answering anything but 'y' uses the genesis
wallet of the local network. After a successful deployment the contract address
is written to deployment.json and the wallet stays open until Ctrl+C.

A log of every run is written to logs/deploy/<timestamp>.log.

Environment:
  COUNTER_WALLET_SEED   64 hex characters, skips the seed prompt
  COUNTER_INDEXER, COUNTER_INDEXER_WS, COUNTER_NODE, COUNTER_PROOF_SERVER
                        override single endpoints of the selected network`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			config.RunLogKey: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Midnight Contract Deployment")
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Using %s network with existing containers...\n\n", app.Config.Network.Name)
			app.Log.Debug("run log", "path", app.Config.LogFile)

			result, err := app.DeployContract.Run(ctx, usecase.DeployContractParams{
				InitialState: domain.CounterState{PrivateCounter: 0},
			})
			if err != nil {
				return fmt.Errorf("deployment failed: %w", err)
			}

			if err := render.NewDeployRenderer(out).Render(result); err != nil {
				releaseWallet(ctx, app.DeployContract, app.Log, result)
				return err
			}

			return app.DeployContract.AwaitTermination(ctx, result)
		},
	}

	return cmd
}

type walletReleaser interface {
	Release(ctx context.Context, result *usecase.DeployContractResult) error
}

// releaseWallet releases the wallet and logs a failed release
func releaseWallet(ctx context.Context, releaser walletReleaser, log *slog.Logger, result *usecase.DeployContractResult) {
	if err := releaser.Release(ctx, result); err != nil {
		log.Warn("failed to release wallet", "error", err)
	}
}
