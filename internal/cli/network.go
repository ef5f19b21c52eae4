package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/counter-cli/internal/cli/render"
	"github.com/trebuchet-org/counter-cli/internal/domain"
)

// NewNetworkCmd creates the network command group
func NewNetworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Inspect the configured network",
	}

	cmd.AddCommand(newNetworkStatusCmd())

	return cmd
}

func newNetworkStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check that the indexer, node and proof server answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CheckNetwork.Run(cmd.Context())
			if err != nil {
				return err
			}
			if err := render.NewNetworkStatusRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result); err != nil {
				return err
			}
			if !result.Healthy {
				return domain.ErrEndpointUnreachable
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Output as JSON")

	return cmd
}
