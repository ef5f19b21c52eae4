package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/counter-cli/internal/cli/render"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the last deployment record",
		Long: `Show the contents of deployment.json.

Examples:
  counter show
  counter show --json
  counter show --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			format := app.Config.Format
			if app.Config.JSON {
				format = render.FormatJSON
			}
			renderer, err := render.NewRecordRenderer(cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}

			result, err := app.ShowDeployment.Run(cmd.Context())
			if err != nil {
				return err
			}
			return renderer.Render(result)
		},
	}

	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().String("format", render.FormatTable, "Output format (table, json, yaml)")

	return cmd
}
