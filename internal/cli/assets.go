package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/counter-cli/internal/cli/render"
)

// NewAssetsCmd creates the assets command group
func NewAssetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Copy contract build output into the frontend",
	}

	cmd.AddCommand(newCopyKeysCmd())
	cmd.AddCommand(newVendorCmd())

	return cmd
}

func newCopyKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy-keys",
		Short: "Copy proving keys and zkir files into public/midnight/counter",
		Long: `Mirror <contract-dir>/keys and <contract-dir>/zkir into <public-dir>.

A missing contract directory is not an error: the keys are assumed to be present
already. A missing keys or zkir directory is skipped with a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.MirrorArtifacts.CopyKeys(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewMirrorRenderer(cmd.OutOrStdout(), "Keys copied successfully").Render(result)
		},
	}

	cmd.Flags().String("root", "", "Frontend root the default paths are relative to (defaults to the project root)")
	cmd.Flags().String("contract-dir", "", "Managed contract output (defaults to <root>/../counter-contract/src/managed/counter)")
	cmd.Flags().String("public-dir", "", "Destination (defaults to <root>/public/midnight/counter)")

	return cmd
}

func newVendorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendor",
		Short: "Vendor the compiled contract package into src/contract",
		Long: `Mirror <dist-dir> into <dest>.

A missing dist directory is reported but does not fail the command, since the
frontend build may still find a previously vendored copy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.MirrorArtifacts.VendorContract(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewMirrorRenderer(cmd.OutOrStdout(), "Contract vendored successfully").Render(result)
		},
	}

	cmd.Flags().String("root", "", "Frontend root the default paths are relative to (defaults to the project root)")
	cmd.Flags().String("dist-dir", "", "Compiled contract package (defaults to <root>/../counter-contract/dist)")
	cmd.Flags().String("dest", "", "Destination (defaults to <root>/src/contract)")

	return cmd
}
