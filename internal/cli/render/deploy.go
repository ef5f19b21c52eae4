package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// DeployRenderer renders the outcome of a counter deployment
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render prints the success banner, contract address and record path
func (r *DeployRenderer) Render(result *usecase.DeployContractResult) error {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess("CONTRACT DEPLOYED SUCCESSFULLY"))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Contract Address:"), addressStyle.Sprint(result.Record.ContractAddress))
	if result.Contract != nil && result.Contract.TxHash != "" {
		fmt.Fprintf(r.out, "%s %s %s\n",
			labelStyle.Sprint("Transaction:"),
			result.Contract.TxHash,
			faintStyle.Sprintf("(block %d)", result.Contract.BlockHeight))
	}
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Deployment info saved at: %s\n", pathStyle.Sprint(result.RecordPath))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, faintStyle.Sprint("Wallet stays open. Press Ctrl+C to release it and exit."))
	return nil
}

var _ Renderer[*usecase.DeployContractResult] = (*DeployRenderer)(nil)
