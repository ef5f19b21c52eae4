package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Output formats for records
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// RecordRenderer renders a deployment record
type RecordRenderer struct {
	out    io.Writer
	format string
}

// NewRecordRenderer creates a record renderer for the given format
func NewRecordRenderer(out io.Writer, format string) (*RecordRenderer, error) {
	switch format {
	case "", FormatTable:
		format = FormatTable
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported format %q (want table, json or yaml)", format)
	}
	return &RecordRenderer{out: out, format: format}, nil
}

// Render prints the record in the configured format
func (r *RecordRenderer) Render(result *usecase.ShowDeploymentResult) error {
	switch r.format {
	case FormatJSON:
		data, err := json.MarshalIndent(result.Record, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, string(data))
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(result.Record); err != nil {
			return err
		}
		return enc.Close()
	}

	record := result.Record
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Counter Deployment")
	t.AppendRows([]table.Row{
		{"Contract Address", addressStyle.Sprint(record.ContractAddress)},
		{"Deployed At", record.DeployedAt},
		{"Network", record.Network},
		{"Wallet Address", record.WalletAddress},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Indexer", record.Config.Indexer},
		{"Indexer WS", record.Config.IndexerWS},
		{"Node", record.Config.Node},
		{"Proof Server", record.Config.ProofServer},
	})
	t.Render()
	fmt.Fprintln(r.out, faintStyle.Sprintf("from %s", result.Path))
	return nil
}

var _ Renderer[*usecase.ShowDeploymentResult] = (*RecordRenderer)(nil)
