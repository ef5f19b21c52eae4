package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NetworkStatusRenderer renders endpoint probe results
type NetworkStatusRenderer struct {
	out  io.Writer
	json bool
}

// NewNetworkStatusRenderer creates a new network status renderer
func NewNetworkStatusRenderer(out io.Writer, asJSON bool) *NetworkStatusRenderer {
	return &NetworkStatusRenderer{out: out, json: asJSON}
}

// Render prints one row per endpoint
func (r *NetworkStatusRenderer) Render(result *usecase.CheckNetworkResult) error {
	if r.json {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, string(data))
		return nil
	}

	title := cases.Title(language.English)

	fmt.Fprintf(r.out, "🌐 Network: %s\n\n", labelStyle.Sprint(result.Network))

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Endpoint", "URL", "Status", "Latency", "Detail"})
	for _, s := range result.Statuses {
		status := color.New(color.FgGreen).Sprint("✓ up")
		detail := s.Detail
		latency := s.Latency.Round(time.Millisecond).String()
		if !s.Reachable {
			status = color.New(color.FgRed).Sprint("✗ down")
			detail = s.Error
			latency = "-"
		}
		t.AppendRow(table.Row{title.String(string(s.Kind)), s.URL, status, latency, detail})
	}
	t.Render()

	if result.Healthy {
		fmt.Fprintln(r.out, FormatSuccess("All endpoints reachable"))
		return nil
	}
	fmt.Fprintln(r.out, FormatWarning("Some endpoints are unreachable"))
	for _, s := range result.Statuses {
		if !s.Reachable {
			fmt.Fprintln(r.out, FormatError(fmt.Sprintf("%s unreachable at %s", title.String(string(s.Kind)), s.URL)))
		}
	}
	return nil
}

var _ Renderer[*usecase.CheckNetworkResult] = (*NetworkStatusRenderer)(nil)
