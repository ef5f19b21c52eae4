package progress

import (
	"context"
	"fmt"
	"io"

	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// PlainSink prints messages without colors or spinners, for non-interactive runs
type PlainSink struct {
	out io.Writer
}

// NewPlainSink creates a sink printing to out
func NewPlainSink(out io.Writer) *PlainSink {
	return &PlainSink{out: out}
}

// OnProgress prints spinner messages once
func (p *PlainSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Spinner && event.Message != "" {
		fmt.Fprintln(p.out, event.Message)
	}
}

// Info prints an info message
func (p *PlainSink) Info(message string) {
	fmt.Fprintln(p.out, message)
}

// Warn prints a warning
func (p *PlainSink) Warn(message string) {
	fmt.Fprintln(p.out, "Warning: "+message)
}

// Error prints an error message
func (p *PlainSink) Error(message string) {
	fmt.Fprintln(p.out, "Error: "+message)
}

var _ usecase.ProgressSink = (*PlainSink)(nil)
