package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// Waiter blocks until the process receives an interrupt or termination signal
type Waiter struct {
	signals []os.Signal
}

// NewWaiter creates a waiter for SIGINT and SIGTERM
func NewWaiter() *Waiter {
	return &Waiter{signals: []os.Signal{os.Interrupt, syscall.SIGTERM}}
}

// Wait returns nil once a signal arrives, or the context error if ctx ends first
func (w *Waiter) Wait(ctx context.Context) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, w.signals...)
	defer signal.Stop(ch)

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ensure the adapter implements the interface
var _ usecase.TerminationWaiter = (*Waiter)(nil)
