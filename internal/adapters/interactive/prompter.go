package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// ErrPromptCancelled is returned when the operator aborts a prompt with Ctrl-C or Ctrl-D
var ErrPromptCancelled = errors.New("prompt cancelled")

// PrompterAdapter reads operator input with promptui
type PrompterAdapter struct {
	stdin  io.ReadCloser
	stdout io.WriteCloser
}

// NewPrompterAdapter creates a prompter bound to the process terminal
func NewPrompterAdapter() *PrompterAdapter {
	return &PrompterAdapter{}
}

// NewPrompterAdapterWithIO creates a prompter bound to the given streams
func NewPrompterAdapterWithIO(stdin io.ReadCloser, stdout io.WriteCloser) *PrompterAdapter {
	return &PrompterAdapter{stdin: stdin, stdout: stdout}
}

// Prompt shows label and returns the raw answer. Masked prompts echo '*'.
func (p *PrompterAdapter) Prompt(ctx context.Context, label string, masked bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  p.stdin,
		Stdout: p.stdout,
	}
	if masked {
		prompt.Mask = '*'
	}

	answer, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
			return "", ErrPromptCancelled
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return answer, nil
}

// Ensure the adapter implements the interface
var _ usecase.Prompter = (*PrompterAdapter)(nil)
