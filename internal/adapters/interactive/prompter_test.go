package interactive

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func newTestPrompter(input string) *PrompterAdapter {
	return NewPrompterAdapterWithIO(io.NopCloser(strings.NewReader(input)), nopWriteCloser{&bytes.Buffer{}})
}

func TestPrompterAdapter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPrompterAdapter().Prompt(ctx, "Do you have a wallet seed?", false)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPrompterAdapter_Prompt(t *testing.T) {
	seed := strings.Repeat("0", 63) + "1"

	tests := []struct {
		name    string
		input   string
		masked  bool
		want    string
		wantErr error
	}{
		{name: "yes answer", input: "y\n", want: "y"},
		{name: "empty answer", input: "\n", want: ""},
		{name: "masked seed", input: seed + "\n", masked: true, want: seed},
		{name: "closed input", input: "", wantErr: ErrPromptCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, err := newTestPrompter(tt.input).Prompt(context.Background(), "Do you have a wallet seed?", tt.masked)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, answer)
		})
	}
}
