package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// MirrorRenderer renders copier summaries
type MirrorRenderer struct {
	out     io.Writer
	success string
}

// NewMirrorRenderer creates a renderer that prints success after a complete run
func NewMirrorRenderer(out io.Writer, success string) *MirrorRenderer {
	return &MirrorRenderer{out: out, success: success}
}

// Render prints one line per mirrored directory
func (r *MirrorRenderer) Render(result *usecase.MirrorArtifactsResult) error {
	if result.Skipped {
		return nil
	}

	for _, res := range result.Results {
		if res.SourceMissing {
			continue
		}
		fmt.Fprintf(r.out, "  %s → %s %s\n",
			res.Spec.Name,
			pathStyle.Sprint(res.Spec.Destination),
			faintStyle.Sprintf("(%d files, %s)", res.FilesCopied, humanBytes(res.BytesCopied)))
	}
	fmt.Fprintln(r.out, FormatSuccess(r.success))
	return nil
}

var _ Renderer[*usecase.MirrorArtifactsResult] = (*MirrorRenderer)(nil)
