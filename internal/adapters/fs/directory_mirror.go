package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// DirectoryMirrorAdapter recursively copies directory trees.
// Entries are visited in the order the file system returns them and existing
// destination files are overwritten. Symlink cycles are not detected.
type DirectoryMirrorAdapter struct {
	fs  afero.Fs
	log *slog.Logger
}

// NewDirectoryMirrorAdapter creates a new DirectoryMirrorAdapter
func NewDirectoryMirrorAdapter(fs afero.Fs, log *slog.Logger) *DirectoryMirrorAdapter {
	return &DirectoryMirrorAdapter{
		fs:  fs,
		log: log.With("component", "DirectoryMirror"),
	}
}

// DirExists reports whether path exists and is a directory
func (m *DirectoryMirrorAdapter) DirExists(ctx context.Context, path string) (bool, error) {
	return afero.DirExists(m.fs, path)
}

// Mirror copies everything under spec.Source into spec.Destination
func (m *DirectoryMirrorAdapter) Mirror(ctx context.Context, spec domain.MirrorSpec) (*domain.MirrorResult, error) {
	exists, err := m.DirExists(ctx, spec.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", spec.Source, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceMissing, spec.Source)
	}

	result := &domain.MirrorResult{Spec: spec}
	if err := m.copyDir(ctx, spec.Source, spec.Destination, result); err != nil {
		return nil, err
	}

	m.log.Debug("mirror completed", "source", spec.Source, "dest", spec.Destination, "files", result.FilesCopied)
	return result, nil
}

func (m *DirectoryMirrorAdapter) copyDir(ctx context.Context, src, dest string, result *domain.MirrorResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	created, err := m.ensureDir(dest)
	if err != nil {
		return err
	}
	if created {
		result.DirsCreated++
	}

	entries, err := afero.ReadDir(m.fs, src)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", src, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := m.copyDir(ctx, srcPath, destPath, result); err != nil {
				return err
			}
			continue
		}

		n, err := m.copyFile(srcPath, destPath)
		if err != nil {
			return err
		}
		result.FilesCopied++
		result.BytesCopied += n
	}

	return nil
}

// ensureDir creates dir if missing and reports whether it had to
func (m *DirectoryMirrorAdapter) ensureDir(dir string) (bool, error) {
	exists, err := afero.DirExists(m.fs, dir)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if exists {
		return false, nil
	}
	if err := m.fs.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return true, nil
}

func (m *DirectoryMirrorAdapter) copyFile(src, dest string) (written int64, err error) {
	in, err := m.fs.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := m.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", dest, closeErr)
		}
	}()

	written, err = io.Copy(out, in)
	if err != nil {
		return written, fmt.Errorf("failed to copy %s to %s: %w", src, dest, err)
	}
	return written, nil
}

// Ensure DirectoryMirrorAdapter implements DirectoryMirror
var _ usecase.DirectoryMirror = (*DirectoryMirrorAdapter)(nil)
