package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/domain/config"
)

// MirrorArtifacts copies contract build artifacts into the frontend tree
type MirrorArtifacts struct {
	config   *config.RuntimeConfig
	mirror   DirectoryMirror
	progress ProgressSink
	log      *slog.Logger
}

// NewMirrorArtifacts creates a new artifact mirroring use case
func NewMirrorArtifacts(cfg *config.RuntimeConfig, mirror DirectoryMirror, progress ProgressSink, log *slog.Logger) *MirrorArtifacts {
	return &MirrorArtifacts{
		config:   cfg,
		mirror:   mirror,
		progress: progress,
		log:      log.With("component", "MirrorArtifacts"),
	}
}

// MirrorArtifactsResult contains the outcome of a copier run
type MirrorArtifactsResult struct {
	// Skipped is set when the whole run was skipped because its source was missing
	Skipped bool
	Results []*domain.MirrorResult
}

// CopyKeys mirrors the proving keys and zkir files into the public directory.
// A missing contract directory skips the run without failing.
func (m *MirrorArtifacts) CopyKeys(ctx context.Context) (*MirrorArtifactsResult, error) {
	paths := m.config.Assets
	m.progress.Info("Copying contract keys & zkir files...")

	exists, err := m.mirror.DirExists(ctx, paths.ContractDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat contract directory: %w", err)
	}
	if !exists {
		m.log.Warn("contract managed source not found", "path", paths.ContractDir)
		m.progress.Warn(fmt.Sprintf("Contract managed source not found at: %s", paths.ContractDir))
		m.progress.Warn("Skipping key copy. Assuming keys are already present in public/ directory.")
		return &MirrorArtifactsResult{Skipped: true}, nil
	}

	specs := []domain.MirrorSpec{
		{Name: "keys", Source: filepath.Join(paths.ContractDir, "keys"), Destination: filepath.Join(paths.PublicDir, "keys")},
		{Name: "zkir", Source: filepath.Join(paths.ContractDir, "zkir"), Destination: filepath.Join(paths.PublicDir, "zkir")},
	}

	result := &MirrorArtifactsResult{}
	for _, spec := range specs {
		m.progress.Info(fmt.Sprintf("Copying %s from %s to %s", spec.Name, spec.Source, spec.Destination))
		res, err := m.mirror.Mirror(ctx, spec)
		if errors.Is(err, domain.ErrSourceMissing) {
			m.log.Warn("source directory not found, skipping", "path", spec.Source)
			m.progress.Warn(fmt.Sprintf("Source directory not found (skipping): %s", spec.Source))
			result.Results = append(result.Results, &domain.MirrorResult{Spec: spec, SourceMissing: true})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", spec.Name, err)
		}
		m.log.Info("mirrored", "name", spec.Name, "files", res.FilesCopied, "bytes", res.BytesCopied)
		result.Results = append(result.Results, res)
	}

	return result, nil
}

// VendorContract mirrors the compiled contract package into the frontend sources.
// A missing dist directory is reported but does not fail the run.
func (m *MirrorArtifacts) VendorContract(ctx context.Context) (*MirrorArtifactsResult, error) {
	paths := m.config.Assets
	m.progress.Info("Vendoring contract code...")

	spec := domain.MirrorSpec{Name: "contract", Source: paths.DistDir, Destination: paths.VendorDir}
	res, err := m.mirror.Mirror(ctx, spec)
	if errors.Is(err, domain.ErrSourceMissing) {
		m.log.Error("source directory not found", "path", spec.Source)
		m.progress.Error(fmt.Sprintf("Source directory not found: %s", spec.Source))
		m.progress.Warn("Could not vendor contract code. Build might fail if not already present.")
		return &MirrorArtifactsResult{
			Skipped: true,
			Results: []*domain.MirrorResult{{Spec: spec, SourceMissing: true}},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to copy contract code: %w", err)
	}

	m.log.Info("mirrored", "name", spec.Name, "files", res.FilesCopied, "bytes", res.BytesCopied)
	return &MirrorArtifactsResult{Results: []*domain.MirrorResult{res}}, nil
}
