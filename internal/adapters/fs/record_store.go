package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/domain/config"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// RecordStoreAdapter implements DeploymentRecordStore using the file system
type RecordStoreAdapter struct {
	fs         afero.Fs
	recordPath string
}

// NewRecordStoreAdapter creates a new RecordStoreAdapter rooted at the project root
func NewRecordStoreAdapter(cfg *config.RuntimeConfig, fs afero.Fs) *RecordStoreAdapter {
	return &RecordStoreAdapter{
		fs:         fs,
		recordPath: filepath.Join(cfg.ProjectRoot, domain.DeploymentRecordFile),
	}
}

// Load reads the deployment record
func (s *RecordStoreAdapter) Load(ctx context.Context) (*domain.DeploymentRecord, error) {
	data, err := afero.ReadFile(s.fs, s.recordPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read deployment record: %w", err)
	}

	var record domain.DeploymentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse deployment record: %w", err)
	}

	return &record, nil
}

// Save writes the record as indented JSON, replacing any previous record
func (s *RecordStoreAdapter) Save(ctx context.Context, record *domain.DeploymentRecord) error {
	dir := filepath.Dir(s.recordPath)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment record: %w", err)
	}

	if err := afero.WriteFile(s.fs, s.recordPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write deployment record: %w", err)
	}

	return nil
}

// GetPath returns the path to the record file
func (s *RecordStoreAdapter) GetPath() string {
	return s.recordPath
}

// Ensure RecordStoreAdapter implements DeploymentRecordStore
var _ usecase.DeploymentRecordStore = (*RecordStoreAdapter)(nil)
