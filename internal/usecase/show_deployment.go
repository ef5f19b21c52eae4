package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/trebuchet-org/counter-cli/internal/domain"
)

// ShowDeployment loads the persisted deployment record
type ShowDeployment struct {
	records DeploymentRecordStore
}

// NewShowDeployment creates a new show deployment use case
func NewShowDeployment(records DeploymentRecordStore) *ShowDeployment {
	return &ShowDeployment{records: records}
}

// ShowDeploymentResult contains the loaded record
type ShowDeploymentResult struct {
	Record *domain.DeploymentRecord
	Path   string
}

// Run loads the deployment record
func (s *ShowDeployment) Run(ctx context.Context) (*ShowDeploymentResult, error) {
	record, err := s.records.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no deployment record at %s, run 'counter deploy' first: %w", s.records.GetPath(), err)
		}
		return nil, fmt.Errorf("failed to load deployment record: %w", err)
	}

	return &ShowDeploymentResult{
		Record: record,
		Path:   s.records.GetPath(),
	}, nil
}
