package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/domain/config"
)

// CheckNetwork probes every endpoint of the configured network
type CheckNetwork struct {
	config   *config.RuntimeConfig
	prober   EndpointProber
	progress ProgressSink
}

// NewCheckNetwork creates a new network check use case
func NewCheckNetwork(cfg *config.RuntimeConfig, prober EndpointProber, progress ProgressSink) *CheckNetwork {
	return &CheckNetwork{
		config:   cfg,
		prober:   prober,
		progress: progress,
	}
}

// CheckNetworkResult contains the probe results in endpoint order
type CheckNetworkResult struct {
	Network  string
	Statuses []domain.EndpointStatus
	Healthy  bool
}

type endpointTarget struct {
	kind domain.EndpointKind
	url  string
}

// Run probes indexer, indexer websocket, node and proof server in turn
func (c *CheckNetwork) Run(ctx context.Context) (*CheckNetworkResult, error) {
	network := c.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network configured")
	}

	targets := []endpointTarget{
		{domain.EndpointIndexer, network.Endpoints.Indexer},
		{domain.EndpointIndexerWS, network.Endpoints.IndexerWS},
		{domain.EndpointNode, network.Endpoints.Node},
		{domain.EndpointProofServer, network.Endpoints.ProofServer},
	}

	c.progress.OnProgress(ctx, ProgressEvent{Stage: "probing", Message: fmt.Sprintf("Checking network '%s'...", network.Name), Spinner: true})
	statuses := lo.Map(targets, func(t endpointTarget, _ int) domain.EndpointStatus {
		return c.prober.Probe(ctx, t.kind, t.url)
	})
	c.progress.OnProgress(ctx, ProgressEvent{Spinner: false})

	return &CheckNetworkResult{
		Network:  network.Name,
		Statuses: statuses,
		Healthy: lo.EveryBy(statuses, func(s domain.EndpointStatus) bool {
			return s.Reachable
		}),
	}, nil
}
