package network

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/trebuchet-org/counter-cli/internal/adapters/midnight"
	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/domain/config"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// DefaultProbeTimeout bounds a single endpoint probe
const DefaultProbeTimeout = 5 * time.Second

// Prober checks network endpoints with the same clients the deployment uses
type Prober struct {
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// NewProber creates a new endpoint prober
func NewProber(cfg *config.RuntimeConfig, log *slog.Logger) *Prober {
	timeout := DefaultProbeTimeout
	if cfg.Timeout > 0 && cfg.Timeout < timeout {
		timeout = cfg.Timeout
	}
	return &Prober{
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "Prober"),
	}
}

// Probe checks one endpoint. Failures are reported in the status, never returned.
func (p *Prober) Probe(ctx context.Context, kind domain.EndpointKind, url string) domain.EndpointStatus {
	status := domain.EndpointStatus{Kind: kind, URL: url}
	if url == "" {
		status.Error = "not configured"
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	started := time.Now()
	detail, err := p.probe(ctx, kind, url)
	status.Latency = time.Since(started)

	if err != nil {
		p.log.Debug("endpoint unreachable", "kind", kind, "url", url, "error", err)
		status.Error = err.Error()
		return status
	}

	status.Reachable = true
	status.Detail = detail
	return status
}

func (p *Prober) probe(ctx context.Context, kind domain.EndpointKind, url string) (string, error) {
	switch kind {
	case domain.EndpointIndexer:
		return "", midnight.NewIndexerClient(url, p.httpClient).Ping(ctx)
	case domain.EndpointIndexerWS:
		return "", midnight.NewIndexerSubscriber(url, p.timeout).Ping(ctx)
	case domain.EndpointNode:
		return p.probeNode(ctx, url)
	case domain.EndpointProofServer:
		return "", midnight.NewProofServerClient(url, p.httpClient).Health(ctx)
	default:
		return "", fmt.Errorf("unknown endpoint kind %q", kind)
	}
}

func (p *Prober) probeNode(ctx context.Context, url string) (string, error) {
	node, err := midnight.DialNode(ctx, url)
	if err != nil {
		return "", err
	}
	defer node.Close()

	chain, err := node.Chain(ctx)
	if err != nil {
		return "", err
	}
	health, err := node.Health(ctx)
	if err != nil {
		return "", err
	}

	detail := fmt.Sprintf("%s, %d peers", chain, health.Peers)
	if health.IsSyncing {
		detail += ", syncing"
	}
	return detail, nil
}

// Ensure the adapter implements the interface
var _ usecase.EndpointProber = (*Prober)(nil)
