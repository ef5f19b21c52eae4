package usecase

import (
	"context"

	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/domain/config"
)

// Wallet SDK ports

// WalletHandle is the opaque wallet context returned by the SDK.
// It holds keystore and balance state until released with CloseWallet.
type WalletHandle interface {
	Address() string
}

// ProviderSet is the configured set of providers a deployment runs against
type ProviderSet interface {
	Endpoints() domain.ProviderEndpoints
}

// WalletSDK is the boundary to the wallet and contract SDK
type WalletSDK interface {
	BuildWallet(ctx context.Context, network *config.Network, seed domain.WalletSeed) (WalletHandle, error)
	WalletBalance(ctx context.Context, wallet WalletHandle) (*domain.WalletBalance, error)
	ConfigureProviders(ctx context.Context, wallet WalletHandle, network *config.Network) (ProviderSet, error)
	DeployContract(ctx context.Context, providers ProviderSet, initial domain.CounterState) (*domain.DeployedContract, error)
	CloseWallet(ctx context.Context, wallet WalletHandle) error
}

// Prompter reads operator input
type Prompter interface {
	// Prompt shows label and returns the raw answer. Masked prompts hide the input.
	Prompt(ctx context.Context, label string, masked bool) (string, error)
}

// TerminationWaiter blocks until the process is asked to terminate
type TerminationWaiter interface {
	Wait(ctx context.Context) error
}

// DeploymentRecordStore persists the deployment record
type DeploymentRecordStore interface {
	Save(ctx context.Context, record *domain.DeploymentRecord) error
	Load(ctx context.Context) (*domain.DeploymentRecord, error)
	GetPath() string
}

// DirectoryMirror copies directory trees.
// Mirror returns an error wrapping domain.ErrSourceMissing when the source does not exist.
type DirectoryMirror interface {
	DirExists(ctx context.Context, path string) (bool, error)
	Mirror(ctx context.Context, spec domain.MirrorSpec) (*domain.MirrorResult, error)
}

// EndpointProber checks whether a network endpoint answers
type EndpointProber interface {
	Probe(ctx context.Context, kind domain.EndpointKind, url string) domain.EndpointStatus
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Warn(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Warn(string)                               {}
func (NopProgress) Error(string)                              {}
