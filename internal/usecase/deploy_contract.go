package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/domain/config"
)

// Deployment stages reported through the progress sink
const (
	StageBuildingWallet       = "building_wallet"
	StageConfiguringProviders = "configuring_providers"
	StageDeploying            = "deploying"
	StageDeployed             = "deployed"
	StageAwaitingShutdown     = "awaiting_shutdown"
)

const (
	seedChoicePrompt = "Do you have a wallet seed? (y/n, default: n)"
	seedInputPrompt  = "Enter your 64-character hex seed"
)

// DeployContract runs the interactive deployment of the counter contract
type DeployContract struct {
	config   *config.RuntimeConfig
	sdk      WalletSDK
	prompter Prompter
	records  DeploymentRecordStore
	waiter   TerminationWaiter
	progress ProgressSink
	log      *slog.Logger
}

// NewDeployContract creates a new deploy use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	sdk WalletSDK,
	prompter Prompter,
	records DeploymentRecordStore,
	waiter TerminationWaiter,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		config:   cfg,
		sdk:      sdk,
		prompter: prompter,
		records:  records,
		waiter:   waiter,
		progress: progress,
		log:      log.With("component", "DeployContract"),
	}
}

// DeployContractParams contains parameters for a deployment
type DeployContractParams struct {
	InitialState domain.CounterState
}

// DeployContractResult contains the result of a successful deployment.
// The wallet stays open until AwaitTermination or Release is called.
type DeployContractResult struct {
	SeedSource    domain.SeedSource
	WalletAddress string
	Balance       *domain.WalletBalance
	Contract      *domain.DeployedContract
	Record        *domain.DeploymentRecord
	RecordPath    string

	session *walletSession
}

// walletSession releases the wallet at most once
type walletSession struct {
	sdk    WalletSDK
	wallet WalletHandle
	once   sync.Once
	err    error
}

func (s *walletSession) release(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		s.err = s.sdk.CloseWallet(ctx, s.wallet)
	})
	return s.err
}

// Run resolves the seed, builds the wallet, deploys the contract and writes the record.
// On error the wallet, if it was built, has already been released.
func (d *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	seed, source, err := d.resolveSeed(ctx)
	if err != nil {
		return nil, err
	}
	if source == domain.SeedSourceGenesis {
		d.progress.Info("Using genesis wallet seed for local network.")
	}
	d.log.Info("seed resolved", "source", source)

	d.progress.OnProgress(ctx, ProgressEvent{Stage: StageBuildingWallet, Message: "Building wallet...", Spinner: true})
	wallet, err := d.sdk.BuildWallet(ctx, d.config.Network, seed)
	if err != nil {
		d.stopSpinner(ctx)
		d.log.Error("wallet construction failed", "error", err)
		return nil, fmt.Errorf("failed to build wallet: %w", err)
	}
	session := &walletSession{sdk: d.sdk, wallet: wallet}

	result, err := d.deploy(ctx, session, params)
	if err != nil {
		d.stopSpinner(ctx)
		d.log.Error("deployment failed", "error", err)
		if closeErr := session.release(ctx); closeErr != nil {
			d.log.Warn("failed to release wallet", "error", closeErr)
		}
		return nil, err
	}
	result.SeedSource = source
	return result, nil
}

func (d *DeployContract) deploy(ctx context.Context, session *walletSession, params DeployContractParams) (*DeployContractResult, error) {
	address := session.wallet.Address()
	d.log.Info("wallet built", "address", address)

	balance, err := d.sdk.WalletBalance(ctx, session.wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet balance: %w", err)
	}
	d.stopSpinner(ctx)
	d.progress.Info(fmt.Sprintf("Wallet Address: %s", address))
	d.progress.Info(fmt.Sprintf("Balance: %s", balance))
	d.log.Info("wallet balance", "total", balance.String())

	d.progress.OnProgress(ctx, ProgressEvent{Stage: StageConfiguringProviders, Message: "Configuring providers...", Spinner: true})
	providers, err := d.sdk.ConfigureProviders(ctx, session.wallet, d.config.Network)
	if err != nil {
		return nil, fmt.Errorf("failed to configure providers: %w", err)
	}

	d.progress.OnProgress(ctx, ProgressEvent{Stage: StageDeploying, Message: "Deploying contract. This may take 30-60 seconds...", Spinner: true})
	started := time.Now()
	deployed, err := d.sdk.DeployContract(ctx, providers, params.InitialState)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy contract: %w", err)
	}
	d.log.Info("contract deployed", "address", deployed.ContractAddress, "tx", deployed.TxHash, "duration", time.Since(started))

	record := domain.NewDeploymentRecord(deployed.ContractAddress, address, providers.Endpoints(), time.Now())
	if err := d.records.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to write deployment record: %w", err)
	}
	d.progress.OnProgress(ctx, ProgressEvent{Stage: StageDeployed, Metadata: record})

	return &DeployContractResult{
		WalletAddress: address,
		Balance:       balance,
		Contract:      deployed,
		Record:        record,
		RecordPath:    d.records.GetPath(),
		session:       session,
	}, nil
}

// resolveSeed picks the wallet seed. Only custom seeds are validated.
func (d *DeployContract) resolveSeed(ctx context.Context) (domain.WalletSeed, domain.SeedSource, error) {
	if d.config.WalletSeed != "" {
		seed := domain.WalletSeed(d.config.WalletSeed)
		if err := seed.Validate(); err != nil {
			return "", "", err
		}
		return seed, domain.SeedSourceEnvironment, nil
	}

	if d.config.NonInteractive {
		return domain.GenesisWalletSeed, domain.SeedSourceGenesis, nil
	}

	choice, err := d.prompter.Prompt(ctx, seedChoicePrompt, false)
	if err != nil {
		return "", "", fmt.Errorf("failed to read seed choice: %w", err)
	}
	if !strings.HasPrefix(strings.ToLower(choice), "y") {
		return domain.GenesisWalletSeed, domain.SeedSourceGenesis, nil
	}

	input, err := d.prompter.Prompt(ctx, seedInputPrompt, true)
	if err != nil {
		return "", "", fmt.Errorf("failed to read seed: %w", err)
	}
	seed := domain.WalletSeed(input)
	if err := seed.Validate(); err != nil {
		return "", "", err
	}
	return seed, domain.SeedSourcePrompt, nil
}

// AwaitTermination blocks until the process is asked to stop, then releases the wallet
func (d *DeployContract) AwaitTermination(ctx context.Context, result *DeployContractResult) error {
	d.progress.OnProgress(ctx, ProgressEvent{Stage: StageAwaitingShutdown})
	d.log.Info("awaiting termination")

	waitErr := d.waiter.Wait(ctx)

	// The wallet must be released even when the wait was cut short.
	releaseErr := d.Release(context.WithoutCancel(ctx), result)
	if waitErr != nil {
		return fmt.Errorf("termination wait failed: %w", waitErr)
	}
	if releaseErr != nil {
		return fmt.Errorf("failed to release wallet: %w", releaseErr)
	}
	d.log.Info("wallet released, shutting down")
	return nil
}

// Release releases the wallet held by result. Safe to call more than once.
func (d *DeployContract) Release(ctx context.Context, result *DeployContractResult) error {
	if result == nil {
		return nil
	}
	return result.session.release(ctx)
}

func (d *DeployContract) stopSpinner(ctx context.Context) {
	d.progress.OnProgress(ctx, ProgressEvent{Spinner: false})
}
