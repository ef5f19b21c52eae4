package midnight

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/domain/config"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// CounterContractName identifies the compiled contract in deploy transactions
const CounterContractName = "counter"

// DefaultTimeout bounds indexer queries and websocket handshakes.
// Proving and deployment confirmation are not bounded.
const DefaultTimeout = 30 * time.Second

// SDK implements usecase.WalletSDK against the indexer, node and proof server
type SDK struct {
	httpClient  *http.Client
	proofClient *http.Client
	timeout     time.Duration
	log         *slog.Logger
}

// NewSDK creates a new SDK adapter
func NewSDK(cfg *config.RuntimeConfig, log *slog.Logger) *SDK {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &SDK{
		httpClient:  &http.Client{Timeout: timeout},
		proofClient: &http.Client{},
		timeout:     timeout,
		log:         log.With("component", "MidnightSDK"),
	}
}

// Providers is the provider set configured for one wallet
type Providers struct {
	wallet     *Wallet
	endpoints  domain.ProviderEndpoints
	subscriber *IndexerSubscriber
	node       *NodeClient
	proof      *ProofServerClient
}

// Endpoints returns the endpoints the providers talk to
func (p *Providers) Endpoints() domain.ProviderEndpoints {
	return p.endpoints
}

func (p *Providers) close() {
	if p.node != nil {
		p.node.Close()
	}
}

// BuildWallet derives the wallet for seed on network
func (s *SDK) BuildWallet(ctx context.Context, network *config.Network, seed domain.WalletSeed) (usecase.WalletHandle, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	indexer := NewIndexerClient(network.Endpoints.Indexer, s.httpClient)
	wallet, err := NewWallet(seed, network.NetworkID, indexer)
	if err != nil {
		return nil, err
	}
	s.log.Debug("wallet built", "address", wallet.Address(), "network", network.Name)
	return wallet, nil
}

// WalletBalance queries the unshielded balance of the wallet
func (s *SDK) WalletBalance(ctx context.Context, handle usecase.WalletHandle) (*domain.WalletBalance, error) {
	wallet, err := asWallet(handle)
	if err != nil {
		return nil, err
	}
	balance, err := wallet.indexer.UnshieldedBalance(ctx, wallet.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to query balance: %w", err)
	}
	s.log.Debug("wallet balance", "address", wallet.Address(), "balance", balance.String())
	return balance, nil
}

// ConfigureProviders connects to the node and prepares the proof server and indexer clients
func (s *SDK) ConfigureProviders(ctx context.Context, handle usecase.WalletHandle, network *config.Network) (usecase.ProviderSet, error) {
	wallet, err := asWallet(handle)
	if err != nil {
		return nil, err
	}

	node, err := DialNode(ctx, network.Endpoints.Node)
	if err != nil {
		return nil, err
	}

	providers := &Providers{
		wallet:     wallet,
		endpoints:  network.Endpoints,
		subscriber: NewIndexerSubscriber(network.Endpoints.IndexerWS, s.timeout),
		node:       node,
		proof:      NewProofServerClient(network.Endpoints.ProofServer, s.proofClient),
	}
	if err := wallet.attach(providers); err != nil {
		node.Close()
		return nil, err
	}

	s.log.Debug("providers configured", "endpoints", network.Endpoints)
	return providers, nil
}

type deployPayload struct {
	Contract     string              `json:"contract"`
	InitialState domain.CounterState `json:"initialState"`
	Nonce        string              `json:"nonce"`
	Deployer     string              `json:"deployer"`
}

type unprovenDeploy struct {
	Deploy    deployPayload `json:"deploy"`
	Signature string        `json:"signature"`
}

// DeployContract proves, submits and waits for the indexer to report the counter deployment
func (s *SDK) DeployContract(ctx context.Context, set usecase.ProviderSet, initial domain.CounterState) (*domain.DeployedContract, error) {
	providers, ok := set.(*Providers)
	if !ok {
		return nil, ErrForeignHandle
	}

	pub, err := providers.wallet.PublicKey()
	if err != nil {
		return nil, err
	}

	payload := deployPayload{
		Contract:     CounterContractName,
		InitialState: initial,
		Nonce:        uuid.NewString(),
		Deployer:     hexutil.Encode(pub),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode deploy: %w", err)
	}
	digest := crypto.Keccak256(body)
	address := hex.EncodeToString(digest)

	sig, err := providers.wallet.Sign(digest)
	if err != nil {
		return nil, err
	}
	unproven, err := json.Marshal(unprovenDeploy{Deploy: payload, Signature: hexutil.Encode(sig)})
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}

	s.log.Debug("proving deploy transaction", "contract", address)
	proven, err := providers.proof.Prove(ctx, unproven)
	if err != nil {
		return nil, fmt.Errorf("failed to prove transaction: %w", err)
	}

	// subscribe before submitting so the confirmation cannot be missed
	sub, err := providers.subscriber.SubscribeContractActions(ctx, address)
	if err != nil {
		return nil, err
	}
	defer sub.Close()

	txHash, err := providers.node.SubmitTransaction(ctx, proven)
	if err != nil {
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}
	s.log.Debug("deploy submitted", "contract", address, "tx", txHash)

	action, err := sub.NextContractAction()
	if err != nil {
		return nil, fmt.Errorf("failed waiting for deployment: %w", err)
	}

	deployed := &domain.DeployedContract{
		ContractAddress: address,
		TxHash:          txHash,
		BlockHeight:     action.Transaction.Block.Height,
	}
	if action.Transaction.Hash != "" {
		deployed.TxHash = action.Transaction.Hash
	}
	return deployed, nil
}

// CloseWallet releases the wallet and its providers
func (s *SDK) CloseWallet(ctx context.Context, handle usecase.WalletHandle) error {
	wallet, err := asWallet(handle)
	if err != nil {
		return err
	}
	s.log.Debug("closing wallet", "address", wallet.Address())
	return wallet.Close()
}

func asWallet(handle usecase.WalletHandle) (*Wallet, error) {
	wallet, ok := handle.(*Wallet)
	if !ok {
		return nil, ErrForeignHandle
	}
	return wallet, nil
}

var _ usecase.WalletSDK = (*SDK)(nil)
