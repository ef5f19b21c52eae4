package midnight

import (
	"crypto/ecdsa"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/counter-cli/internal/domain"
)

// addressPrefix is followed by the network id to form the bech32m human readable part
const addressPrefix = "mn_addr_"

// Wallet is the wallet context handed to the deploy use case.
// It owns the signing key and the providers configured for it.
type Wallet struct {
	networkID string
	address   string

	mu        sync.Mutex
	key       *ecdsa.PrivateKey
	indexer   *IndexerClient
	providers *Providers
	closed    bool
}

// NewWallet derives a wallet from a hex seed
func NewWallet(seed domain.WalletSeed, networkID string, indexer *IndexerClient) (*Wallet, error) {
	raw, err := hexutil.Decode("0x" + string(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid seed encoding: %w", err)
	}

	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	address, err := EncodeAddress(networkID, &key.PublicKey)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		networkID: networkID,
		address:   address,
		key:       key,
		indexer:   indexer,
	}, nil
}

// EncodeAddress returns the bech32m unshielded address of a public key
func EncodeAddress(networkID string, pub *ecdsa.PublicKey) (string, error) {
	digest := crypto.Keccak256(crypto.CompressPubkey(pub))
	data, err := bech32.ConvertBits(digest, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to convert address bits: %w", err)
	}
	address, err := bech32.EncodeM(addressPrefix+networkID, data)
	if err != nil {
		return "", fmt.Errorf("failed to encode address: %w", err)
	}
	return address, nil
}

// Address returns the bech32m unshielded address
func (w *Wallet) Address() string {
	return w.address
}

// PublicKey returns the compressed public key
func (w *Wallet) PublicKey() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrWalletClosed
	}
	return crypto.CompressPubkey(&w.key.PublicKey), nil
}

// Sign signs a 32 byte digest
func (w *Wallet) Sign(digest []byte) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrWalletClosed
	}
	return crypto.Sign(digest, w.key)
}

func (w *Wallet) attach(p *Providers) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWalletClosed
	}
	w.providers = p
	return nil
}

// Close drops the key and closes any providers. Calling Close twice is a no-op.
func (w *Wallet) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	w.key = nil
	if w.providers != nil {
		w.providers.close()
		w.providers = nil
	}
	return nil
}
