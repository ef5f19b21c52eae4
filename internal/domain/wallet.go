package domain

import (
	"github.com/holiman/uint256"
)

// SeedLength is the number of hex characters in a wallet seed (32 bytes)
const SeedLength = 64

// GenesisWalletSeed is the publicly known seed funded at genesis on local test networks.
// Never use it for real funds.
const GenesisWalletSeed WalletSeed = "0000000000000000000000000000000000000000000000000000000000000001"

// WalletSeed is the hex secret a wallet's keys are derived from
type WalletSeed string

// Validate checks the seed length. The charset is left to the SDK.
func (s WalletSeed) Validate() error {
	if len(s) != SeedLength {
		return SeedLengthErr{Length: len(s)}
	}
	return nil
}

// SeedSource records where a seed came from
type SeedSource string

const (
	SeedSourceGenesis     SeedSource = "genesis"
	SeedSourcePrompt      SeedSource = "prompt"
	SeedSourceEnvironment SeedSource = "environment"
)

// WalletBalance holds the synced balance of a wallet
type WalletBalance struct {
	Total *uint256.Int
	Token string
}

// String formats the balance as "<total> <token>"
func (b *WalletBalance) String() string {
	if b == nil || b.Total == nil {
		return "0"
	}
	if b.Token == "" {
		return b.Total.Dec()
	}
	return b.Total.Dec() + " " + b.Token
}
