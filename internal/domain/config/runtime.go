package config

import (
	"time"

	"github.com/trebuchet-org/counter-cli/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	LogFile     string // per-run log file, empty when the command keeps no run log

	// Context settings
	Network *Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Format         string
	Timeout        time.Duration

	// WalletSeed is an operator-provided seed from the environment, skipping the prompt
	WalletSeed string

	// Asset layout
	Assets AssetPaths
}

// Network represents a resolved network profile
type Network struct {
	Name      string
	Endpoints domain.ProviderEndpoints
	// NetworkID selects the address prefix (mn_addr_<id>)
	NetworkID string
}

// AssetPaths holds the directories used by the asset mirror commands
type AssetPaths struct {
	// ContractDir is the managed contract output (keys, zkir)
	ContractDir string
	// PublicDir receives the keys and zkir directories
	PublicDir string
	// DistDir is the compiled contract package
	DistDir string
	// VendorDir receives the vendored contract package
	VendorDir string
}
