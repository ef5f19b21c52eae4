package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/counter-cli/internal/adapters/fs"
	"github.com/trebuchet-org/counter-cli/internal/adapters/interactive"
	"github.com/trebuchet-org/counter-cli/internal/adapters/midnight"
	"github.com/trebuchet-org/counter-cli/internal/adapters/network"
	"github.com/trebuchet-org/counter-cli/internal/adapters/signals"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.ProvideFilesystem,

	fs.NewRecordStoreAdapter,
	wire.Bind(new(usecase.DeploymentRecordStore), new(*fs.RecordStoreAdapter)),

	fs.NewDirectoryMirrorAdapter,
	wire.Bind(new(usecase.DirectoryMirror), new(*fs.DirectoryMirrorAdapter)),
)

// MidnightSet provides the wallet and contract SDK
var MidnightSet = wire.NewSet(
	midnight.NewSDK,
	wire.Bind(new(usecase.WalletSDK), new(*midnight.SDK)),
)

// NetworkSet provides endpoint probing
var NetworkSet = wire.NewSet(
	network.NewProber,
	wire.Bind(new(usecase.EndpointProber), new(*network.Prober)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewPrompterAdapter,
	wire.Bind(new(usecase.Prompter), new(*interactive.PrompterAdapter)),
)

// SignalsSet provides process signal handling
var SignalsSet = wire.NewSet(
	signals.NewWaiter,
	wire.Bind(new(usecase.TerminationWaiter), new(*signals.Waiter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	MidnightSet,
	NetworkSet,
	InteractiveSet,
	SignalsSet,
)
