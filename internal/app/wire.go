//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/counter-cli/internal/adapters"
	"github.com/trebuchet-org/counter-cli/internal/config"
	"github.com/trebuchet-org/counter-cli/internal/logging"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// InitApp creates a fully wired App instance. The cleanup closes the run log.
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewMirrorArtifacts,
		usecase.NewShowDeployment,
		usecase.NewCheckNetwork,

		// App
		NewApp,
	)
	return nil, nil, nil
}
