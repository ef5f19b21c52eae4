package app

import (
	"log/slog"

	"github.com/trebuchet-org/counter-cli/internal/domain/config"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployContract  *usecase.DeployContract
	MirrorArtifacts *usecase.MirrorArtifacts
	ShowDeployment  *usecase.ShowDeployment
	CheckNetwork    *usecase.CheckNetwork
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployContract *usecase.DeployContract,
	mirrorArtifacts *usecase.MirrorArtifacts,
	showDeployment *usecase.ShowDeployment,
	checkNetwork *usecase.CheckNetwork,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		DeployContract:  deployContract,
		MirrorArtifacts: mirrorArtifacts,
		ShowDeployment:  showDeployment,
		CheckNetwork:    checkNetwork,
	}, nil
}
