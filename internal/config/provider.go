package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/domain/config"
)

// RunLogKey is set by commands that keep a per-run log file
const RunLogKey = "run_log"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project-root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non-interactive"),
		JSON:           v.GetBool("json"),
		Format:         v.GetString("format"),
		Timeout:        v.GetDuration("timeout"),
		WalletSeed:     strings.TrimSpace(v.GetString("wallet_seed")),
		Assets:         resolveAssetPaths(v, projectRoot),
	}

	// Load .env files before expanding counter.toml
	LoadEnvFiles(projectRoot)

	resolver, err := NewNetworkResolver(projectRoot)
	if err != nil {
		return nil, err
	}
	networkName := v.GetString("network")
	if networkName == "" {
		networkName = domain.LocalNetworkLabel
	}
	network, err := resolver.Resolve(networkName)
	if err != nil {
		return nil, err
	}
	applyEndpointOverrides(v, network)
	cfg.Network = network

	if v.GetBool(RunLogKey) {
		cfg.LogFile = RunLogPath(projectRoot, time.Now())
	}

	return cfg, nil
}

// applyEndpointOverrides lets COUNTER_INDEXER and friends replace single endpoints
func applyEndpointOverrides(v *viper.Viper, network *config.Network) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"indexer", &network.Endpoints.Indexer},
		{"indexer_ws", &network.Endpoints.IndexerWS},
		{"node", &network.Endpoints.Node},
		{"proof_server", &network.Endpoints.ProofServer},
		{"network_id", &network.NetworkID},
	}
	for _, o := range overrides {
		if value := v.GetString(o.key); value != "" {
			*o.dst = value
		}
	}
}

// resolveAssetPaths computes the copier directories. Explicit flags win over the asset root layout.
func resolveAssetPaths(v *viper.Viper, projectRoot string) config.AssetPaths {
	root := v.GetString("root")
	if root == "" {
		root = projectRoot
	}
	contractRoot := filepath.Join(root, "..", "counter-contract")

	paths := config.AssetPaths{
		ContractDir: filepath.Join(contractRoot, "src", "managed", "counter"),
		PublicDir:   filepath.Join(root, "public", "midnight", "counter"),
		DistDir:     filepath.Join(contractRoot, "dist"),
		VendorDir:   filepath.Join(root, "src", "contract"),
	}
	if dir := v.GetString("contract-dir"); dir != "" {
		paths.ContractDir = dir
	}
	if dir := v.GetString("public-dir"); dir != "" {
		paths.PublicDir = dir
	}
	if dir := v.GetString("dist-dir"); dir != "" {
		paths.DistDir = dir
	}
	if dir := v.GetString("dest"); dir != "" {
		paths.VendorDir = dir
	}
	return paths
}

// RunLogPath returns the per-run log file under <root>/logs/deploy
func RunLogPath(projectRoot string, at time.Time) string {
	name := strings.ReplaceAll(domain.FormatTimestamp(at), ":", "-") + ".log"
	return filepath.Join(projectRoot, "logs", "deploy", name)
}

// FindProjectRoot walks up from the current directory to find counter.toml.
// Without one, the current directory is the project root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, NetworksFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("COUNTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("network", domain.LocalNetworkLabel)
	v.SetDefault("timeout", "30s")
	v.SetDefault("debug", false)
	v.SetDefault("non-interactive", false)
	v.SetDefault("project-root", projectRoot)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		err := v.BindPFlag(f.Name, f)
		if err != nil {
			panic(err)
		}
	})

	if _, ok := cmd.Annotations[RunLogKey]; ok {
		v.Set(RunLogKey, true)
	}

	return v
}
