package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/counter-cli/internal/domain"
)

func newTestCmd(annotations map[string]string) *cobra.Command {
	cmd := &cobra.Command{Use: "deploy", Annotations: annotations}
	cmd.Flags().Bool("debug", false, "")
	cmd.Flags().Bool("non-interactive", false, "")
	cmd.Flags().StringP("network", "n", "", "")
	cmd.Flags().String("project-root", "", "")
	cmd.Flags().String("root", "", "")
	cmd.Flags().String("contract-dir", "", "")
	cmd.Flags().String("dest", "", "")
	cmd.Flags().Duration("timeout", 30*time.Second, "")
	return cmd
}

func TestProvider_Defaults(t *testing.T) {
	root := t.TempDir()
	v := SetupViper(root, newTestCmd(nil))

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	require.NotNil(t, cfg.Network)
	assert.Equal(t, "local", cfg.Network.Name)
	assert.Equal(t, "undeployed", cfg.Network.NetworkID)
	assert.Equal(t, domain.ProviderEndpoints{
		Indexer:     LocalIndexer,
		IndexerWS:   LocalIndexerWS,
		Node:        LocalNode,
		ProofServer: LocalProofServer,
	}, cfg.Network.Endpoints)

	assert.Equal(t, filepath.Join(filepath.Dir(root), "counter-contract", "src", "managed", "counter"), cfg.Assets.ContractDir)
	assert.Equal(t, filepath.Join(root, "public", "midnight", "counter"), cfg.Assets.PublicDir)
	assert.Equal(t, filepath.Join(filepath.Dir(root), "counter-contract", "dist"), cfg.Assets.DistDir)
	assert.Equal(t, filepath.Join(root, "src", "contract"), cfg.Assets.VendorDir)
}

func TestProvider_EnvironmentOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv("COUNTER_NODE", "http://node.internal:9944")
	t.Setenv("COUNTER_PROOF_SERVER", "http://prover.internal:6300")
	t.Setenv("COUNTER_WALLET_SEED", " abc ")

	cfg, err := Provider(SetupViper(root, newTestCmd(nil)))
	require.NoError(t, err)

	assert.Equal(t, "http://node.internal:9944", cfg.Network.Endpoints.Node)
	assert.Equal(t, "http://prover.internal:6300", cfg.Network.Endpoints.ProofServer)
	assert.Equal(t, LocalIndexer, cfg.Network.Endpoints.Indexer)
	assert.Equal(t, "abc", cfg.WalletSeed)
}

func TestProvider_Flags(t *testing.T) {
	root := t.TempDir()
	cmd := newTestCmd(nil)
	require.NoError(t, cmd.ParseFlags([]string{
		"--root", "/srv/frontend",
		"--contract-dir", "/srv/build/counter",
		"--dest", "/srv/vendor",
		"--non-interactive",
		"--timeout", "5s",
	}))

	cfg, err := Provider(SetupViper(root, cmd))
	require.NoError(t, err)

	assert.True(t, cfg.NonInteractive)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "/srv/build/counter", cfg.Assets.ContractDir)
	assert.Equal(t, "/srv/frontend/public/midnight/counter", cfg.Assets.PublicDir)
	assert.Equal(t, "/srv/counter-contract/dist", cfg.Assets.DistDir)
	assert.Equal(t, "/srv/vendor", cfg.Assets.VendorDir)
}

func TestProvider_RunLog(t *testing.T) {
	root := t.TempDir()
	cfg, err := Provider(SetupViper(root, newTestCmd(map[string]string{RunLogKey: "true"})))
	require.NoError(t, err)

	require.NotEmpty(t, cfg.LogFile)
	assert.Equal(t, filepath.Join(root, "logs", "deploy"), filepath.Dir(cfg.LogFile))
	assert.NotContains(t, filepath.Base(cfg.LogFile), ":")
}

func TestProvider_UnknownNetwork(t *testing.T) {
	root := t.TempDir()
	cmd := newTestCmd(nil)
	require.NoError(t, cmd.ParseFlags([]string{"--network", "locl"}))

	_, err := Provider(SetupViper(root, cmd))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
	assert.Contains(t, err.Error(), "did you mean 'local'")
}

func TestRunLogPath(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 890_000_000, time.UTC)
	assert.Equal(t,
		filepath.Join("/project", "logs", "deploy", "2025-03-04T05-06-07.890Z.log"),
		RunLogPath("/project", at))
}

func TestNetworkResolver(t *testing.T) {
	t.Run("local only without counter.toml", func(t *testing.T) {
		r, err := NewNetworkResolver(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, []string{"local"}, r.Names())
	})

	t.Run("file adds networks and overrides local", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv("TESTNET_INDEXER", "https://indexer.testnet.example/api/v3/graphql")
		require.NoError(t, os.WriteFile(filepath.Join(root, NetworksFile), []byte(`
[networks.local]
proof_server = "http://127.0.0.1:6301"

[networks.testnet]
network_id = "testnet"
indexer = "${TESTNET_INDEXER}"
indexer_ws = "wss://indexer.testnet.example/api/v3/graphql/ws"
node = "https://rpc.testnet.example"
proof_server = "http://127.0.0.1:6300"
`), 0644))

		r, err := NewNetworkResolver(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"local", "testnet"}, r.Names())

		local, err := r.Resolve("local")
		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:6301", local.Endpoints.ProofServer)
		assert.Equal(t, LocalNode, local.Endpoints.Node)

		testnet, err := r.Resolve("TESTNET")
		require.NoError(t, err)
		assert.Equal(t, "testnet", testnet.NetworkID)
		assert.Equal(t, "https://indexer.testnet.example/api/v3/graphql", testnet.Endpoints.Indexer)
	})

	t.Run("resolve returns a copy", func(t *testing.T) {
		r, err := NewNetworkResolver(t.TempDir())
		require.NoError(t, err)
		first, err := r.Resolve("local")
		require.NoError(t, err)
		first.Endpoints.Node = "changed"

		second, err := r.Resolve("local")
		require.NoError(t, err)
		assert.Equal(t, LocalNode, second.Endpoints.Node)
	})

	t.Run("invalid toml", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, NetworksFile), []byte("[networks\n"), 0644))
		_, err := NewNetworkResolver(root)
		require.Error(t, err)
	})

	t.Run("suggestions for near misses", func(t *testing.T) {
		r, err := NewNetworkResolver(t.TempDir())
		require.NoError(t, err)

		_, err = r.Resolve("localnet")
		var unknown domain.UnknownNetworkErr
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, []string{"local"}, unknown.Suggestions)

		_, err = r.Resolve("mainnet")
		require.ErrorAs(t, err, &unknown)
		assert.Empty(t, unknown.Suggestions)
	})
}

func TestExpandEnvRefs(t *testing.T) {
	t.Setenv("PROOF_HOST", "prover")
	assert.Equal(t, "http://prover:6300", ExpandEnvRefs("http://${PROOF_HOST}:6300"))
	assert.Equal(t, "$PROOF_HOST", ExpandEnvRefs("$PROOF_HOST"))
}
