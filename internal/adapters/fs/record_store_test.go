package fs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/domain/config"
)

func newTestRecordStore(t *testing.T) (*RecordStoreAdapter, afero.Fs) {
	t.Helper()
	memFs := afero.NewMemMapFs()
	cfg := &config.RuntimeConfig{ProjectRoot: "/project"}
	return NewRecordStoreAdapter(cfg, memFs), memFs
}

func testRecord(address string) *domain.DeploymentRecord {
	return &domain.DeploymentRecord{
		ContractAddress: address,
		DeployedAt:      "2026-10-19T12:00:00.000Z",
		Network:         domain.LocalNetworkLabel,
		WalletAddress:   "mn_addr_undeployed1abc",
		Config: domain.ProviderEndpoints{
			Indexer:     "http://127.0.0.1:8088/api/v3/graphql",
			IndexerWS:   "ws://127.0.0.1:8088/api/v3/graphql/ws",
			Node:        "http://127.0.0.1:9944",
			ProofServer: "http://127.0.0.1:6300",
		},
	}
}

func TestRecordStore_LoadMissing(t *testing.T) {
	store, _ := newTestRecordStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordStore_SaveWritesAllFields(t *testing.T) {
	store, memFs := newTestRecordStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("0200aa")))
	assert.Equal(t, "/project/deployment.json", store.GetPath())

	data, err := afero.ReadFile(memFs, store.GetPath())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.ElementsMatch(t, []string{"contractAddress", "deployedAt", "network", "walletAddress", "config"}, keys(raw))

	cfg, ok := raw["config"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"indexer", "indexerWS", "node", "proofServer"}, keys(cfg))
	assert.Equal(t, "local", raw["network"])

	// pretty printed with two-space indentation
	assert.Contains(t, string(data), "\n  \"contractAddress\": \"0200aa\"")
}

func TestRecordStore_SaveOverwrites(t *testing.T) {
	store, memFs := newTestRecordStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("0200aa")))
	first, err := afero.ReadFile(memFs, store.GetPath())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, testRecord("0200bb")))
	second, err := afero.ReadFile(memFs, store.GetPath())
	require.NoError(t, err)

	assert.Equal(t, len(first), len(second))
	assert.NotContains(t, string(second), "0200aa")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testRecord("0200bb"), loaded)
}

func TestRecordStore_LoadCorrupt(t *testing.T) {
	store, memFs := newTestRecordStore(t)
	require.NoError(t, afero.WriteFile(memFs, store.GetPath(), []byte("{not json"), 0644))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
