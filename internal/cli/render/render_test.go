package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/usecase"
)

func init() {
	color.NoColor = true
}

func TestNetworkStatusRenderer(t *testing.T) {
	result := &usecase.CheckNetworkResult{
		Network: "local",
		Statuses: []domain.EndpointStatus{
			{Kind: domain.EndpointIndexer, URL: "http://127.0.0.1:8088/api/v3/graphql", Reachable: true, Latency: 3 * time.Millisecond},
			{Kind: domain.EndpointProofServer, URL: "http://127.0.0.1:6300", Error: "connection refused"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewNetworkStatusRenderer(&buf, false).Render(result))

	out := buf.String()
	assert.Contains(t, out, "Indexer")
	assert.Contains(t, out, "Proof Server")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "Some endpoints are unreachable")
	assert.Contains(t, out, "❌ Proof Server unreachable at http://127.0.0.1:6300")
	assert.NotContains(t, out, "Indexer unreachable")
	assert.NotContains(t, out, "All endpoints reachable")
}

func TestDeployRenderer(t *testing.T) {
	result := &usecase.DeployContractResult{
		Record:     &domain.DeploymentRecord{ContractAddress: "0200feed"},
		Contract:   &domain.DeployedContract{ContractAddress: "0200feed", TxHash: "0xabc", BlockHeight: 7},
		RecordPath: "/project/deployment.json",
	}

	var buf bytes.Buffer
	require.NoError(t, NewDeployRenderer(&buf).Render(result))

	out := buf.String()
	assert.Contains(t, out, "CONTRACT DEPLOYED SUCCESSFULLY")
	assert.Contains(t, out, "Contract Address: 0200feed")
	assert.Contains(t, out, "(block 7)")
	assert.Contains(t, out, "Deployment info saved at: /project/deployment.json")
}

func TestMirrorRenderer(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewMirrorRenderer(&buf, "Keys copied successfully")

	require.NoError(t, renderer.Render(&usecase.MirrorArtifactsResult{Skipped: true}))
	assert.Empty(t, buf.String())

	require.NoError(t, renderer.Render(&usecase.MirrorArtifactsResult{Results: []*domain.MirrorResult{
		{Spec: domain.MirrorSpec{Name: "keys", Destination: "/public/keys"}, FilesCopied: 2, BytesCopied: 2048},
		{Spec: domain.MirrorSpec{Name: "zkir"}, SourceMissing: true},
	}}))
	assert.Contains(t, buf.String(), "keys → /public/keys (2 files, 2.0 KiB)")
	assert.NotContains(t, buf.String(), "zkir")
	assert.Contains(t, buf.String(), "Keys copied successfully")
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.5 KiB", humanBytes(1536))
	assert.Equal(t, "3.0 MiB", humanBytes(3*1024*1024))
}
