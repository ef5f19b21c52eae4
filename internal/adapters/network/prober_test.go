package network

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/domain/config"
)

type systemAPI struct{}

func (systemAPI) Chain() string { return "Development" }

func (systemAPI) Health() map[string]any {
	return map[string]any{"peers": 3, "isSyncing": true, "shouldHavePeers": false}
}

func newTestProber() *Prober {
	return NewProber(&config.RuntimeConfig{Timeout: 2 * time.Second}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestProber_Reachable(t *testing.T) {
	ctx := context.Background()
	prober := newTestProber()

	t.Run("indexer", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			_ = json.NewDecoder(r.Body).Decode(&req)
			assert.Contains(t, req["query"], "__typename")
			_, _ = w.Write([]byte(`{"data":{"__typename":"Query"}}`))
		}))
		defer srv.Close()

		status := prober.Probe(ctx, domain.EndpointIndexer, srv.URL)
		assert.True(t, status.Reachable, status.Error)
		assert.Equal(t, domain.EndpointIndexer, status.Kind)
	})

	t.Run("indexer websocket", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			upgrader := websocket.Upgrader{Subprotocols: []string{"graphql-transport-ws"}}
			conn, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			defer conn.Close()
			var msg map[string]any
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			_ = conn.WriteJSON(map[string]string{"type": "connection_ack"})
			_, _, _ = conn.ReadMessage()
		}))
		defer srv.Close()

		status := prober.Probe(ctx, domain.EndpointIndexerWS, "ws"+strings.TrimPrefix(srv.URL, "http"))
		assert.True(t, status.Reachable, status.Error)
	})

	t.Run("node", func(t *testing.T) {
		server := rpc.NewServer()
		require.NoError(t, server.RegisterName("system", systemAPI{}))
		defer server.Stop()
		srv := httptest.NewServer(server)
		defer srv.Close()

		status := prober.Probe(ctx, domain.EndpointNode, srv.URL)
		assert.True(t, status.Reachable, status.Error)
		assert.Equal(t, "Development, 3 peers, syncing", status.Detail)
	})

	t.Run("proof server", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/health" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		status := prober.Probe(ctx, domain.EndpointProofServer, srv.URL)
		assert.True(t, status.Reachable, status.Error)
	})
}

func TestProber_Unreachable(t *testing.T) {
	ctx := context.Background()
	prober := newTestProber()

	t.Run("not configured", func(t *testing.T) {
		status := prober.Probe(ctx, domain.EndpointNode, "")
		assert.False(t, status.Reachable)
		assert.Equal(t, "not configured", status.Error)
	})

	t.Run("unhealthy proof server", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		status := prober.Probe(ctx, domain.EndpointProofServer, srv.URL)
		assert.False(t, status.Reachable)
		assert.Contains(t, status.Error, "503")
	})

	t.Run("closed port", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		status := prober.Probe(ctx, domain.EndpointIndexer, url)
		assert.False(t, status.Reachable)
		assert.NotEmpty(t, status.Error)
	})

	t.Run("unknown kind", func(t *testing.T) {
		status := prober.Probe(ctx, domain.EndpointKind("faucet"), "http://localhost")
		assert.False(t, status.Reachable)
		assert.Contains(t, status.Error, "unknown endpoint kind")
	})
}
