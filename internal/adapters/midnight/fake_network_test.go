package midnight

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/websocket"
	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/domain/config"
)

// fakeNetwork serves the indexer, node and proof server endpoints of a local network
type fakeNetwork struct {
	t *testing.T

	indexer *httptest.Server
	ws      *httptest.Server
	node    *httptest.Server
	proof   *httptest.Server
	rpc     *rpc.Server

	mu           sync.Mutex
	utxos        []map[string]string
	submitted    []string
	proved       [][]byte
	subscribedTo []string
	blockHeight  uint64
	failProof    bool
}

type systemAPI struct{}

func (systemAPI) Health() NodeHealth {
	return NodeHealth{Peers: 0, IsSyncing: false, ShouldHavePeers: false}
}

func (systemAPI) Chain() string {
	return "Development"
}

type authorAPI struct {
	net *fakeNetwork
}

func (a authorAPI) SubmitExtrinsic(tx string) (string, error) {
	a.net.mu.Lock()
	defer a.net.mu.Unlock()
	a.net.submitted = append(a.net.submitted, tx)
	return "0xfeedface", nil
}

func newFakeNetwork(t *testing.T) *fakeNetwork {
	t.Helper()
	n := &fakeNetwork{t: t, blockHeight: 42}

	n.indexer = httptest.NewServer(http.HandlerFunc(n.serveGraphQL))
	n.ws = httptest.NewServer(http.HandlerFunc(n.serveSubscriptions))

	n.rpc = rpc.NewServer()
	if err := n.rpc.RegisterName("system", systemAPI{}); err != nil {
		t.Fatal(err)
	}
	if err := n.rpc.RegisterName("author", authorAPI{net: n}); err != nil {
		t.Fatal(err)
	}
	n.node = httptest.NewServer(n.rpc)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("We're alive 🎉!"))
	})
	mux.HandleFunc("/prove-tx", n.serveProve)
	n.proof = httptest.NewServer(mux)

	t.Cleanup(n.Close)
	return n
}

func (n *fakeNetwork) Close() {
	n.indexer.Close()
	n.ws.Close()
	n.node.Close()
	n.rpc.Stop()
	n.proof.Close()
}

func (n *fakeNetwork) Network() *config.Network {
	return &config.Network{
		Name:      "local",
		NetworkID: "undeployed",
		Endpoints: domain.ProviderEndpoints{
			Indexer:     n.indexer.URL + "/api/v1/graphql",
			IndexerWS:   "ws" + strings.TrimPrefix(n.ws.URL, "http") + "/api/v1/graphql/ws",
			Node:        n.node.URL,
			ProofServer: n.proof.URL,
		},
	}
}

func (n *fakeNetwork) serveGraphQL(w http.ResponseWriter, r *http.Request) {
	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.Contains(req.Query, "unshieldedUtxos"):
		n.mu.Lock()
		utxos := n.utxos
		n.mu.Unlock()
		if utxos == nil {
			utxos = []map[string]string{}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"unshieldedUtxos": utxos},
		})
	case strings.Contains(req.Query, "__typename"):
		_, _ = w.Write([]byte(`{"data":{"__typename":"Query"}}`))
	default:
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"unknown field"}]}`))
	}
}

func (n *fakeNetwork) serveProve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	n.mu.Lock()
	fail := n.failProof
	n.proved = append(n.proved, body)
	n.mu.Unlock()

	if fail {
		http.Error(w, "proof generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(append([]byte("proven:"), body...))
}

func (n *fakeNetwork) serveSubscriptions(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{Subprotocols: []string{wsProtocol}}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case msgConnectionInit:
			_ = conn.WriteJSON(wsMessage{Type: msgConnectionAck})
		case msgSubscribe:
			var req graphQLRequest
			_ = json.Unmarshal(msg.Payload, &req)
			address, _ := req.Variables["address"].(string)

			n.mu.Lock()
			n.subscribedTo = append(n.subscribedTo, address)
			height := n.blockHeight
			n.mu.Unlock()

			// answer only once the node has seen the transaction
			go n.confirm(conn, msg.ID, address, height)
		}
	}
}

func (n *fakeNetwork) confirm(conn *websocket.Conn, id, address string, height uint64) {
	for i := 0; i < 200; i++ {
		n.mu.Lock()
		seen := len(n.submitted) > 0
		n.mu.Unlock()
		if seen {
			break
		}
		waitABit()
	}

	payload, _ := json.Marshal(map[string]any{
		"data": map[string]any{
			"contractActions": map[string]any{
				"__typename": "ContractDeploy",
				"address":    address,
				"transaction": map[string]any{
					"hash":  "0xfeedface",
					"block": map[string]any{"height": height},
				},
			},
		},
	})
	_ = conn.WriteJSON(wsMessage{ID: id, Type: msgNext, Payload: payload})
}
