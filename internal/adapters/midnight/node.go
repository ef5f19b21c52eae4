package midnight

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// NodeHealth is the node's system_health answer
type NodeHealth struct {
	Peers           int  `json:"peers"`
	IsSyncing       bool `json:"isSyncing"`
	ShouldHavePeers bool `json:"shouldHavePeers"`
}

// NodeClient submits transactions to the node over JSON-RPC
type NodeClient struct {
	rpc *rpc.Client
}

// DialNode connects to the node RPC endpoint (http or ws)
func DialNode(ctx context.Context, url string) (*NodeClient, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial node %s: %w", url, err)
	}
	return &NodeClient{rpc: client}, nil
}

// Chain returns the chain name the node runs
func (n *NodeClient) Chain(ctx context.Context) (string, error) {
	var chain string
	if err := n.rpc.CallContext(ctx, &chain, "system_chain"); err != nil {
		return "", fmt.Errorf("system_chain failed: %w", err)
	}
	return chain, nil
}

// Health returns the node health report
func (n *NodeClient) Health(ctx context.Context) (*NodeHealth, error) {
	var health NodeHealth
	if err := n.rpc.CallContext(ctx, &health, "system_health"); err != nil {
		return nil, fmt.Errorf("system_health failed: %w", err)
	}
	return &health, nil
}

// SubmitTransaction submits a proven transaction and returns its hash
func (n *NodeClient) SubmitTransaction(ctx context.Context, tx []byte) (string, error) {
	var hash string
	if err := n.rpc.CallContext(ctx, &hash, "author_submitExtrinsic", hexutil.Encode(tx)); err != nil {
		return "", fmt.Errorf("author_submitExtrinsic failed: %w", err)
	}
	return hash, nil
}

// Close closes the RPC connection
func (n *NodeClient) Close() {
	n.rpc.Close()
}
