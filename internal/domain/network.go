package domain

import "time"

// EndpointKind identifies which provider an endpoint belongs to
type EndpointKind string

const (
	EndpointIndexer     EndpointKind = "indexer"
	EndpointIndexerWS   EndpointKind = "indexer ws"
	EndpointNode        EndpointKind = "node"
	EndpointProofServer EndpointKind = "proof server"
)

// EndpointStatus is the result of probing one endpoint
type EndpointStatus struct {
	Kind      EndpointKind  `json:"kind"`
	URL       string        `json:"url"`
	Reachable bool          `json:"reachable"`
	Latency   time.Duration `json:"latency"`
	Detail    string        `json:"detail,omitempty"`
	Error     string        `json:"error,omitempty"`
}
