package domain

import "time"

// LocalNetworkLabel is the network label written into every deployment record
const LocalNetworkLabel = "local"

// DeploymentRecordFile is the record file name, relative to the project root
const DeploymentRecordFile = "deployment.json"

// CounterState is the initial private state the counter contract is deployed with
type CounterState struct {
	PrivateCounter uint64 `json:"privateCounter"`
}

// ProviderEndpoints is the set of network endpoints a wallet talks to
type ProviderEndpoints struct {
	Indexer     string `json:"indexer" yaml:"indexer"`
	IndexerWS   string `json:"indexerWS" yaml:"indexerWS"`
	Node        string `json:"node" yaml:"node"`
	ProofServer string `json:"proofServer" yaml:"proofServer"`
}

// DeployedContract is what the SDK reports after a successful deployment
type DeployedContract struct {
	ContractAddress string
	TxHash          string
	BlockHeight     uint64
}

// DeploymentRecord is the JSON summary persisted after a successful deployment.
// Created once, written once.
type DeploymentRecord struct {
	ContractAddress string            `json:"contractAddress" yaml:"contractAddress"`
	DeployedAt      string            `json:"deployedAt" yaml:"deployedAt"`
	Network         string            `json:"network" yaml:"network"`
	WalletAddress   string            `json:"walletAddress" yaml:"walletAddress"`
	Config          ProviderEndpoints `json:"config" yaml:"config"`
}

// NewDeploymentRecord assembles a record for a contract deployed at the given time
func NewDeploymentRecord(contractAddress, walletAddress string, endpoints ProviderEndpoints, at time.Time) *DeploymentRecord {
	return &DeploymentRecord{
		ContractAddress: contractAddress,
		DeployedAt:      FormatTimestamp(at),
		Network:         LocalNetworkLabel,
		WalletAddress:   walletAddress,
		Config:          endpoints,
	}
}

// FormatTimestamp renders t as an ISO-8601 UTC timestamp with millisecond precision
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
