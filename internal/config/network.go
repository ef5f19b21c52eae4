package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/counter-cli/internal/domain"
	"github.com/trebuchet-org/counter-cli/internal/domain/config"
)

// NetworksFile is the optional network profile file at the project root
const NetworksFile = "counter.toml"

// Endpoints of the standalone local network started by the docker compose stack
const (
	LocalIndexer     = "http://127.0.0.1:8088/api/v3/graphql"
	LocalIndexerWS   = "ws://127.0.0.1:8088/api/v3/graphql/ws"
	LocalNode        = "http://127.0.0.1:9944"
	LocalProofServer = "http://127.0.0.1:6300"
	LocalNetworkID   = "undeployed"
)

// envVarPattern matches ${VAR_NAME} references in TOML values
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// NetworkTOML is one [networks.<name>] table
type NetworkTOML struct {
	NetworkID   string `toml:"network_id"`
	Indexer     string `toml:"indexer"`
	IndexerWS   string `toml:"indexer_ws"`
	Node        string `toml:"node"`
	ProofServer string `toml:"proof_server"`
}

// NetworksTOML represents the raw counter.toml structure
type NetworksTOML struct {
	Networks map[string]NetworkTOML `toml:"networks"`
}

// NetworkResolver resolves network names to endpoint profiles
type NetworkResolver struct {
	networks map[string]*config.Network
}

// LocalNetwork returns the built-in local network profile
func LocalNetwork() *config.Network {
	return &config.Network{
		Name:      domain.LocalNetworkLabel,
		NetworkID: LocalNetworkID,
		Endpoints: domain.ProviderEndpoints{
			Indexer:     LocalIndexer,
			IndexerWS:   LocalIndexerWS,
			Node:        LocalNode,
			ProofServer: LocalProofServer,
		},
	}
}

// LoadEnvFiles loads .env and .env.local from the project root. Existing variables win.
func LoadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// NewNetworkResolver loads counter.toml from projectRoot if present.
// The local network is always available and may be overridden by the file.
func NewNetworkResolver(projectRoot string) (*NetworkResolver, error) {
	r := &NetworkResolver{
		networks: map[string]*config.Network{
			domain.LocalNetworkLabel: LocalNetwork(),
		},
	}

	path := filepath.Join(projectRoot, NetworksFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return r, nil
	}

	var raw NetworksTOML
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", NetworksFile, err)
	}

	for name, n := range raw.Networks {
		network := &config.Network{Name: name}
		if base, ok := r.networks[name]; ok {
			*network = *base
		}
		overlay(&network.NetworkID, n.NetworkID)
		overlay(&network.Endpoints.Indexer, n.Indexer)
		overlay(&network.Endpoints.IndexerWS, n.IndexerWS)
		overlay(&network.Endpoints.Node, n.Node)
		overlay(&network.Endpoints.ProofServer, n.ProofServer)
		r.networks[name] = network
	}

	return r, nil
}

// overlay replaces dst with the env-expanded value when it is set
func overlay(dst *string, value string) {
	if value == "" {
		return
	}
	*dst = ExpandEnvRefs(value)
}

// ExpandEnvRefs expands ${VAR} references. Bare $VAR is left alone.
func ExpandEnvRefs(value string) string {
	return envVarPattern.ReplaceAllStringFunc(value, func(ref string) string {
		name := envVarPattern.FindStringSubmatch(ref)[1]
		return os.Getenv(name)
	})
}

// Names returns the configured network names, sorted
func (r *NetworkResolver) Names() []string {
	names := make([]string, 0, len(r.networks))
	for name := range r.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns a copy of the named network profile
func (r *NetworkResolver) Resolve(name string) (*config.Network, error) {
	network, ok := r.networks[name]
	if !ok {
		network, ok = r.networks[strings.ToLower(name)]
	}
	if !ok {
		return nil, domain.UnknownNetworkErr{Name: name, Suggestions: r.suggest(name)}
	}
	resolved := *network
	return &resolved, nil
}

// suggest returns configured names that fuzzily match name, best first
func (r *NetworkResolver) suggest(name string) []string {
	names := r.Names()
	var suggestions []string
	for _, match := range fuzzy.Find(strings.ToLower(name), names) {
		suggestions = append(suggestions, match.Str)
	}
	if len(suggestions) > 0 {
		return suggestions
	}
	// Fall back to names the input starts with, e.g. "localnet"
	for _, candidate := range names {
		if strings.HasPrefix(strings.ToLower(name), candidate) {
			suggestions = append(suggestions, candidate)
		}
	}
	return suggestions
}
