package midnight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/holiman/uint256"
	"github.com/trebuchet-org/counter-cli/internal/domain"
)

// NativeToken is the token symbol balances are reported in
const NativeToken = "tSTAR"

const unshieldedBalanceQuery = `query UnshieldedBalance($address: UnshieldedAddress!) {
  unshieldedUtxos(address: $address) {
    value
    tokenType
  }
}`

// IndexerClient talks to the indexer GraphQL HTTP endpoint
type IndexerClient struct {
	url        string
	httpClient *http.Client
}

// NewIndexerClient creates a new indexer client
func NewIndexerClient(url string, httpClient *http.Client) *IndexerClient {
	return &IndexerClient{
		url:        url,
		httpClient: httpClient,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// GraphQLError is returned when the indexer answers with GraphQL errors
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "indexer: " + strings.Join(e.Messages, "; ")
}

// Query runs a GraphQL query and decodes its data into result
func (c *IndexerClient) Query(ctx context.Context, query string, variables map[string]any, result any) error {
	data, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("indexer request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("indexer returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		return toGraphQLError(gqlResp.Errors)
	}

	if result != nil && len(gqlResp.Data) > 0 {
		if err := json.Unmarshal(gqlResp.Data, result); err != nil {
			return fmt.Errorf("failed to decode data: %w", err)
		}
	}
	return nil
}

// UnshieldedBalance sums the native token UTXOs owned by address
func (c *IndexerClient) UnshieldedBalance(ctx context.Context, address string) (*domain.WalletBalance, error) {
	var data struct {
		UnshieldedUtxos []struct {
			Value     string `json:"value"`
			TokenType string `json:"tokenType"`
		} `json:"unshieldedUtxos"`
	}
	if err := c.Query(ctx, unshieldedBalanceQuery, map[string]any{"address": address}, &data); err != nil {
		return nil, err
	}

	total := new(uint256.Int)
	for _, utxo := range data.UnshieldedUtxos {
		if utxo.TokenType != "" && !isNativeToken(utxo.TokenType) {
			continue
		}
		value, err := uint256.FromDecimal(utxo.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid utxo value %q: %w", utxo.Value, err)
		}
		if _, overflow := total.AddOverflow(total, value); overflow {
			return nil, fmt.Errorf("balance overflows 256 bits")
		}
	}

	return &domain.WalletBalance{Total: total, Token: NativeToken}, nil
}

// Ping runs the smallest possible query
func (c *IndexerClient) Ping(ctx context.Context) error {
	var data struct {
		Typename string `json:"__typename"`
	}
	return c.Query(ctx, "query { __typename }", nil, &data)
}

// isNativeToken matches the all-zero native token type
func isNativeToken(tokenType string) bool {
	return strings.Trim(strings.TrimPrefix(tokenType, "0x"), "0") == ""
}
