package midnight

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ProofServerClient asks the proof server to prove transactions
type ProofServerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewProofServerClient creates a new proof server client
func NewProofServerClient(baseURL string, httpClient *http.Client) *ProofServerClient {
	return &ProofServerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Prove sends an unproven transaction and returns the proven transaction bytes
func (c *ProofServerClient) Prove(ctx context.Context, unproven []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/prove-tx", bytes.NewReader(unproven))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("proof server request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read proof: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("proof server returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("proof server returned an empty proof")
	}
	return body, nil
}

// Health checks the proof server health endpoint
func (c *ProofServerClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("proof server request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("proof server unhealthy: HTTP %d", resp.StatusCode)
	}
	return nil
}
