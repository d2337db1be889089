// Package ai provides the client for the external AI text-generation
// service. The service is treated as an opaque capability: a prompt plus
// structured context in, free-form analysis text out.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client defines the interface for AI text generation.
type Client interface {
	Generate(ctx context.Context, req *Request) (*Generation, error)
}

// Request is the generation request.
type Request struct {
	Prompt   string         `json:"prompt"`
	Context  map[string]any `json:"context,omitempty"`
	TenantID string         `json:"tenant_id,omitempty"`
}

// Generation is the generation response.
type Generation struct {
	Analysis        string   `json:"analysis"`
	Insights        []string `json:"insights,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Confidence      int      `json:"confidence"`
}

// ErrorResponse is the service's error envelope.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// APIError carries the error details.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// HTTPClient talks to the AI service over HTTP.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Ensure HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTP generation client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate sends a generation request.
func (c *HTTPClient) Generate(ctx context.Context, req *Request) (*Generation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return nil, fmt.Errorf("generation service error (%d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("generation service returned status %d", resp.StatusCode)
	}

	var gen Generation
	if err := json.Unmarshal(respBody, &gen); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &gen, nil
}
