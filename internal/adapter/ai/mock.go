package ai

import (
	"context"
	"fmt"
)

// MockClient is a deterministic Client for tests and local runs without a
// generation backend.
type MockClient struct{}

// NewMockClient creates a mock generation client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements Client.
var _ Client = (*MockClient)(nil)

// Generate returns a canned analysis derived from the prompt.
func (m *MockClient) Generate(ctx context.Context, req *Request) (*Generation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Generation{
		Analysis: fmt.Sprintf("Mock analysis for: %s", req.Prompt),
		Insights: []string{
			"mock insight derived from collected step results",
		},
		Recommendations: []string{
			"review the figures with the HR operations team",
		},
		Confidence: 80,
	}, nil
}
