package ai

import (
	"os"
	"time"

	"go.uber.org/zap"
)

const (
	// EnvMode is the environment variable name for mode selection.
	EnvMode = "AQLHR_MODE"
	// ModeMock indicates the mock client should be used.
	ModeMock = "MOCK"
)

// NewClient creates a generation client based on the AQLHR_MODE
// environment variable: MOCK returns the deterministic mock, anything
// else the real HTTP client.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) Client {
	if os.Getenv(EnvMode) == ModeMock {
		logger.Info("AQLHR_MODE=MOCK detected, using mock generation client")
		return NewMockClient()
	}
	return NewHTTPClient(baseURL, apiKey, timeout)
}
