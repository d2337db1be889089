// Package config provides configuration for the query pipeline server.
// Defaults are YAML, overridable by an optional config file and AQLHR_*
// environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Config holds the server configuration.
type Config struct {
	HTTPPort int `koanf:"http_port"`

	DatabaseDSN string `koanf:"database_dsn"`

	AIServiceURL string        `koanf:"ai_service_url"`
	AIAPIKey     string        `koanf:"ai_api_key"`
	AITimeout    time.Duration `koanf:"ai_timeout"`

	ToolTimeout         time.Duration `koanf:"tool_timeout"`
	ExecutorWorkers     int           `koanf:"executor_workers"`
	MaxReplanIterations int           `koanf:"max_replan_iterations"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

// defaultConfig is the baseline every load starts from.
const defaultConfig = `
http_port: 8080
database_dsn: "file:aqlhr.db?cache=shared&mode=rwc"
ai_service_url: "http://localhost:8090"
ai_api_key: ""
ai_timeout: 30s
tool_timeout: 10s
executor_workers: 4
max_replan_iterations: 3
log_level: "info"
log_format: "json"
`

// Load builds the configuration from defaults, the optional YAML file at
// configPath, and AQLHR_* environment variables. AQLHR_HTTP_PORT maps to
// http_port, and so on.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider([]byte(defaultConfig)), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("AQLHR_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "AQLHR_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("http_port must be between 1 and 65535, got %d", c.HTTPPort)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database_dsn is required")
	}
	if c.ExecutorWorkers <= 0 {
		return fmt.Errorf("executor_workers must be positive, got %d", c.ExecutorWorkers)
	}
	if c.MaxReplanIterations <= 0 {
		return fmt.Errorf("max_replan_iterations must be positive, got %d", c.MaxReplanIterations)
	}
	if c.ToolTimeout <= 0 {
		return fmt.Errorf("tool_timeout must be positive, got %s", c.ToolTimeout)
	}
	return nil
}
