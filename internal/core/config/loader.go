package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if necessary
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Recovery.HistorySize == 0 {
		cfg.Recovery.HistorySize = 500
	}
	if cfg.Recovery.MaxRetries == 0 {
		cfg.Recovery.MaxRetries = 3
	}
	if cfg.Decision.DefaultRule == "" {
		cfg.Decision.DefaultRule = "weighted_sum"
	}
	if cfg.Decision.MaxAlternatives == 0 {
		cfg.Decision.MaxAlternatives = 5
	}
	if cfg.Decision.ConfidenceCap == 0 {
		cfg.Decision.ConfidenceCap = 0.95
	}

	for i := range cfg.Providers {
		if cfg.Providers[i].Protocol == "" {
			cfg.Providers[i].Protocol = "http"
		}
		if cfg.Providers[i].Timeout == 0 {
			cfg.Providers[i].Timeout = 30 * time.Second
		}
	}

	return &cfg, nil
}
