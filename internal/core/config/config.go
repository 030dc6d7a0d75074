package config

import (
	"time"

	redisclient "github.com/agrifield/advisor/internal/infra/redis"
	"github.com/agrifield/advisor/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server    ServerConfig       `yaml:"server"`
	Logging   LoggingConfig      `yaml:"logging"`
	Redis     redisclient.Config `yaml:"redis"`
	Database  postgres.Config    `yaml:"database"`
	Providers []ProviderConfig   `yaml:"providers"`
	Recovery  RecoveryConfig     `yaml:"recovery"`
	Decision  DecisionConfig     `yaml:"decision"`
	Retention time.Duration      `yaml:"retention_period"` // 0 = infinite
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// ProviderConfig holds settings for an external data provider.
type ProviderConfig struct {
	Name     string        `yaml:"name"`
	URL      string        `yaml:"url"`
	Protocol string        `yaml:"protocol"` // http (default) or grpc
	Timeout  time.Duration `yaml:"timeout"`
}

// RecoveryConfig holds error recovery settings.
type RecoveryConfig struct {
	HistorySize int `yaml:"history_size"` // bounded error history cap
	MaxRetries  int `yaml:"max_retries"`  // default for contexts without a per-type config
}

// DecisionConfig holds decision engine settings.
type DecisionConfig struct {
	DefaultRule     string  `yaml:"default_rule"`
	MaxAlternatives int     `yaml:"max_alternatives"`
	CostCeiling     float64 `yaml:"cost_ceiling"` // 0 = derive from the candidate set
	ConfidenceCap   float64 `yaml:"confidence_cap"`
}
