// Package provider implements external advisory data providers.
//
// This package contains:
//   - Provider interface: core abstraction for external data sources
//   - HTTPProvider: JSON-over-HTTP implementation
//   - GRPCProvider: gRPC implementation
//   - Chain: ordered failover across providers
package provider

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// Query represents a request against an external data source
// (geocoding, weather, soil survey). It abstracts the transport so
// the failover chain can treat providers uniformly.
type Query struct {
	// Kind identifies the lookup (e.g., "geocode", "weather", "soil")
	Kind string

	// Params for HTTP providers; serialized into the request body.
	Params map[string]string

	// GRPCHandler wraps a generated-client call for gRPC providers.
	// HTTP providers ignore it; gRPC providers require it.
	GRPCHandler func(ctx context.Context, conn grpc.ClientConnInterface) (any, error)
}

// Provider defines the core interface for any external data provider.
type Provider interface {
	// GetName returns the provider identifier (e.g., "nominatim", "openmeteo")
	GetName() string

	// GetHealth returns current health metrics
	GetHealth() HealthStatus

	// IsAvailable checks if the provider is healthy enough to use
	IsAvailable() bool

	// Close cleans up resources
	Close() error
}

// Resolver extends Provider with generic query resolution.
// HTTP providers implement it directly; gRPC providers resolve only
// queries carrying a GRPCHandler.
type Resolver interface {
	Provider

	// Resolve executes a single query
	Resolve(ctx context.Context, q Query) (any, error)
}

// HealthStatus represents the health state of a provider.
type HealthStatus struct {
	Available     bool          `json:"available"`
	Latency       time.Duration `json:"latency"`
	ErrorRate     float64       `json:"error_rate"`
	LastSuccessAt time.Time     `json:"last_success_at"`
	LastFailureAt time.Time     `json:"last_failure_at"`
}
