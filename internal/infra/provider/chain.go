package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/agrifield/advisor/internal/metrics"
)

// Chain tries providers in order until one resolves the query.
type Chain struct {
	mu        sync.RWMutex
	providers []Provider
}

// NewChain creates a failover chain over the given providers.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Add appends a provider to the chain.
func (c *Chain) Add(p Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers = append(c.providers, p)
}

// Providers returns the current provider list.
func (c *Chain) Providers() []Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Provider, len(c.providers))
	copy(out, c.providers)
	return out
}

// Resolve tries each available provider in order and returns the
// first successful result.
func (c *Chain) Resolve(ctx context.Context, q Query) (any, error) {
	providers := c.Providers()
	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers configured")
	}

	var lastErr error
	for _, p := range providers {
		resolver, ok := p.(Resolver)
		if !ok {
			continue
		}
		if !p.IsAvailable() {
			continue
		}

		result, err := resolver.Resolve(ctx, q)
		if err == nil {
			metrics.ProviderCalls.WithLabelValues(p.GetName(), "success").Inc()
			return result, nil
		}

		metrics.ProviderCalls.WithLabelValues(p.GetName(), "failure").Inc()
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	if lastErr == nil {
		return nil, fmt.Errorf("no available providers for query %q", q.Kind)
	}
	return nil, fmt.Errorf("all providers failed: %w", lastErr)
}

// Close closes every provider in the chain.
func (c *Chain) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for _, p := range c.providers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
