// Package worker holds background maintenance loops.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/agrifield/advisor/internal/infra/storage"
)

// Pruner deletes old audit data based on retention policy.
type Pruner struct {
	retention time.Duration
	errorLog  storage.ErrorLogRepository
	decisions storage.DecisionRepository
	log       *slog.Logger
}

// NewPruner creates a new Pruner worker. A zero retention disables it.
func NewPruner(
	retention time.Duration,
	errorLog storage.ErrorLogRepository,
	decisions storage.DecisionRepository,
) *Pruner {
	return &Pruner{
		retention: retention,
		errorLog:  errorLog,
		decisions: decisions,
		log:       slog.Default().With("component", "pruner"),
	}
}

// Start runs the pruner loop.
func (p *Pruner) Start(ctx context.Context) {
	if p.retention <= 0 {
		return // Retention disabled
	}

	// Check interval: 10% of the retention period, clamped to [1m, 1h]
	interval := min(p.retention/10, 1*time.Hour)
	interval = max(interval, 1*time.Minute)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial prune
	p.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *Pruner) prune(ctx context.Context) {
	cutoff := time.Now().Add(-p.retention)

	if p.errorLog != nil {
		if n, err := p.errorLog.DeleteOlderThan(ctx, cutoff); err != nil {
			p.log.Error("Failed to prune error log", "error", err)
		} else if n > 0 {
			p.log.Info("Pruned error log", "deleted", n)
		}
	}

	if p.decisions != nil {
		if n, err := p.decisions.DeleteOlderThan(ctx, cutoff); err != nil {
			p.log.Error("Failed to prune decisions", "error", err)
		} else if n > 0 {
			p.log.Info("Pruned decisions", "deleted", n)
		}
	}
}
