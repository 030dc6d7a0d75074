package health

import (
	"context"
	"sync"
	"time"

	"github.com/agrifield/advisor/internal/infra/provider"
	"github.com/agrifield/advisor/internal/recovery"
)

// Pinger checks connectivity of a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Monitor aggregates health status from the advisory subsystems.
type Monitor struct {
	db         Pinger // nil when running on in-memory storage
	cache      Pinger // nil when no redis is configured
	chain      *provider.Chain
	history    *recovery.History
	lastCheck  time.Time
	lastReport *Report
	mu         sync.Mutex
}

// NewMonitor creates a new health monitor.
func NewMonitor(db, cache Pinger, chain *provider.Chain, history *recovery.History) *Monitor {
	return &Monitor{
		db:      db,
		cache:   cache,
		chain:   chain,
		history: history,
	}
}

// CheckHealth performs a health check across all subsystems.
func (m *Monitor) CheckHealth(ctx context.Context) *Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Rate limit checks to avoid hammering the backing services
	if time.Since(m.lastCheck) < 10*time.Second && m.lastReport != nil {
		return m.lastReport
	}

	report := &Report{
		SystemStatus: StatusHealthy,
		Subsystems:   make(map[string]SubsystemHealth),
	}

	if m.db != nil {
		report.Subsystems["database"] = pingHealth(ctx, "database", m.db)
	}
	if m.cache != nil {
		report.Subsystems["cache"] = pingHealth(ctx, "cache", m.cache)
	}

	if m.chain != nil {
		report.Subsystems["providers"] = m.providerHealth()
	}

	if m.history != nil {
		report.RecentErrors = m.history.Len()
	}

	// Aggregate status (worst case wins)
	for _, sub := range report.Subsystems {
		if sub.Status == StatusCritical {
			report.SystemStatus = StatusCritical
			break
		}
		if sub.Status == StatusDegraded {
			report.SystemStatus = StatusDegraded
		}
	}

	m.lastCheck = time.Now()
	m.lastReport = report
	return report
}

func pingHealth(ctx context.Context, name string, p Pinger) SubsystemHealth {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := p.Ping(pingCtx); err != nil {
		return SubsystemHealth{Name: name, Status: StatusCritical, Detail: err.Error()}
	}
	return SubsystemHealth{Name: name, Status: StatusHealthy}
}

// providerHealth degrades when some providers are down and goes
// critical when none are available.
func (m *Monitor) providerHealth() SubsystemHealth {
	providers := m.chain.Providers()
	if len(providers) == 0 {
		return SubsystemHealth{Name: "providers", Status: StatusHealthy, Detail: "none configured"}
	}

	available := 0
	for _, p := range providers {
		if p.IsAvailable() {
			available++
		}
	}

	sub := SubsystemHealth{Name: "providers", Status: StatusHealthy}
	switch {
	case available == 0:
		sub.Status = StatusCritical
		sub.Detail = "no providers available"
	case available < len(providers):
		sub.Status = StatusDegraded
		sub.Detail = "some providers unavailable"
	}
	return sub
}
