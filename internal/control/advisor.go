// Package control wires the advisory subsystems together and manages
// their lifecycle.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pressly/goose/v3"

	"github.com/agrifield/advisor/internal/core/config"
	"github.com/agrifield/advisor/internal/core/domain"
	"github.com/agrifield/advisor/internal/decision/engine"
	"github.com/agrifield/advisor/internal/decision/scenario"
	"github.com/agrifield/advisor/internal/health"
	"github.com/agrifield/advisor/internal/infra/provider"
	redisclient "github.com/agrifield/advisor/internal/infra/redis"
	"github.com/agrifield/advisor/internal/infra/storage"
	"github.com/agrifield/advisor/internal/infra/storage/memory"
	"github.com/agrifield/advisor/internal/infra/storage/postgres"
	"github.com/agrifield/advisor/internal/recovery"
	"github.com/agrifield/advisor/internal/worker"
)

// Advisor is the main application struct that manages the advisory
// service lifecycle.
type Advisor struct {
	cfg          *config.AppConfig
	orchestrator *recovery.Orchestrator
	engine       *engine.Engine
	analyzer     *scenario.Analyzer
	chain        *provider.Chain
	healthMon    *health.Monitor
	healthServer *health.Server
	pruner       *worker.Pruner
	db           *postgres.DB
	redisClient  *redisclient.Client
	log          *slog.Logger
}

// NewAdvisor creates a new Advisor instance with all dependencies
// initialized.
func NewAdvisor(ctx context.Context, cfg *config.AppConfig) (*Advisor, error) {

	// 1. Initialize Storage
	var errorRepo storage.ErrorLogRepository
	var decisionRepo storage.DecisionRepository
	var db *postgres.DB

	if cfg.Database.URL != "" {
		var err error
		db, err = postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}

		// Run migrations
		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		if err := goose.Up(db.DB.DB, "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}

		errorRepo = postgres.NewErrorLogRepo(db)
		decisionRepo = postgres.NewDecisionRepo(db)
		slog.Info("Using PostgreSQL storage")
	} else {
		store := memory.NewMemoryStorage()
		errorRepo = memory.NewErrorLogRepo(store)
		decisionRepo = memory.NewDecisionRepo(store)
		slog.Info("Using Memory storage")
	}

	// 2. Initialize Redis cache (optional)
	var redisClient *redisclient.Client
	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("Failed to connect to Redis, cached-data recovery disabled", "error", err)
		}
	}

	// 3. Initialize Provider Failover Chain
	chain := provider.NewChain()
	for _, pc := range cfg.Providers {
		if pc.Protocol == "grpc" {
			grpcProvider, err := provider.NewGRPCProvider(ctx, pc.Name, pc.URL)
			if err != nil {
				return nil, fmt.Errorf("failed to create grpc provider %s: %w", pc.Name, err)
			}
			chain.Add(grpcProvider)
		} else {
			chain.Add(provider.NewHTTPProvider(pc.Name, pc.URL, pc.Timeout))
		}
		slog.Info("Provider registered", "name", pc.Name, "protocol", pc.Protocol)
	}

	// 4. Initialize Recovery Orchestrator
	history := recovery.NewHistory(cfg.Recovery.HistorySize)
	actions := buildActions(chain, redisClient)
	recorder := recovery.RecorderFunc(func(ctx context.Context, rec *domain.ErrorRecord) error {
		return errorRepo.Add(ctx, rec)
	})
	orchestrator := recovery.NewOrchestrator(history, actions, recorder)

	// 5. Initialize Decision Engine and Scenario Analyzer
	eng := engine.New(engine.Config{
		DefaultRule:     domain.DecisionRule(cfg.Decision.DefaultRule),
		MaxAlternatives: cfg.Decision.MaxAlternatives,
		CostCeiling:     cfg.Decision.CostCeiling,
		ConfidenceCap:   cfg.Decision.ConfidenceCap,
	})
	analyzer := scenario.New(eng)

	// 6. Initialize Health Monitor and HTTP Server
	var dbPinger, cachePinger health.Pinger
	if db != nil {
		dbPinger = health.PingerFunc(db.PingContext)
	}
	if redisClient != nil {
		cachePinger = health.PingerFunc(redisClient.Ping)
	}
	healthMon := health.NewMonitor(dbPinger, cachePinger, chain, history)
	healthServer := health.NewServer(healthMon, eng, analyzer, errorRepo, decisionRepo, cfg.Server.Port)

	// 7. Initialize Retention Pruner
	pruner := worker.NewPruner(cfg.Retention, errorRepo, decisionRepo)

	return &Advisor{
		cfg:          cfg,
		orchestrator: orchestrator,
		engine:       eng,
		analyzer:     analyzer,
		chain:        chain,
		healthMon:    healthMon,
		healthServer: healthServer,
		pruner:       pruner,
		db:           db,
		redisClient:  redisClient,
		log:          slog.Default(),
	}, nil
}

// buildActions binds recovery strategies to the infrastructure that
// can serve them. The RETRY action is bound per-call by
// Orchestrator.Run.
func buildActions(chain *provider.Chain, cache *redisclient.Client) recovery.Actions {
	actions := recovery.Actions{
		ManualInput: func(ctx context.Context, ec domain.ErrorContext) (any, error) {
			return recovery.ManualInputMarker(ec), nil
		},
		OfflineMode: func(ctx context.Context, ec domain.ErrorContext) (any, error) {
			return recovery.OfflineModeMarker(ec), nil
		},
	}

	actions.FallbackProvider = func(ctx context.Context, ec domain.ErrorContext) (any, error) {
		kind := ec.Extra["query_kind"]
		if kind == "" {
			return nil, fmt.Errorf("no fallback query for %s", ec.Type)
		}
		params := make(map[string]string, len(ec.Extra))
		for k, v := range ec.Extra {
			if k != "query_kind" {
				params[k] = v
			}
		}
		return chain.Resolve(ctx, provider.Query{Kind: kind, Params: params})
	}

	if cache != nil {
		actions.CachedData = func(ctx context.Context, ec domain.ErrorContext) (any, error) {
			scope := ec.Extra["cache_scope"]
			key := ec.Extra["cache_key"]
			if scope == "" || key == "" {
				return nil, fmt.Errorf("no cache coordinates for %s", ec.Type)
			}
			payload, found, err := cache.GetCached(ctx, scope, key)
			if err != nil {
				return nil, err
			}
			if !found {
				return nil, fmt.Errorf("cache miss for %s/%s", scope, key)
			}
			return payload, nil
		}
	}

	return actions
}

// Orchestrator exposes the recovery orchestrator for embedding callers.
func (a *Advisor) Orchestrator() *recovery.Orchestrator {
	return a.orchestrator
}

// Engine exposes the decision engine for embedding callers.
func (a *Advisor) Engine() *engine.Engine {
	return a.engine
}

// Start starts the advisor and all its components.
func (a *Advisor) Start(ctx context.Context) error {
	go func() {
		if err := a.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("HTTP server failed", "error", err)
		}
	}()

	go a.pruner.Start(ctx)

	a.log.Info("Advisor started", "port", a.cfg.Server.Port)
	return nil
}

// Stop stops the advisor.
func (a *Advisor) Stop(ctx context.Context) error {
	a.log.Info("Stopping Advisor...")

	if err := a.chain.Close(); err != nil {
		a.log.Warn("Failed to close providers", "error", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn("Failed to close Redis", "error", err)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("Failed to close database", "error", err)
		}
	}

	return a.healthServer.Stop(ctx)
}
