package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrifield/advisor/internal/core/domain"
	"github.com/agrifield/advisor/internal/decision/engine"
	"github.com/agrifield/advisor/internal/decision/scenario"
	"github.com/agrifield/advisor/internal/infra/storage"
)

// Server provides HTTP endpoints for health monitoring and decision
// support.
type Server struct {
	monitor   *Monitor
	engine    *engine.Engine
	analyzer  *scenario.Analyzer
	errorLog  storage.ErrorLogRepository
	decisions storage.DecisionRepository
	server    *http.Server
	log       *slog.Logger
}

// NewServer creates a new advisory HTTP server.
func NewServer(
	monitor *Monitor,
	eng *engine.Engine,
	analyzer *scenario.Analyzer,
	errorLog storage.ErrorLogRepository,
	decisions storage.DecisionRepository,
	port int,
) *Server {
	mux := http.NewServeMux()
	s := &Server{
		monitor:   monitor,
		engine:    eng,
		analyzer:  analyzer,
		errorLog:  errorLog,
		decisions: decisions,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
		log: slog.Default().With("component", "http"),
	}

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/health/detailed", s.handleDetailed)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/v1/decision", s.handleDecision)
	mux.HandleFunc("/v1/errors/recent", s.handleRecentErrors)

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.monitor.CheckHealth(r.Context())

	response := map[string]string{"status": string(report.SystemStatus)}
	w.Header().Set("Content-Type", "application/json")

	if report.SystemStatus == StatusCritical {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

func (s *Server) handleDetailed(w http.ResponseWriter, r *http.Request) {
	report := s.monitor.CheckHealth(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.engine.Decide(req)
	if err != nil {
		if errors.Is(err, engine.ErrNoCandidates) || errors.Is(err, engine.ErrMissingFieldConditions) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("Decision failed", "error", err)
		http.Error(w, "decision failed", http.StatusInternalServerError)
		return
	}

	if req.IncludeScenario && s.analyzer != nil {
		analysis, err := s.analyzer.Analyze(req, scenario.DefaultPerturbations())
		if err != nil {
			s.log.Warn("Scenario analysis failed", "decision_id", result.ID, "error", err)
		} else {
			result.Scenario = analysis
		}
	}

	if s.decisions != nil {
		if err := s.decisions.Save(r.Context(), result); err != nil {
			s.log.Warn("Failed to persist decision", "decision_id", result.ID, "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) handleRecentErrors(w http.ResponseWriter, r *http.Request) {
	if s.errorLog == nil {
		http.Error(w, "error log not configured", http.StatusNotFound)
		return
	}

	recs, err := s.errorLog.Recent(r.Context(), 50)
	if err != nil {
		s.log.Error("Failed to load recent errors", "error", err)
		http.Error(w, "failed to load recent errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recs)
}
