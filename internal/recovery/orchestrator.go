package recovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/agrifield/advisor/internal/core/domain"
	"github.com/agrifield/advisor/internal/metrics"
)

// Recorder persists handled errors for later inspection. Wired to the
// audit store by the application; a nil recorder disables persistence.
type Recorder interface {
	Record(ctx context.Context, rec *domain.ErrorRecord) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(ctx context.Context, rec *domain.ErrorRecord) error

func (f RecorderFunc) Record(ctx context.Context, rec *domain.ErrorRecord) error {
	return f(ctx, rec)
}

// Orchestrator walks an error's strategy list in order and invokes
// the matching recovery actions until one succeeds.
type Orchestrator struct {
	history  *History
	actions  Actions
	recorder Recorder
	log      *slog.Logger
}

// NewOrchestrator creates an orchestrator with the given collaborators.
func NewOrchestrator(history *History, actions Actions, recorder Recorder) *Orchestrator {
	if history == nil {
		history = NewHistory(DefaultHistorySize)
	}
	return &Orchestrator{
		history:  history,
		actions:  actions,
		recorder: recorder,
		log:      slog.Default().With("component", "recovery"),
	}
}

// History exposes the bounded error history for monitoring.
func (o *Orchestrator) History() *History {
	return o.history
}

// NewContext builds an error context for a raw error, classifying it
// and applying the per-type retry budget.
func NewContext(err error) domain.ErrorContext {
	t := Classify(err)
	maxRetries := 3
	if cfg, ok := RetryConfigFor(t); ok {
		maxRetries = cfg.MaxRetries
	}
	return domain.ErrorContext{
		Type:       t,
		Message:    err.Error(),
		Timestamp:  time.Now().UTC(),
		MaxRetries: maxRetries,
	}
}

// Handle attempts recovery for the given error context.
func (o *Orchestrator) Handle(ctx context.Context, ec domain.ErrorContext) domain.ErrorRecoveryResult {
	return o.handle(ctx, ec, o.actions)
}

func (o *Orchestrator) handle(
	ctx context.Context,
	ec domain.ErrorContext,
	actions Actions,
) domain.ErrorRecoveryResult {
	o.history.Append(ec)
	metrics.ErrorsClassified.WithLabelValues(string(ec.Type)).Inc()

	o.log.Warn("Handling error",
		"error_type", ec.Type,
		"message", ec.Message,
		"retry_count", ec.RetryCount,
		"session_id", ec.SessionID,
	)

	if o.recorder != nil {
		rec := domain.ErrorRecord{
			ID:         uuid.NewString(),
			Type:       ec.Type,
			Message:    ec.Message,
			UserID:     ec.UserID,
			SessionID:  ec.SessionID,
			RetryCount: ec.RetryCount,
			CreatedAt:  ec.Timestamp,
		}
		if err := o.recorder.Record(ctx, &rec); err != nil {
			o.log.Warn("Failed to persist error record", "error", err)
		}
	}

	strategies := StrategiesFor(ec.Type)
	if len(strategies) == 0 {
		return domain.ErrorRecoveryResult{
			Success:      false,
			ErrorMessage: "No recovery strategy available for this error type",
		}
	}

	var lastErr error
	for _, strategy := range strategies {
		if strategy == domain.StrategyUserGuidance {
			// Guidance needs no action; surfacing it is the recovery.
			metrics.RecoveryAttempts.WithLabelValues(string(strategy), "success").Inc()
			return domain.ErrorRecoveryResult{
				Success:      true,
				StrategyUsed: strategy,
				UserGuidance: guidanceFor(ec.Type, strategy),
			}
		}

		if strategy == domain.StrategyRetry {
			result, attempted, err := o.retry(ctx, ec, actions.Retry)
			if !attempted {
				continue
			}
			if err == nil {
				metrics.RecoveryAttempts.WithLabelValues(string(strategy), "success").Inc()
				return domain.ErrorRecoveryResult{
					Success:       true,
					RecoveredData: result,
					StrategyUsed:  strategy,
					UserGuidance:  guidanceFor(ec.Type, strategy),
				}
			}
			metrics.RecoveryAttempts.WithLabelValues(string(strategy), "failure").Inc()
			lastErr = err
			continue
		}

		action := actions.forStrategy(strategy)
		if action == nil {
			continue
		}

		result, err := action(ctx, ec)
		if err != nil {
			metrics.RecoveryAttempts.WithLabelValues(string(strategy), "failure").Inc()
			o.log.Debug("Recovery strategy failed",
				"strategy", strategy,
				"error_type", ec.Type,
				"error", err,
			)
			lastErr = err
			continue
		}

		metrics.RecoveryAttempts.WithLabelValues(string(strategy), "success").Inc()
		return domain.ErrorRecoveryResult{
			Success:       true,
			RecoveredData: result,
			StrategyUsed:  strategy,
			UserGuidance:  guidanceFor(ec.Type, strategy),
		}
	}

	msg := fmt.Sprintf("all recovery strategies exhausted for %s", ec.Type)
	if lastErr != nil {
		msg = fmt.Sprintf("%s: %v", msg, lastErr)
	}
	return domain.ErrorRecoveryResult{
		Success:      false,
		ErrorMessage: msg,
		UserGuidance: guidanceDefaults[domain.StrategyUserGuidance],
	}
}

// retry runs the retry action with the per-type backoff schedule.
// attempted is false when the retry budget is already spent or no
// retry action is wired, in which case the next strategy is tried.
func (o *Orchestrator) retry(
	ctx context.Context,
	ec domain.ErrorContext,
	action Action,
) (any, bool, error) {
	if action == nil {
		return nil, false, nil
	}

	maxRetries := ec.MaxRetries
	cfg, hasCfg := RetryConfigFor(ec.Type)
	if hasCfg && cfg.MaxRetries < maxRetries {
		maxRetries = cfg.MaxRetries
	}
	if ec.RetryCount >= maxRetries {
		return nil, false, nil
	}
	if !hasCfg {
		cfg = domain.RetryConfig{MaxRetries: maxRetries, BaseDelay: time.Second, MaxDelay: time.Second}
	}

	var lastErr error
	for attempt := ec.RetryCount; attempt < maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, true, ctx.Err()
		case <-time.After(Delay(attempt, cfg)):
		}

		result, err := action(ctx, ec)
		if err == nil {
			return result, true, nil
		}
		lastErr = err
	}

	return nil, true, fmt.Errorf("retry failed after %d attempts: %w", maxRetries-ec.RetryCount, lastErr)
}

// Run wraps a fallible operation: on failure it classifies the error,
// attempts recovery (with RETRY bound to re-running the operation),
// and returns the recovered value or a final error carrying the
// orchestrator's message.
func (o *Orchestrator) Run(
	ctx context.Context,
	op func(ctx context.Context) (any, error),
) (any, error) {
	result, err := op(ctx)
	if err == nil {
		return result, nil
	}

	actions := o.actions
	actions.Retry = func(ctx context.Context, _ domain.ErrorContext) (any, error) {
		return op(ctx)
	}

	res := o.handle(ctx, NewContext(err), actions)
	if res.Success {
		return res.RecoveredData, nil
	}
	return nil, fmt.Errorf("%s: %w", res.ErrorMessage, err)
}
