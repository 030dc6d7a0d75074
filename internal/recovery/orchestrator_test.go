package recovery

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/agrifield/advisor/internal/core/domain"
)

func TestNewContext(t *testing.T) {
	ec := NewContext(errors.New("GPS timeout occurred"))
	if ec.Type != domain.ErrorTypeGPSTimeout {
		t.Errorf("Type = %s, want %s", ec.Type, domain.ErrorTypeGPSTimeout)
	}
	if ec.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", ec.MaxRetries)
	}
	if ec.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestHandle_UserGuidance(t *testing.T) {
	o := NewOrchestrator(NewHistory(10), Actions{}, nil)

	res := o.Handle(context.Background(), domain.ErrorContext{
		Type:    domain.ErrorTypeValidationError,
		Message: "validation failed",
	})

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.StrategyUsed != domain.StrategyUserGuidance {
		t.Errorf("StrategyUsed = %s", res.StrategyUsed)
	}
	if res.UserGuidance == "" {
		t.Error("expected guidance text")
	}
}

func TestHandle_NoStrategies(t *testing.T) {
	o := NewOrchestrator(NewHistory(10), Actions{}, nil)

	res := o.Handle(context.Background(), domain.ErrorContext{
		Type:    domain.ErrorType("bogus"),
		Message: "???",
	})

	if res.Success {
		t.Fatal("expected failure")
	}
	if res.ErrorMessage != "No recovery strategy available for this error type" {
		t.Errorf("ErrorMessage = %q", res.ErrorMessage)
	}
}

// A spent retry budget must skip RETRY and move to the next strategy.
func TestHandle_RetryBudgetSpent(t *testing.T) {
	retryCalled := false
	fallbackCalled := false
	actions := Actions{
		Retry: func(ctx context.Context, ec domain.ErrorContext) (any, error) {
			retryCalled = true
			return nil, errors.New("should not run")
		},
		FallbackProvider: func(ctx context.Context, ec domain.ErrorContext) (any, error) {
			fallbackCalled = true
			return "fallback data", nil
		},
	}
	o := NewOrchestrator(NewHistory(10), actions, nil)

	res := o.Handle(context.Background(), domain.ErrorContext{
		Type:       domain.ErrorTypeGPSTimeout,
		Message:    "gps timeout",
		RetryCount: 3,
		MaxRetries: 3,
	})

	if retryCalled {
		t.Error("retry action ran despite spent budget")
	}
	if !fallbackCalled {
		t.Error("fallback provider was not tried")
	}
	if !res.Success || res.StrategyUsed != domain.StrategyFallbackProvider {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.RecoveredData != "fallback data" {
		t.Errorf("RecoveredData = %v", res.RecoveredData)
	}
}

func TestHandle_RetrySucceeds(t *testing.T) {
	attempts := 0
	actions := Actions{
		Retry: func(ctx context.Context, ec domain.ErrorContext) (any, error) {
			attempts++
			return "recovered", nil
		},
	}
	o := NewOrchestrator(NewHistory(10), actions, nil)

	// cache_error retries with a short constant delay
	res := o.Handle(context.Background(), domain.ErrorContext{
		Type:       domain.ErrorTypeCacheError,
		Message:    "redis down",
		MaxRetries: 2,
	})

	if !res.Success || res.StrategyUsed != domain.StrategyRetry {
		t.Fatalf("unexpected result: %+v", res)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if res.RecoveredData != "recovered" {
		t.Errorf("RecoveredData = %v", res.RecoveredData)
	}
}

func TestHandle_AllStrategiesExhausted(t *testing.T) {
	actions := Actions{
		FallbackProvider: func(ctx context.Context, ec domain.ErrorContext) (any, error) {
			return nil, errors.New("provider down")
		},
		CachedData: func(ctx context.Context, ec domain.ErrorContext) (any, error) {
			return nil, errors.New("cache miss")
		},
		OfflineMode: func(ctx context.Context, ec domain.ErrorContext) (any, error) {
			return nil, errors.New("offline store empty")
		},
	}
	o := NewOrchestrator(NewHistory(10), actions, nil)

	res := o.Handle(context.Background(), domain.ErrorContext{
		Type:       domain.ErrorTypeServiceUnavailable,
		Message:    "service unavailable",
		RetryCount: 99,
	})

	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.ErrorMessage, "all recovery strategies exhausted for service_unavailable") {
		t.Errorf("ErrorMessage = %q", res.ErrorMessage)
	}
	if res.UserGuidance == "" {
		t.Error("expected fallback guidance text")
	}
}

func TestHandle_RecordsHistoryAndAudit(t *testing.T) {
	var recorded *domain.ErrorRecord
	recorder := RecorderFunc(func(ctx context.Context, rec *domain.ErrorRecord) error {
		recorded = rec
		return nil
	})

	h := NewHistory(10)
	o := NewOrchestrator(h, Actions{}, recorder)

	o.Handle(context.Background(), domain.ErrorContext{
		Type:      domain.ErrorTypeValidationError,
		Message:   "invalid acres",
		SessionID: "s-1",
	})

	if h.Len() != 1 {
		t.Errorf("history Len = %d, want 1", h.Len())
	}
	if recorded == nil {
		t.Fatal("recorder was not invoked")
	}
	if recorded.Type != domain.ErrorTypeValidationError || recorded.SessionID != "s-1" {
		t.Errorf("unexpected record: %+v", recorded)
	}
	if recorded.ID == "" {
		t.Error("record ID not set")
	}
}

func TestRun_RetriesOperation(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("cache lookup failed")
		}
		return "second try", nil
	}

	o := NewOrchestrator(NewHistory(10), Actions{}, nil)
	result, err := o.Run(context.Background(), op)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result != "second try" {
		t.Errorf("result = %v", result)
	}
	if calls != 2 {
		t.Errorf("op called %d times, want 2", calls)
	}
}

func TestRun_PassesThroughSuccess(t *testing.T) {
	h := NewHistory(10)
	o := NewOrchestrator(h, Actions{}, nil)

	result, err := o.Run(context.Background(), func(ctx context.Context) (any, error) {
		return 42, nil
	})
	if err != nil || result != 42 {
		t.Fatalf("got (%v, %v)", result, err)
	}
	if h.Len() != 0 {
		t.Errorf("success recorded in history")
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := NewOrchestrator(NewHistory(10), Actions{}, nil)
	_, err := o.Run(ctx, func(ctx context.Context) (any, error) {
		return nil, errors.New("network timeout")
	})
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
}
