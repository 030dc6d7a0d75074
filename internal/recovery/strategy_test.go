package recovery

import (
	"testing"
	"time"

	"github.com/agrifield/advisor/internal/core/domain"
)

func TestStrategiesFor(t *testing.T) {
	tests := []struct {
		errType domain.ErrorType
		want    []domain.RecoveryStrategy
	}{
		{domain.ErrorTypeGPSTimeout, []domain.RecoveryStrategy{
			domain.StrategyRetry,
			domain.StrategyFallbackProvider,
			domain.StrategyManualInput,
		}},
		{domain.ErrorTypeGPSPermissionDenied, []domain.RecoveryStrategy{
			domain.StrategyUserGuidance,
			domain.StrategyManualInput,
		}},
		{domain.ErrorTypeValidationError, []domain.RecoveryStrategy{
			domain.StrategyUserGuidance,
		}},
		{domain.ErrorTypeServiceUnavailable, []domain.RecoveryStrategy{
			domain.StrategyFallbackProvider,
			domain.StrategyCachedData,
			domain.StrategyOfflineMode,
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.errType), func(t *testing.T) {
			got := StrategiesFor(tt.errType)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d strategies, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("strategy[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStrategiesFor_EveryTypeCovered(t *testing.T) {
	types := []domain.ErrorType{
		domain.ErrorTypeGPSUnavailable,
		domain.ErrorTypeGPSTimeout,
		domain.ErrorTypeGPSAccuracyPoor,
		domain.ErrorTypeGPSPermissionDenied,
		domain.ErrorTypeNetworkError,
		domain.ErrorTypeNetworkTimeout,
		domain.ErrorTypeGeocodingFailed,
		domain.ErrorTypeInvalidCoordinates,
		domain.ErrorTypeInvalidAddress,
		domain.ErrorTypeValidationError,
		domain.ErrorTypeServiceUnavailable,
		domain.ErrorTypeRateLimited,
		domain.ErrorTypeCacheError,
		domain.ErrorTypeDatabaseError,
		domain.ErrorTypeWeatherDataUnavailable,
		domain.ErrorTypeSoilDataUnavailable,
		domain.ErrorTypeProviderError,
		domain.ErrorTypeConfigError,
		domain.ErrorTypePermissionDenied,
		domain.ErrorTypeUnknown,
	}
	for _, et := range types {
		if len(StrategiesFor(et)) == 0 {
			t.Errorf("no strategies for %s", et)
		}
	}
}

// The returned slice is a copy; mutating it must not affect the table.
func TestStrategiesFor_ReturnsCopy(t *testing.T) {
	first := StrategiesFor(domain.ErrorTypeGPSTimeout)
	first[0] = domain.StrategyNone

	second := StrategiesFor(domain.ErrorTypeGPSTimeout)
	if second[0] != domain.StrategyRetry {
		t.Errorf("table was mutated through the returned slice")
	}
}

func TestRetryConfigFor(t *testing.T) {
	cfg, ok := RetryConfigFor(domain.ErrorTypeGPSTimeout)
	if !ok {
		t.Fatal("expected retry config for gps_timeout")
	}
	if cfg.MaxRetries != 3 || !cfg.ExponentialBackoff {
		t.Errorf("unexpected config: %+v", cfg)
	}

	if _, ok := RetryConfigFor(domain.ErrorTypeValidationError); ok {
		t.Error("validation_error should not be retryable")
	}
}

func TestHasFallback(t *testing.T) {
	if !HasFallback(domain.ErrorTypeGPSTimeout) {
		t.Error("gps_timeout has non-retry strategies")
	}
	if HasFallback(domain.ErrorTypeCacheError) {
		t.Error("cache_error only retries")
	}
}

func TestDelay_ExponentialCapped(t *testing.T) {
	cfg := domain.RetryConfig{
		MaxRetries:         5,
		BaseDelay:          1 * time.Second,
		MaxDelay:           4 * time.Second,
		ExponentialBackoff: true,
	}

	want := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		4 * time.Second, // capped
		4 * time.Second,
	}
	for attempt, w := range want {
		if got := Delay(attempt, cfg); got != w {
			t.Errorf("Delay(%d) = %v, want %v", attempt, got, w)
		}
	}
}

func TestDelay_Constant(t *testing.T) {
	cfg := domain.RetryConfig{
		BaseDelay: 500 * time.Millisecond,
		MaxDelay:  2 * time.Second,
	}
	for attempt := 0; attempt < 4; attempt++ {
		if got := Delay(attempt, cfg); got != 500*time.Millisecond {
			t.Errorf("Delay(%d) = %v, want 500ms", attempt, got)
		}
	}
}

func TestDelay_JitterBounds(t *testing.T) {
	cfg := domain.RetryConfig{
		BaseDelay:          1 * time.Second,
		MaxDelay:           10 * time.Second,
		ExponentialBackoff: true,
		Jitter:             true,
	}

	lo := time.Duration(float64(2*time.Second) * 0.8)
	hi := time.Duration(float64(2*time.Second) * 1.2)
	for i := 0; i < 100; i++ {
		got := Delay(1, cfg)
		if got < lo || got > hi {
			t.Fatalf("Delay(1) = %v outside [%v, %v]", got, lo, hi)
		}
	}
}
