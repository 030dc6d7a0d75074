package recovery

import (
	"math"
	"math/rand"
	"time"

	"github.com/agrifield/advisor/internal/core/domain"
)

// strategyTable maps each error type to its ordered recovery
// strategies. Strategies are tried in sequence until one succeeds.
var strategyTable = map[domain.ErrorType][]domain.RecoveryStrategy{
	domain.ErrorTypeGPSUnavailable: {
		domain.StrategyManualInput,
		domain.StrategyCachedData,
		domain.StrategyUserGuidance,
	},
	domain.ErrorTypeGPSTimeout: {
		domain.StrategyRetry,
		domain.StrategyFallbackProvider,
		domain.StrategyManualInput,
	},
	domain.ErrorTypeGPSAccuracyPoor: {
		domain.StrategyRetry,
		domain.StrategyUserGuidance,
		domain.StrategyManualInput,
	},
	domain.ErrorTypeGPSPermissionDenied: {
		domain.StrategyUserGuidance,
		domain.StrategyManualInput,
	},
	domain.ErrorTypeNetworkError: {
		domain.StrategyRetry,
		domain.StrategyCachedData,
		domain.StrategyOfflineMode,
	},
	domain.ErrorTypeNetworkTimeout: {
		domain.StrategyRetry,
		domain.StrategyCachedData,
		domain.StrategyOfflineMode,
	},
	domain.ErrorTypeGeocodingFailed: {
		domain.StrategyRetry,
		domain.StrategyFallbackProvider,
		domain.StrategyManualInput,
	},
	domain.ErrorTypeInvalidCoordinates: {
		domain.StrategyUserGuidance,
		domain.StrategyManualInput,
	},
	domain.ErrorTypeInvalidAddress: {
		domain.StrategyUserGuidance,
		domain.StrategyManualInput,
	},
	domain.ErrorTypeValidationError: {
		domain.StrategyUserGuidance,
	},
	domain.ErrorTypeServiceUnavailable: {
		domain.StrategyFallbackProvider,
		domain.StrategyCachedData,
		domain.StrategyOfflineMode,
	},
	domain.ErrorTypeRateLimited: {
		domain.StrategyRetry,
		domain.StrategyFallbackProvider,
		domain.StrategyCachedData,
	},
	domain.ErrorTypeCacheError: {
		domain.StrategyRetry,
	},
	domain.ErrorTypeDatabaseError: {
		domain.StrategyRetry,
		domain.StrategyCachedData,
	},
	domain.ErrorTypeWeatherDataUnavailable: {
		domain.StrategyFallbackProvider,
		domain.StrategyCachedData,
		domain.StrategyUserGuidance,
	},
	domain.ErrorTypeSoilDataUnavailable: {
		domain.StrategyFallbackProvider,
		domain.StrategyCachedData,
		domain.StrategyUserGuidance,
	},
	domain.ErrorTypeProviderError: {
		domain.StrategyFallbackProvider,
		domain.StrategyRetry,
	},
	domain.ErrorTypeConfigError: {
		domain.StrategyUserGuidance,
	},
	domain.ErrorTypePermissionDenied: {
		domain.StrategyUserGuidance,
	},
	domain.ErrorTypeUnknown: {
		domain.StrategyRetry,
		domain.StrategyUserGuidance,
	},
}

// retryConfigs holds per-type retry behavior for error types that
// support the RETRY strategy.
var retryConfigs = map[domain.ErrorType]domain.RetryConfig{
	domain.ErrorTypeGPSTimeout: {
		MaxRetries:         3,
		BaseDelay:          1 * time.Second,
		MaxDelay:           10 * time.Second,
		ExponentialBackoff: true,
		Jitter:             true,
	},
	domain.ErrorTypeGPSAccuracyPoor: {
		MaxRetries:         2,
		BaseDelay:          2 * time.Second,
		MaxDelay:           8 * time.Second,
		ExponentialBackoff: true,
		Jitter:             false,
	},
	domain.ErrorTypeNetworkError: {
		MaxRetries:         3,
		BaseDelay:          1 * time.Second,
		MaxDelay:           30 * time.Second,
		ExponentialBackoff: true,
		Jitter:             true,
	},
	domain.ErrorTypeNetworkTimeout: {
		MaxRetries:         3,
		BaseDelay:          2 * time.Second,
		MaxDelay:           30 * time.Second,
		ExponentialBackoff: true,
		Jitter:             true,
	},
	domain.ErrorTypeGeocodingFailed: {
		MaxRetries:         2,
		BaseDelay:          1 * time.Second,
		MaxDelay:           5 * time.Second,
		ExponentialBackoff: true,
		Jitter:             false,
	},
	domain.ErrorTypeRateLimited: {
		MaxRetries:         3,
		BaseDelay:          5 * time.Second,
		MaxDelay:           60 * time.Second,
		ExponentialBackoff: true,
		Jitter:             true,
	},
	domain.ErrorTypeCacheError: {
		MaxRetries:         2,
		BaseDelay:          500 * time.Millisecond,
		MaxDelay:           2 * time.Second,
		ExponentialBackoff: false,
		Jitter:             false,
	},
	domain.ErrorTypeDatabaseError: {
		MaxRetries:         3,
		BaseDelay:          1 * time.Second,
		MaxDelay:           15 * time.Second,
		ExponentialBackoff: true,
		Jitter:             true,
	},
	domain.ErrorTypeProviderError: {
		MaxRetries:         2,
		BaseDelay:          1 * time.Second,
		MaxDelay:           10 * time.Second,
		ExponentialBackoff: true,
		Jitter:             true,
	},
	domain.ErrorTypeUnknown: {
		MaxRetries:         1,
		BaseDelay:          1 * time.Second,
		MaxDelay:           1 * time.Second,
		ExponentialBackoff: false,
		Jitter:             false,
	},
}

// StrategiesFor returns the ordered strategy list for an error type.
func StrategiesFor(t domain.ErrorType) []domain.RecoveryStrategy {
	strategies, ok := strategyTable[t]
	if !ok {
		return nil
	}
	out := make([]domain.RecoveryStrategy, len(strategies))
	copy(out, strategies)
	return out
}

// RetryConfigFor returns the retry configuration for an error type,
// if the type supports retrying.
func RetryConfigFor(t domain.ErrorType) (domain.RetryConfig, bool) {
	cfg, ok := retryConfigs[t]
	return cfg, ok
}

// HasFallback reports whether any non-retry strategy exists for the
// error type.
func HasFallback(t domain.ErrorType) bool {
	for _, s := range strategyTable[t] {
		if s != domain.StrategyRetry && s != domain.StrategyNone {
			return true
		}
	}
	return false
}

// Delay calculates the wait before the given attempt (0-indexed).
// With exponential backoff: BaseDelay * 2^attempt, capped at
// MaxDelay. Jitter adds a uniform offset of up to ±20% of the
// computed delay.
func Delay(attempt int, cfg domain.RetryConfig) time.Duration {
	delay := float64(cfg.BaseDelay)
	if cfg.ExponentialBackoff {
		delay = float64(cfg.BaseDelay) * math.Pow(2, float64(attempt))
		if delay > float64(cfg.MaxDelay) {
			delay = float64(cfg.MaxDelay)
		}
	}

	if cfg.Jitter {
		delay += delay * (rand.Float64()*0.4 - 0.2)
		if delay < 0 {
			delay = 0
		}
	}

	return time.Duration(delay)
}
