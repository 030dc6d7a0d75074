package domain

import "time"

// ErrorType is a closed category describing why an operation failed.
type ErrorType string

const (
	// GPS family
	ErrorTypeGPSUnavailable      ErrorType = "gps_unavailable"
	ErrorTypeGPSTimeout          ErrorType = "gps_timeout"
	ErrorTypeGPSAccuracyPoor     ErrorType = "gps_accuracy_poor"
	ErrorTypeGPSPermissionDenied ErrorType = "gps_permission_denied"

	// Network family
	ErrorTypeNetworkError   ErrorType = "network_error"
	ErrorTypeNetworkTimeout ErrorType = "network_timeout"

	// Geocoding family
	ErrorTypeGeocodingFailed    ErrorType = "geocoding_failed"
	ErrorTypeInvalidCoordinates ErrorType = "invalid_coordinates"
	ErrorTypeInvalidAddress     ErrorType = "invalid_address"

	// Validation family
	ErrorTypeValidationError ErrorType = "validation_error"

	// Service / infrastructure family
	ErrorTypeServiceUnavailable     ErrorType = "service_unavailable"
	ErrorTypeRateLimited            ErrorType = "rate_limited"
	ErrorTypeCacheError             ErrorType = "cache_error"
	ErrorTypeDatabaseError          ErrorType = "database_error"
	ErrorTypeWeatherDataUnavailable ErrorType = "weather_data_unavailable"
	ErrorTypeSoilDataUnavailable    ErrorType = "soil_data_unavailable"
	ErrorTypeProviderError          ErrorType = "provider_error"
	ErrorTypeConfigError            ErrorType = "config_error"
	ErrorTypePermissionDenied       ErrorType = "permission_denied"
	ErrorTypeUnknown                ErrorType = "unknown_error"
)

// RecoveryStrategy is a remedial action attempted after a failure.
type RecoveryStrategy string

const (
	StrategyRetry            RecoveryStrategy = "retry"
	StrategyFallbackProvider RecoveryStrategy = "fallback_provider"
	StrategyCachedData       RecoveryStrategy = "cached_data"
	StrategyManualInput      RecoveryStrategy = "manual_input"
	StrategyOfflineMode      RecoveryStrategy = "offline_mode"
	StrategyUserGuidance     RecoveryStrategy = "user_guidance"
	StrategyNone             RecoveryStrategy = "none"
)

// ErrorContext captures a single failure at the point it occurred.
// Immutable once constructed.
type ErrorContext struct {
	Type       ErrorType         `json:"error_type"`
	Message    string            `json:"error_message"`
	Timestamp  time.Time         `json:"timestamp"`
	UserID     string            `json:"user_id,omitempty"`
	SessionID  string            `json:"session_id,omitempty"`
	Location   map[string]string `json:"location_data,omitempty"`
	RetryCount int               `json:"retry_count"`
	MaxRetries int               `json:"max_retries"`
	Extra      map[string]string `json:"additional_context,omitempty"`
}

// ErrorRecoveryResult is the terminal output of a recovery attempt.
// Never mutated after construction.
type ErrorRecoveryResult struct {
	Success       bool             `json:"success"`
	RecoveredData any              `json:"recovered_data,omitempty"`
	StrategyUsed  RecoveryStrategy `json:"recovery_strategy_used,omitempty"`
	ErrorMessage  string           `json:"error_message,omitempty"`
	UserGuidance  string           `json:"user_guidance,omitempty"`
}

// RetryConfig describes retry behavior for one error type.
type RetryConfig struct {
	MaxRetries         int           `json:"max_retries"`
	BaseDelay          time.Duration `json:"base_delay"`
	MaxDelay           time.Duration `json:"max_delay"`
	ExponentialBackoff bool          `json:"exponential_backoff"`
	Jitter             bool          `json:"jitter"`
}

// ErrorRecord is the persisted audit row for a handled error.
type ErrorRecord struct {
	ID         string    `json:"id"`
	Type       ErrorType `json:"error_type"`
	Message    string    `json:"error_message"`
	UserID     string    `json:"user_id,omitempty"`
	SessionID  string    `json:"session_id,omitempty"`
	RetryCount int       `json:"retry_count"`
	CreatedAt  time.Time `json:"created_at"`
}
