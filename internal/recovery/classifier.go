// Package recovery implements error classification, recovery strategy
// selection, retry policy, and recovery orchestration for the
// advisory services.
package recovery

import (
	"strings"

	"github.com/agrifield/advisor/internal/core/domain"
)

// keywordRule maps a message substring to an error type.
type keywordRule struct {
	keyword string
	errType domain.ErrorType
}

// keywordRules is the classification priority list. First match wins,
// so specific keywords come before generic ones and GPS rules come
// before network, geocoding, validation, and service rules.
var keywordRules = []keywordRule{
	// GPS
	{"gps permission", domain.ErrorTypeGPSPermissionDenied},
	{"location permission", domain.ErrorTypeGPSPermissionDenied},
	{"gps timeout", domain.ErrorTypeGPSTimeout},
	{"gps timed out", domain.ErrorTypeGPSTimeout},
	{"gps accuracy", domain.ErrorTypeGPSAccuracyPoor},
	{"poor accuracy", domain.ErrorTypeGPSAccuracyPoor},
	{"gps unavailable", domain.ErrorTypeGPSUnavailable},
	{"gps not available", domain.ErrorTypeGPSUnavailable},
	{"gps", domain.ErrorTypeGPSUnavailable},

	// Network
	{"network timeout", domain.ErrorTypeNetworkTimeout},
	{"connection timeout", domain.ErrorTypeNetworkTimeout},
	{"network", domain.ErrorTypeNetworkError},
	{"connection refused", domain.ErrorTypeNetworkError},
	{"connection reset", domain.ErrorTypeNetworkError},
	{"timed out", domain.ErrorTypeNetworkTimeout},
	{"timeout", domain.ErrorTypeNetworkTimeout},

	// Geocoding
	{"geocod", domain.ErrorTypeGeocodingFailed},
	{"invalid address", domain.ErrorTypeInvalidAddress},
	{"address not found", domain.ErrorTypeInvalidAddress},
	{"invalid coordinates", domain.ErrorTypeInvalidCoordinates},
	{"coordinates out of range", domain.ErrorTypeInvalidCoordinates},
	{"latitude", domain.ErrorTypeInvalidCoordinates},
	{"longitude", domain.ErrorTypeInvalidCoordinates},

	// Validation
	{"validation", domain.ErrorTypeValidationError},
	{"invalid", domain.ErrorTypeValidationError},

	// Service / infrastructure
	{"rate limit", domain.ErrorTypeRateLimited},
	{"too many requests", domain.ErrorTypeRateLimited},
	{"429", domain.ErrorTypeRateLimited},
	{"service unavailable", domain.ErrorTypeServiceUnavailable},
	{"503", domain.ErrorTypeServiceUnavailable},
	{"weather", domain.ErrorTypeWeatherDataUnavailable},
	{"soil data", domain.ErrorTypeSoilDataUnavailable},
	{"provider", domain.ErrorTypeProviderError},
	{"cache", domain.ErrorTypeCacheError},
	{"redis", domain.ErrorTypeCacheError},
	{"database", domain.ErrorTypeDatabaseError},
	{"sql", domain.ErrorTypeDatabaseError},
	{"permission denied", domain.ErrorTypePermissionDenied},
	{"unauthorized", domain.ErrorTypePermissionDenied},
	{"config", domain.ErrorTypeConfigError},
}

// Classify determines the error type for a given error.
func Classify(err error) domain.ErrorType {
	if err == nil {
		return domain.ErrorTypeUnknown
	}
	return ClassifyMessage(err.Error())
}

// ClassifyMessage determines the error type for a raw message.
// Matching is case-insensitive; resolution order follows the fixed
// priority list, not position within the message.
func ClassifyMessage(msg string) domain.ErrorType {
	lower := strings.ToLower(msg)
	for _, rule := range keywordRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.errType
		}
	}
	return domain.ErrorTypeUnknown
}
