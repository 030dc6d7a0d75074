package recovery

import (
	"errors"
	"testing"

	"github.com/agrifield/advisor/internal/core/domain"
)

func TestClassifyMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want domain.ErrorType
	}{
		{"gps timeout", "GPS timeout occurred", domain.ErrorTypeGPSTimeout},
		{"gps timed out", "the gps timed out while acquiring a fix", domain.ErrorTypeGPSTimeout},
		{"gps permission", "GPS permission was denied by the user", domain.ErrorTypeGPSPermissionDenied},
		{"location permission", "location permission not granted", domain.ErrorTypeGPSPermissionDenied},
		{"gps accuracy", "gps accuracy below threshold", domain.ErrorTypeGPSAccuracyPoor},
		{"gps generic", "gps hardware failure", domain.ErrorTypeGPSUnavailable},
		{"network timeout", "network timeout after 30s", domain.ErrorTypeNetworkTimeout},
		{"bare timeout", "request timeout", domain.ErrorTypeNetworkTimeout},
		{"connection refused", "connection refused by host", domain.ErrorTypeNetworkError},
		{"geocoding", "geocoding lookup failed", domain.ErrorTypeGeocodingFailed},
		{"invalid address", "invalid address: no match", domain.ErrorTypeInvalidAddress},
		{"invalid coordinates", "invalid coordinates supplied", domain.ErrorTypeInvalidCoordinates},
		{"latitude out of range", "latitude must be between -90 and 90", domain.ErrorTypeInvalidCoordinates},
		{"validation", "validation failed for field acres", domain.ErrorTypeValidationError},
		{"bare invalid", "invalid payload", domain.ErrorTypeValidationError},
		{"rate limit", "rate limit exceeded", domain.ErrorTypeRateLimited},
		{"429", "http 429 from upstream", domain.ErrorTypeRateLimited},
		{"service unavailable", "service unavailable (503)", domain.ErrorTypeServiceUnavailable},
		{"weather", "weather lookup returned no rows", domain.ErrorTypeWeatherDataUnavailable},
		{"soil", "soil data missing for county", domain.ErrorTypeSoilDataUnavailable},
		{"redis", "redis: connection pool exhausted", domain.ErrorTypeCacheError},
		{"database", "database is locked", domain.ErrorTypeDatabaseError},
		{"permission denied", "permission denied (403)", domain.ErrorTypePermissionDenied},
		{"config", "config file missing", domain.ErrorTypeConfigError},
		{"unknown", "something completely different", domain.ErrorTypeUnknown},
		{"empty", "", domain.ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyMessage(tt.msg)
			if got != tt.want {
				t.Errorf("ClassifyMessage(%q) = %s, want %s", tt.msg, got, tt.want)
			}
		})
	}
}

func TestClassifyMessage_CaseInsensitive(t *testing.T) {
	if got := ClassifyMessage("GPS TIMEOUT"); got != domain.ErrorTypeGPSTimeout {
		t.Errorf("uppercase message classified as %s", got)
	}
}

// GPS rules outrank the generic timeout rule even when both keywords
// are present.
func TestClassifyMessage_Priority(t *testing.T) {
	got := ClassifyMessage("timeout waiting for gps timeout signal")
	if got != domain.ErrorTypeGPSTimeout {
		t.Errorf("got %s, want %s", got, domain.ErrorTypeGPSTimeout)
	}
}

func TestClassify(t *testing.T) {
	if got := Classify(errors.New("network timeout")); got != domain.ErrorTypeNetworkTimeout {
		t.Errorf("Classify = %s, want %s", got, domain.ErrorTypeNetworkTimeout)
	}
	if got := Classify(nil); got != domain.ErrorTypeUnknown {
		t.Errorf("Classify(nil) = %s, want %s", got, domain.ErrorTypeUnknown)
	}
}
