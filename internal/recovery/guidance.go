package recovery

import "github.com/agrifield/advisor/internal/core/domain"

type guidanceKey struct {
	errType  domain.ErrorType
	strategy domain.RecoveryStrategy
}

// guidanceOverrides carries error-specific wording; strategy-level
// defaults below cover the rest.
var guidanceOverrides = map[guidanceKey]string{
	{domain.ErrorTypeGPSUnavailable, domain.StrategyManualInput}:       "GPS is not available. Please enter your location manually.",
	{domain.ErrorTypeGPSUnavailable, domain.StrategyCachedData}:        "GPS is not available. Using your last known location.",
	{domain.ErrorTypeGPSTimeout, domain.StrategyRetry}:                 "The GPS request timed out. Retrying the location lookup.",
	{domain.ErrorTypeGPSTimeout, domain.StrategyFallbackProvider}:      "The GPS request timed out. Trying an alternate location service.",
	{domain.ErrorTypeGPSTimeout, domain.StrategyManualInput}:           "The GPS request timed out. Please enter your location manually.",
	{domain.ErrorTypeGPSAccuracyPoor, domain.StrategyUserGuidance}:     "GPS accuracy is poor. Move to an open area away from buildings and tree cover, then try again.",
	{domain.ErrorTypeGPSPermissionDenied, domain.StrategyUserGuidance}: "Location access is blocked. Enable location permissions for this app in your device settings.",
	{domain.ErrorTypeInvalidCoordinates, domain.StrategyUserGuidance}:  "The coordinates are outside the valid range. Latitude must be between -90 and 90, longitude between -180 and 180.",
	{domain.ErrorTypeInvalidAddress, domain.StrategyUserGuidance}:      "The address could not be found. Check the spelling and include city and state.",
	{domain.ErrorTypeValidationError, domain.StrategyUserGuidance}:     "Some of the entered values are invalid. Review the highlighted fields and try again.",
	{domain.ErrorTypeConfigError, domain.StrategyUserGuidance}:         "The service is misconfigured. Contact support if the problem persists.",
	{domain.ErrorTypePermissionDenied, domain.StrategyUserGuidance}:    "You do not have permission for this operation. Contact your farm account administrator.",
}

var guidanceDefaults = map[domain.RecoveryStrategy]string{
	domain.StrategyRetry:            "A temporary problem occurred. Retrying automatically.",
	domain.StrategyFallbackProvider: "The primary data service failed. Switching to a backup service.",
	domain.StrategyCachedData:       "Live data is unavailable. Showing the most recent saved data.",
	domain.StrategyManualInput:      "Automatic lookup failed. Please enter the information manually.",
	domain.StrategyOfflineMode:      "No connection available. Switching to offline mode; data will sync when you reconnect.",
	domain.StrategyUserGuidance:     "The operation could not be completed. Please try again later.",
}

// guidanceFor returns the user-facing guidance for a recovery.
func guidanceFor(t domain.ErrorType, s domain.RecoveryStrategy) string {
	if msg, ok := guidanceOverrides[guidanceKey{t, s}]; ok {
		return msg
	}
	return guidanceDefaults[s]
}
