package recovery

import (
	"context"

	"github.com/agrifield/advisor/internal/core/domain"
)

// Action performs one recovery attempt for an error context and
// returns the recovered payload on success.
type Action func(ctx context.Context, ec domain.ErrorContext) (any, error)

// Actions holds the injectable recovery collaborators. A nil action
// means the corresponding strategy is unavailable and is skipped.
//
// Retry re-runs the original operation; it is typically supplied
// per-call by Orchestrator.Run rather than wired up front.
type Actions struct {
	Retry            Action
	FallbackProvider Action
	CachedData       Action
	ManualInput      Action
	OfflineMode      Action
}

// forStrategy returns the action bound to a strategy. USER_GUIDANCE
// has no action; the orchestrator synthesizes its payload.
func (a Actions) forStrategy(s domain.RecoveryStrategy) Action {
	switch s {
	case domain.StrategyRetry:
		return a.Retry
	case domain.StrategyFallbackProvider:
		return a.FallbackProvider
	case domain.StrategyCachedData:
		return a.CachedData
	case domain.StrategyManualInput:
		return a.ManualInput
	case domain.StrategyOfflineMode:
		return a.OfflineMode
	default:
		return nil
	}
}

// ManualInputMarker is the payload returned when recovery hands
// control back to the user for manual entry.
func ManualInputMarker(ec domain.ErrorContext) map[string]any {
	return map[string]any{
		"manual_input_required": true,
		"error_type":            string(ec.Type),
	}
}

// OfflineModeMarker is the payload returned when recovery switches
// the session into offline mode.
func OfflineModeMarker(ec domain.ErrorContext) map[string]any {
	return map[string]any{
		"offline_mode": true,
		"error_type":   string(ec.Type),
	}
}
