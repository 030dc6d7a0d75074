package storage

import (
	"context"
	"errors"
	"time"

	"github.com/agrifield/advisor/internal/core/domain"
)

var (
	// ErrNotFound is returned when a record doesn't exist
	ErrNotFound = errors.New("record not found")
)

// ErrorLogRepository persists handled errors for monitoring.
type ErrorLogRepository interface {
	// Add appends a handled error to the audit log
	Add(ctx context.Context, rec *domain.ErrorRecord) error

	// Recent returns the most recent errors, newest first
	Recent(ctx context.Context, limit int) ([]*domain.ErrorRecord, error)

	// CountByType returns error counts grouped by type
	CountByType(ctx context.Context) (map[domain.ErrorType]int, error)

	// DeleteOlderThan removes records created before the cutoff
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// DecisionRepository persists decision results for auditing.
type DecisionRepository interface {
	// Save stores a decision result
	Save(ctx context.Context, result *domain.DecisionResult) error

	// GetByID retrieves a decision by its ID
	GetByID(ctx context.Context, id string) (*domain.DecisionResult, error)

	// Recent returns the most recent decisions, newest first
	Recent(ctx context.Context, limit int) ([]*domain.DecisionResult, error)

	// DeleteOlderThan removes decisions created before the cutoff
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
