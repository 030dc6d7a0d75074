package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/agrifield/advisor/internal/core/domain"
)

// ErrorLogRepo implements storage.ErrorLogRepository using PostgreSQL.
type ErrorLogRepo struct {
	db *DB
}

// NewErrorLogRepo creates a new PostgreSQL error log repository.
func NewErrorLogRepo(db *DB) *ErrorLogRepo {
	return &ErrorLogRepo{db: db}
}

// Add appends a handled error to the audit log.
func (r *ErrorLogRepo) Add(ctx context.Context, rec *domain.ErrorRecord) error {
	query := `
		INSERT INTO error_log (id, error_type, error_message, user_id, session_id, retry_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(
		ctx,
		query,
		rec.ID,
		string(rec.Type),
		rec.Message,
		rec.UserID,
		rec.SessionID,
		rec.RetryCount,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add error record: %w", err)
	}
	return nil
}

// Recent returns the most recent errors, newest first.
func (r *ErrorLogRepo) Recent(ctx context.Context, limit int) ([]*domain.ErrorRecord, error) {
	query := `
		SELECT id, error_type, error_message, user_id, session_id, retry_count, created_at
		FROM error_log
		ORDER BY created_at DESC
		LIMIT $1
	`

	var rows []struct {
		ID         string    `db:"id"`
		ErrorType  string    `db:"error_type"`
		ErrorMsg   string    `db:"error_message"`
		UserID     string    `db:"user_id"`
		SessionID  string    `db:"session_id"`
		RetryCount int       `db:"retry_count"`
		CreatedAt  time.Time `db:"created_at"`
	}

	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent errors: %w", err)
	}

	var recs []*domain.ErrorRecord
	for _, row := range rows {
		recs = append(recs, &domain.ErrorRecord{
			ID:         row.ID,
			Type:       domain.ErrorType(row.ErrorType),
			Message:    row.ErrorMsg,
			UserID:     row.UserID,
			SessionID:  row.SessionID,
			RetryCount: row.RetryCount,
			CreatedAt:  row.CreatedAt,
		})
	}
	return recs, nil
}

// CountByType returns error counts grouped by type.
func (r *ErrorLogRepo) CountByType(ctx context.Context) (map[domain.ErrorType]int, error) {
	query := `
		SELECT error_type, COUNT(*) AS total
		FROM error_log
		GROUP BY error_type
	`

	var rows []struct {
		ErrorType string `db:"error_type"`
		Total     int    `db:"total"`
	}

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count errors: %w", err)
	}

	counts := make(map[domain.ErrorType]int, len(rows))
	for _, row := range rows {
		counts[domain.ErrorType(row.ErrorType)] = row.Total
	}
	return counts, nil
}

// DeleteOlderThan removes records created before the cutoff.
func (r *ErrorLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM error_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune error log: %w", err)
	}
	return res.RowsAffected()
}
