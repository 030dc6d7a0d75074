package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agrifield/advisor/internal/core/domain"
	"github.com/agrifield/advisor/internal/infra/storage"
)

// DecisionRepo implements storage.DecisionRepository using PostgreSQL.
// The full result is stored as a JSONB payload next to the columns
// used for querying.
type DecisionRepo struct {
	db *DB
}

// NewDecisionRepo creates a new PostgreSQL decision repository.
func NewDecisionRepo(db *DB) *DecisionRepo {
	return &DecisionRepo{db: db}
}

// Save stores a decision result.
func (r *DecisionRepo) Save(ctx context.Context, result *domain.DecisionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}

	query := `
		INSERT INTO decisions (id, rule, primary_method, confidence, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	createdAt := result.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(
		ctx,
		query,
		result.ID,
		string(result.Rule),
		string(result.Primary.Method),
		result.Confidence,
		payload,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save decision: %w", err)
	}
	return nil
}

// GetByID retrieves a decision by its ID.
func (r *DecisionRepo) GetByID(ctx context.Context, id string) (*domain.DecisionResult, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, `SELECT payload FROM decisions WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}

	var result domain.DecisionResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decision: %w", err)
	}
	return &result, nil
}

// Recent returns the most recent decisions, newest first.
func (r *DecisionRepo) Recent(ctx context.Context, limit int) ([]*domain.DecisionResult, error) {
	var payloads [][]byte
	query := `
		SELECT payload
		FROM decisions
		ORDER BY created_at DESC
		LIMIT $1
	`
	if err := r.db.SelectContext(ctx, &payloads, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent decisions: %w", err)
	}

	var results []*domain.DecisionResult
	for _, payload := range payloads {
		var result domain.DecisionResult
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal decision: %w", err)
		}
		results = append(results, &result)
	}
	return results, nil
}

// DeleteOlderThan removes decisions created before the cutoff.
func (r *DecisionRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM decisions WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune decisions: %w", err)
	}
	return res.RowsAffected()
}
