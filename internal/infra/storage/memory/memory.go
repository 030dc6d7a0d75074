package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/agrifield/advisor/internal/core/domain"
	"github.com/agrifield/advisor/internal/infra/storage"
)

// MemoryStorage is an in-process store used when no database is configured.
type MemoryStorage struct {
	errors    []*domain.ErrorRecord
	decisions map[string]*domain.DecisionResult
	mu        sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		decisions: make(map[string]*domain.DecisionResult),
	}
}

// -----------------------------------------------------------------------------
// Error Log Repository
// -----------------------------------------------------------------------------

type ErrorLogRepo struct {
	store *MemoryStorage
}

func NewErrorLogRepo(store *MemoryStorage) *ErrorLogRepo {
	return &ErrorLogRepo{store: store}
}

func (r *ErrorLogRepo) Add(ctx context.Context, rec *domain.ErrorRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *rec
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	r.store.errors = append(r.store.errors, &cp)
	return nil
}

func (r *ErrorLogRepo) Recent(ctx context.Context, limit int) ([]*domain.ErrorRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := len(r.store.errors)
	if limit > 0 && limit < n {
		n = limit
	}

	recs := make([]*domain.ErrorRecord, 0, n)
	for i := len(r.store.errors) - 1; i >= 0 && len(recs) < n; i-- {
		recs = append(recs, r.store.errors[i])
	}
	return recs, nil
}

func (r *ErrorLogRepo) CountByType(ctx context.Context) (map[domain.ErrorType]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[domain.ErrorType]int)
	for _, rec := range r.store.errors {
		counts[rec.Type]++
	}
	return counts, nil
}

func (r *ErrorLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var kept []*domain.ErrorRecord
	var removed int64
	for _, rec := range r.store.errors {
		if rec.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	r.store.errors = kept
	return removed, nil
}

// -----------------------------------------------------------------------------
// Decision Repository
// -----------------------------------------------------------------------------

type DecisionRepo struct {
	store *MemoryStorage
}

func NewDecisionRepo(store *MemoryStorage) *DecisionRepo {
	return &DecisionRepo{store: store}
}

func (r *DecisionRepo) Save(ctx context.Context, result *domain.DecisionResult) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *result
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	r.store.decisions[cp.ID] = &cp
	return nil
}

func (r *DecisionRepo) GetByID(ctx context.Context, id string) (*domain.DecisionResult, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result, ok := r.store.decisions[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return result, nil
}

func (r *DecisionRepo) Recent(ctx context.Context, limit int) ([]*domain.DecisionResult, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	results := make([]*domain.DecisionResult, 0, len(r.store.decisions))
	for _, result := range r.store.decisions {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

func (r *DecisionRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var removed int64
	for id, result := range r.store.decisions {
		if result.CreatedAt.Before(cutoff) {
			delete(r.store.decisions, id)
			removed++
		}
	}
	return removed, nil
}
