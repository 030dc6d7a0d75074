package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/agrifield/advisor/internal/core/domain"
	"github.com/agrifield/advisor/internal/infra/storage"
)

func TestErrorLogRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewErrorLogRepo(NewMemoryStorage())

	for i := 0; i < 3; i++ {
		err := repo.Add(ctx, &domain.ErrorRecord{
			ID:        fmt.Sprintf("e%d", i),
			Type:      domain.ErrorTypeNetworkTimeout,
			Message:   "network timeout",
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	_ = repo.Add(ctx, &domain.ErrorRecord{
		ID:      "e3",
		Type:    domain.ErrorTypeCacheError,
		Message: "redis down",
	})

	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d records, want 2", len(recent))
	}
	if recent[0].ID != "e3" || recent[1].ID != "e2" {
		t.Errorf("order: %s, %s", recent[0].ID, recent[1].ID)
	}

	counts, err := repo.CountByType(ctx)
	if err != nil {
		t.Fatalf("CountByType: %v", err)
	}
	if counts[domain.ErrorTypeNetworkTimeout] != 3 || counts[domain.ErrorTypeCacheError] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestErrorLogRepo_DeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	repo := NewErrorLogRepo(NewMemoryStorage())

	old := time.Now().UTC().Add(-48 * time.Hour)
	_ = repo.Add(ctx, &domain.ErrorRecord{ID: "old", CreatedAt: old})
	_ = repo.Add(ctx, &domain.ErrorRecord{ID: "new", CreatedAt: time.Now().UTC()})

	removed, err := repo.DeleteOlderThan(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	recent, _ := repo.Recent(ctx, 10)
	if len(recent) != 1 || recent[0].ID != "new" {
		t.Errorf("unexpected survivors: %+v", recent)
	}
}

func TestDecisionRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewDecisionRepo(NewMemoryStorage())

	result := &domain.DecisionResult{
		ID:   "d1",
		Rule: domain.RuleWeightedSum,
		Primary: domain.Recommendation{
			Method: domain.MethodBroadcast,
			Total:  0.475,
		},
		Confidence: 0.65,
		CreatedAt:  time.Now().UTC(),
	}
	if err := repo.Save(ctx, result); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, "d1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Primary.Method != domain.MethodBroadcast || got.Confidence != 0.65 {
		t.Errorf("unexpected result: %+v", got)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing ID: err = %v", err)
	}
}

func TestDecisionRepo_RecentAndPrune(t *testing.T) {
	ctx := context.Background()
	repo := NewDecisionRepo(NewMemoryStorage())

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		_ = repo.Save(ctx, &domain.DecisionResult{
			ID:        fmt.Sprintf("d%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "d4" || recent[1].ID != "d3" {
		t.Errorf("unexpected recents: %+v", recent)
	}

	removed, err := repo.DeleteOlderThan(ctx, base.Add(3*time.Minute))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
}

// Save copies the value; later caller mutation must not leak into the
// stored record.
func TestDecisionRepo_SaveCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewDecisionRepo(NewMemoryStorage())

	result := &domain.DecisionResult{ID: "d1", Confidence: 0.9, CreatedAt: time.Now().UTC()}
	_ = repo.Save(ctx, result)
	result.Confidence = 0.1

	got, _ := repo.GetByID(ctx, "d1")
	if got.Confidence != 0.9 {
		t.Errorf("stored record mutated: confidence = %v", got.Confidence)
	}
}
