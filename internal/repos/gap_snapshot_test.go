package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/pathwise/pathwise-backend/internal/repos/testutil"
	"github.com/pathwise/pathwise-backend/internal/types"
)

func TestGapSnapshotRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewGapSnapshotRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "snaprepo-"+uuid.NewString()+"@example.com")
	assessment := testutil.SeedAssessment(t, ctx, tx, user.ID)

	first := &types.GapSnapshot{
		AssessmentID:   assessment.ID,
		ReadinessScore: 40,
		Strengths:      datatypes.JSON([]byte(`["Git"]`)),
	}
	if err := repo.Upsert(ctx, tx, first); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if first.ID == uuid.Nil {
		t.Fatalf("Upsert: expected id to be populated")
	}

	// Second upsert for the same assessment overwrites the same row.
	second := &types.GapSnapshot{
		AssessmentID:   assessment.ID,
		ReadinessScore: 60,
		Strengths:      datatypes.JSON([]byte(`["Git","SQL"]`)),
	}
	if err := repo.Upsert(ctx, tx, second); err != nil {
		t.Fatalf("Upsert twice: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("Upsert: expected surviving id %s, got %s", first.ID, second.ID)
	}

	skillA, skillB := uuid.New(), uuid.New()
	items := []*types.GapItem{
		{SkillID: skillA, SkillName: "Low", CurrentLevel: 2, TargetLevel: 3, GapSize: 1, Impact: types.GapImpactMedium, EstimatedTimeWeeks: 1, Priority: 10},
		{SkillID: skillB, SkillName: "High", CurrentLevel: 1, TargetLevel: 5, GapSize: 4, Impact: types.GapImpactCritical, EstimatedTimeWeeks: 4, Priority: 40},
	}
	if err := repo.ReplaceItems(ctx, tx, first.ID, items); err != nil {
		t.Fatalf("ReplaceItems: %v", err)
	}

	got, err := repo.GetByAssessmentID(ctx, tx, assessment.ID)
	if err != nil {
		t.Fatalf("GetByAssessmentID: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Fatalf("GetByAssessmentID: unexpected row: %+v", got)
	}
	if got.ReadinessScore != 60 {
		t.Fatalf("GetByAssessmentID: expected overwritten readiness 60, got %d", got.ReadinessScore)
	}
	if len(got.Gaps) != 2 {
		t.Fatalf("GetByAssessmentID: expected 2 items, got %d", len(got.Gaps))
	}
	if got.Gaps[0].Priority != 40 {
		t.Fatalf("GetByAssessmentID: items should order by priority desc, got %d first", got.Gaps[0].Priority)
	}

	// Replacement is wholesale.
	if err := repo.ReplaceItems(ctx, tx, first.ID, []*types.GapItem{
		{SkillID: skillA, SkillName: "Only", CurrentLevel: 2, TargetLevel: 4, GapSize: 2, Impact: types.GapImpactHigh, EstimatedTimeWeeks: 2, Priority: 20},
	}); err != nil {
		t.Fatalf("ReplaceItems again: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Gaps) != 1 || got.Gaps[0].SkillName != "Only" {
		t.Fatalf("ReplaceItems: old items should be gone: %+v", got.Gaps)
	}
}
