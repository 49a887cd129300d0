package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/repos/testutil"
	"github.com/pathwise/pathwise-backend/internal/types"
)

func TestRoadmapRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRoadmapRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "roadmaprepo-"+uuid.NewString()+"@example.com")
	assessment := testutil.SeedAssessment(t, ctx, tx, user.ID)

	skillID := uuid.New()
	created, err := repo.CreateWithMilestones(ctx, tx,
		&types.Roadmap{AssessmentID: assessment.ID, UserID: user.ID, Title: "Roadmap", TotalWeeks: 3},
		[]*types.Milestone{
			{SkillID: skillID, SkillName: "SQL", WeekNumber: 2, Title: "Deepen SQL", Status: types.MilestoneStatusPending},
			{SkillID: skillID, SkillName: "SQL", WeekNumber: 1, Title: "SQL basics", Status: types.MilestoneStatusPending},
		})
	if err != nil {
		t.Fatalf("CreateWithMilestones: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("CreateWithMilestones: expected id to be populated")
	}

	got, err := repo.GetByAssessmentID(ctx, tx, assessment.ID)
	if err != nil {
		t.Fatalf("GetByAssessmentID: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("GetByAssessmentID: unexpected row: %+v", got)
	}
	if len(got.Milestones) != 2 {
		t.Fatalf("GetByAssessmentID: expected 2 milestones, got %d", len(got.Milestones))
	}
	if got.Milestones[0].WeekNumber != 1 {
		t.Fatalf("GetByAssessmentID: milestones should order by week, got week %d first", got.Milestones[0].WeekNumber)
	}

	// A second roadmap for the same assessment violates the unique index.
	if _, err := repo.CreateWithMilestones(ctx, tx,
		&types.Roadmap{AssessmentID: assessment.ID, UserID: user.ID, Title: "Duplicate", TotalWeeks: 1}, nil); err == nil {
		t.Fatalf("CreateWithMilestones: expected unique violation for duplicate assessment")
	}
}

func TestRoadmapRepo_SetCompletedAtOnlyOnce(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRoadmapRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "roadmapdone-"+uuid.NewString()+"@example.com")
	assessment := testutil.SeedAssessment(t, ctx, tx, user.ID)
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, assessment.ID)

	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.SetCompletedAt(ctx, tx, roadmap.ID, first); err != nil {
		t.Fatalf("SetCompletedAt: %v", err)
	}
	// The second call must not move the timestamp.
	if err := repo.SetCompletedAt(ctx, tx, roadmap.ID, first.Add(24*time.Hour)); err != nil {
		t.Fatalf("SetCompletedAt twice: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, roadmap.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(first) {
		t.Fatalf("SetCompletedAt: expected %v, got %v", first, got.CompletedAt)
	}
}

func TestMilestoneRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewMilestoneRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "milestonerepo-"+uuid.NewString()+"@example.com")
	assessment := testutil.SeedAssessment(t, ctx, tx, user.ID)
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, assessment.ID)
	skillID := uuid.New()
	late := testutil.SeedMilestone(t, ctx, tx, roadmap.ID, skillID, 3)
	early := testutil.SeedMilestone(t, ctx, tx, roadmap.ID, skillID, 1)

	got, err := repo.GetByID(ctx, tx, early.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != early.ID {
		t.Fatalf("GetByID: unexpected row: %+v", got)
	}

	rows, err := repo.GetByRoadmapID(ctx, tx, roadmap.ID)
	if err != nil {
		t.Fatalf("GetByRoadmapID: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != early.ID {
		t.Fatalf("GetByRoadmapID: expected week ordering, got %+v", rows)
	}

	at := time.Now().UTC()
	if err := repo.MarkCompleted(ctx, tx, late.ID, at); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, late.ID)
	if err != nil {
		t.Fatalf("GetByID after complete: %v", err)
	}
	if got.Status != types.MilestoneStatusCompleted {
		t.Fatalf("MarkCompleted: expected COMPLETED, got %s", got.Status)
	}

	// Completing again is a guarded no-op.
	if err := repo.MarkCompleted(ctx, tx, late.ID, at.Add(time.Hour)); err != nil {
		t.Fatalf("MarkCompleted twice: %v", err)
	}
}

func TestMilestoneProgressRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewMilestoneProgressRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "progressrepo-"+uuid.NewString()+"@example.com")
	assessment := testutil.SeedAssessment(t, ctx, tx, user.ID)
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, assessment.ID)
	milestone := testutil.SeedMilestone(t, ctx, tx, roadmap.ID, uuid.New(), 1)

	now := time.Now().UTC()
	score := 0.9
	if _, err := repo.Create(ctx, tx, &types.MilestoneProgress{
		MilestoneID:         milestone.ID,
		VerificationMethod:  types.VerificationAIVerified,
		AIVerifiedAt:        &now,
		AIVerificationScore: &score,
		AIVerificationNotes: "good",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.GetByMilestoneID(ctx, tx, milestone.ID)
	if err != nil {
		t.Fatalf("GetByMilestoneID: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("GetByMilestoneID: expected 1 row, got %d", len(rows))
	}
	if rows[0].AIVerificationScore == nil || *rows[0].AIVerificationScore != 0.9 {
		t.Fatalf("GetByMilestoneID: score round trip failed: %+v", rows[0])
	}
}
