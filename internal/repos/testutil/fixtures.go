package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedSkill(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string, category types.SkillCategory, difficulty int) *types.Skill {
	tb.Helper()
	s := &types.Skill{
		ID:         uuid.New(),
		Slug:       slug,
		Name:       slug,
		Category:   category,
		Difficulty: difficulty,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed skill: %v", err)
	}
	return s
}

func SeedAssessment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.Assessment {
	tb.Helper()
	a := &types.Assessment{
		ID:           uuid.New(),
		UserID:       userID,
		TargetRole:   "Staff Engineer",
		CareerIntent: types.CareerIntentGrowth,
		Status:       types.AssessmentStatusInProgress,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed assessment: %v", err)
	}
	return a
}

func SeedSnapshot(tb testing.TB, ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) *types.GapSnapshot {
	tb.Helper()
	s := &types.GapSnapshot{
		ID:             uuid.New(),
		AssessmentID:   assessmentID,
		ReadinessScore: 50,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed snapshot: %v", err)
	}
	return s
}

func SeedRoadmap(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) *types.Roadmap {
	tb.Helper()
	r := &types.Roadmap{
		ID:           uuid.New(),
		AssessmentID: assessmentID,
		UserID:       userID,
		Title:        "Roadmap",
		TotalWeeks:   4,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed roadmap: %v", err)
	}
	return r
}

func SeedMilestone(tb testing.TB, ctx context.Context, tx *gorm.DB, roadmapID, skillID uuid.UUID, week int) *types.Milestone {
	tb.Helper()
	m := &types.Milestone{
		ID:         uuid.New(),
		RoadmapID:  roadmapID,
		SkillID:    skillID,
		SkillName:  "skill",
		WeekNumber: week,
		Title:      "milestone",
		Status:     types.MilestoneStatusPending,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed milestone: %v", err)
	}
	return m
}
