package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/platform/apierr"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/repos"
	"github.com/pathwise/pathwise-backend/internal/types"
)

// RoadmapService turns a snapshot's positive gaps into a milestone plan.
// Generate is create-if-absent, never a recompute.
type RoadmapService interface {
	Generate(ctx context.Context, userID, assessmentID uuid.UUID) (*types.Roadmap, error)
	Get(ctx context.Context, userID, roadmapID uuid.UUID) (*types.Roadmap, error)
}

type roadmapService struct {
	db          *gorm.DB
	log         *logger.Logger
	assessments repos.AssessmentRepo
	snapshots   repos.GapSnapshotRepo
	roadmaps    repos.RoadmapRepo
	advisor     AdvisorService
}

func NewRoadmapService(
	db *gorm.DB,
	log *logger.Logger,
	assessments repos.AssessmentRepo,
	snapshots repos.GapSnapshotRepo,
	roadmaps repos.RoadmapRepo,
	advisor AdvisorService,
) RoadmapService {
	return &roadmapService{
		db:          db,
		log:         log.With("service", "RoadmapService"),
		assessments: assessments,
		snapshots:   snapshots,
		roadmaps:    roadmaps,
		advisor:     advisor,
	}
}

func (s *roadmapService) Generate(ctx context.Context, userID, assessmentID uuid.UUID) (*types.Roadmap, error) {
	assessment, err := s.assessments.GetByID(ctx, nil, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil || assessment.UserID != userID {
		return nil, apierr.NotFound("assessment_not_found", fmt.Errorf("assessment %s not found", assessmentID))
	}

	existing, err := s.roadmaps.GetByAssessmentID(ctx, nil, assessmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if strings.TrimSpace(assessment.TargetRole) == "" {
		return nil, apierr.Precondition("target_role_missing", fmt.Errorf("assessment %s has no target role", assessmentID))
	}

	snapshot, err := s.snapshots.GetByAssessmentID(ctx, nil, assessmentID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apierr.NotFound("snapshot_not_found", fmt.Errorf("no gap snapshot for assessment %s", assessmentID))
	}

	gaps := make([]GapResult, 0, len(snapshot.Gaps))
	skillByName := make(map[string]uuid.UUID, len(snapshot.Gaps))
	for _, g := range snapshot.Gaps {
		if g.GapSize <= 0 {
			continue
		}
		gaps = append(gaps, GapResult{
			SkillID:            g.SkillID,
			SkillName:          g.SkillName,
			CurrentLevel:       g.CurrentLevel,
			TargetLevel:        g.TargetLevel,
			GapSize:            g.GapSize,
			Impact:             g.Impact,
			EstimatedTimeWeeks: g.EstimatedTimeWeeks,
			Priority:           g.Priority,
		})
		skillByName[strings.ToLower(g.SkillName)] = g.SkillID
	}
	if len(gaps) == 0 {
		return nil, apierr.Precondition("no_positive_gaps", fmt.Errorf("assessment %s has no skill gaps to plan", assessmentID))
	}

	profile := assessment.Profile()
	plan := s.advisor.PlanRoadmap(ctx, profile, gaps)

	milestones := plannedToMilestones(plan, skillByName)
	if len(milestones) == 0 {
		plan = FallbackRoadmapPlan(profile, gaps)
		milestones = plannedToMilestones(plan, skillByName)
	}

	roadmap := &types.Roadmap{
		AssessmentID: assessmentID,
		UserID:       userID,
		Title:        plan.Title,
		TotalWeeks:   plan.TotalWeeks,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		_, txErr := s.roadmaps.CreateWithMilestones(ctx, tx, roadmap, milestones)
		return txErr
	})
	if err != nil {
		// A concurrent writer may have won the unique assessment_id race;
		// the surviving row is the roadmap.
		if existing, getErr := s.roadmaps.GetByAssessmentID(ctx, nil, assessmentID); getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}

	s.log.Info("Roadmap generated",
		"assessment_id", assessmentID.String(),
		"roadmap_id", roadmap.ID.String(),
		"milestones", len(milestones),
		"total_weeks", roadmap.TotalWeeks,
	)
	return s.roadmaps.GetByID(ctx, nil, roadmap.ID)
}

func (s *roadmapService) Get(ctx context.Context, userID, roadmapID uuid.UUID) (*types.Roadmap, error) {
	roadmap, err := s.roadmaps.GetByID(ctx, nil, roadmapID)
	if err != nil {
		return nil, err
	}
	if roadmap == nil || roadmap.UserID != userID {
		return nil, apierr.NotFound("roadmap_not_found", fmt.Errorf("roadmap %s not found", roadmapID))
	}
	return roadmap, nil
}

func plannedToMilestones(plan RoadmapPlan, skillByName map[string]uuid.UUID) []*types.Milestone {
	milestones := make([]*types.Milestone, 0, len(plan.Milestones))
	for _, pm := range plan.Milestones {
		skillID, ok := skillByName[strings.ToLower(pm.SkillName)]
		if !ok {
			continue
		}
		resources, _ := json.Marshal(pm.Resources)
		milestones = append(milestones, &types.Milestone{
			SkillID:     skillID,
			SkillName:   pm.SkillName,
			WeekNumber:  pm.WeekNumber,
			Title:       pm.Title,
			Description: pm.Description,
			Resources:   datatypes.JSON(resources),
			Status:      types.MilestoneStatusPending,
		})
	}
	return milestones
}
