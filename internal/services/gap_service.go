package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/platform/apierr"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/repos"
	"github.com/pathwise/pathwise-backend/internal/types"
)

// GapService runs the deterministic analyzer over an assessment's
// observations and persists the single snapshot row per assessment.
type GapService interface {
	ComputeAndStore(ctx context.Context, userID, assessmentID uuid.UUID) (*types.GapSnapshot, error)
	Fetch(ctx context.Context, userID, assessmentID uuid.UUID) (*types.GapSnapshot, error)
}

type gapService struct {
	db           *gorm.DB
	log          *logger.Logger
	assessments  repos.AssessmentRepo
	observations repos.SkillObservationRepo
	snapshots    repos.GapSnapshotRepo
	advisor      AdvisorService
}

func NewGapService(
	db *gorm.DB,
	log *logger.Logger,
	assessments repos.AssessmentRepo,
	observations repos.SkillObservationRepo,
	snapshots repos.GapSnapshotRepo,
	advisor AdvisorService,
) GapService {
	return &gapService{
		db:           db,
		log:          log.With("service", "GapService"),
		assessments:  assessments,
		observations: observations,
		snapshots:    snapshots,
		advisor:      advisor,
	}
}

func (s *gapService) ComputeAndStore(ctx context.Context, userID, assessmentID uuid.UUID) (*types.GapSnapshot, error) {
	assessment, err := s.ownedAssessment(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}

	obs, err := s.observations.GetByAssessmentID(ctx, nil, assessmentID)
	if err != nil {
		return nil, err
	}

	inputs := make([]GapInput, 0, len(obs))
	for _, o := range obs {
		if o.CurrentLevel < 0 || o.CurrentLevel > 5 {
			return nil, apierr.Invalid("invalid_level", fmt.Errorf("skill %s has level %d outside [0,5]", o.SkillName, o.CurrentLevel))
		}
		inputs = append(inputs, GapInput{
			SkillID:      o.SkillID,
			SkillName:    o.SkillName,
			Category:     o.Category,
			Difficulty:   o.Difficulty,
			CurrentLevel: o.CurrentLevel,
		})
	}

	profile := assessment.Profile()
	analysis := AnalyzeGaps(profile, inputs)

	// Narration is advisory only: the analyzer's numbers stand either way.
	// Calls go one skill at a time to respect inference rate limits.
	items := make([]*types.GapItem, 0, len(analysis.Gaps))
	for _, g := range analysis.Gaps {
		narrative := s.advisor.ExplainGap(ctx, g, profile)
		actions, _ := json.Marshal(narrative.RecommendedActions)
		items = append(items, &types.GapItem{
			SkillID:            g.SkillID,
			SkillName:          g.SkillName,
			CurrentLevel:       g.CurrentLevel,
			TargetLevel:        g.TargetLevel,
			GapSize:            g.GapSize,
			Impact:             g.Impact,
			Explanation:        narrative.Explanation,
			RecommendedActions: datatypes.JSON(actions),
			EstimatedTimeWeeks: g.EstimatedTimeWeeks,
			Priority:           g.Priority,
		})
	}

	strengths, _ := json.Marshal(analysis.Strengths)
	snapshot := &types.GapSnapshot{
		AssessmentID:          assessmentID,
		ReadinessScore:        analysis.ReadinessScore,
		Strengths:             datatypes.JSON(strengths),
		OverallRecommendation: overallRecommendation(profile, analysis),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.snapshots.Upsert(ctx, tx, snapshot); err != nil {
			return err
		}
		if err := s.snapshots.ReplaceItems(ctx, tx, snapshot.ID, items); err != nil {
			return err
		}
		if len(analysis.Gaps)+len(analysis.Strengths) == len(obs) {
			if err := s.assessments.MarkCompleted(ctx, tx, assessmentID, time.Now().UTC()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Gap snapshot stored",
		"assessment_id", assessmentID.String(),
		"readiness_score", analysis.ReadinessScore,
		"gaps", len(items),
		"strengths", len(analysis.Strengths),
	)

	return s.snapshots.GetByAssessmentID(ctx, nil, assessmentID)
}

func (s *gapService) Fetch(ctx context.Context, userID, assessmentID uuid.UUID) (*types.GapSnapshot, error) {
	if _, err := s.ownedAssessment(ctx, userID, assessmentID); err != nil {
		return nil, err
	}
	snapshot, err := s.snapshots.GetByAssessmentID(ctx, nil, assessmentID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apierr.NotFound("snapshot_not_found", fmt.Errorf("no gap snapshot for assessment %s", assessmentID))
	}
	return snapshot, nil
}

func (s *gapService) ownedAssessment(ctx context.Context, userID, assessmentID uuid.UUID) (*types.Assessment, error) {
	assessment, err := s.assessments.GetByID(ctx, nil, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil || assessment.UserID != userID {
		return nil, apierr.NotFound("assessment_not_found", fmt.Errorf("assessment %s not found", assessmentID))
	}
	return assessment, nil
}

func overallRecommendation(profile types.Profile, analysis GapAnalysis) string {
	if len(analysis.Gaps) == 0 {
		return fmt.Sprintf("You already meet the skill targets for %s. Keep your strengths sharp and consider raising the bar.", orRole(profile.TargetRole))
	}
	top := analysis.Gaps[0]
	return fmt.Sprintf("You are %d%% ready for %s. Focus first on %s, your highest-priority gap, then work down the list.",
		analysis.ReadinessScore, orRole(profile.TargetRole), top.SkillName)
}

func orRole(targetRole string) string {
	if targetRole == "" {
		return "your target role"
	}
	return targetRole
}
