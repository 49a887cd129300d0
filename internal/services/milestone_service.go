package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/platform/apierr"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/repos"
	"github.com/pathwise/pathwise-backend/internal/types"
)

// Self-reported completions land in the ledger at a fixed conservative level;
// only AI verification can attest a higher one.
const (
	selfReportedLevel      = 4
	selfReportedConfidence = 0.6
)

// VerificationResult is what a submitted answer comes back as. On a failed
// attempt nothing is persisted and the caller may retry without limit.
type VerificationResult struct {
	Passed   bool    `json:"passed"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
	NewLevel int     `json:"new_level"`
}

// MilestoneService drives the milestone lifecycle: PENDING to COMPLETED via
// either self-report or AI verification. Every completion appends a progress
// row and a skill ledger row, then re-checks the roadmap's completion flag.
type MilestoneService interface {
	CompleteSelfReported(ctx context.Context, userID, milestoneID uuid.UUID) (*types.Milestone, error)
	StartVerification(ctx context.Context, userID, milestoneID uuid.UUID) (VerificationQuestion, error)
	SubmitVerificationAnswer(ctx context.Context, userID, milestoneID uuid.UUID, question, answer string) (VerificationResult, error)
}

type milestoneService struct {
	db         *gorm.DB
	log        *logger.Logger
	milestones repos.MilestoneRepo
	progress   repos.MilestoneProgressRepo
	roadmaps   repos.RoadmapRepo
	history    repos.SkillHistoryRepo
	advisor    AdvisorService
}

func NewMilestoneService(
	db *gorm.DB,
	log *logger.Logger,
	milestones repos.MilestoneRepo,
	progress repos.MilestoneProgressRepo,
	roadmaps repos.RoadmapRepo,
	history repos.SkillHistoryRepo,
	advisor AdvisorService,
) MilestoneService {
	return &milestoneService{
		db:         db,
		log:        log.With("service", "MilestoneService"),
		milestones: milestones,
		progress:   progress,
		roadmaps:   roadmaps,
		history:    history,
		advisor:    advisor,
	}
}

func (s *milestoneService) CompleteSelfReported(ctx context.Context, userID, milestoneID uuid.UUID) (*types.Milestone, error) {
	milestone, roadmap, err := s.ownedMilestone(ctx, userID, milestoneID)
	if err != nil {
		return nil, err
	}
	if milestone.Status == types.MilestoneStatusCompleted {
		return milestone, nil
	}

	now := time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		row := &types.MilestoneProgress{
			MilestoneID:        milestoneID,
			VerificationMethod: types.VerificationSelfReported,
			SelfReportedAt:     &now,
		}
		if _, txErr := s.progress.Create(ctx, tx, row); txErr != nil {
			return txErr
		}
		if txErr := s.milestones.MarkCompleted(ctx, tx, milestoneID, now); txErr != nil {
			return txErr
		}
		record := &types.SkillHistoryRecord{
			UserID:       roadmap.UserID,
			SkillID:      milestone.SkillID,
			Level:        selfReportedLevel,
			Confidence:   selfReportedConfidence,
			Source:       types.VerificationSelfReported,
			AssessmentID: roadmap.AssessmentID,
		}
		if _, txErr := s.history.Create(ctx, tx, record); txErr != nil {
			return txErr
		}
		return s.refreshRoadmapCompletion(ctx, tx, roadmap.ID, now)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Milestone self-reported complete",
		"milestone_id", milestoneID.String(),
		"roadmap_id", roadmap.ID.String(),
	)
	return s.milestones.GetByID(ctx, nil, milestoneID)
}

func (s *milestoneService) StartVerification(ctx context.Context, userID, milestoneID uuid.UUID) (VerificationQuestion, error) {
	milestone, _, err := s.ownedMilestone(ctx, userID, milestoneID)
	if err != nil {
		return VerificationQuestion{}, err
	}
	// Read-only: no state change until an answer passes.
	return s.advisor.GenerateVerificationQuestion(ctx, milestone.SkillName, milestone.Description), nil
}

func (s *milestoneService) SubmitVerificationAnswer(ctx context.Context, userID, milestoneID uuid.UUID, question, answer string) (VerificationResult, error) {
	milestone, roadmap, err := s.ownedMilestone(ctx, userID, milestoneID)
	if err != nil {
		return VerificationResult{}, err
	}

	score, err := s.advisor.ScoreVerificationAnswer(ctx, question, answer, milestone.SkillName)
	if err != nil {
		return VerificationResult{}, apierr.Upstream("verification_unavailable", err)
	}

	result := VerificationResult{
		Passed:   score.Passed,
		Score:    score.Score,
		Feedback: score.Feedback,
		NewLevel: score.NewLevel,
	}
	if !score.Passed {
		s.log.Info("Milestone verification failed, no state change",
			"milestone_id", milestoneID.String(),
			"score", score.Score,
		)
		return result, nil
	}
	if milestone.Status == types.MilestoneStatusCompleted {
		return result, nil
	}

	now := time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		scoreVal := score.Score
		row := &types.MilestoneProgress{
			MilestoneID:         milestoneID,
			VerificationMethod:  types.VerificationAIVerified,
			AIVerifiedAt:        &now,
			AIVerificationScore: &scoreVal,
			AIVerificationNotes: score.Feedback,
		}
		if _, txErr := s.progress.Create(ctx, tx, row); txErr != nil {
			return txErr
		}
		if txErr := s.milestones.MarkCompleted(ctx, tx, milestoneID, now); txErr != nil {
			return txErr
		}
		record := &types.SkillHistoryRecord{
			UserID:       roadmap.UserID,
			SkillID:      milestone.SkillID,
			Level:        score.NewLevel,
			Confidence:   score.Score,
			Source:       types.VerificationAIVerified,
			AssessmentID: roadmap.AssessmentID,
		}
		if _, txErr := s.history.Create(ctx, tx, record); txErr != nil {
			return txErr
		}
		return s.refreshRoadmapCompletion(ctx, tx, roadmap.ID, now)
	})
	if err != nil {
		return VerificationResult{}, err
	}

	s.log.Info("Milestone verified complete",
		"milestone_id", milestoneID.String(),
		"roadmap_id", roadmap.ID.String(),
		"score", score.Score,
		"new_level", score.NewLevel,
	)
	return result, nil
}

// refreshRoadmapCompletion scans every milestone under the roadmap; when all
// are COMPLETED the roadmap's completed_at is set. The set is idempotent and
// the flag is never unset.
func (s *milestoneService) refreshRoadmapCompletion(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID, now time.Time) error {
	rows, err := s.milestones.GetByRoadmapID(ctx, tx, roadmapID)
	if err != nil {
		return err
	}
	for _, m := range rows {
		if m.Status != types.MilestoneStatusCompleted {
			return nil
		}
	}
	return s.roadmaps.SetCompletedAt(ctx, tx, roadmapID, now)
}

func (s *milestoneService) ownedMilestone(ctx context.Context, userID, milestoneID uuid.UUID) (*types.Milestone, *types.Roadmap, error) {
	milestone, err := s.milestones.GetByID(ctx, nil, milestoneID)
	if err != nil {
		return nil, nil, err
	}
	if milestone == nil {
		return nil, nil, apierr.NotFound("milestone_not_found", fmt.Errorf("milestone %s not found", milestoneID))
	}
	roadmap, err := s.roadmaps.GetByID(ctx, nil, milestone.RoadmapID)
	if err != nil {
		return nil, nil, err
	}
	if roadmap == nil || roadmap.UserID != userID {
		return nil, nil, apierr.NotFound("milestone_not_found", fmt.Errorf("milestone %s not found", milestoneID))
	}
	return milestone, roadmap, nil
}
