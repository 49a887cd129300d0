package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/platform/apierr"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/repos"
	"github.com/pathwise/pathwise-backend/internal/types"
)

// ObservationInput is one skill the caller wants assessed. Level is optional:
// when nil, the ledger's latest verified level for that skill is used, else 0.
type ObservationInput struct {
	SkillID uuid.UUID `json:"skill_id"`
	Level   *int      `json:"level,omitempty"`
}

type CreateAssessmentInput struct {
	CurrentRole     string             `json:"current_role"`
	TargetRole      string             `json:"target_role"`
	YearsExperience string             `json:"years_experience"`
	CareerIntent    types.CareerIntent `json:"career_intent"`
	Industry        string             `json:"industry"`
	Observations    []ObservationInput `json:"observations"`
}

// AssessmentService owns assessment intake: profile capture, per-skill
// observations validated against the catalog, ledger prefill, and advisor
// evaluation of free-text answers.
type AssessmentService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateAssessmentInput) (*types.Assessment, []*types.SkillObservation, error)
	Get(ctx context.Context, userID, assessmentID uuid.UUID) (*types.Assessment, []*types.SkillObservation, error)
	EvaluateSkillAnswer(ctx context.Context, userID, assessmentID, skillID uuid.UUID, question, answer string) (SkillEvaluation, error)
}

type assessmentService struct {
	db           *gorm.DB
	log          *logger.Logger
	assessments  repos.AssessmentRepo
	observations repos.SkillObservationRepo
	skills       repos.SkillRepo
	history      SkillHistoryService
	advisor      AdvisorService
}

func NewAssessmentService(
	db *gorm.DB,
	log *logger.Logger,
	assessments repos.AssessmentRepo,
	observations repos.SkillObservationRepo,
	skills repos.SkillRepo,
	history SkillHistoryService,
	advisor AdvisorService,
) AssessmentService {
	return &assessmentService{
		db:           db,
		log:          log.With("service", "AssessmentService"),
		assessments:  assessments,
		observations: observations,
		skills:       skills,
		history:      history,
		advisor:      advisor,
	}
}

func (s *assessmentService) Create(ctx context.Context, userID uuid.UUID, input CreateAssessmentInput) (*types.Assessment, []*types.SkillObservation, error) {
	if userID == uuid.Nil {
		return nil, nil, apierr.Invalid("invalid_user", fmt.Errorf("user required"))
	}
	if len(input.Observations) == 0 {
		return nil, nil, apierr.Invalid("no_observations", fmt.Errorf("at least one skill observation is required"))
	}

	ids := make([]uuid.UUID, 0, len(input.Observations))
	for _, o := range input.Observations {
		if o.SkillID == uuid.Nil {
			return nil, nil, apierr.Invalid("invalid_skill", fmt.Errorf("observation missing skill id"))
		}
		if o.Level != nil && (*o.Level < 0 || *o.Level > 5) {
			return nil, nil, apierr.Invalid("invalid_level", fmt.Errorf("level %d outside [0,5]", *o.Level))
		}
		ids = append(ids, o.SkillID)
	}

	catalog, err := s.skills.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, nil, err
	}
	bySkill := make(map[uuid.UUID]*types.Skill, len(catalog))
	for _, sk := range catalog {
		bySkill[sk.ID] = sk
	}
	for _, o := range input.Observations {
		if _, ok := bySkill[o.SkillID]; !ok {
			return nil, nil, apierr.Invalid("unknown_skill", fmt.Errorf("skill %s is not in the catalog", o.SkillID))
		}
	}

	priorLevels, err := s.history.LatestPerSkill(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	assessment := &types.Assessment{
		UserID:          userID,
		CurrentRole:     strings.TrimSpace(input.CurrentRole),
		TargetRole:      strings.TrimSpace(input.TargetRole),
		YearsExperience: strings.TrimSpace(input.YearsExperience),
		CareerIntent:    input.CareerIntent,
		Industry:        strings.TrimSpace(input.Industry),
		Status:          types.AssessmentStatusInProgress,
	}

	rows := make([]*types.SkillObservation, 0, len(input.Observations))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, txErr := s.assessments.Create(ctx, tx, assessment); txErr != nil {
			return txErr
		}
		for _, o := range input.Observations {
			sk := bySkill[o.SkillID]
			row := &types.SkillObservation{
				AssessmentID: assessment.ID,
				SkillID:      sk.ID,
				SkillName:    sk.Name,
				Category:     sk.Category,
				Difficulty:   sk.Difficulty,
				Source:       "user",
			}
			switch {
			case o.Level != nil:
				row.CurrentLevel = *o.Level
			default:
				if prior, ok := priorLevels[sk.ID]; ok {
					row.CurrentLevel = prior.Level
					row.Confidence = prior.Confidence
					row.Source = "ledger"
				}
			}
			rows = append(rows, row)
		}
		_, txErr := s.observations.CreateBulk(ctx, tx, rows)
		return txErr
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("Assessment created",
		"user_id", userID.String(),
		"assessment_id", assessment.ID.String(),
		"observations", len(rows),
	)
	return assessment, rows, nil
}

func (s *assessmentService) Get(ctx context.Context, userID, assessmentID uuid.UUID) (*types.Assessment, []*types.SkillObservation, error) {
	assessment, err := s.assessments.GetByID(ctx, nil, assessmentID)
	if err != nil {
		return nil, nil, err
	}
	if assessment == nil || assessment.UserID != userID {
		return nil, nil, apierr.NotFound("assessment_not_found", fmt.Errorf("assessment %s not found", assessmentID))
	}
	obs, err := s.observations.GetByAssessmentID(ctx, nil, assessmentID)
	if err != nil {
		return nil, nil, err
	}
	return assessment, obs, nil
}

func (s *assessmentService) EvaluateSkillAnswer(ctx context.Context, userID, assessmentID, skillID uuid.UUID, question, answer string) (SkillEvaluation, error) {
	assessment, err := s.assessments.GetByID(ctx, nil, assessmentID)
	if err != nil {
		return SkillEvaluation{}, err
	}
	if assessment == nil || assessment.UserID != userID {
		return SkillEvaluation{}, apierr.NotFound("assessment_not_found", fmt.Errorf("assessment %s not found", assessmentID))
	}
	obs, err := s.observations.GetByAssessmentAndSkill(ctx, nil, assessmentID, skillID)
	if err != nil {
		return SkillEvaluation{}, err
	}
	if obs == nil {
		return SkillEvaluation{}, apierr.NotFound("skill_not_found", fmt.Errorf("assessment %s has no observation for skill %s", assessmentID, skillID))
	}
	if strings.TrimSpace(answer) == "" {
		return SkillEvaluation{}, apierr.Invalid("empty_answer", fmt.Errorf("answer required"))
	}

	eval := s.advisor.EvaluateSkill(ctx, question, answer, GapInput{
		SkillID:      obs.SkillID,
		SkillName:    obs.SkillName,
		Category:     obs.Category,
		Difficulty:   obs.Difficulty,
		CurrentLevel: obs.CurrentLevel,
	})

	if err := s.observations.UpdateLevel(ctx, nil, obs.ID, eval.Level, eval.Confidence, "evaluated"); err != nil {
		return SkillEvaluation{}, err
	}
	return eval, nil
}
