package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/platform/apierr"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/repos"
	"github.com/pathwise/pathwise-backend/internal/types"
)

// SkillHistoryService fronts the append-only cross-session skill ledger.
type SkillHistoryService interface {
	Append(ctx context.Context, record *types.SkillHistoryRecord) (*types.SkillHistoryRecord, error)
	History(ctx context.Context, userID uuid.UUID) ([]*types.SkillHistoryRecord, error)
	// LatestPerSkill keeps the most recently created row per skill; used to
	// pre-populate future assessments with previously demonstrated levels.
	LatestPerSkill(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]*types.SkillHistoryRecord, error)
}

type skillHistoryService struct {
	db      *gorm.DB
	log     *logger.Logger
	history repos.SkillHistoryRepo
}

func NewSkillHistoryService(db *gorm.DB, log *logger.Logger, history repos.SkillHistoryRepo) SkillHistoryService {
	return &skillHistoryService{
		db:      db,
		log:     log.With("service", "SkillHistoryService"),
		history: history,
	}
}

func (s *skillHistoryService) Append(ctx context.Context, record *types.SkillHistoryRecord) (*types.SkillHistoryRecord, error) {
	if record == nil {
		return nil, apierr.Invalid("invalid_record", fmt.Errorf("record required"))
	}
	if record.UserID == uuid.Nil || record.SkillID == uuid.Nil {
		return nil, apierr.Invalid("invalid_record", fmt.Errorf("user and skill are required"))
	}
	switch record.Source {
	case types.VerificationSelfReported, types.VerificationAIVerified:
	default:
		return nil, apierr.Invalid("invalid_record", fmt.Errorf("unknown source %q", record.Source))
	}
	return s.history.Create(ctx, nil, record)
}

func (s *skillHistoryService) History(ctx context.Context, userID uuid.UUID) ([]*types.SkillHistoryRecord, error) {
	return s.history.GetByUserID(ctx, nil, userID)
}

func (s *skillHistoryService) LatestPerSkill(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]*types.SkillHistoryRecord, error) {
	rows, err := s.history.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	// Rows arrive newest first; the first row seen per skill wins.
	latest := make(map[uuid.UUID]*types.SkillHistoryRecord, len(rows))
	for _, row := range rows {
		if _, seen := latest[row.SkillID]; !seen {
			latest[row.SkillID] = row
		}
	}
	return latest, nil
}
