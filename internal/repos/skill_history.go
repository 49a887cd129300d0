package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/types"
)

// SkillHistoryRepo is the append-only ledger. No update or delete exists.
type SkillHistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.SkillHistoryRecord) (*types.SkillHistoryRecord, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SkillHistoryRecord, error)
}

type skillHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillHistoryRepo(db *gorm.DB, baseLog *logger.Logger) SkillHistoryRepo {
	return &skillHistoryRepo{db: db, log: baseLog.With("repo", "SkillHistoryRepo")}
}

func (r *skillHistoryRepo) Create(ctx context.Context, tx *gorm.DB, row *types.SkillHistoryRecord) (*types.SkillHistoryRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *skillHistoryRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SkillHistoryRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SkillHistoryRecord
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
