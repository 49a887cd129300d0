package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/types"
)

// MilestoneProgressRepo is insert-only; completion attempts that fail leave
// no row.
type MilestoneProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.MilestoneProgress) (*types.MilestoneProgress, error)
	GetByMilestoneID(ctx context.Context, tx *gorm.DB, milestoneID uuid.UUID) ([]*types.MilestoneProgress, error)
}

type milestoneProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMilestoneProgressRepo(db *gorm.DB, baseLog *logger.Logger) MilestoneProgressRepo {
	return &milestoneProgressRepo{db: db, log: baseLog.With("repo", "MilestoneProgressRepo")}
}

func (r *milestoneProgressRepo) Create(ctx context.Context, tx *gorm.DB, row *types.MilestoneProgress) (*types.MilestoneProgress, error) {
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

func (r *milestoneProgressRepo) GetByMilestoneID(ctx context.Context, tx *gorm.DB, milestoneID uuid.UUID) ([]*types.MilestoneProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.MilestoneProgress
	if milestoneID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("milestone_id = ?", milestoneID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
