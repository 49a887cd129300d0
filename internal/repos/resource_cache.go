package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/types"
)

type ResourceCacheRepo interface {
	Get(ctx context.Context, tx *gorm.DB, snapshotID, skillID uuid.UUID) (*types.ResourceCacheEntry, error)
	// Upsert overwrites the payload for the unique (snapshot_id, skill_id)
	// pair; concurrent writers race to the same row, last writer wins.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.ResourceCacheEntry) error
}

type resourceCacheRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceCacheRepo(db *gorm.DB, baseLog *logger.Logger) ResourceCacheRepo {
	return &resourceCacheRepo{db: db, log: baseLog.With("repo", "ResourceCacheRepo")}
}

func (r *resourceCacheRepo) Get(ctx context.Context, tx *gorm.DB, snapshotID, skillID uuid.UUID) (*types.ResourceCacheEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if snapshotID == uuid.Nil || skillID == uuid.Nil {
		return nil, nil
	}
	var row types.ResourceCacheEntry
	err := transaction.WithContext(ctx).
		Where("snapshot_id = ? AND skill_id = ?", snapshotID, skillID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *resourceCacheRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.ResourceCacheEntry) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.SnapshotID == uuid.Nil || row.SkillID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "snapshot_id"}, {Name: "skill_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"resources", "updated_at"}),
		}).
		Create(row).Error
}
