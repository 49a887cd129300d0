package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/types"
)

type GapSnapshotRepo interface {
	// Upsert writes the one snapshot row for the assessment, keyed by the
	// unique assessment_id. On conflict all fields are overwritten and row
	// is populated with the surviving primary key.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.GapSnapshot) error
	// ReplaceItems swaps the snapshot's gap items wholesale.
	ReplaceItems(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID, items []*types.GapItem) error
	GetByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (*types.GapSnapshot, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.GapSnapshot, error)
}

type gapSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGapSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) GapSnapshotRepo {
	return &gapSnapshotRepo{db: db, log: baseLog.With("repo", "GapSnapshotRepo")}
}

func (r *gapSnapshotRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.GapSnapshot) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.AssessmentID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("assessment_id = ?", row.AssessmentID).
		Assign(map[string]interface{}{
			"readiness_score":        row.ReadinessScore,
			"strengths":              row.Strengths,
			"overall_recommendation": row.OverallRecommendation,
			"updated_at":             time.Now().UTC(),
		}).
		FirstOrCreate(row).Error
}

func (r *gapSnapshotRepo) ReplaceItems(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID, items []*types.GapItem) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if snapshotID == uuid.Nil {
		return nil
	}
	if err := transaction.WithContext(ctx).
		Where("snapshot_id = ?", snapshotID).
		Delete(&types.GapItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for _, it := range items {
		it.SnapshotID = snapshotID
	}
	return transaction.WithContext(ctx).Create(&items).Error
}

func (r *gapSnapshotRepo) GetByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (*types.GapSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if assessmentID == uuid.Nil {
		return nil, nil
	}
	var row types.GapSnapshot
	err := transaction.WithContext(ctx).
		Preload("Gaps", func(db *gorm.DB) *gorm.DB {
			return db.Order("priority DESC")
		}).
		Where("assessment_id = ?", assessmentID).
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

func (r *gapSnapshotRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.GapSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.GapSnapshot
	err := transaction.WithContext(ctx).
		Preload("Gaps", func(db *gorm.DB) *gorm.DB {
			return db.Order("priority DESC")
		}).
		Where("id = ?", id).
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
