package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/types"
)

type SkillObservationRepo interface {
	CreateBulk(ctx context.Context, tx *gorm.DB, rows []*types.SkillObservation) ([]*types.SkillObservation, error)
	GetByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) ([]*types.SkillObservation, error)
	GetByAssessmentAndSkill(ctx context.Context, tx *gorm.DB, assessmentID, skillID uuid.UUID) (*types.SkillObservation, error)
	UpdateLevel(ctx context.Context, tx *gorm.DB, id uuid.UUID, level int, confidence float64, source string) error
}

type skillObservationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillObservationRepo(db *gorm.DB, baseLog *logger.Logger) SkillObservationRepo {
	return &skillObservationRepo{db: db, log: baseLog.With("repo", "SkillObservationRepo")}
}

func (r *skillObservationRepo) CreateBulk(ctx context.Context, tx *gorm.DB, rows []*types.SkillObservation) ([]*types.SkillObservation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.SkillObservation{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *skillObservationRepo) GetByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) ([]*types.SkillObservation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SkillObservation
	if assessmentID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("skill_name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *skillObservationRepo) GetByAssessmentAndSkill(ctx context.Context, tx *gorm.DB, assessmentID, skillID uuid.UUID) (*types.SkillObservation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if assessmentID == uuid.Nil || skillID == uuid.Nil {
		return nil, nil
	}
	var row types.SkillObservation
	err := transaction.WithContext(ctx).
		Where("assessment_id = ? AND skill_id = ?", assessmentID, skillID).
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

func (r *skillObservationRepo) UpdateLevel(ctx context.Context, tx *gorm.DB, id uuid.UUID, level int, confidence float64, source string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.SkillObservation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_level": level,
			"confidence":    confidence,
			"source":        source,
		}).Error
}
