package types

import (
	"time"

	"github.com/google/uuid"
)

// SkillHistoryRecord is an append-only ledger row. Rows are never updated or
// deleted; the current value for a skill is the most recently created row for
// that (user, skill).
type SkillHistoryRecord struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID          `gorm:"type:uuid;not null;index:idx_history_user_skill" json:"user_id"`
	SkillID      uuid.UUID          `gorm:"type:uuid;not null;index:idx_history_user_skill" json:"skill_id"`
	Level        int                `gorm:"not null;column:level" json:"level"`
	Confidence   float64            `gorm:"not null;column:confidence" json:"confidence"`
	Source       VerificationMethod `gorm:"type:text;not null;column:source" json:"source"`
	AssessmentID uuid.UUID          `gorm:"type:uuid;column:assessment_id" json:"assessment_id"`
	CreatedAt    time.Time          `gorm:"not null;default:now();index" json:"created_at"`
}

func (SkillHistoryRecord) TableName() string { return "skill_history_record" }
