package types

import (
	"time"

	"github.com/google/uuid"
)

// SkillObservation is one per-skill proficiency input to an assessment.
// CurrentLevel is 0-5; Source records where the level came from (user input,
// ledger prefill, or advisor evaluation).
type SkillObservation struct {
	ID           uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssessmentID uuid.UUID     `gorm:"type:uuid;not null;index:idx_assessment_skill,unique" json:"assessment_id"`
	Assessment   *Assessment   `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssessmentID;references:ID" json:"assessment,omitempty"`
	SkillID      uuid.UUID     `gorm:"type:uuid;not null;index:idx_assessment_skill,unique" json:"skill_id"`
	SkillName    string        `gorm:"not null;column:skill_name" json:"skill_name"`
	Category     SkillCategory `gorm:"type:text;not null;column:category" json:"category"`
	Difficulty   int           `gorm:"not null;column:difficulty" json:"difficulty"`
	CurrentLevel int           `gorm:"not null;column:current_level" json:"current_level"`
	Confidence   float64       `gorm:"column:confidence" json:"confidence"`
	Source       string        `gorm:"column:source" json:"source,omitempty"`
	CreatedAt    time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (SkillObservation) TableName() string { return "skill_observation" }
