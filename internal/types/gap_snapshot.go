package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GapImpact string

const (
	GapImpactNone     GapImpact = "NONE"
	GapImpactMedium   GapImpact = "MEDIUM"
	GapImpactHigh     GapImpact = "HIGH"
	GapImpactCritical GapImpact = "CRITICAL"
)

// GapSnapshot is the one-per-assessment persisted result of gap analysis.
// Recomputation overwrites it in place; no history is retained.
type GapSnapshot struct {
	ID                    uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssessmentID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"assessment_id"`
	Assessment            *Assessment    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssessmentID;references:ID" json:"assessment,omitempty"`
	ReadinessScore        int            `gorm:"not null;column:readiness_score" json:"readiness_score"`
	Strengths             datatypes.JSON `gorm:"type:jsonb;column:strengths" json:"strengths"`
	OverallRecommendation string         `gorm:"type:text;column:overall_recommendation" json:"overall_recommendation"`
	Gaps                  []*GapItem     `gorm:"foreignKey:SnapshotID;references:ID" json:"gaps,omitempty"`
	CreatedAt             time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (GapSnapshot) TableName() string { return "gap_snapshot" }

// GapItem is immutable once part of a snapshot; recomputation replaces the
// snapshot's items wholesale.
type GapItem struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SnapshotID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_snapshot_skill,unique" json:"snapshot_id"`
	SkillID            uuid.UUID      `gorm:"type:uuid;not null;index:idx_snapshot_skill,unique" json:"skill_id"`
	SkillName          string         `gorm:"not null;column:skill_name" json:"skill_name"`
	CurrentLevel       int            `gorm:"not null;column:current_level" json:"current_level"`
	TargetLevel        int            `gorm:"not null;column:target_level" json:"target_level"`
	GapSize            int            `gorm:"not null;column:gap_size" json:"gap_size"`
	Impact             GapImpact      `gorm:"type:text;not null;column:impact" json:"impact"`
	Explanation        string         `gorm:"type:text;column:explanation" json:"explanation"`
	RecommendedActions datatypes.JSON `gorm:"type:jsonb;column:recommended_actions" json:"recommended_actions"`
	EstimatedTimeWeeks int            `gorm:"not null;column:estimated_time_weeks" json:"estimated_time_weeks"`
	Priority           int            `gorm:"not null;column:priority" json:"priority"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (GapItem) TableName() string { return "gap_item" }
