package types

import (
	"time"

	"github.com/google/uuid"
)

type VerificationMethod string

const (
	VerificationSelfReported VerificationMethod = "SELF_REPORTED"
	VerificationAIVerified   VerificationMethod = "AI_VERIFIED"
)

// MilestoneProgress is append-only: one row per completion attempt that
// succeeds. Failed verification attempts leave no row.
type MilestoneProgress struct {
	ID                  uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MilestoneID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"milestone_id"`
	Milestone           *Milestone         `gorm:"constraint:OnDelete:CASCADE;foreignKey:MilestoneID;references:ID" json:"milestone,omitempty"`
	VerificationMethod  VerificationMethod `gorm:"type:text;not null;column:verification_method" json:"verification_method"`
	SelfReportedAt      *time.Time         `gorm:"column:self_reported_at" json:"self_reported_at,omitempty"`
	AIVerifiedAt        *time.Time         `gorm:"column:ai_verified_at" json:"ai_verified_at,omitempty"`
	AIVerificationScore *float64           `gorm:"column:ai_verification_score" json:"ai_verification_score,omitempty"`
	AIVerificationNotes string             `gorm:"type:text;column:ai_verification_notes" json:"ai_verification_notes,omitempty"`
	CreatedAt           time.Time          `gorm:"not null;default:now()" json:"created_at"`
}

func (MilestoneProgress) TableName() string { return "milestone_progress" }
