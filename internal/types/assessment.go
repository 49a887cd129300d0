package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CareerIntent string

const (
	CareerIntentGrowth     CareerIntent = "GROWTH"
	CareerIntentLeadership CareerIntent = "LEADERSHIP"
	CareerIntentSwitch     CareerIntent = "SWITCH"
)

type AssessmentStatus string

const (
	AssessmentStatusInProgress AssessmentStatus = "in_progress"
	AssessmentStatusCompleted  AssessmentStatus = "completed"
)

type Assessment struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User            `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CurrentRole     string           `gorm:"column:current_role_title" json:"current_role"`
	TargetRole      string           `gorm:"column:target_role" json:"target_role"`
	YearsExperience string           `gorm:"column:years_experience" json:"years_experience"`
	CareerIntent    CareerIntent     `gorm:"type:text;column:career_intent" json:"career_intent"`
	Industry        string           `gorm:"column:industry" json:"industry"`
	Status          AssessmentStatus `gorm:"type:text;not null;default:'in_progress';column:status" json:"status"`
	CompletedAt     *time.Time       `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

func (Assessment) TableName() string { return "assessment" }

// Profile is the slice of an assessment the gap analyzer reads.
type Profile struct {
	CurrentRole     string       `json:"current_role"`
	TargetRole      string       `json:"target_role"`
	YearsExperience string       `json:"years_experience"`
	CareerIntent    CareerIntent `json:"career_intent"`
	Industry        string       `json:"industry"`
}

func (a *Assessment) Profile() Profile {
	return Profile{
		CurrentRole:     a.CurrentRole,
		TargetRole:      a.TargetRole,
		YearsExperience: a.YearsExperience,
		CareerIntent:    a.CareerIntent,
		Industry:        a.Industry,
	}
}
