package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Roadmap is created once per assessment. CompletedAt is set when every
// milestone reaches COMPLETED and is never unset.
type Roadmap struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssessmentID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex" json:"assessment_id"`
	Assessment   *Assessment  `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssessmentID;references:ID" json:"assessment,omitempty"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string       `gorm:"not null;column:title" json:"title"`
	TotalWeeks   int          `gorm:"not null;column:total_weeks" json:"total_weeks"`
	CompletedAt  *time.Time   `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Milestones   []*Milestone `gorm:"foreignKey:RoadmapID;references:ID" json:"milestones,omitempty"`
	CreatedAt    time.Time    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:now()" json:"updated_at"`
}

func (Roadmap) TableName() string { return "roadmap" }

type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "PENDING"
	MilestoneStatusInProgress MilestoneStatus = "IN_PROGRESS"
	MilestoneStatusCompleted  MilestoneStatus = "COMPLETED"
)

// Milestone is one roadmap step tied to a single skill and week. Status only
// advances toward COMPLETED, never regresses.
type Milestone struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoadmapID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"roadmap_id"`
	Roadmap     *Roadmap        `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
	SkillID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"skill_id"`
	SkillName   string          `gorm:"not null;column:skill_name" json:"skill_name"`
	WeekNumber  int             `gorm:"not null;column:week_number" json:"week_number"`
	Title       string          `gorm:"not null;column:title" json:"title"`
	Description string          `gorm:"type:text;column:description" json:"description"`
	Resources   datatypes.JSON  `gorm:"type:jsonb;column:resources" json:"resources"`
	Status      MilestoneStatus `gorm:"type:text;not null;default:'PENDING';column:status" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Milestone) TableName() string { return "milestone" }
