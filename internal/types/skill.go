package types

import (
	"time"

	"github.com/google/uuid"
)

type SkillCategory string

const (
	SkillCategoryHard SkillCategory = "HARD"
	SkillCategorySoft SkillCategory = "SOFT"
	SkillCategoryMeta SkillCategory = "META"
)

func (c SkillCategory) Valid() bool {
	switch c {
	case SkillCategoryHard, SkillCategorySoft, SkillCategoryMeta:
		return true
	}
	return false
}

// Skill is a catalog entry. Difficulty is on the 1-5 scale; the target-level
// clamp in gap analysis assumes that scale.
type Skill struct {
	ID         uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug       string        `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Name       string        `gorm:"not null;column:name" json:"name"`
	Category   SkillCategory `gorm:"type:text;not null;column:category" json:"category"`
	Difficulty int           `gorm:"not null;column:difficulty" json:"difficulty"`
	CreatedAt  time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (Skill) TableName() string { return "skill" }
