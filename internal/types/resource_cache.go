package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LearningResource is one recommended resource as stored in the cache payload.
type LearningResource struct {
	Title            string `json:"title"`
	Provider         string `json:"provider"`
	URL              string `json:"url"`
	Cost             string `json:"cost"`
	Type             string `json:"type"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

// ResourceCacheEntry caches resource recommendations per (snapshot, skill).
// Regeneration overwrites the payload wholesale.
type ResourceCacheEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SnapshotID uuid.UUID      `gorm:"type:uuid;not null;index:idx_cache_snapshot_skill,unique" json:"snapshot_id"`
	Snapshot   *GapSnapshot   `gorm:"constraint:OnDelete:CASCADE;foreignKey:SnapshotID;references:ID" json:"snapshot,omitempty"`
	SkillID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_cache_snapshot_skill,unique" json:"skill_id"`
	Resources  datatypes.JSON `gorm:"type:jsonb;not null;column:resources" json:"resources"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ResourceCacheEntry) TableName() string { return "resource_cache_entry" }
