package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/platform/apierr"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/repos"
	"github.com/pathwise/pathwise-backend/internal/types"
)

// ResourceService fronts the per-(snapshot, skill) recommendation cache.
// Read never reaches the advisor; Regenerate always does, and overwrites the
// cached list wholesale.
type ResourceService interface {
	Read(ctx context.Context, userID, snapshotID, skillID uuid.UUID) ([]types.LearningResource, error)
	Regenerate(ctx context.Context, userID, snapshotID, skillID uuid.UUID) ([]types.LearningResource, error)
}

type resourceService struct {
	db          *gorm.DB
	log         *logger.Logger
	snapshots   repos.GapSnapshotRepo
	assessments repos.AssessmentRepo
	cache       repos.ResourceCacheRepo
	advisor     AdvisorService
}

func NewResourceService(
	db *gorm.DB,
	log *logger.Logger,
	snapshots repos.GapSnapshotRepo,
	assessments repos.AssessmentRepo,
	cache repos.ResourceCacheRepo,
	advisor AdvisorService,
) ResourceService {
	return &resourceService{
		db:          db,
		log:         log.With("service", "ResourceService"),
		snapshots:   snapshots,
		assessments: assessments,
		cache:       cache,
		advisor:     advisor,
	}
}

func (s *resourceService) Read(ctx context.Context, userID, snapshotID, skillID uuid.UUID) ([]types.LearningResource, error) {
	if _, err := s.ownedSnapshot(ctx, userID, snapshotID); err != nil {
		return nil, err
	}
	entry, err := s.cache.Get(ctx, nil, snapshotID, skillID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return []types.LearningResource{}, nil
	}
	var resources []types.LearningResource
	if err := json.Unmarshal(entry.Resources, &resources); err != nil {
		return nil, fmt.Errorf("decode cached resources: %w", err)
	}
	return resources, nil
}

func (s *resourceService) Regenerate(ctx context.Context, userID, snapshotID, skillID uuid.UUID) ([]types.LearningResource, error) {
	snapshot, err := s.ownedSnapshot(ctx, userID, snapshotID)
	if err != nil {
		return nil, err
	}

	var gap *types.GapItem
	for _, g := range snapshot.Gaps {
		if g.SkillID == skillID {
			gap = g
			break
		}
	}
	if gap == nil {
		return nil, apierr.NotFound("gap_not_found", fmt.Errorf("snapshot %s has no gap for skill %s", snapshotID, skillID))
	}

	resources := s.advisor.RecommendResources(ctx, gap.SkillName, gap.CurrentLevel, gap.TargetLevel)

	payload, err := json.Marshal(resources)
	if err != nil {
		return nil, err
	}
	entry := &types.ResourceCacheEntry{
		SnapshotID: snapshotID,
		SkillID:    skillID,
		Resources:  datatypes.JSON(payload),
	}
	if err := s.cache.Upsert(ctx, nil, entry); err != nil {
		return nil, err
	}

	s.log.Info("Resource cache regenerated",
		"snapshot_id", snapshotID.String(),
		"skill_id", skillID.String(),
		"resources", len(resources),
	)
	return resources, nil
}

func (s *resourceService) ownedSnapshot(ctx context.Context, userID, snapshotID uuid.UUID) (*types.GapSnapshot, error) {
	snapshot, err := s.snapshots.GetByID(ctx, nil, snapshotID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apierr.NotFound("snapshot_not_found", fmt.Errorf("snapshot %s not found", snapshotID))
	}
	assessment, err := s.assessments.GetByID(ctx, nil, snapshot.AssessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil || assessment.UserID != userID {
		return nil, apierr.NotFound("snapshot_not_found", fmt.Errorf("snapshot %s not found", snapshotID))
	}
	return snapshot, nil
}
