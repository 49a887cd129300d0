package app

import (
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/repos"
)

type Repos struct {
	User              repos.UserRepo
	Skill             repos.SkillRepo
	Assessment        repos.AssessmentRepo
	SkillObservation  repos.SkillObservationRepo
	GapSnapshot       repos.GapSnapshotRepo
	ResourceCache     repos.ResourceCacheRepo
	Roadmap           repos.RoadmapRepo
	Milestone         repos.MilestoneRepo
	MilestoneProgress repos.MilestoneProgressRepo
	SkillHistory      repos.SkillHistoryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		Skill:             repos.NewSkillRepo(db, log),
		Assessment:        repos.NewAssessmentRepo(db, log),
		SkillObservation:  repos.NewSkillObservationRepo(db, log),
		GapSnapshot:       repos.NewGapSnapshotRepo(db, log),
		ResourceCache:     repos.NewResourceCacheRepo(db, log),
		Roadmap:           repos.NewRoadmapRepo(db, log),
		Milestone:         repos.NewMilestoneRepo(db, log),
		MilestoneProgress: repos.NewMilestoneProgressRepo(db, log),
		SkillHistory:      repos.NewSkillHistoryRepo(db, log),
	}
}
