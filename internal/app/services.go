package app

import (
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/services"
)

type Services struct {
	Advisor      services.AdvisorService
	Assessment   services.AssessmentService
	Gap          services.GapService
	Resource     services.ResourceService
	Roadmap      services.RoadmapService
	Milestone    services.MilestoneService
	SkillHistory services.SkillHistoryService
}

func wireServices(db *gorm.DB, log *logger.Logger, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	advisor := services.NewAdvisorService(log, clients.OpenAI)
	skillHistory := services.NewSkillHistoryService(db, log, repos.SkillHistory)

	assessment := services.NewAssessmentService(db, log, repos.Assessment, repos.SkillObservation, repos.Skill, skillHistory, advisor)
	gap := services.NewGapService(db, log, repos.Assessment, repos.SkillObservation, repos.GapSnapshot, advisor)
	resource := services.NewResourceService(db, log, repos.GapSnapshot, repos.Assessment, repos.ResourceCache, advisor)
	roadmap := services.NewRoadmapService(db, log, repos.Assessment, repos.GapSnapshot, repos.Roadmap, advisor)
	milestone := services.NewMilestoneService(db, log, repos.Milestone, repos.MilestoneProgress, repos.Roadmap, repos.SkillHistory, advisor)

	return Services{
		Advisor:      advisor,
		Assessment:   assessment,
		Gap:          gap,
		Resource:     resource,
		Roadmap:      roadmap,
		Milestone:    milestone,
		SkillHistory: skillHistory,
	}
}
