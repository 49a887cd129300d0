package app

import (
	"github.com/pathwise/pathwise-backend/internal/handlers"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
)

type Handlers struct {
	Healthcheck  *handlers.HealthcheckHandler
	Skill        *handlers.SkillHandler
	Assessment   *handlers.AssessmentHandler
	Resource     *handlers.ResourceHandler
	Roadmap      *handlers.RoadmapHandler
	Milestone    *handlers.MilestoneHandler
	SkillHistory *handlers.SkillHistoryHandler
}

func wireHandlers(log *logger.Logger, repos Repos, svcs Services) Handlers {
	log.Info("Wiring handlers...")

	return Handlers{
		Healthcheck:  handlers.NewHealthcheckHandler(),
		Skill:        handlers.NewSkillHandler(repos.Skill),
		Assessment:   handlers.NewAssessmentHandler(svcs.Assessment, svcs.Gap),
		Resource:     handlers.NewResourceHandler(svcs.Resource),
		Roadmap:      handlers.NewRoadmapHandler(svcs.Roadmap),
		Milestone:    handlers.NewMilestoneHandler(svcs.Milestone),
		SkillHistory: handlers.NewSkillHistoryHandler(svcs.SkillHistory),
	}
}
