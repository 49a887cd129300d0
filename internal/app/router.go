package app

import (
	"github.com/gin-gonic/gin"

	"github.com/pathwise/pathwise-backend/internal/server"
)

func wireRouter(cfg Config, mw Middleware, h Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:      mw.Auth,
		HealthcheckHandler:  h.Healthcheck,
		SkillHandler:        h.Skill,
		AssessmentHandler:   h.Assessment,
		ResourceHandler:     h.Resource,
		RoadmapHandler:      h.Roadmap,
		MilestoneHandler:    h.Milestone,
		SkillHistoryHandler: h.SkillHistory,
		AllowOrigins:        cfg.AllowOrigins,
	})
}
