package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pathwise/pathwise-backend/internal/handlers"
	"github.com/pathwise/pathwise-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware      *middleware.AuthMiddleware
	HealthcheckHandler  *handlers.HealthcheckHandler
	SkillHandler        *handlers.SkillHandler
	AssessmentHandler   *handlers.AssessmentHandler
	ResourceHandler     *handlers.ResourceHandler
	RoadmapHandler      *handlers.RoadmapHandler
	MilestoneHandler    *handlers.MilestoneHandler
	SkillHistoryHandler *handlers.SkillHistoryHandler
	AllowOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Skill catalog
	api.GET("/skills", cfg.SkillHandler.ListSkills)

	// Assessments + gap analysis
	api.POST("/assessments", cfg.AssessmentHandler.CreateAssessment)
	api.GET("/assessments/:id", cfg.AssessmentHandler.GetAssessment)
	api.POST("/assessments/:id/skills/:skillId/evaluate", cfg.AssessmentHandler.EvaluateSkill)
	api.POST("/assessments/:id/gaps", cfg.AssessmentHandler.ComputeGaps)
	api.GET("/assessments/:id/gaps", cfg.AssessmentHandler.GetGaps)

	// Resource recommendation cache
	api.GET("/snapshots/:id/skills/:skillId/resources", cfg.ResourceHandler.ReadResources)
	api.POST("/snapshots/:id/skills/:skillId/resources", cfg.ResourceHandler.RegenerateResources)

	// Roadmaps + milestones
	api.POST("/assessments/:id/roadmap", cfg.RoadmapHandler.GenerateRoadmap)
	api.GET("/roadmaps/:id", cfg.RoadmapHandler.GetRoadmap)
	api.POST("/milestones/:id/complete", cfg.MilestoneHandler.CompleteSelfReported)
	api.POST("/milestones/:id/verification", cfg.MilestoneHandler.StartVerification)
	api.POST("/milestones/:id/verification/answer", cfg.MilestoneHandler.SubmitVerificationAnswer)

	// Skill ledger
	api.GET("/skill-history", cfg.SkillHistoryHandler.GetSkillHistory)

	return router
}
