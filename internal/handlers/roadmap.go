package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/services"
)

type RoadmapHandler struct {
	svc services.RoadmapService
}

func NewRoadmapHandler(svc services.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{svc: svc}
}

// POST /api/assessments/:id/roadmap
func (h *RoadmapHandler) GenerateRoadmap(c *gin.Context) {
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	roadmap, err := h.svc.Generate(c.Request.Context(), currentUserID(c), assessmentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"roadmap": roadmap})
}

// GET /api/roadmaps/:id
func (h *RoadmapHandler) GetRoadmap(c *gin.Context) {
	roadmapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	roadmap, err := h.svc.Get(c.Request.Context(), currentUserID(c), roadmapID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"roadmap": roadmap})
}
