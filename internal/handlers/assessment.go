package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/services"
)

type AssessmentHandler struct {
	svc  services.AssessmentService
	gaps services.GapService
}

func NewAssessmentHandler(svc services.AssessmentService, gaps services.GapService) *AssessmentHandler {
	return &AssessmentHandler{svc: svc, gaps: gaps}
}

// POST /api/assessments
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var input services.CreateAssessmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	assessment, observations, err := h.svc.Create(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"assessment": assessment, "observations": observations})
}

// GET /api/assessments/:id
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	assessment, observations, err := h.svc.Get(c.Request.Context(), currentUserID(c), assessmentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"assessment": assessment, "observations": observations})
}

// POST /api/assessments/:id/skills/:skillId/evaluate
func (h *AssessmentHandler) EvaluateSkill(c *gin.Context) {
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	skillID, err := uuid.Parse(c.Param("skillId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_skill_id", err)
		return
	}

	var body struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	eval, err := h.svc.EvaluateSkillAnswer(c.Request.Context(), currentUserID(c), assessmentID, skillID, body.Question, body.Answer)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"evaluation": eval})
}

// POST /api/assessments/:id/gaps
func (h *AssessmentHandler) ComputeGaps(c *gin.Context) {
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	snapshot, err := h.gaps.ComputeAndStore(c.Request.Context(), currentUserID(c), assessmentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"snapshot": snapshot})
}

// GET /api/assessments/:id/gaps
func (h *AssessmentHandler) GetGaps(c *gin.Context) {
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	snapshot, err := h.gaps.Fetch(c.Request.Context(), currentUserID(c), assessmentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"snapshot": snapshot})
}
