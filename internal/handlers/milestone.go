package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/services"
)

var errMissingQA = errors.New("question and answer are required")

type MilestoneHandler struct {
	svc services.MilestoneService
}

func NewMilestoneHandler(svc services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{svc: svc}
}

// POST /api/milestones/:id/complete
func (h *MilestoneHandler) CompleteSelfReported(c *gin.Context) {
	milestoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	milestone, err := h.svc.CompleteSelfReported(c.Request.Context(), currentUserID(c), milestoneID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"milestone": milestone})
}

// POST /api/milestones/:id/verification
func (h *MilestoneHandler) StartVerification(c *gin.Context) {
	milestoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	question, err := h.svc.StartVerification(c.Request.Context(), currentUserID(c), milestoneID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"verification": question})
}

// POST /api/milestones/:id/verification/answer
func (h *MilestoneHandler) SubmitVerificationAnswer(c *gin.Context) {
	milestoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
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
	if body.Question == "" || body.Answer == "" {
		RespondError(c, http.StatusBadRequest, "invalid_body", errMissingQA)
		return
	}

	result, err := h.svc.SubmitVerificationAnswer(c.Request.Context(), currentUserID(c), milestoneID, body.Question, body.Answer)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"result": result})
}
