package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pathwise/pathwise-backend/internal/services"
	"github.com/pathwise/pathwise-backend/internal/types"
)

type SkillHistoryHandler struct {
	svc services.SkillHistoryService
}

func NewSkillHistoryHandler(svc services.SkillHistoryService) *SkillHistoryHandler {
	return &SkillHistoryHandler{svc: svc}
}

// GET /api/skill-history
func (h *SkillHistoryHandler) GetSkillHistory(c *gin.Context) {
	userID := currentUserID(c)

	records, err := h.svc.History(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	latest, err := h.svc.LatestPerSkill(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	latestOut := make(map[string]*types.SkillHistoryRecord, len(latest))
	for skillID, record := range latest {
		latestOut[skillID.String()] = record
	}
	RespondOK(c, gin.H{"records": records, "latest_per_skill": latestOut})
}
