package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pathwise/pathwise-backend/internal/repos"
)

type SkillHandler struct {
	skills repos.SkillRepo
}

func NewSkillHandler(skills repos.SkillRepo) *SkillHandler {
	return &SkillHandler{skills: skills}
}

// GET /api/skills
func (h *SkillHandler) ListSkills(c *gin.Context) {
	rows, err := h.skills.List(c.Request.Context(), nil)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"skills": rows})
}
