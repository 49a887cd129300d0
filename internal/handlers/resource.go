package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/services"
)

type ResourceHandler struct {
	svc services.ResourceService
}

func NewResourceHandler(svc services.ResourceService) *ResourceHandler {
	return &ResourceHandler{svc: svc}
}

// GET /api/snapshots/:id/skills/:skillId/resources
func (h *ResourceHandler) ReadResources(c *gin.Context) {
	snapshotID, skillID, ok := h.parseIDs(c)
	if !ok {
		return
	}

	resources, err := h.svc.Read(c.Request.Context(), currentUserID(c), snapshotID, skillID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"resources": resources})
}

// POST /api/snapshots/:id/skills/:skillId/resources
func (h *ResourceHandler) RegenerateResources(c *gin.Context) {
	snapshotID, skillID, ok := h.parseIDs(c)
	if !ok {
		return
	}

	resources, err := h.svc.Regenerate(c.Request.Context(), currentUserID(c), snapshotID, skillID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"resources": resources})
}

func (h *ResourceHandler) parseIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	snapshotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, uuid.Nil, false
	}
	skillID, err := uuid.Parse(c.Param("skillId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_skill_id", err)
		return uuid.Nil, uuid.Nil, false
	}
	return snapshotID, skillID, true
}
