package inventory

import (
	"net/http"
	"strconv"

	"droneops/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createComponentRequest struct {
	Kind            string     `json:"kind" binding:"required"`
	PowerTemplateID *uuid.UUID `json:"power_template_id"`
	VideoTemplateID *uuid.UUID `json:"video_template_id"`
	OtherTypeID     *uuid.UUID `json:"other_type_id"`
	Status          string     `json:"status"`
	Quantity        int        `json:"quantity"`
	Notes           string     `json:"notes"`
}

// POST /api/v1/components
func (h *Handler) CreateComponents(c *gin.Context) {
	var req createComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	created, err := h.assignment.CreateComponent(ComponentInput{
		Kind:            req.Kind,
		PowerTemplateID: req.PowerTemplateID,
		VideoTemplateID: req.VideoTemplateID,
		OtherTypeID:     req.OtherTypeID,
		Status:          req.Status,
		Notes:           req.Notes,
	}, req.Quantity)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"components": created, "count": len(created)})
}

// GET /api/v1/components
func (h *Handler) ListComponents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	components, total, err := h.assignment.ListComponents(ComponentFilter{
		Kind:     c.Query("kind"),
		Status:   c.Query("status"),
		Assigned: c.Query("assigned"),
		Page:     page,
		PerPage:  20,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"components": components,
		"total":      total,
		"page":       page,
		"per_page":   20,
	})
}

// GET /api/v1/components/:id
func (h *Handler) GetComponent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}
	component, err := h.assignment.GetComponent(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, component)
}

type updateComponentRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// PUT /api/v1/components/:id
func (h *Handler) UpdateComponent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}
	var req updateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	component, err := h.assignment.UpdateComponent(id, req.Status, req.Notes)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, component)
}

// DELETE /api/v1/components/:id
func (h *Handler) DeleteComponent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}
	if err := h.assignment.DeleteComponent(id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Component deleted"})
}

type attachRequest struct {
	UAVID uuid.UUID `json:"uav_id" binding:"required"`
}

// POST /api/v1/components/:id/attach
func (h *Handler) AttachComponent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}
	var req attachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.assignment.Attach(id, req.UAVID); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Component attached"})
}

// POST /api/v1/components/:id/detach
func (h *Handler) DetachComponent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}
	var req attachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.assignment.Detach(id, req.UAVID); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Component detached"})
}

// POST /api/v1/components/:id/damage
func (h *Handler) DamageComponent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}
	if err := h.assignment.MarkDamaged(id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Component marked as damaged"})
}

// POST /api/v1/components/:id/restore
func (h *Handler) RestoreComponent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}
	if err := h.assignment.Restore(id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Component restored"})
}

// GET /api/v1/components/available-uavs
// UAVs a new or existing component of the given kind could be attached to.
func (h *Handler) AvailableUAVs(c *gin.Context) {
	kind := c.Query("kind")
	var excludeID, powerTemplateID, videoTemplateID *uuid.UUID
	if raw := c.Query("exclude"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			excludeID = &id
		}
	}
	if raw := c.Query("power_template_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			powerTemplateID = &id
		}
	}
	if raw := c.Query("video_template_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			videoTemplateID = &id
		}
	}
	uavs, err := h.assignment.AvailableUAVsForKind(kind, excludeID, powerTemplateID, videoTemplateID)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	items := make([]gin.H, 0, len(uavs))
	for _, u := range uavs {
		items = append(items, uavView(u))
	}
	c.JSON(http.StatusOK, gin.H{"uavs": items})
}

// GET /api/v1/component-types
func (h *Handler) ListOtherTypes(c *gin.Context) {
	types, err := h.assignment.ListOtherTypes()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"component_types": types})
}

type otherTypeRequest struct {
	Model    string `json:"model" binding:"required"`
	Category string `json:"category" binding:"required"`
	Notes    string `json:"notes"`
}

// POST /api/v1/component-types
func (h *Handler) CreateOtherType(c *gin.Context) {
	var req otherTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.assignment.CreateOtherType(req.Model, req.Category, req.Notes)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// DELETE /api/v1/component-types/:id
func (h *Handler) DeleteOtherType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component type ID"})
		return
	}
	if err := h.assignment.DeleteOtherType(id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Component type deleted"})
}
