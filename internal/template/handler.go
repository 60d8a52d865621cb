package template

import (
	"net/http"

	"droneops/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the template store
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type powerTemplateRequest struct {
	Connector     string `json:"connector" binding:"required"`
	Configuration string `json:"configuration" binding:"required"`
	Capacity      int    `json:"capacity" binding:"required"`
}

type videoTemplateRequest struct {
	DroneModelID *uuid.UUID `json:"drone_model_id"`
	IsAnalog     *bool      `json:"is_analog" binding:"required"`
	MaxDistance  int        `json:"max_distance" binding:"required"`
}

// GET /api/v1/templates/power
func (h *Handler) ListPowerTemplates(c *gin.Context) {
	templates, err := h.service.ListPowerTemplates()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"power_templates": templates})
}

// POST /api/v1/templates/power
func (h *Handler) CreatePowerTemplate(c *gin.Context) {
	var req powerTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	t, err := h.service.CreatePowerTemplate(req.Connector, req.Configuration, req.Capacity)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PUT /api/v1/templates/power/:id
func (h *Handler) UpdatePowerTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}
	var req powerTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	t, err := h.service.UpdatePowerTemplate(id, req.Connector, req.Configuration, req.Capacity)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /api/v1/templates/power/:id
// Hard deletion of templates is always rejected; components keep referencing
// them for historical compatibility checks.
func (h *Handler) DeletePowerTemplate(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "deleting power templates is forbidden"})
}

// POST /api/v1/templates/power/:id/retire
func (h *Handler) RetirePowerTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}
	if err := h.service.SoftDeletePowerTemplate(id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/v1/templates/video
func (h *Handler) ListVideoTemplates(c *gin.Context) {
	templates, err := h.service.ListVideoTemplates()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video_templates": templates})
}

// POST /api/v1/templates/video
func (h *Handler) CreateVideoTemplate(c *gin.Context) {
	var req videoTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	t, err := h.service.CreateVideoTemplate(req.DroneModelID, *req.IsAnalog, req.MaxDistance)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PUT /api/v1/templates/video/:id
func (h *Handler) UpdateVideoTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}
	var req videoTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	t, err := h.service.UpdateVideoTemplate(id, req.DroneModelID, *req.IsAnalog, req.MaxDistance)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /api/v1/templates/video/:id
func (h *Handler) DeleteVideoTemplate(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "deleting video templates is forbidden"})
}

// POST /api/v1/templates/video/:id/retire
func (h *Handler) RetireVideoTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}
	if err := h.service.SoftDeleteVideoTemplate(id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
