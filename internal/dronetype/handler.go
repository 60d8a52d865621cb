package dronetype

import (
	"net/http"

	"droneops/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the drone type catalog
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type fpvTypeRequest struct {
	ModelID             uuid.UUID   `json:"model_id" binding:"required"`
	PurposeID           *uuid.UUID  `json:"purpose_id"`
	PropSize            string      `json:"prop_size" binding:"required"`
	ControlFrequencyIDs []uuid.UUID `json:"control_frequency_ids" binding:"required"`
	VideoFrequencyID    uuid.UUID   `json:"video_frequency_id" binding:"required"`
	PowerTemplateID     uuid.UUID   `json:"power_template_id" binding:"required"`
	HasThermal          bool        `json:"has_thermal"`
	Notes               string      `json:"notes"`
}

type opticalTypeRequest struct {
	ModelID             uuid.UUID   `json:"model_id" binding:"required"`
	PurposeID           *uuid.UUID  `json:"purpose_id"`
	PropSize            string      `json:"prop_size" binding:"required"`
	ControlFrequencyIDs []uuid.UUID `json:"control_frequency_ids" binding:"required"`
	VideoTemplateID     uuid.UUID   `json:"video_template_id" binding:"required"`
	PowerTemplateID     uuid.UUID   `json:"power_template_id" binding:"required"`
	HasThermal          bool        `json:"has_thermal"`
	Notes               string      `json:"notes"`
}

// GET /api/v1/drone-types
func (h *Handler) ListTypes(c *gin.Context) {
	fpv, err := h.service.ListFPVTypes()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	optical, err := h.service.ListOpticalTypes()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"fpv_types":     fpv,
		"optical_types": optical,
	})
}

// POST /api/v1/drone-types/fpv
func (h *Handler) CreateFPVType(c *gin.Context) {
	var req fpvTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	t, err := h.service.CreateFPVType(FPVTypeInput{
		ModelID:             req.ModelID,
		PurposeID:           req.PurposeID,
		PropSize:            req.PropSize,
		ControlFrequencyIDs: req.ControlFrequencyIDs,
		VideoFrequencyID:    req.VideoFrequencyID,
		PowerTemplateID:     req.PowerTemplateID,
		HasThermal:          req.HasThermal,
		Notes:               req.Notes,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// POST /api/v1/drone-types/optical
func (h *Handler) CreateOpticalType(c *gin.Context) {
	var req opticalTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	t, err := h.service.CreateOpticalType(OpticalTypeInput{
		ModelID:             req.ModelID,
		PurposeID:           req.PurposeID,
		PropSize:            req.PropSize,
		ControlFrequencyIDs: req.ControlFrequencyIDs,
		VideoTemplateID:     req.VideoTemplateID,
		PowerTemplateID:     req.PowerTemplateID,
		HasThermal:          req.HasThermal,
		Notes:               req.Notes,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// DELETE /api/v1/drone-types/fpv/:id
func (h *Handler) DeleteFPVType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid drone type ID"})
		return
	}
	if err := h.service.DeleteFPVType(id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/v1/drone-types/optical/:id
func (h *Handler) DeleteOpticalType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid drone type ID"})
		return
	}
	if err := h.service.DeleteOpticalType(id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
