package catalog

import (
	"net/http"

	"droneops/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the reference catalog
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type manufacturerRequest struct {
	Name string `json:"name" binding:"required"`
}

type droneModelRequest struct {
	Name           string    `json:"name" binding:"required"`
	ManufacturerID uuid.UUID `json:"manufacturer_id" binding:"required"`
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

type frequencyRequest struct {
	Value float64 `json:"value" binding:"required"`
	Unit  string  `json:"unit" binding:"required"`
}

// GET /api/v1/catalog/manufacturers
func (h *Handler) ListManufacturers(c *gin.Context) {
	manufacturers, err := h.service.ListManufacturers()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"manufacturers": manufacturers})
}

// POST /api/v1/catalog/manufacturers
func (h *Handler) CreateManufacturer(c *gin.Context) {
	var req manufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	m, err := h.service.CreateManufacturer(req.Name)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// PUT /api/v1/catalog/manufacturers/:id
func (h *Handler) UpdateManufacturer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manufacturer ID"})
		return
	}
	var req manufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	m, err := h.service.UpdateManufacturer(id, req.Name)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DELETE /api/v1/catalog/manufacturers/:id
func (h *Handler) DeleteManufacturer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manufacturer ID"})
		return
	}
	if err := h.service.DeleteManufacturer(id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/v1/catalog/drone-models
func (h *Handler) ListDroneModels(c *gin.Context) {
	models, err := h.service.ListDroneModels()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drone_models": models})
}

// POST /api/v1/catalog/drone-models
func (h *Handler) CreateDroneModel(c *gin.Context) {
	var req droneModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	m, err := h.service.CreateDroneModel(req.Name, req.ManufacturerID)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// DELETE /api/v1/catalog/drone-models/:id
func (h *Handler) DeleteDroneModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid drone model ID"})
		return
	}
	if err := h.service.DeleteDroneModel(id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/v1/catalog/purposes
func (h *Handler) ListPurposes(c *gin.Context) {
	purposes, err := h.service.ListPurposes()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purposes": purposes})
}

// POST /api/v1/catalog/purposes
func (h *Handler) CreatePurpose(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	p, err := h.service.CreatePurpose(req.Name)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/v1/catalog/roles
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.service.ListRoles()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// POST /api/v1/catalog/roles
func (h *Handler) CreateRole(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	r, err := h.service.CreateRole(req.Name)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// GET /api/v1/catalog/frequencies
func (h *Handler) ListFrequencies(c *gin.Context) {
	frequencies, err := h.service.ListFrequencies()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"frequencies": frequencies})
}

// POST /api/v1/catalog/frequencies
func (h *Handler) CreateFrequency(c *gin.Context) {
	var req frequencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	f, err := h.service.CreateFrequency(req.Value, req.Unit)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}
