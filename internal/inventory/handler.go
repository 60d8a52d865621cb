package inventory

import (
	"net/http"
	"strconv"

	"droneops/internal/common"
	"droneops/internal/dronetype"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for UAV instances
type Handler struct {
	registry   *Registry
	assignment *Assignment
}

func NewHandler(registry *Registry, assignment *Assignment) *Handler {
	return &Handler{registry: registry, assignment: assignment}
}

type createUAVRequest struct {
	DroneType      string     `json:"drone_type" binding:"required"` // "<kind>-<uuid>"
	Quantity       int        `json:"quantity" binding:"required"`
	RoleID         *uuid.UUID `json:"role_id"`
	FromLocationID *uuid.UUID `json:"from_location_id"`
	WithBattery    bool       `json:"with_battery"`
	WithSpool      bool       `json:"with_spool"`
	Notes          string     `json:"notes"`
}

// POST /api/v1/uavs
func (h *Handler) CreateUAVs(c *gin.Context) {
	var req createUAVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ref, err := dronetype.ParseTypeRef(req.DroneType)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	created, err := h.registry.Create(CreateInput{
		TypeRef:        ref,
		Quantity:       req.Quantity,
		RoleID:         req.RoleID,
		FromLocationID: req.FromLocationID,
		WithBattery:    req.WithBattery,
		WithSpool:      req.WithSpool,
		Notes:          req.Notes,
		CreatedBy:      actorID(c),
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"uavs": created, "count": len(created)})
}

// GET /api/v1/uavs
// Active UAVs, filtered and paginated, 20 per page.
func (h *Handler) ListUAVs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	filter := ListFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		TypeRef:  c.Query("drone_type"),
		Kit:      c.Query("kit"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Search:   c.Query("search"),
		Page:     page,
		PerPage:  20,
	}
	if raw := c.Query("location_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.LocationID = &id
		}
	}

	uavs, total, err := h.registry.List(filter)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	counts, err := h.registry.StatusCounts()
	if err != nil {
		common.RespondError(c, err)
		return
	}

	items := make([]gin.H, 0, len(uavs))
	for _, u := range uavs {
		items = append(items, uavView(u))
	}
	c.JSON(http.StatusOK, gin.H{
		"uavs":          items,
		"total":         total,
		"page":          filter.Page,
		"per_page":      filter.PerPage,
		"status_counts": counts,
	})
}

// GET /api/v1/uavs/:id
func (h *Handler) GetUAV(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UAV ID"})
		return
	}
	uav, err := h.registry.Get(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, uavView(*uav))
}

type updateUAVRequest struct {
	Status string     `json:"status"`
	RoleID *uuid.UUID `json:"role_id"`
	Notes  *string    `json:"notes"`
}

// PUT /api/v1/uavs/:id
func (h *Handler) UpdateUAV(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UAV ID"})
		return
	}
	var req updateUAVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uav, err := h.registry.Update(id, req.Status, req.RoleID, req.Notes)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, uavView(*uav))
}

// DELETE /api/v1/uavs/:id
// Soft delete; ?delete_components=true removes the kit as well.
func (h *Handler) DeleteUAV(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UAV ID"})
		return
	}
	deleteComponents := c.Query("delete_components") == "true"
	if err := h.registry.Delete(id, deleteComponents); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "UAV deleted"})
}

type bulkRequest struct {
	IDs          []uuid.UUID `json:"ids" binding:"required"`
	Action       string      `json:"action" binding:"required"`
	ToLocationID *uuid.UUID  `json:"to_location_id"`
}

// POST /api/v1/uavs/bulk
func (h *Handler) BulkAction(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.registry.BulkTransition(req.IDs, req.Action, req.ToLocationID, actorID(c))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type toggleGivenRequest struct {
	ToLocationID *uuid.UUID `json:"to_location_id"`
}

// POST /api/v1/uavs/:id/toggle-given
func (h *Handler) ToggleGiven(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UAV ID"})
		return
	}
	var req toggleGivenRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uav, err := h.registry.ToggleGiven(id, req.ToLocationID, actorID(c))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, uavView(*uav))
}

// uavView renders a UAV with its computed kit status.
func uavView(u UAVInstance) gin.H {
	return gin.H{
		"id":               u.ID,
		"drone_type":       u.TypeRef().String(),
		"status":           u.Status,
		"kit_status":       u.KitStatus(),
		"current_location": u.CurrentLocation,
		"role":             u.Role,
		"notes":            u.Notes,
		"components":       u.Components,
		"created_at":       u.CreatedAt,
		"updated_at":       u.UpdatedAt,
	}
}

// actorID pulls the authenticated user's id set by the auth middleware.
func actorID(c *gin.Context) *uuid.UUID {
	raw, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := raw.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
