package movement

import (
	"net/http"
	"strconv"

	"droneops/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the movement history
type Handler struct {
	ledger *Ledger
}

func NewHandler(ledger *Ledger) *Handler {
	return &Handler{ledger: ledger}
}

// GET /api/v1/movements
// Movement history grouped by day and batch, 30 date groups per page.
func (h *Handler) GetHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	days, totalDays, err := h.ledger.QueryByDateAndBatch(page, 30)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":       days,
		"total_days": totalDays,
		"page":       page,
		"per_page":   30,
	})
}

// GET /api/v1/movements/uav/:id
func (h *Handler) GetUAVHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UAV ID"})
		return
	}
	movements, err := h.ledger.ListByUAV(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": movements})
}

// GET /api/v1/locations
func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.ledger.Locations()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}
