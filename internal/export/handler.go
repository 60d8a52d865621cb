package export

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"droneops/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for data exports
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /api/v1/export/inventory
// ?group_by=role|category and ?columns=type,status,kit,...
func (h *Handler) Inventory(c *gin.Context) {
	opts := Options{GroupBy: c.Query("group_by")}
	if raw := c.Query("columns"); raw != "" {
		for _, col := range strings.Split(raw, ",") {
			if col = strings.TrimSpace(col); col != "" {
				opts.Columns = append(opts.Columns, col)
			}
		}
	}

	data, err := h.service.Inventory(opts)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	filename := fmt.Sprintf("inventory_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
