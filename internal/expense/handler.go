package expense

import (
	"net/http"
	"time"

	"droneops/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handler handles HTTP requests for the expense log
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type expenseRequest struct {
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"required"`
	Notes       string `json:"notes"`
}

func (r expenseRequest) toInput(createdBy *uuid.UUID) (Input, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return Input{}, common.NewValidationError("date must be YYYY-MM-DD")
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return Input{}, common.NewValidationError("invalid amount %q", r.Amount)
	}
	return Input{
		Date:        date,
		Amount:      amount,
		Description: r.Description,
		Notes:       r.Notes,
		CreatedBy:   createdBy,
	}, nil
}

// POST /api/v1/expenses
func (h *Handler) Create(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput(actorID(c))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	e, err := h.service.Create(in)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// GET /api/v1/expenses
func (h *Handler) List(c *gin.Context) {
	var from, to *time.Time
	if raw := c.Query("date_from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			from = &t
		}
	}
	if raw := c.Query("date_to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			to = &t
		}
	}
	expenses, total, err := h.service.List(from, to)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses, "total": total})
}

// PUT /api/v1/expenses/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense ID"})
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput(nil)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	e, err := h.service.Update(id, in)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// DELETE /api/v1/expenses/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense ID"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}

// POST /api/v1/expenses/:id/receipt
// Multipart upload, field name "file".
func (h *Handler) UploadReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense ID"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	e, err := h.service.AttachReceipt(c.Request.Context(), id, contentType, file)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// GET /api/v1/expenses/:id/receipt
func (h *Handler) DownloadReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense ID"})
		return
	}
	data, contentType, err := h.service.GetReceipt(c.Request.Context(), id)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

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
