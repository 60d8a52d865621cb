package auth

import (
	"net/http"

	"droneops/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for accounts
type Handler struct {
	service *Service
	limiter LoginLimiter
}

// LoginLimiter throttles login attempts per username.
type LoginLimiter interface {
	Allow(username string) bool
}

func NewHandler(service *Service, limiter LoginLimiter) *Handler {
	return &Handler{service: service, limiter: limiter}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.service.Register(req.Username, req.Password, req.FullName)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"message": "Registration received, awaiting approval",
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.limiter != nil && !h.limiter.Allow(req.Username) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
		return
	}
	token, user, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GET /api/v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	raw, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	id, ok := raw.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	user, err := h.service.GetUser(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type approveRequest struct {
	Username string `json:"username" binding:"required"`
	Role     string `json:"role"`
}

// POST /api/v1/auth/approve
// Commander or admin only.
func (h *Handler) Approve(c *gin.Context) {
	role, _ := c.Get("user_role")
	if roleStr, ok := role.(string); !ok || !CanApproveUsers(roleStr) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.service.Approve(req.Username, req.Role)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /api/v1/auth/users
// Commander or admin only.
func (h *Handler) ListUsers(c *gin.Context) {
	role, _ := c.Get("user_role")
	if roleStr, ok := role.(string); !ok || !CanApproveUsers(roleStr) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}
	users, err := h.service.ListUsers()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
