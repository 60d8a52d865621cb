package middleware

import (
	"net/http"
	"strings"

	"droneops/internal/auth"

	"github.com/gin-gonic/gin"
)

// Auth validates the Bearer token and stores user_id and user_role in the
// request context.
func Auth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireEquipmentManager rejects viewers. Mutating inventory endpoints sit
// behind this gate.
func RequireEquipmentManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		roleStr, ok := role.(string)
		if !exists || !ok || !auth.CanManageEquipment(roleStr) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
