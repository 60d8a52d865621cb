package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondError maps the error taxonomy to HTTP statuses: validation errors
// are 400, missing rows are 404, everything else is 500.
func RespondError(c *gin.Context, err error) {
	switch {
	case IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
