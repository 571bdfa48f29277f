// Package endpoint provides the service-level endpoints that sit outside the
// transcript API surface: health and the root index.
package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health returns a handler that reports service health.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
	}
}
