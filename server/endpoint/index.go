package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index returns the service index, listing the endpoints a caller can use.
func Index(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": serviceName + " is running",
			"endpoints": gin.H{
				"/transcript/{video_id}": "Get transcript for a video",
				"/list/{video_id}":       "List available transcripts",
				"/health":                "Health check",
			},
		})
	}
}
