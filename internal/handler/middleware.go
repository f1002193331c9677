package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes returns a Gin middleware that rejects request bodies larger
// than limit. Requests that declare an oversized Content-Length are refused
// up front; others fail when the handler reads past the limit.
func MaxBodyBytes(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
