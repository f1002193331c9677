package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Returns the health status of the service and the time of the last dashboard refresh, if any
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	body := gin.H{"status": "healthy"}
	if snap, ok := h.dashboard.LastSnapshot(); ok {
		body["last_refresh"] = snap.GeneratedAt
		body["composite"] = snap.Composite.Score
	}
	c.JSON(http.StatusOK, body)
}
