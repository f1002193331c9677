package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"macro-dashboard/internal/positioning"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// PreviewPositioning godoc
// @Summary      Preview a positioning CSV
// @Description  Returns the header and first rows of an uploaded CFTC Commitments of Traders CSV
// @Tags         positioning
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true   "CSV file"
// @Param        rows  formData  int   false  "Number of rows (default 5, max 1000)"
// @Success      200  {object}  positioning.Table
// @Failure      400  {object}  map[string]string
// @Router       /api/positioning/preview [post]
func (h *Handler) PreviewPositioning(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.preview-positioning")
	defer span.End()

	rows := positioning.DefaultRows
	if raw := c.PostForm("rows"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > positioning.MaxRows {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("rows must be an integer between 1 and %d", positioning.MaxRows)})
			return
		}
		rows = n
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	span.SetAttributes(attribute.String("file.name", fh.Filename), attribute.Int64("file.size", fh.Size))

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	table, err := positioning.Preview(f, rows)
	if errors.Is(err, positioning.ErrMalformedCSV) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, table)
}
