package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"heater_dashboard/internal/models"
	"heater_dashboard/internal/service"
	"heater_dashboard/internal/ui"

	"github.com/gin-gonic/gin"
)

const (
	errChartRender   = "failed to render chart"
	errUnknownMetric = "unknown metric; use temperature, output, heater or health"
)

// @Summary      Render trend chart
// @Description  PNG chart of one metric: min/max band, average and current lines of the newest records.
// @Tags         charts
// @Produce      png
// @Param        metric  path   string  true   "Metric"  Enums(temperature,output,heater,health)
// @Param        width   query  int     false  "Width in pixels"
// @Param        height  query  int     false  "Height in pixels"
// @Param        items   query  int     false  "Number of newest records shown"
// @Param        stride  query  int     false  "Label every n-th record"
// @Success      200  {file}    binary
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/charts/{metric} [get]
func (h *Handler) getChart(c *gin.Context) {
	metric := models.Metric(c.Param("metric"))
	if !metric.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": errUnknownMetric})
		return
	}

	var opts service.ChartOptions
	for _, q := range []struct {
		name string
		dst  *int
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"items", &opts.MaxItems},
		{"stride", &opts.LabelStride},
	} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid '" + q.name + "'; must be an integer"})
			return
		}
		*q.dst = v
	}

	var buf bytes.Buffer
	err := h.services.Charts.RenderPNG(metric, opts, &buf)
	switch {
	case errors.Is(err, ui.ErrNoState):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errNoState})
		return
	case errors.Is(err, service.ErrUnknownMetric):
		c.JSON(http.StatusNotFound, gin.H{"error": errUnknownMetric})
		return
	case errors.Is(err, service.ErrInvalidOptions):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errChartRender, "chart_render_failed", err, "metric", metric)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
