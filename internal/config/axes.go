package config

import (
	"fmt"

	"heater_dashboard/internal/chart"
	"heater_dashboard/internal/models"
)

// ChartAxes converts the configured axes into renderer axes, one per metric.
func (c ChartsConfig) ChartAxes() (map[models.Metric]chart.AxisConfig, error) {
	out := make(map[models.Metric]chart.AxisConfig, len(models.Metrics))
	for name, axis := range c.Axes {
		metric := models.Metric(name)
		if !metric.Valid() {
			return nil, fmt.Errorf("charts.axes.%s: unknown metric", name)
		}
		color, err := chart.ParseColor(axis.Color)
		if err != nil {
			return nil, fmt.Errorf("charts.axes.%s: %w", name, err)
		}
		out[metric] = chart.AxisConfig{
			MinValue: axis.MinValue,
			MaxValue: axis.MaxValue,
			GridStep: axis.GridStep,
			Unit:     axis.Unit,
			Color:    color,
		}
	}
	for _, m := range models.Metrics {
		if _, ok := out[m]; !ok {
			return nil, fmt.Errorf("charts.axes.%s: missing", m)
		}
	}
	return out, nil
}
