package chart

import (
	"fmt"
	"image/color"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"heater_dashboard/internal/models"
)

const (
	DefaultMaxItems    = 15
	DefaultLabelStride = 1

	tickFontSize   = 16
	markerFontSize = 12
	markerRadius   = 3
	markerOffset   = 10
	yLabelPadding  = 4
)

var (
	gridColor = drawing.Color{R: 32, G: 32, B: 32, A: 26}
	axisColor = drawing.Color{R: 32, G: 32, B: 32, A: 255}
)

// Renderer draws one metric of the history onto the surface it owns.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	surface Surface
	host    Host
	metric  models.Metric
	axis    AxisConfig
}

func NewRenderer(surface Surface, host Host, metric models.Metric, axis AxisConfig) (*Renderer, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("unknown metric %q", metric)
	}
	if err := axis.Validate(); err != nil {
		return nil, fmt.Errorf("metric %s: %w", metric, err)
	}
	return &Renderer{surface: surface, host: host, metric: metric, axis: axis}, nil
}

// Metric names the statistic the renderer plots.
func (r *Renderer) Metric() models.Metric { return r.metric }

func (r *Renderer) Axis() AxisConfig { return r.axis }

// Render redraws the chart from state. A nil state leaves the surface alone.
func (r *Renderer) Render(state *models.ClientState, maxItems, labelStride int) {
	if state == nil {
		return
	}
	if maxItems < 1 {
		maxItems = 1
	}
	if labelStride <= 0 {
		labelStride = 1
	}

	r.fit()

	visible := state.History
	if len(visible) > maxItems {
		visible = visible[:maxItems]
	}
	stats := make([]models.MetricStat, len(visible))
	for i, rec := range visible {
		stats[i] = rec.Stat(r.metric)
	}

	width, height := r.surface.Size()
	layout := NewLayout(width, height, EffectiveBounds(stats, r.axis), maxItems)
	grid := layout.Grid(r.axis, state.WindowMs)

	s := r.surface
	s.Clear()

	r.drawGrid(grid, labelStride)
	r.drawAxes(layout)
	r.drawTicks(grid, labelStride)

	if len(stats) == 0 {
		return
	}

	r.drawBand(layout, stats)
	r.drawLine(layout, stats, func(m models.MetricStat) float64 { return m.Average }, withOpacity(r.axis.Color, 0.5), 1)
	r.drawLine(layout, stats, func(m models.MetricStat) float64 { return m.Current }, r.axis.Color, 2)
	r.drawMarkers(layout, stats, labelStride)
}

// fit sizes the surface to the host box, then corrects by whatever the box
// changed to after the resize.
func (r *Renderer) fit() {
	if r.host == nil {
		return
	}
	w, h := r.host.LayoutBox()
	r.surface.Resize(w, h)
	w2, h2 := r.host.LayoutBox()
	if w2 != w || h2 != h {
		r.surface.Resize(w+(w-w2), h+(h-h2))
	}
}

func (r *Renderer) drawGrid(grid Grid, stride int) {
	s := r.surface
	s.SetLineWidth(1)
	s.SetStrokeColor(gridColor)
	s.BeginPath()
	for i, line := range grid.X {
		if i%stride != 0 {
			continue
		}
		s.MoveTo(line.Pos, grid.XBottom)
		s.LineTo(line.Pos, grid.XTop)
	}
	for _, line := range grid.Y {
		s.MoveTo(grid.YLeft, line.Pos)
		s.LineTo(grid.YRight, line.Pos)
	}
	s.Stroke()
}

func (r *Renderer) drawAxes(layout Layout) {
	s := r.surface
	last := layout.MaxItems - 1
	s.SetLineWidth(1)
	s.SetStrokeColor(axisColor)
	s.BeginPath()
	s.MoveTo(layout.X(0), layout.Y(0))
	s.LineTo(layout.X(last), layout.Y(0))
	s.MoveTo(layout.X(last), layout.Y(layout.Bounds.Min))
	s.LineTo(layout.X(last), layout.Y(layout.Bounds.Max))
	s.Stroke()
}

func (r *Renderer) drawTicks(grid Grid, stride int) {
	s := r.surface
	s.SetFillColor(axisColor)
	s.SetFontSize(tickFontSize)
	for i, line := range grid.X {
		if i%stride != 0 {
			continue
		}
		s.FillText(line.Label, line.Pos, grid.XBottom+tickFontSize, AlignCenter)
	}
	for _, line := range grid.Y {
		s.FillText(line.Label, grid.YLeft-yLabelPadding, line.Pos, AlignRight)
	}
}

// drawBand fills the polygon running along max from newest to oldest and back
// along min.
func (r *Renderer) drawBand(layout Layout, stats []models.MetricStat) {
	s := r.surface
	s.SetFillColor(withOpacity(r.axis.Color, 0.15))
	s.BeginPath()
	for i, st := range stats {
		if i == 0 {
			s.MoveTo(layout.X(i), layout.Y(st.Max))
		} else {
			s.LineTo(layout.X(i), layout.Y(st.Max))
		}
	}
	for i := len(stats) - 1; i >= 0; i-- {
		s.LineTo(layout.X(i), layout.Y(stats[i].Min))
	}
	s.Fill()
}

func (r *Renderer) drawLine(layout Layout, stats []models.MetricStat, value func(models.MetricStat) float64, c color.Color, width float64) {
	s := r.surface
	s.SetLineWidth(width)
	s.SetStrokeColor(c)
	s.BeginPath()
	for i, st := range stats {
		if i == 0 {
			s.MoveTo(layout.X(i), layout.Y(value(st)))
		} else {
			s.LineTo(layout.X(i), layout.Y(value(st)))
		}
	}
	s.Stroke()
}

func (r *Renderer) drawMarkers(layout Layout, stats []models.MetricStat, stride int) {
	s := r.surface
	s.SetFillColor(r.axis.Color)
	s.SetFontSize(markerFontSize)
	for i, st := range stats {
		if i%stride != 0 {
			continue
		}
		x, y := layout.X(i), layout.Y(st.Current)
		s.BeginPath()
		s.Circle(x, y, markerRadius)
		s.Fill()
		s.FillText(fmt.Sprintf("%.2f%s", st.Current, r.axis.Unit), x, y-markerOffset, AlignCenter)
	}
}
