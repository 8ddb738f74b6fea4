package chart

import (
	"fmt"
	"math"
	"strconv"

	"heater_dashboard/internal/models"
)

// Plot margins reserved for tick labels.
const (
	marginLeft   = 48
	marginBottom = 20
)

// maxGridLines bounds horizontal gridlines when data widens the range far
// beyond the seed; the step is scaled up by an integer factor past this.
const maxGridLines = 200

// Bounds is the effective value range of a chart.
type Bounds struct {
	Min float64
	Max float64
}

// EffectiveBounds widens the seed bounds of axis to cover every stat.
func EffectiveBounds(stats []models.MetricStat, axis AxisConfig) Bounds {
	b := Bounds{Min: axis.MinValue, Max: axis.MaxValue}
	for _, s := range stats {
		b.Min = math.Min(b.Min, s.Min)
		b.Max = math.Max(b.Max, s.Max)
	}
	return b
}

// Layout maps record indices and values to surface coordinates.
type Layout struct {
	Left      float64
	Width     float64
	FullWidth float64
	Height    float64
	Bounds    Bounds
	MaxItems  int
}

// NewLayout builds the layout for a surface of the given pixel size.
func NewLayout(width, height int, bounds Bounds, maxItems int) Layout {
	if maxItems < 1 {
		maxItems = 1
	}
	return Layout{
		Left:      marginLeft,
		Width:     float64(width - marginLeft),
		FullWidth: float64(width),
		Height:    float64(height - marginBottom),
		Bounds:    bounds,
		MaxItems:  maxItems,
	}
}

// X maps record index to a column: 0 (newest) is the right edge, MaxItems-1
// the left edge of the plot.
func (l Layout) X(index int) float64 {
	calculated := l.Width
	if l.MaxItems > 1 {
		calculated = float64(l.MaxItems-index-1) / float64(l.MaxItems-1) * l.Width
	}
	return l.Left + math.Floor(math.Max(0, math.Min(l.Width, calculated))) + 0.5
}

// Y maps a value to a row; larger values are higher (smaller y).
func (l Layout) Y(value float64) float64 {
	lo, hi := l.Bounds.Min, l.Bounds.Max
	if math.IsInf(hi-lo, 0) {
		// Halve so the span stays finite.
		lo, hi, value = lo/2, hi/2, value/2
	}
	span := hi - lo
	calculated := l.Height
	if span > 0 {
		calculated = l.Height - (value-lo)/span*l.Height
	}
	if !finite(calculated) {
		calculated = l.Height
	}
	return math.Floor(math.Max(0, math.Min(l.Height, calculated))) + 0.5
}

// GridLine is one gridline position with its tick label.
type GridLine struct {
	Pos   float64
	Label string
}

// Grid is the gridline layout: X lines run from XBottom up to XTop, Y lines
// from YLeft to YRight.
type Grid struct {
	X       []GridLine
	XBottom float64
	XTop    float64
	Y       []GridLine
	YLeft   float64
	YRight  float64
}

// Grid computes vertical lines for every index slot and horizontal lines at
// multiples of the axis grid step.
func (l Layout) Grid(axis AxisConfig, windowMs int64) Grid {
	g := Grid{XBottom: l.Height, XTop: 0, YLeft: l.Left, YRight: l.FullWidth}

	for i := 0; i < l.MaxItems; i++ {
		g.X = append(g.X, GridLine{Pos: l.X(i), Label: timeAgoLabel(i, windowMs)})
	}

	step := axis.GridStep
	if step <= 0 {
		return g
	}
	span := l.Bounds.Max - l.Bounds.Min
	start := math.Floor(l.Bounds.Min/step) * step
	if !finite(span) || !finite(start) {
		return g
	}
	if n := math.Ceil((l.Bounds.Max - start) / step); n > maxGridLines {
		step *= math.Ceil(n / maxGridLines)
		start = math.Floor(l.Bounds.Min/step) * step
	}
	if !finite(step) || !finite(start) {
		return g
	}
	for k := 0; k <= maxGridLines+1; k++ {
		value := start + float64(k)*step
		if value >= l.Bounds.Max {
			break
		}
		g.Y = append(g.Y, GridLine{Pos: l.Y(value), Label: formatValue(value) + axis.Unit})
	}
	return g
}

// timeAgoLabel renders "-1.5s" for index 1 of a 1500 ms window.
func timeAgoLabel(index int, windowMs int64) string {
	if index == 0 {
		return "0.0s"
	}
	return fmt.Sprintf("%.1fs", -float64(index)*float64(windowMs)/1000.0)
}

// formatValue prints the shortest decimal form, without float noise
// accumulated from repeated steps (0.30000000000000004 prints as 0.3).
func formatValue(v float64) string {
	if r := math.Round(v*1e9) / 1e9; finite(r) {
		v = r
	}
	if v == 0 {
		v = 0 // normalizes -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
