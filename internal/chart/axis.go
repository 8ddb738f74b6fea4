package chart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// AxisConfig holds the seed bounds of one chart. The effective bounds are the
// seed widened to the visible data, never narrowed.
type AxisConfig struct {
	MinValue float64
	MaxValue float64
	GridStep float64
	Unit     string
	Color    drawing.Color
}

// Validate rejects configurations that cannot be mapped to pixels.
func (a AxisConfig) Validate() error {
	if a.MaxValue <= a.MinValue {
		return fmt.Errorf("axis max %v must be greater than min %v", a.MaxValue, a.MinValue)
	}
	if a.GridStep <= 0 {
		return errors.New("axis grid step must be > 0")
	}
	return nil
}

// ParseColor reads an "rrggbb" or "#rrggbb" string into an opaque color.
func ParseColor(hex string) (drawing.Color, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return drawing.Color{}, fmt.Errorf("color %q: want 6 hex digits", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return drawing.Color{}, fmt.Errorf("color %q: %w", hex, err)
	}
	return drawing.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// withOpacity returns c with alpha scaled to opacity in [0, 1].
func withOpacity(c drawing.Color, opacity float64) drawing.Color {
	c.A = uint8(clamp(opacity, 0, 1)*255 + 0.5)
	return c
}
