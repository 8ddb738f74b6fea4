package chart

import "image/color"

// TextAlign is the horizontal anchor of FillText.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// Surface is a 2D drawing target. Coordinates are pixels from the top-left
// corner; y grows downward.
type Surface interface {
	Size() (width, height int)
	Resize(width, height int)
	Clear()

	SetLineWidth(w float64)
	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetFontSize(points float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Circle(cx, cy, r float64)
	Stroke()
	Fill()

	FillText(text string, x, y float64, align TextAlign)
}

// Host reports the box the surface is laid out in. A host may measure a
// different box once the surface is resized (scrollbars, borders).
type Host interface {
	LayoutBox() (width, height int)
}

// FixedHost is a Host with a constant box.
type FixedHost struct {
	Width  int
	Height int
}

func (h FixedHost) LayoutBox() (int, int) { return h.Width, h.Height }
