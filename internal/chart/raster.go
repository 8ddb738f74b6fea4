package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	defaultFontOnce sync.Once
	defaultFont     *truetype.Font
)

func loadDefaultFont() *truetype.Font {
	defaultFontOnce.Do(func() {
		f, err := gochart.GetDefaultFont()
		if err == nil {
			defaultFont = f
		}
	})
	return defaultFont
}

// RasterSurface is a Surface that paints into an RGBA image.
type RasterSurface struct {
	img *image.RGBA
	gc  *drawing.RasterGraphicContext

	lineWidth float64
	stroke    color.Color
	fill      color.Color
	fontSize  float64
	faces     map[float64]font.Face
}

func NewRasterSurface(width, height int) (*RasterSurface, error) {
	s := &RasterSurface{
		lineWidth: 1,
		stroke:    color.Black,
		fill:      color.Black,
		fontSize:  tickFontSize,
		faces:     make(map[float64]font.Face),
	}
	if err := s.allocate(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *RasterSurface) allocate(width, height int) error {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return fmt.Errorf("raster context: %w", err)
	}
	s.img, s.gc = img, gc
	s.applyStyle()
	return nil
}

func (s *RasterSurface) applyStyle() {
	s.gc.SetLineWidth(s.lineWidth)
	s.gc.SetStrokeColor(s.stroke)
	s.gc.SetFillColor(s.fill)
}

func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the backing image when the size changes, discarding its
// content like a canvas does.
func (s *RasterSurface) Resize(width, height int) {
	if w, h := s.Size(); w == width && h == height {
		return
	}
	// NewRasterGraphicContext only fails for unsupported image types.
	_ = s.allocate(width, height)
}

func (s *RasterSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	s.gc.BeginPath()
}

func (s *RasterSurface) SetLineWidth(w float64) {
	s.lineWidth = w
	s.gc.SetLineWidth(w)
}

func (s *RasterSurface) SetStrokeColor(c color.Color) {
	s.stroke = c
	s.gc.SetStrokeColor(c)
}

func (s *RasterSurface) SetFillColor(c color.Color) {
	s.fill = c
	s.gc.SetFillColor(c)
}

func (s *RasterSurface) SetFontSize(points float64) { s.fontSize = points }

func (s *RasterSurface) BeginPath()          { s.gc.BeginPath() }
func (s *RasterSurface) MoveTo(x, y float64) { s.gc.MoveTo(x, y) }
func (s *RasterSurface) LineTo(x, y float64) { s.gc.LineTo(x, y) }

func (s *RasterSurface) Circle(cx, cy, r float64) {
	s.gc.MoveTo(cx+r, cy)
	s.gc.ArcTo(cx, cy, r, r, 0, 2*math.Pi)
	s.gc.Close()
}

func (s *RasterSurface) Stroke() { s.gc.Stroke() }
func (s *RasterSurface) Fill()   { s.gc.Fill() }

// FillText draws text with its baseline at y.
func (s *RasterSurface) FillText(text string, x, y float64, align TextAlign) {
	face := s.face(s.fontSize)
	d := &font.Drawer{Dst: s.img, Src: image.NewUniform(s.fill), Face: face}
	width := float64(d.MeasureString(text)) / 64
	switch align {
	case AlignCenter:
		x -= width / 2
	case AlignRight:
		x -= width
	}
	d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	d.DrawString(text)
}

func (s *RasterSurface) face(size float64) font.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	var f font.Face = basicfont.Face7x13
	if ttf := loadDefaultFont(); ttf != nil {
		f = truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	}
	s.faces[size] = f
	return f
}

// Image returns the backing image. It is replaced on Resize.
func (s *RasterSurface) Image() *image.RGBA { return s.img }

// EncodePNG writes the current image to w.
func (s *RasterSurface) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
