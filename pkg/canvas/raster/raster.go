// Package raster implements [canvas.Surface] on top of fogleman/gg.
//
// The surface keeps separate stroke and fill colors like the HTML canvas and
// encodes its pixels as PNG:
//
//	s := raster.New(raster.WithBackground("#ffffff"))
//	g, _ := gitgraph.New(gitgraph.Options{Surface: s})
//	...
//	err := s.EncodePNG(w)
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/gitgraph/pkg/canvas"
	"github.com/matzehuels/gitgraph/pkg/template"
)

var _ canvas.Surface = (*Surface)(nil)

// Option configures a [Surface].
type Option func(*Surface)

// WithBackground paints every cleared area with the given CSS color instead
// of leaving it transparent.
func WithBackground(c string) Option {
	return func(s *Surface) {
		if col, ok := template.ParseColor(c); ok {
			s.background = col
		}
	}
}

// Surface is a bitmap drawing surface.
type Surface struct {
	dc *gg.Context

	w, h, ratio float64
	scale       float64 // accumulated Scale factor, applied to font sizes
	background  color.Color
	stroke      color.Color
	fill        color.Color
	font        template.Font
}

// New returns a 1x1 surface. The renderer resizes it before drawing.
func New(opts ...Option) *Surface {
	s := &Surface{background: color.Transparent}
	for _, opt := range opts {
		opt(s)
	}
	s.Resize(1, 1, 1)
	return s
}

func (s *Surface) Resize(w, h, ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	s.w, s.h, s.ratio = w, h, ratio
	pw := max(int(math.Ceil(w*ratio)), 1)
	ph := max(int(math.Ceil(h*ratio)), 1)

	s.dc = gg.NewContext(pw, ph)
	s.scale = 1
	s.stroke, s.fill = color.Black, color.Black
	s.font = template.ParseFont(template.DefaultFont)
	s.dc.SetStrokeStyle(gg.NewSolidPattern(s.stroke))
	s.dc.SetFillStyle(gg.NewSolidPattern(s.fill))
	s.dc.SetLineWidth(1)
	s.paint(image.Rect(0, 0, pw, ph))
}

func (s *Surface) Size() (float64, float64) { return s.w, s.h }

// PixelSize returns the bitmap dimensions.
func (s *Surface) PixelSize() (int, int) { return s.dc.Width(), s.dc.Height() }

// Image returns the current bitmap.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the bitmap as PNG.
func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// SavePNG writes the bitmap to a PNG file.
func (s *Surface) SavePNG(path string) error { return s.dc.SavePNG(path) }

// =============================================================================
// Paths
// =============================================================================

func (s *Surface) BeginPath()          { s.dc.ClearPath() }
func (s *Surface) ClosePath()          { s.dc.ClosePath() }
func (s *Surface) MoveTo(x, y float64) { s.dc.MoveTo(x, y) }
func (s *Surface) LineTo(x, y float64) { s.dc.LineTo(x, y) }

func (s *Surface) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (s *Surface) QuadraticTo(cx, cy, x, y float64) { s.dc.QuadraticTo(cx, cy, x, y) }

func (s *Surface) Arc(x, y, r, a0, a1 float64) {
	if r <= 0 {
		return
	}
	s.dc.DrawArc(x, y, r, a0, a1)
}

// Stroke and Fill keep the current path, as canvas does.
func (s *Surface) Stroke() { s.dc.StrokePreserve() }
func (s *Surface) Fill()   { s.dc.FillPreserve() }

// =============================================================================
// State
// =============================================================================

func (s *Surface) SetLineWidth(w float64) {
	if w > 0 {
		s.dc.SetLineWidth(w)
	}
}

func (s *Surface) SetStrokeColor(c string) {
	s.stroke, _ = template.ParseColor(c)
	s.dc.SetStrokeStyle(gg.NewSolidPattern(s.stroke))
}

func (s *Surface) SetFillColor(c string) {
	s.fill, _ = template.ParseColor(c)
	s.dc.SetFillStyle(gg.NewSolidPattern(s.fill))
}

func (s *Surface) SetDash(dash []float64) { s.dc.SetDash(dash...) }

func (s *Surface) SetFont(f string) { s.font = template.ParseFont(f) }

func (s *Surface) Scale(sx, sy float64) {
	s.dc.Scale(sx, sy)
	s.scale *= math.Sqrt(math.Abs(sx * sy))
}

func (s *Surface) Translate(x, y float64) { s.dc.Translate(x, y) }

// =============================================================================
// Text and clearing
// =============================================================================

// FillText draws text with its baseline at (x, y). Glyphs are not transformed
// by gg, so the face is picked at the current scale.
func (s *Surface) FillText(text string, x, y float64) {
	f := s.font
	f.Size *= s.scale
	s.dc.SetFontFace(f.Face())
	// DrawString uses the plain color; restore both patterns afterwards.
	s.dc.SetColor(s.fill)
	s.dc.DrawString(text, x, y)
	s.dc.SetStrokeStyle(gg.NewSolidPattern(s.stroke))
	s.dc.SetFillStyle(gg.NewSolidPattern(s.fill))
}

// ClearRect resets the transformed rectangle to the background color.
func (s *Surface) ClearRect(x, y, w, h float64) {
	x0, y0 := s.dc.TransformPoint(x, y)
	x1, y1 := s.dc.TransformPoint(x+w, y+h)
	r := image.Rect(
		int(math.Floor(min(x0, x1))), int(math.Floor(min(y0, y1))),
		int(math.Ceil(max(x0, x1))), int(math.Ceil(max(y0, y1))),
	)
	s.paint(r)
}

func (s *Surface) paint(r image.Rectangle) {
	img, ok := s.dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(s.background), image.Point{}, draw.Src)
}
