// Package svg implements [canvas.Surface] as an SVG document builder.
//
// Every Stroke, Fill and FillText call becomes one element. Coordinates are
// transformed when they are added to the path, so the output carries no
// transform attributes and the document is byte-for-byte reproducible.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/gitgraph/pkg/canvas"
	"github.com/matzehuels/gitgraph/pkg/template"
)

var _ canvas.Surface = (*Surface)(nil)

// Option configures a [Surface].
type Option func(*Surface)

// WithTitle adds a <title> element to the document.
func WithTitle(title string) Option { return func(s *Surface) { s.title = title } }

// WithBackground fills the document and every cleared area with a color.
func WithBackground(c string) Option { return func(s *Surface) { s.background = c } }

// Surface accumulates drawing calls into SVG elements.
type Surface struct {
	title      string
	background string

	w, h, ratio float64
	sx, sy      float64
	tx, ty      float64

	path       strings.Builder
	hasCurrent bool

	lineWidth float64
	stroke    string
	fill      string
	dash      []float64
	font      template.Font

	body bytes.Buffer
}

// New returns an empty surface. The renderer resizes it before drawing.
func New(opts ...Option) *Surface {
	s := &Surface{}
	for _, opt := range opts {
		opt(s)
	}
	s.Resize(0, 0, 1)
	return s
}

func (s *Surface) Resize(w, h, ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	s.w, s.h, s.ratio = w, h, ratio
	s.sx, s.sy, s.tx, s.ty = 1, 1, 0, 0
	s.lineWidth = 1
	s.stroke, s.fill = "#000000", "#000000"
	s.dash = nil
	s.font = template.ParseFont(template.DefaultFont)
	s.body.Reset()
	s.BeginPath()
}

func (s *Surface) Size() (float64, float64) { return s.w, s.h }

// =============================================================================
// Transform
// =============================================================================

func (s *Surface) Scale(sx, sy float64) {
	s.sx *= sx
	s.sy *= sy
}

func (s *Surface) Translate(x, y float64) {
	s.tx += x * s.sx
	s.ty += y * s.sy
}

func (s *Surface) point(x, y float64) (float64, float64) {
	return x*s.sx + s.tx, y*s.sy + s.ty
}

func (s *Surface) unit() float64 { return math.Sqrt(math.Abs(s.sx * s.sy)) }

// =============================================================================
// Paths
// =============================================================================

func (s *Surface) BeginPath() {
	s.path.Reset()
	s.hasCurrent = false
}

func (s *Surface) ClosePath() {
	if !s.hasCurrent {
		return
	}
	// The current point returns to the subpath start, as in SVG.
	s.path.WriteString("Z")
}

func (s *Surface) MoveTo(x, y float64) {
	px, py := s.point(x, y)
	s.movePoint(px, py)
}

func (s *Surface) movePoint(px, py float64) {
	fmt.Fprintf(&s.path, "M%s %s", num(px), num(py))
	s.hasCurrent = true
}

func (s *Surface) LineTo(x, y float64) {
	if !s.hasCurrent {
		s.MoveTo(x, y)
		return
	}
	px, py := s.point(x, y)
	fmt.Fprintf(&s.path, "L%s %s", num(px), num(py))
}

func (s *Surface) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !s.hasCurrent {
		s.MoveTo(c1x, c1y)
	}
	ax, ay := s.point(c1x, c1y)
	bx, by := s.point(c2x, c2y)
	px, py := s.point(x, y)
	fmt.Fprintf(&s.path, "C%s %s %s %s %s %s", num(ax), num(ay), num(bx), num(by), num(px), num(py))
}

func (s *Surface) QuadraticTo(cx, cy, x, y float64) {
	if !s.hasCurrent {
		s.MoveTo(cx, cy)
	}
	ax, ay := s.point(cx, cy)
	px, py := s.point(x, y)
	fmt.Fprintf(&s.path, "Q%s %s %s %s", num(ax), num(ay), num(px), num(py))
}

// Arc appends a circular arc. Full circles are split in two since a single
// SVG arc command cannot start and end on the same point.
func (s *Surface) Arc(x, y, r, a0, a1 float64) {
	if r <= 0 {
		return
	}
	rx, ry := r*math.Abs(s.sx), r*math.Abs(s.sy)
	cx, cy := s.point(x, y)
	at := func(a float64) (float64, float64) {
		return cx + rx*math.Cos(a), cy + ry*math.Sin(a)
	}

	x0, y0 := at(a0)
	if s.hasCurrent {
		fmt.Fprintf(&s.path, "L%s %s", num(x0), num(y0))
	} else {
		s.movePoint(x0, y0)
	}

	sweep := a1 - a0
	if sweep >= 2*math.Pi {
		mx, my := at(a0 + math.Pi)
		fmt.Fprintf(&s.path, "A%s %s 0 0 1 %s %s", num(rx), num(ry), num(mx), num(my))
		fmt.Fprintf(&s.path, "A%s %s 0 0 1 %s %s", num(rx), num(ry), num(x0), num(y0))
		return
	}
	large := 0
	if sweep > math.Pi {
		large = 1
	}
	x1, y1 := at(a1)
	fmt.Fprintf(&s.path, "A%s %s 0 %d 1 %s %s", num(rx), num(ry), large, num(x1), num(y1))
}

func (s *Surface) Stroke() {
	if s.path.Len() == 0 {
		return
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="none" stroke="%s" stroke-width="%s"`,
		s.path.String(), escapeXML(s.stroke), num(s.lineWidth*s.unit()))
	if len(s.dash) > 0 {
		parts := make([]string, len(s.dash))
		for i, d := range s.dash {
			parts[i] = num(d * s.unit())
		}
		fmt.Fprintf(&s.body, ` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	s.body.WriteString("/>\n")
}

func (s *Surface) Fill() {
	if s.path.Len() == 0 {
		return
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="%s"/>`+"\n", s.path.String(), escapeXML(s.fill))
}

// =============================================================================
// State
// =============================================================================

func (s *Surface) SetLineWidth(w float64) {
	if w > 0 {
		s.lineWidth = w
	}
}

func (s *Surface) SetStrokeColor(c string) { s.stroke = c }
func (s *Surface) SetFillColor(c string)   { s.fill = c }
func (s *Surface) SetDash(dash []float64)  { s.dash = append(s.dash[:0], dash...) }
func (s *Surface) SetFont(f string)        { s.font = template.ParseFont(f) }

// =============================================================================
// Text and clearing
// =============================================================================

func (s *Surface) FillText(text string, x, y float64) {
	px, py := s.point(x, y)
	fmt.Fprintf(&s.body, `  <text x="%s" y="%s" font-size="%s"`, num(px), num(py), num(s.font.Size*s.unit()))
	if s.font.Family != "" {
		fmt.Fprintf(&s.body, ` font-family="%s"`, escapeXML(s.font.Family))
	}
	if s.font.Bold {
		s.body.WriteString(` font-weight="bold"`)
	}
	if s.font.Italic {
		s.body.WriteString(` font-style="italic"`)
	}
	fmt.Fprintf(&s.body, ` fill="%s">%s</text>`+"\n", escapeXML(s.fill), escapeXML(text))
}

// ClearRect drops everything drawn so far when the rectangle covers the whole
// document. Partial clears paint the background color, if any.
func (s *Surface) ClearRect(x, y, w, h float64) {
	x0, y0 := s.point(x, y)
	x1, y1 := s.point(x+w, y+h)
	minX, minY := min(x0, x1), min(y0, y1)
	maxX, maxY := max(x0, x1), max(y0, y1)
	pw, ph := s.w*s.ratio, s.h*s.ratio
	if minX <= 0 && minY <= 0 && maxX >= pw && maxY >= ph {
		s.body.Reset()
		return
	}
	if s.background == "" {
		return
	}
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(minX), num(minY), num(maxX-minX), num(maxY-minY), escapeXML(s.background))
}

// =============================================================================
// Output
// =============================================================================

// Bytes returns the complete SVG document.
func (s *Surface) Bytes() []byte {
	pw, ph := s.w*s.ratio, s.h*s.ratio

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(pw), num(ph), num(pw), num(ph))
	if s.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(s.title))
	}
	if s.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(s.background))
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteTo writes the document to w.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Bytes())
	return int64(n), err
}

func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
