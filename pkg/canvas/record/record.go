// Package record provides a [canvas.Surface] that records drawing calls.
//
// Recorded operations compare with [slices.EqualFunc] or [Recorder.Equal],
// which makes the recorder the reference surface for layout tests.
package record

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/gitgraph/pkg/canvas"
)

// Operation names.
const (
	OpResize         = "resize"
	OpBeginPath      = "beginPath"
	OpClosePath      = "closePath"
	OpMoveTo         = "moveTo"
	OpLineTo         = "lineTo"
	OpCubicTo        = "bezierCurveTo"
	OpQuadraticTo    = "quadraticCurveTo"
	OpArc            = "arc"
	OpSetLineWidth   = "lineWidth"
	OpSetStrokeColor = "strokeStyle"
	OpSetFillColor   = "fillStyle"
	OpSetDash        = "setLineDash"
	OpSetFont        = "font"
	OpStroke         = "stroke"
	OpFill           = "fill"
	OpFillText       = "fillText"
	OpClearRect      = "clearRect"
	OpScale          = "scale"
	OpTranslate      = "translate"
)

// Op is one recorded call.
type Op struct {
	Name string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
	Str  string    `json:"str,omitempty"`
}

func (o Op) String() string {
	var b strings.Builder
	b.WriteString(o.Name)
	b.WriteByte('(')
	if o.Str != "" {
		fmt.Fprintf(&b, "%q", o.Str)
		if len(o.Args) > 0 {
			b.WriteString(", ")
		}
	}
	for i, a := range o.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%g", a)
	}
	b.WriteByte(')')
	return b.String()
}

// Equal reports whether two ops are identical.
func (o Op) Equal(other Op) bool {
	return o.Name == other.Name && o.Str == other.Str && slices.Equal(o.Args, other.Args)
}

var _ canvas.Surface = (*Recorder)(nil)

// Recorder implements [canvas.Surface] by appending every call to Ops.
type Recorder struct {
	Ops []Op

	w, h, ratio float64
}

// New returns an empty Recorder.
func New() *Recorder { return &Recorder{ratio: 1} }

func (r *Recorder) add(name string, str string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Str: str, Args: args})
}

func (r *Recorder) Resize(w, h, ratio float64) {
	r.w, r.h, r.ratio = w, h, ratio
	r.add(OpResize, "", w, h, ratio)
}

func (r *Recorder) Size() (float64, float64) { return r.w, r.h }

// Ratio returns the pixel ratio set by the last Resize.
func (r *Recorder) Ratio() float64 { return r.ratio }

func (r *Recorder) BeginPath()          { r.add(OpBeginPath, "") }
func (r *Recorder) ClosePath()          { r.add(OpClosePath, "") }
func (r *Recorder) MoveTo(x, y float64) { r.add(OpMoveTo, "", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.add(OpLineTo, "", x, y) }

func (r *Recorder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.add(OpCubicTo, "", c1x, c1y, c2x, c2y, x, y)
}

func (r *Recorder) QuadraticTo(cx, cy, x, y float64) { r.add(OpQuadraticTo, "", cx, cy, x, y) }
func (r *Recorder) Arc(x, y, rad, a0, a1 float64)    { r.add(OpArc, "", x, y, rad, a0, a1) }
func (r *Recorder) SetLineWidth(w float64)           { r.add(OpSetLineWidth, "", w) }
func (r *Recorder) SetStrokeColor(c string)          { r.add(OpSetStrokeColor, c) }
func (r *Recorder) SetFillColor(c string)            { r.add(OpSetFillColor, c) }
func (r *Recorder) SetDash(dash []float64)           { r.add(OpSetDash, "", slices.Clone(dash)...) }
func (r *Recorder) SetFont(f string)                 { r.add(OpSetFont, f) }
func (r *Recorder) Stroke()                          { r.add(OpStroke, "") }
func (r *Recorder) Fill()                            { r.add(OpFill, "") }
func (r *Recorder) FillText(text string, x, y float64) {
	r.add(OpFillText, text, x, y)
}
func (r *Recorder) ClearRect(x, y, w, h float64) { r.add(OpClearRect, "", x, y, w, h) }
func (r *Recorder) Scale(sx, sy float64)         { r.add(OpScale, "", sx, sy) }
func (r *Recorder) Translate(x, y float64)       { r.add(OpTranslate, "", x, y) }

// Reset drops all recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns how many ops have the given name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Filter returns the ops with the given name, in order.
func (r *Recorder) Filter(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

// Equal reports whether both recorders hold the same op sequence.
func (r *Recorder) Equal(other *Recorder) bool {
	return slices.EqualFunc(r.Ops, other.Ops, Op.Equal)
}

// MarshalJSON encodes the op list.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	if r.Ops == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Ops)
}

// String renders one op per line.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, op := range r.Ops {
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	return b.String()
}
