package gitgraph

import (
	"math"

	"github.com/matzehuels/gitgraph/pkg/canvas"
)

const (
	// messageRoom is the extra width reserved for commit messages.
	messageRoom = 800
	// arrowDelta is the half-angle of an arrowhead.
	arrowDelta = math.Pi / 7
)

// Size returns the logical surface size needed by the current layout.
func (g *Graph) Size() (w, h float64) {
	w = math.Abs(float64(g.maxLane)*g.tmpl.Branch.SpacingX) + math.Abs(g.cursorX) + 2*g.marginX
	h = math.Abs(float64(g.maxLane)*g.tmpl.Branch.SpacingY) + math.Abs(g.cursorY) + 2*g.marginY
	if g.tmpl.Commit.Message.Display {
		w += messageRoom
	}
	return w, h
}

// Render redraws the attached surface. It is a no-op without one.
func (g *Graph) Render() {
	if g.surface == nil {
		return
	}
	g.RenderTo(g.surface)
}

// RenderTo draws the whole diagram onto s, which is resized to fit. The
// orientation offsets used by [Graph.Hover] are taken from this pass.
func (g *Graph) RenderTo(s canvas.Surface) {
	w, h := g.Size()
	ratio := g.pixelRatio

	s.Resize(w, h, ratio)
	s.Scale(ratio, ratio)
	s.ClearRect(0, 0, w, h)
	s.Translate(g.marginX, g.marginY)

	// Growth towards positive coordinates starts at the far edge.
	g.offsetX, g.offsetY = 0, 0
	if g.tmpl.Commit.SpacingY > 0 {
		g.offsetY = h - 2*g.marginY
		s.Translate(0, g.offsetY)
	}
	if g.tmpl.Commit.SpacingX > 0 {
		g.offsetX = w - 2*g.marginX
		s.Translate(g.offsetX, 0)
	}

	for i := len(g.branches) - 1; i >= 0; i-- {
		g.drawBranch(s, g.branches[i])
	}
	for _, c := range g.commits {
		g.drawCommit(s, c)
	}
}

func (g *Graph) drawBranch(ctx canvas.Context, b *Branch) {
	if len(b.path) == 0 {
		return
	}
	csx, csy := g.tmpl.Commit.SpacingX, g.tmpl.Commit.SpacingY
	curved := g.tmpl.Branch.Curved()

	ctx.BeginPath()
	for i, p := range b.path {
		switch {
		case i == 0 || p.Role == Start:
			ctx.MoveTo(p.X, p.Y)
		case curved:
			prev := b.path[i-1]
			ctx.CubicTo(
				prev.X-csx/2, prev.Y-csy/2,
				p.X+csx/2, p.Y+csy/2,
				p.X, p.Y,
			)
		default:
			ctx.LineTo(p.X, p.Y)
		}
	}
	ctx.SetLineWidth(b.LineWidth)
	ctx.SetStrokeColor(b.Color)
	ctx.SetDash(b.LineDash)
	ctx.Stroke()
	ctx.ClosePath()
}

func (g *Graph) drawCommit(ctx canvas.Context, c *Commit) {
	ctx.BeginPath()
	ctx.Arc(c.X, c.Y, c.DotSize, 0, 2*math.Pi)
	ctx.SetFillColor(c.DotColor)
	ctx.SetStrokeColor(c.DotStrokeColor)
	if c.DotStrokeWidth > 0 {
		ctx.SetLineWidth(c.DotStrokeWidth)
		ctx.Stroke()
	}
	ctx.Fill()
	ctx.ClosePath()

	if g.tmpl.Arrow.Active() && c.Parent() != nil {
		g.drawArrow(ctx, c)
	}

	textX := float64(g.maxLane+1) * g.tmpl.Branch.SpacingX

	if c.Detail != nil && c.Detail.Text != "" {
		ctx.SetFont(c.MessageFont)
		ctx.SetFillColor(c.MessageColor)
		ctx.FillText(c.Detail.Text, textX+30, c.Y+40)
	}

	if c.DisplayMessage {
		ctx.SetFont(c.MessageFont)
		ctx.SetFillColor(c.MessageColor)
		ctx.FillText(c.Label(), textX, c.Y+3)
	}
}

// drawArrow draws an arrowhead on the edge of c's dot, pointing from c
// towards its parent.
func (g *Graph) drawArrow(ctx canvas.Context, c *Commit) {
	parent := c.Parent()
	b := c.Branch()
	size := g.tmpl.Arrow.Size
	color := firstNonEmpty(g.tmpl.Arrow.Color, b.Color)

	dx, dy := parent.X-c.X, parent.Y-c.Y

	// Merges and forks point along the lane change instead of at the
	// parent dot, which may be far away.
	if c.IsMerge() || b.commits[0] == c.index {
		pb := parent.Branch()
		dcol := float64(pb.column - b.column)
		dx = g.tmpl.Branch.SpacingX*dcol + g.tmpl.Commit.SpacingX
		dy = g.tmpl.Branch.SpacingY*dcol + g.tmpl.Commit.SpacingY
		color = pb.Color
	}
	if dx == 0 && dy == 0 {
		return
	}
	alpha := math.Atan2(dy, dx)

	h := g.tmpl.Commit.Dot.Size + g.tmpl.Arrow.Offset
	at := func(r, a float64) (float64, float64) {
		return r*math.Cos(a) + c.X, r*math.Sin(a) + c.Y
	}
	x1, y1 := at(h, alpha)
	x2, y2 := at(h+size, alpha-arrowDelta)
	x3, y3 := at(h+size/2, alpha)
	x4, y4 := at(h+size, alpha+arrowDelta)

	ctx.BeginPath()
	ctx.SetFillColor(color)
	ctx.MoveTo(x1, y1)
	ctx.LineTo(x2, y2)
	ctx.QuadraticTo(x3, y3, x4, y4)
	ctx.LineTo(x4, y4)
	ctx.Fill()
}
