package canvas

// Context is a 2D drawing context.
type Context interface {
	BeginPath()
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	// Arc adds a circular arc centered on (x, y) from angle a0 to a1 (radians,
	// clockwise in screen space).
	Arc(x, y, r, a0, a1 float64)

	SetLineWidth(w float64)
	SetStrokeColor(c string)
	SetFillColor(c string)
	SetDash(dash []float64)
	SetFont(f string)

	Stroke()
	Fill()
	FillText(text string, x, y float64)
	ClearRect(x, y, w, h float64)

	Scale(sx, sy float64)
	Translate(x, y float64)
}

// Surface is a resizable drawing target.
type Surface interface {
	Context
	// Resize sets the logical size and the device pixel ratio. It discards
	// previous content and resets the transform to identity.
	Resize(w, h, ratio float64)
	// Size returns the logical size set by the last Resize.
	Size() (w, h float64)
}
