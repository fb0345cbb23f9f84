package gitgraph

import "slices"

// Layout is a serializable snapshot of the computed diagram.
type Layout struct {
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	MarginX     float64        `json:"margin_x"`
	MarginY     float64        `json:"margin_y"`
	OffsetX     float64        `json:"offset_x"`
	OffsetY     float64        `json:"offset_y"`
	Orientation Orientation    `json:"orientation"`
	Mode        Mode           `json:"mode,omitempty"`
	MaxLane     int            `json:"max_lane"`
	Cursor      Point          `json:"cursor"`
	Head        string         `json:"head,omitempty"`
	Branches    []LayoutBranch `json:"branches"`
	Commits     []LayoutCommit `json:"commits"`
}

type LayoutBranch struct {
	Name      string      `json:"name"`
	Column    int         `json:"column"`
	Color     string      `json:"color"`
	LineWidth float64     `json:"line_width"`
	LineDash  []float64   `json:"line_dash,omitempty"`
	Offset    Point       `json:"offset"`
	Parent    string      `json:"parent,omitempty"`
	Finished  bool        `json:"finished,omitempty"`
	Path      []PathPoint `json:"path"`
}

type LayoutCommit struct {
	Hash         string  `json:"hash"`
	Branch       string  `json:"branch"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Kind         Kind    `json:"kind"`
	Parent       string  `json:"parent,omitempty"`
	Message      string  `json:"message"`
	Author       string  `json:"author"`
	Date         string  `json:"date"`
	DotColor     string  `json:"dot_color"`
	DotSize      float64 `json:"dot_size"`
	MessageColor string  `json:"message_color"`
	Detail       *Detail `json:"detail,omitempty"`
}

// Layout returns a snapshot of branch lines and commit positions. Offsets
// are those of the last render pass.
func (g *Graph) Layout() Layout {
	w, h := g.Size()
	l := Layout{
		Width:       w,
		Height:      h,
		MarginX:     g.marginX,
		MarginY:     g.marginY,
		OffsetX:     g.offsetX,
		OffsetY:     g.offsetY,
		Orientation: g.orientation,
		Mode:        g.mode,
		MaxLane:     g.maxLane,
		Cursor:      g.Cursor(),
		Branches:    make([]LayoutBranch, 0, len(g.branches)),
		Commits:     make([]LayoutCommit, 0, len(g.commits)),
	}
	if head := g.Head(); head != nil {
		l.Head = head.Name
	}

	for _, b := range g.branches {
		lb := LayoutBranch{
			Name:      b.Name,
			Column:    b.column,
			Color:     b.Color,
			LineWidth: b.LineWidth,
			LineDash:  slices.Clone(b.LineDash),
			Offset:    b.offset,
			Finished:  b.finished,
			Path:      b.Path(),
		}
		if p := b.Parent(); p != nil {
			lb.Parent = p.Name
		}
		l.Branches = append(l.Branches, lb)
	}

	for _, c := range g.commits {
		lc := LayoutCommit{
			Hash:         c.Hash,
			Branch:       c.Branch().Name,
			X:            c.X,
			Y:            c.Y,
			Kind:         c.Kind,
			Message:      c.Message,
			Author:       c.Author,
			Date:         c.DateString(),
			DotColor:     c.DotColor,
			DotSize:      c.DotSize,
			MessageColor: c.MessageColor,
			Detail:       c.Detail,
		}
		if p := c.Parent(); p != nil {
			lc.Parent = p.Hash
		}
		l.Commits = append(l.Commits, lc)
	}
	return l
}
