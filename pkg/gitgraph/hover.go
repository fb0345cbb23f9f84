package gitgraph

// HoverEvent describes the commit the pointer entered.
type HoverEvent struct {
	Author  string `json:"author"`
	Message string `json:"message"`
	Date    string `json:"date"`
	Hash    string `json:"hash"`
}

// Tooltip is the state requested from a [TooltipSink].
type Tooltip struct {
	Position Point  `json:"position"`
	Text     string `json:"text,omitempty"`
	Visible  bool   `json:"visible"`
}

// HoverSink receives hover-enter notifications.
type HoverSink interface {
	CommitHovered(HoverEvent)
}

// TooltipSink shows or hides the commit tooltip.
type TooltipSink interface {
	SetTooltip(Tooltip)
}

// HoverFunc adapts a function to [HoverSink].
type HoverFunc func(HoverEvent)

func (f HoverFunc) CommitHovered(e HoverEvent) { f(e) }

// TooltipFunc adapts a function to [TooltipSink].
type TooltipFunc func(Tooltip)

func (f TooltipFunc) SetTooltip(t Tooltip) { f(t) }

type NoopHoverSink struct{}

func (NoopHoverSink) CommitHovered(HoverEvent) {}

type NoopTooltipSink struct{}

func (NoopTooltipSink) SetTooltip(Tooltip) {}

// Hover hit-tests the pointer p, given in surface coordinates, against every
// commit dot. Commits entered since the previous call emit a [HoverEvent];
// when messages are hidden the tooltip shows the hovered commit. It returns
// the hovered commits in creation order.
func (g *Graph) Hover(p Point) []*Commit {
	radius := g.tmpl.Commit.Dot.Size
	var hovered []*Commit

	for _, c := range g.commits {
		center := Point{
			X: c.X + g.offsetX + g.marginX,
			Y: c.Y + g.offsetY + g.marginY,
		}
		if center.Dist(p) >= radius {
			c.hovered = false
			continue
		}

		if !g.tmpl.Commit.Message.Display {
			g.tooltip.SetTooltip(Tooltip{
				Position: p,
				Text:     c.Hash + " - " + c.Message,
				Visible:  true,
			})
		}
		if !c.hovered {
			g.hover.CommitHovered(HoverEvent{
				Author:  c.Author,
				Message: c.Message,
				Date:    c.DateString(),
				Hash:    c.Hash,
			})
		}
		c.hovered = true
		hovered = append(hovered, c)
	}

	if len(hovered) == 0 {
		g.tooltip.SetTooltip(Tooltip{Position: p})
	}
	return hovered
}
