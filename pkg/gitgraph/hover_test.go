package gitgraph

import (
	"testing"
)

type hoverRecorder struct {
	events   []HoverEvent
	tooltips []Tooltip
}

func (h *hoverRecorder) CommitHovered(e HoverEvent) { h.events = append(h.events, e) }
func (h *hoverRecorder) SetTooltip(t Tooltip)       { h.tooltips = append(h.tooltips, t) }

func TestHoverEnterFiresOnce(t *testing.T) {
	sink := &hoverRecorder{}
	g := newTestGraph(t, Options{HoverSink: sink, TooltipSink: sink})
	c := g.BranchNamed("master").CommitMessage("hover me")
	render(g)

	// Dot center on the surface: margin 6 plus the vertical offset of 25.
	center := Point{X: 6, Y: 31}
	const eps = 0.1
	inside := Point{X: center.X + 3 - eps, Y: center.Y}
	outside := Point{X: center.X + 3 + eps, Y: center.Y}

	for range 3 {
		got := g.Hover(inside)
		if len(got) != 1 || got[0] != c {
			t.Fatalf("Hover(inside) = %v, want [%s]", got, c.Hash)
		}
	}
	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	want := HoverEvent{
		Author:  c.Author,
		Message: "hover me",
		Date:    "Sat, 09 Mar 2024 16:20:00 GMT",
		Hash:    c.Hash,
	}
	if sink.events[0] != want {
		t.Errorf("event = %+v, want %+v", sink.events[0], want)
	}
	if !c.Hovered() {
		t.Error("Hovered() = false inside the dot")
	}
	// Messages are displayed, so no tooltip is requested while hovering.
	if len(sink.tooltips) != 0 {
		t.Errorf("tooltips = %v, want none", sink.tooltips)
	}

	if got := g.Hover(outside); len(got) != 0 {
		t.Errorf("Hover(outside) = %v, want none", got)
	}
	if c.Hovered() {
		t.Error("Hovered() = true outside the dot")
	}
	if n := len(sink.tooltips); n != 1 || sink.tooltips[0].Visible {
		t.Errorf("tooltips = %v, want one hide", sink.tooltips)
	}

	g.Hover(inside)
	if len(sink.events) != 2 {
		t.Errorf("events = %d, want 2 after re-entering", len(sink.events))
	}
}

func TestHoverBoundaryIsExclusive(t *testing.T) {
	g := newTestGraph(t, Options{})
	g.BranchNamed("master").CommitMessage("edge")
	render(g)

	if got := g.Hover(Point{X: 9, Y: 31}); len(got) != 0 {
		t.Errorf("Hover at exactly the radius = %v, want none", got)
	}
}

func TestHoverTooltipWhenMessagesHidden(t *testing.T) {
	sink := &hoverRecorder{}
	g := newTestGraph(t, Options{Mode: ModeCompact, TooltipSink: sink})
	c := g.BranchNamed("master").CommitMessage("tiny")
	render(g)

	p := Point{X: 6, Y: 31}
	g.Hover(p)
	if len(sink.tooltips) != 1 {
		t.Fatalf("tooltips = %v, want 1", sink.tooltips)
	}
	want := Tooltip{Position: p, Text: c.Hash + " - tiny", Visible: true}
	if sink.tooltips[0] != want {
		t.Errorf("tooltip = %+v, want %+v", sink.tooltips[0], want)
	}
}

func TestHoverFollowsOrientationOffset(t *testing.T) {
	g := newTestGraph(t, Options{Orientation: Horizontal})
	master := g.BranchNamed("master")
	master.CommitMessage("a")
	c := master.CommitMessage("b")
	render(g)

	// Horizontal growth starts at the right edge: offsetX = 50.
	p := Point{X: c.X + 50 + 6, Y: c.Y + 6}
	if got := g.Hover(p); len(got) != 1 || got[0] != c {
		t.Errorf("Hover(%v) = %v, want [%s]", p, got, c.Hash)
	}
}

func TestHoverFuncAdapters(t *testing.T) {
	var events []HoverEvent
	var tips []Tooltip
	g := newTestGraph(t, Options{
		HoverSink:   HoverFunc(func(e HoverEvent) { events = append(events, e) }),
		TooltipSink: TooltipFunc(func(t Tooltip) { tips = append(tips, t) }),
	})
	g.BranchNamed("master").CommitMessage("x")
	g.Hover(Point{X: 6, Y: 6}) // never rendered: offsets are zero
	if len(events) != 1 {
		t.Errorf("events = %d, want 1", len(events))
	}
	g.SetHoverSink(nil)
	g.SetTooltipSink(nil)
	g.Hover(Point{X: -100, Y: -100})
	if len(tips) != 0 {
		t.Errorf("tooltips after reset = %v, want none", tips)
	}
}
