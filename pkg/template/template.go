package template

import (
	"fmt"
	"slices"
)

// Merge styles for branch joints.
const (
	MergeStyleBezier   = "bezier"
	MergeStyleCurve    = "curve" // alias of bezier
	MergeStyleStraight = "straight"
)

// Preset names.
const (
	PresetMetro      = "metro"
	PresetBlackArrow = "blackarrow"
)

// Default values applied by [New] when an option is unset.
const (
	DefaultAuthor      = "Sergio Flores <saxo-guy@epic.com>"
	DefaultLineWidth   = 2.0
	DefaultSpacingX    = 20.0
	DefaultSpacingY    = 25.0
	DefaultDotSize     = 3.0
	DefaultArrowOffset = 2.0
	DefaultFont        = "normal 12pt Calibri"
)

// DefaultColors is the lane palette used when no colors are configured.
var DefaultColors = []string{"#6963FF", "#47E8D4", "#6BDB52", "#E84BA5", "#FFA657"}

// Template is a fully resolved style configuration. Every field holds a
// usable value; the layout and rendering engine never applies defaults itself.
type Template struct {
	Colors []string    `json:"colors" toml:"colors"`
	Branch BranchStyle `json:"branch" toml:"branch"`
	Arrow  ArrowStyle  `json:"arrow" toml:"arrow"`
	Commit CommitStyle `json:"commit" toml:"commit"`
}

// BranchStyle controls branch lines and lane spacing.
type BranchStyle struct {
	Color      string    `json:"color,omitempty" toml:"color"` // Single color for every branch (empty: lane palette)
	LineWidth  float64   `json:"line_width" toml:"line_width"`
	LineDash   []float64 `json:"line_dash,omitempty" toml:"line_dash"`
	MergeStyle string    `json:"merge_style" toml:"merge_style"`
	SpacingX   float64   `json:"spacing_x" toml:"spacing_x"`
	SpacingY   float64   `json:"spacing_y" toml:"spacing_y"`
}

// Curved reports whether joints are drawn as cubic curves.
func (b BranchStyle) Curved() bool {
	return b.MergeStyle == MergeStyleBezier || b.MergeStyle == MergeStyleCurve
}

// ArrowStyle controls the arrowheads pointing from a commit to its parent.
type ArrowStyle struct {
	Size   float64 `json:"size,omitempty" toml:"size"` // Zero disables arrows
	Color  string  `json:"color,omitempty" toml:"color"`
	Offset float64 `json:"offset" toml:"offset"`
}

// Active reports whether arrows are drawn.
func (a ArrowStyle) Active() bool { return a.Size > 0 }

// CommitStyle controls commit spacing, dots and messages.
type CommitStyle struct {
	SpacingX float64      `json:"spacing_x" toml:"spacing_x"`
	SpacingY float64      `json:"spacing_y" toml:"spacing_y"`
	Color    string       `json:"color,omitempty" toml:"color"`
	Dot      DotStyle     `json:"dot" toml:"dot"`
	Message  MessageStyle `json:"message" toml:"message"`
}

// DotStyle controls the commit dot.
type DotStyle struct {
	Color       string  `json:"color,omitempty" toml:"color"`
	Size        float64 `json:"size" toml:"size"`
	StrokeWidth float64 `json:"stroke_width,omitempty" toml:"stroke_width"` // Zero disables the stroke
	StrokeColor string  `json:"stroke_color,omitempty" toml:"stroke_color"`
}

// MessageStyle controls the commit message label.
type MessageStyle struct {
	Display       bool   `json:"display" toml:"display"`
	DisplayAuthor bool   `json:"display_author" toml:"display_author"`
	DisplayHash   bool   `json:"display_hash" toml:"display_hash"`
	Color         string `json:"color,omitempty" toml:"color"`
	Font          string `json:"font" toml:"font"`
}

// LaneColor returns the palette color for a lane, wrapping around when there
// are more lanes than colors.
func (t Template) LaneColor(column int) string {
	if len(t.Colors) == 0 {
		return DefaultColors[column%len(DefaultColors)]
	}
	if column < 0 {
		column = 0
	}
	return t.Colors[column%len(t.Colors)]
}

// Clone returns a deep copy so callers can adjust spacing without aliasing
// slices of the original.
func (t Template) Clone() Template {
	c := t
	c.Colors = slices.Clone(t.Colors)
	c.Branch.LineDash = slices.Clone(t.Branch.LineDash)
	return c
}

// String returns a short human readable summary.
func (t Template) String() string {
	return fmt.Sprintf("lanes=%v branch=%.0fx%.0f commit=%.0fx%.0f dot=%.0f merge=%s",
		len(t.Colors), t.Branch.SpacingX, t.Branch.SpacingY,
		t.Commit.SpacingX, t.Commit.SpacingY, t.Commit.Dot.Size, t.Branch.MergeStyle)
}
