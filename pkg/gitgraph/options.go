package gitgraph

import (
	"time"

	"github.com/matzehuels/gitgraph/pkg/canvas"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/template"
)

// Orientation selects the direction in which history grows.
type Orientation string

const (
	Vertical          Orientation = "vertical"
	VerticalReverse   Orientation = "vertical-reverse"
	Horizontal        Orientation = "horizontal"
	HorizontalReverse Orientation = "horizontal-reverse"
)

// Orientations lists every supported orientation.
var Orientations = []Orientation{Vertical, VerticalReverse, Horizontal, HorizontalReverse}

// ParseOrientation converts a name to an Orientation. The empty string is
// [Vertical].
func ParseOrientation(s string) (Orientation, error) {
	if s == "" {
		return Vertical, nil
	}
	for _, o := range Orientations {
		if string(o) == s {
			return o, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidOption, "invalid orientation: %q (must be vertical, vertical-reverse, horizontal or horizontal-reverse)", s)
}

// IsHorizontal reports whether lanes stack vertically and history grows
// along the X axis.
func (o Orientation) IsHorizontal() bool {
	return o == Horizontal || o == HorizontalReverse
}

// Mode selects the display mode.
type Mode string

const (
	ModeDefault Mode = ""
	// ModeCompact hides messages and lets sibling branches share time slots.
	ModeCompact Mode = "compact"
)

// ParseMode converts a name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "default":
		return ModeDefault, nil
	case string(ModeCompact):
		return ModeCompact, nil
	}
	return "", errors.New(errors.ErrCodeInvalidOption, "invalid mode: %q (must be default or compact)", s)
}

// ColumnPolicy selects how lanes are assigned to new branches.
type ColumnPolicy int

const (
	// ColumnScan counts live branches in creation order and stops at the
	// first deleted one. Lanes of deleted branches are reused only when the
	// deleted branch precedes every live one.
	ColumnScan ColumnPolicy = iota
	// ColumnReuse picks the smallest lane not held by a live branch.
	ColumnReuse
)

// DefaultMessage is used for commits created without a message.
const DefaultMessage = "He doesn't like George Michael! Boooo!"

// Options configures a [Graph].
type Options struct {
	// Template is the resolved style. When nil, TemplateName is looked up
	// ("metro" when empty).
	Template     *template.Template
	TemplateName string

	Orientation  Orientation
	Mode         Mode
	ColumnPolicy ColumnPolicy

	// Author is the default commit author.
	Author string

	// Surface receives a full redraw after every mutation unless Hidden.
	Surface    canvas.Surface
	PixelRatio float64
	Hidden     bool

	HoverSink   HoverSink
	TooltipSink TooltipSink

	// Clock and NewHash default to time.Now and random 7-digit hex hashes.
	Clock   func() time.Time
	NewHash func() string
}

// BranchOptions configures a new branch. Zero values inherit from the
// template.
type BranchOptions struct {
	Name string
	// Parent is the branch this one forks from. [Graph.Branch] defaults it to
	// HEAD and [Branch.Branch] to the receiver.
	Parent    *Branch
	Color     string
	LineWidth float64
	LineDash  []float64
}

// CommitOptions configures a new commit. Zero values inherit from the branch
// and template.
type CommitOptions struct {
	Message string
	Author  string
	Hash    string
	Date    time.Time

	// Parent overrides the default parent (the branch tip, or the parent
	// branch tip for the first commit of a fork).
	Parent *Commit

	Color          string
	DotColor       string
	DotSize        float64
	DotStrokeWidth float64
	DotStrokeColor string
	MessageColor   string
	MessageFont    string

	DisplayMessage *bool
	DisplayAuthor  *bool
	DisplayHash    *bool

	// Detail is drawn next to the commit. It only applies to vertical,
	// non-compact graphs.
	Detail *Detail
}

// Detail is an extra text block drawn beside a commit. Height reserves
// vertical room below the commit.
type Detail struct {
	Text   string  `json:"text"`
	Height float64 `json:"height"`
}

// Bool returns a pointer to b, for the tri-state display options.
func Bool(b bool) *bool { return &b }
