package gitgraph

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gitgraph/pkg/canvas"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/template"
)

// Graph is a commit-history diagram. It owns every branch and commit; the
// handles it returns stay valid for its lifetime.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	tmpl        template.Template
	orientation Orientation
	mode        Mode
	policy      ColumnPolicy
	author      string

	surface    canvas.Surface
	pixelRatio float64
	hidden     bool
	hover      HoverSink
	tooltip    TooltipSink
	clock      func() time.Time
	newHash    func() string

	marginX, marginY float64
	offsetX, offsetY float64 // recorded by the last render pass
	cursorX, cursorY float64
	maxLane          int

	head     int // index into branches, -1 when unset
	branches []*Branch
	commits  []*Commit
}

// New creates an empty graph. Orientation and mode are applied to a copy of
// the template.
func New(opts Options) (*Graph, error) {
	var tmpl template.Template
	if opts.Template != nil {
		tmpl = opts.Template.Clone()
	} else {
		t, err := template.Get(opts.TemplateName)
		if err != nil {
			return nil, err
		}
		tmpl = t
	}

	orientation, err := ParseOrientation(string(opts.Orientation))
	if err != nil {
		return nil, err
	}
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}
	if opts.ColumnPolicy != ColumnScan && opts.ColumnPolicy != ColumnReuse {
		return nil, errors.New(errors.ErrCodeInvalidOption, "invalid column policy: %d", opts.ColumnPolicy)
	}

	if mode == ModeCompact {
		tmpl.Commit.Message.Display = false
	}
	orient(&tmpl, orientation)

	g := &Graph{
		tmpl:        tmpl,
		orientation: orientation,
		mode:        mode,
		policy:      opts.ColumnPolicy,
		author:      opts.Author,
		surface:     opts.Surface,
		pixelRatio:  opts.PixelRatio,
		hidden:      opts.Hidden,
		hover:       opts.HoverSink,
		tooltip:     opts.TooltipSink,
		clock:       opts.Clock,
		newHash:     opts.NewHash,
		marginX:     tmpl.Commit.Dot.Size * 2,
		marginY:     tmpl.Commit.Dot.Size * 2,
		head:        -1,
	}
	if g.author == "" {
		g.author = template.DefaultAuthor
	}
	if g.pixelRatio <= 0 {
		g.pixelRatio = 1
	}
	if g.hover == nil {
		g.hover = NoopHoverSink{}
	}
	if g.tooltip == nil {
		g.tooltip = NoopTooltipSink{}
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	if g.newHash == nil {
		g.newHash = RandomHash
	}
	return g, nil
}

// orient rotates or flips the template spacing for the orientation.
func orient(t *template.Template, o Orientation) {
	switch o {
	case VerticalReverse:
		t.Commit.SpacingY *= -1
	case Horizontal:
		t.Commit.Message.Display = false
		t.Commit.SpacingX = t.Commit.SpacingY
		t.Branch.SpacingY = t.Branch.SpacingX
		t.Commit.SpacingY = 0
		t.Branch.SpacingX = 0
	case HorizontalReverse:
		t.Commit.Message.Display = false
		t.Commit.SpacingX = -t.Commit.SpacingY
		t.Branch.SpacingY = t.Branch.SpacingX
		t.Commit.SpacingY = 0
		t.Branch.SpacingX = 0
	}
}

// RandomHash returns a random 7-digit hex string.
func RandomHash() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
}

// =============================================================================
// Branches
// =============================================================================

// Branch creates a branch forking from opts.Parent, or from HEAD when unset,
// and checks it out.
func (g *Graph) Branch(opts BranchOptions) *Branch {
	if opts.Parent == nil {
		opts.Parent = g.Head()
	}
	return g.newBranch(opts)
}

// BranchNamed is shorthand for Branch(BranchOptions{Name: name}).
func (g *Graph) BranchNamed(name string) *Branch {
	return g.Branch(BranchOptions{Name: name})
}

// OrphanBranch creates a branch that does not fork from HEAD and checks it
// out. An explicit opts.Parent is still honored.
func (g *Graph) OrphanBranch(opts BranchOptions) *Branch {
	return g.newBranch(opts)
}

// Branches returns all branches in creation order.
func (g *Graph) Branches() []*Branch { return g.branches }

// Commits returns all commits in creation order.
func (g *Graph) Commits() []*Commit { return g.commits }

// Head returns the checked-out branch, or nil.
func (g *Graph) Head() *Branch {
	if g.head < 0 {
		return nil
	}
	return g.branches[g.head]
}

// Lookup returns the most recently created branch with the given name.
func (g *Graph) Lookup(name string) (*Branch, bool) {
	for i := len(g.branches) - 1; i >= 0; i-- {
		if g.branches[i].Name == name {
			return g.branches[i], true
		}
	}
	return nil, false
}

// LookupCommit returns the commit with the given hash.
func (g *Graph) LookupCommit(hash string) (*Commit, bool) {
	for _, c := range g.commits {
		if c.Hash == hash {
			return c, true
		}
	}
	return nil, false
}

// =============================================================================
// Commits
// =============================================================================

// Commit adds a commit on HEAD.
func (g *Graph) Commit(opts CommitOptions) (*Commit, error) {
	head := g.Head()
	if head == nil {
		return nil, errors.New(errors.ErrCodeNoHead, "no branch checked out")
	}
	return head.Commit(opts), nil
}

// CommitOn adds a commit on the named branch without changing HEAD.
func (g *Graph) CommitOn(name string, opts CommitOptions) (*Commit, error) {
	b, ok := g.Lookup(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeBranchNotFound, "unknown branch %q", name)
	}
	return b.Commit(opts), nil
}

// =============================================================================
// Accessors
// =============================================================================

// Template returns the template after orientation and mode adjustments.
func (g *Graph) Template() template.Template { return g.tmpl }

func (g *Graph) Orientation() Orientation { return g.orientation }
func (g *Graph) Mode() Mode               { return g.mode }

// MaxLane returns the highest lane index assigned so far.
func (g *Graph) MaxLane() int { return g.maxLane }

// Cursor returns the shared commit cursor.
func (g *Graph) Cursor() Point { return Point{g.cursorX, g.cursorY} }

// Margins returns the space around the drawing.
func (g *Graph) Margins() (x, y float64) { return g.marginX, g.marginY }

// Offsets returns the orientation translation of the last render pass.
func (g *Graph) Offsets() (x, y float64) { return g.offsetX, g.offsetY }

// SetSurface attaches (or with nil, detaches) the auto-render surface.
func (g *Graph) SetSurface(s canvas.Surface) { g.surface = s }

// SetHidden toggles auto-rendering. An explicit Render still draws.
func (g *Graph) SetHidden(hidden bool) { g.hidden = hidden }

// SetHoverSink replaces the hover-enter sink.
func (g *Graph) SetHoverSink(s HoverSink) {
	if s == nil {
		s = NoopHoverSink{}
	}
	g.hover = s
}

// SetTooltipSink replaces the tooltip sink.
func (g *Graph) SetTooltipSink(s TooltipSink) {
	if s == nil {
		s = NoopTooltipSink{}
	}
	g.tooltip = s
}

func (g *Graph) autoRender() {
	if g.surface == nil || g.hidden {
		return
	}
	g.RenderTo(g.surface)
}
