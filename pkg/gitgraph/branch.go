package gitgraph

import (
	"slices"

	"github.com/matzehuels/gitgraph/pkg/errors"
)

// DefaultBranchName is used for branches created without a name.
const DefaultBranchName = "no-name"

// Branch is a named lane. Its column is fixed at creation.
type Branch struct {
	Name      string
	Color     string
	LineWidth float64
	LineDash  []float64

	graph     *Graph
	index     int
	parentIdx int // index into graph.branches, -1 for none
	column    int
	offset    Point
	commits   []int // indices into graph.commits
	path      []PathPoint
	finished  bool
}

func (g *Graph) newBranch(opts BranchOptions) *Branch {
	b := &Branch{
		Name:      opts.Name,
		LineWidth: opts.LineWidth,
		LineDash:  slices.Clone(opts.LineDash),
		graph:     g,
		index:     len(g.branches),
		parentIdx: -1,
	}
	if b.Name == "" {
		b.Name = DefaultBranchName
	}
	if opts.Parent != nil && opts.Parent.graph == g {
		b.parentIdx = opts.Parent.index
	}
	if b.LineWidth <= 0 {
		b.LineWidth = g.tmpl.Branch.LineWidth
	}
	if b.LineDash == nil {
		b.LineDash = slices.Clone(g.tmpl.Branch.LineDash)
	}

	b.column = g.allocateColumn()
	b.offset = Point{
		X: float64(b.column) * g.tmpl.Branch.SpacingX,
		Y: float64(b.column) * g.tmpl.Branch.SpacingY,
	}
	b.Color = firstNonEmpty(opts.Color, g.tmpl.Branch.Color, g.tmpl.LaneColor(b.column))

	g.branches = append(g.branches, b)
	g.head = b.index
	return b
}

// Branch creates a child branch forking from b (or opts.Parent) and checks
// it out.
func (b *Branch) Branch(opts BranchOptions) *Branch {
	if opts.Parent == nil {
		opts.Parent = b
	}
	return b.graph.newBranch(opts)
}

// BranchNamed is shorthand for Branch(BranchOptions{Name: name}).
func (b *Branch) BranchNamed(name string) *Branch {
	return b.Branch(BranchOptions{Name: name})
}

// Checkout makes b the HEAD.
func (b *Branch) Checkout() { b.graph.head = b.index }

// Delete marks the branch finished. Its lane may be handed to a later
// branch; existing commits and path points are kept.
func (b *Branch) Delete() { b.finished = true }

// Finished reports whether the branch was deleted.
func (b *Branch) Finished() bool { return b.finished }

// Column returns the lane index.
func (b *Branch) Column() int { return b.column }

// Offset returns the lane offset (column times lane spacing).
func (b *Branch) Offset() Point { return b.offset }

// Parent returns the branch this one forked from, or nil.
func (b *Branch) Parent() *Branch {
	if b.parentIdx < 0 {
		return nil
	}
	return b.graph.branches[b.parentIdx]
}

// Commits returns the branch's commits in order.
func (b *Branch) Commits() []*Commit {
	out := make([]*Commit, len(b.commits))
	for i, idx := range b.commits {
		out[i] = b.graph.commits[idx]
	}
	return out
}

// Tip returns the last commit on the branch, or nil.
func (b *Branch) Tip() *Commit {
	if len(b.commits) == 0 {
		return nil
	}
	return b.graph.commits[b.commits[len(b.commits)-1]]
}

// Path returns a copy of the branch line's points.
func (b *Branch) Path() []PathPoint { return slices.Clone(b.path) }

// Commit appends a commit to the branch. HEAD is not changed.
func (b *Branch) Commit(opts CommitOptions) *Commit {
	return b.commit(opts, KindNormal)
}

// CommitMessage is shorthand for Commit(CommitOptions{Message: msg}).
func (b *Branch) CommitMessage(msg string) *Commit {
	return b.Commit(CommitOptions{Message: msg})
}

// Merge folds b into target (HEAD when nil) with a merge commit on target,
// then checks target out. Merging into b itself, or into a branch of
// another graph, fails with ErrCodeInvalidMergeTarget and changes nothing.
func (b *Branch) Merge(target *Branch, opts CommitOptions) (*Commit, error) {
	g := b.graph
	if target == nil {
		target = g.Head()
	}
	if target == nil {
		return nil, errors.New(errors.ErrCodeInvalidMergeTarget, "merge %q: no target branch", b.Name)
	}
	if target == b {
		return nil, errors.New(errors.ErrCodeInvalidMergeTarget, "cannot merge %q into itself", b.Name)
	}
	if target.graph != g {
		return nil, errors.New(errors.ErrCodeInvalidMergeTarget, "merge %q: target %q belongs to another graph", b.Name, target.Name)
	}

	if opts.Message == "" {
		opts.Message = "Merge branch `" + b.Name + "` into `" + target.Name + "`"
	}
	opts.Parent = b.Tip()

	c := target.commit(opts, KindMerge)
	g.mergePath(b, target)
	g.autoRender()
	g.head = target.index
	return c, nil
}

// MergeInto merges b into target with an optional message.
func (b *Branch) MergeInto(target *Branch, message string) (*Commit, error) {
	return b.Merge(target, CommitOptions{Message: message})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
