package gitgraph

import "time"

// DateLayout formats commit dates the way HTTP and JavaScript print UTC
// times.
const DateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Commit is one dot in the diagram. Its position is assigned once, when it
// is added.
type Commit struct {
	X, Y    float64
	Kind    Kind
	Message string
	Author  string
	Hash    string
	Date    time.Time

	Color          string
	DotColor       string
	DotSize        float64
	DotStrokeWidth float64
	DotStrokeColor string
	MessageColor   string
	MessageFont    string

	DisplayMessage bool
	DisplayAuthor  bool
	DisplayHash    bool

	Detail *Detail

	graph     *Graph
	index     int
	branchIdx int
	parentIdx int // index into graph.commits, -1 for none
	hovered   bool
}

// Branch returns the branch the commit was added to.
func (c *Commit) Branch() *Branch { return c.graph.branches[c.branchIdx] }

// Parent returns the parent commit, or nil.
func (c *Commit) Parent() *Commit {
	if c.parentIdx < 0 {
		return nil
	}
	return c.graph.commits[c.parentIdx]
}

// Position returns the commit's diagram coordinates.
func (c *Commit) Position() Point { return Point{c.X, c.Y} }

// IsMerge reports whether c is a merge commit.
func (c *Commit) IsMerge() bool { return c.Kind == KindMerge }

// Hovered reports whether the pointer was over c at the last hover test.
func (c *Commit) Hovered() bool { return c.hovered }

// DateString formats the commit date in UTC.
func (c *Commit) DateString() string { return c.Date.UTC().Format(DateLayout) }

// Label returns the message as drawn next to the commit.
func (c *Commit) Label() string {
	msg := c.Message
	if c.DisplayHash {
		msg = c.Hash + " " + msg
	}
	if c.DisplayAuthor && c.Author != "" {
		msg += " - " + c.Author
	}
	return msg
}

// commit builds a commit on b, positions it, extends the branch path and
// advances the shared cursor.
func (b *Branch) commit(opts CommitOptions, kind Kind) *Commit {
	g := b.graph
	tmpl := g.tmpl
	lane := tmpl.LaneColor(b.column)

	parent := opts.Parent
	if parent == nil || parent.graph != g {
		parent = b.Tip()
	}

	c := &Commit{
		Kind:    kind,
		Message: firstNonEmpty(opts.Message, DefaultMessage),
		Author:  firstNonEmpty(opts.Author, g.author),
		Hash:    opts.Hash,
		Date:    opts.Date,

		Color:          firstNonEmpty(opts.Color, tmpl.Commit.Color, lane),
		DotColor:       firstNonEmpty(opts.DotColor, opts.Color, tmpl.Commit.Dot.Color, tmpl.Commit.Color, lane),
		DotSize:        opts.DotSize,
		DotStrokeWidth: opts.DotStrokeWidth,
		MessageColor:   firstNonEmpty(opts.MessageColor, opts.Color, tmpl.Commit.Message.Color, tmpl.Commit.Color, lane),
		MessageFont:    firstNonEmpty(opts.MessageFont, tmpl.Commit.Message.Font),

		DisplayMessage: boolOr(opts.DisplayMessage, tmpl.Commit.Message.Display),
		DisplayAuthor:  boolOr(opts.DisplayAuthor, tmpl.Commit.Message.DisplayAuthor),
		DisplayHash:    boolOr(opts.DisplayHash, tmpl.Commit.Message.DisplayHash),

		graph:     g,
		index:     len(g.commits),
		branchIdx: b.index,
		parentIdx: -1,
	}
	c.DotStrokeColor = firstNonEmpty(opts.DotStrokeColor, tmpl.Commit.Dot.StrokeColor, c.Color)
	if c.Hash == "" {
		c.Hash = g.newHash()
	}
	if c.Date.IsZero() {
		c.Date = g.clock().UTC()
	}
	if c.DotSize <= 0 {
		c.DotSize = tmpl.Commit.Dot.Size
	}
	if c.DotStrokeWidth <= 0 {
		c.DotStrokeWidth = tmpl.Commit.Dot.StrokeWidth
	}
	if opts.Detail != nil && g.orientation == Vertical && g.mode != ModeCompact {
		d := *opts.Detail
		c.Detail = &d
	}

	g.place(b, c)

	// Fork: the first commit of a child branch points at the parent's tip.
	if parent == nil {
		if pb := b.Parent(); pb != nil {
			parent = pb.Tip()
		}
	}
	if parent != nil {
		c.parentIdx = parent.index
	}

	g.commits = append(g.commits, c)
	b.commits = append(b.commits, c.index)

	g.extendPath(b, c)
	g.advance(c)
	g.autoRender()
	return c
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
