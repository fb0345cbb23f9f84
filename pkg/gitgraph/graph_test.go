package gitgraph

import (
	"fmt"
	"testing"
	"time"

	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/template"
)

var fixedTime = time.Date(2024, 3, 9, 16, 20, 0, 0, time.UTC)

// newTestGraph returns a graph using the plain default template with
// deterministic hashes and dates.
func newTestGraph(t *testing.T, opts Options) *Graph {
	t.Helper()
	if opts.Template == nil && opts.TemplateName == "" {
		tmpl := template.New(template.Options{})
		opts.Template = &tmpl
	}
	n := 0
	opts.NewHash = func() string {
		n++
		return fmt.Sprintf("c%06d", n)
	}
	opts.Clock = func() time.Time { return fixedTime }
	g, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad orientation", Options{Orientation: "diagonal"}, errors.ErrCodeInvalidOption},
		{"bad mode", Options{Mode: "tiny"}, errors.ErrCodeInvalidOption},
		{"bad policy", Options{ColumnPolicy: 7}, errors.ErrCodeInvalidOption},
		{"bad template", Options{TemplateName: "neon"}, errors.ErrCodeInvalidTemplate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("New() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestNewDefaultsToMetro(t *testing.T) {
	g, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if g.Template().Branch.SpacingX != 50 {
		t.Errorf("branch spacing = %v, want 50 (metro)", g.Template().Branch.SpacingX)
	}
	if mx, my := g.Margins(); mx != 28 || my != 28 {
		t.Errorf("Margins() = %v,%v, want 28,28", mx, my)
	}
	if g.Orientation() != Vertical {
		t.Errorf("Orientation() = %v, want vertical", g.Orientation())
	}
}

func TestOrientationAdjustsTemplate(t *testing.T) {
	tests := []struct {
		orientation    Orientation
		commitX        float64
		commitY        float64
		branchX        float64
		branchY        float64
		displayMessage bool
	}{
		{Vertical, 0, 25, 20, 0, true},
		{VerticalReverse, 0, -25, 20, 0, true},
		{Horizontal, 25, 0, 0, 20, false},
		{HorizontalReverse, -25, 0, 0, 20, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.orientation), func(t *testing.T) {
			g := newTestGraph(t, Options{Orientation: tt.orientation})
			tmpl := g.Template()
			if tmpl.Commit.SpacingX != tt.commitX || tmpl.Commit.SpacingY != tt.commitY {
				t.Errorf("commit spacing = %v,%v, want %v,%v", tmpl.Commit.SpacingX, tmpl.Commit.SpacingY, tt.commitX, tt.commitY)
			}
			if tmpl.Branch.SpacingX != tt.branchX || tmpl.Branch.SpacingY != tt.branchY {
				t.Errorf("branch spacing = %v,%v, want %v,%v", tmpl.Branch.SpacingX, tmpl.Branch.SpacingY, tt.branchX, tt.branchY)
			}
			if tmpl.Commit.Message.Display != tt.displayMessage {
				t.Errorf("message display = %v, want %v", tmpl.Commit.Message.Display, tt.displayMessage)
			}
		})
	}
}

func TestOrientationDoesNotMutateCallerTemplate(t *testing.T) {
	tmpl := template.New(template.Options{})
	if _, err := New(Options{Template: &tmpl, Orientation: Horizontal}); err != nil {
		t.Fatal(err)
	}
	if tmpl.Commit.SpacingY != 25 || !tmpl.Commit.Message.Display {
		t.Errorf("caller template modified: %+v", tmpl.Commit)
	}
}

func TestCompactHidesMessages(t *testing.T) {
	g := newTestGraph(t, Options{Mode: ModeCompact})
	if g.Template().Commit.Message.Display {
		t.Error("compact mode left messages displayed")
	}
	c := g.BranchNamed("master").CommitMessage("x")
	if c.DisplayMessage {
		t.Error("commit inherits DisplayMessage = true in compact mode")
	}
}

func TestCommitDefaults(t *testing.T) {
	g := newTestGraph(t, Options{})
	c := g.BranchNamed("master").Commit(CommitOptions{})

	if c.Message != DefaultMessage {
		t.Errorf("Message = %q, want %q", c.Message, DefaultMessage)
	}
	if c.Author != template.DefaultAuthor {
		t.Errorf("Author = %q, want %q", c.Author, template.DefaultAuthor)
	}
	if c.Hash != "c000001" {
		t.Errorf("Hash = %q, want c000001", c.Hash)
	}
	if got := c.DateString(); got != "Sat, 09 Mar 2024 16:20:00 GMT" {
		t.Errorf("DateString() = %q", got)
	}
	if c.Kind != KindNormal || c.IsMerge() {
		t.Errorf("Kind = %v, want normal", c.Kind)
	}
	if c.DotSize != 3 {
		t.Errorf("DotSize = %v, want 3", c.DotSize)
	}
	if c.Parent() != nil {
		t.Errorf("Parent() = %v, want nil", c.Parent())
	}
}

func TestCustomAuthor(t *testing.T) {
	g := newTestGraph(t, Options{Author: "Ada <ada@example.com>"})
	c := g.BranchNamed("master").CommitMessage("x")
	if c.Author != "Ada <ada@example.com>" {
		t.Errorf("Author = %q", c.Author)
	}
	c = g.Head().Commit(CommitOptions{Author: "Bob"})
	if c.Author != "Bob" {
		t.Errorf("Author = %q, want Bob", c.Author)
	}
}

func TestRandomHash(t *testing.T) {
	h := RandomHash()
	if len(h) != 7 {
		t.Fatalf("len(RandomHash()) = %d, want 7", len(h))
	}
	for _, r := range h {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Errorf("RandomHash() = %q contains non-hex %q", h, r)
		}
	}
}

func TestColorResolution(t *testing.T) {
	tmpl := template.New(template.Options{
		Colors: []string{"red", "green"},
		Commit: template.CommitOptions{
			Message: template.MessageOptions{Color: "gray"},
			Dot:     template.DotOptions{StrokeColor: "navy"},
		},
	})
	g := newTestGraph(t, Options{Template: &tmpl})
	master := g.BranchNamed("master")
	dev := master.Branch(BranchOptions{Name: "dev", Color: "orange"})

	if master.Color != "red" || dev.Color != "orange" {
		t.Errorf("branch colors = %q,%q, want red,orange", master.Color, dev.Color)
	}

	c := dev.CommitMessage("lane colors")
	if c.Color != "green" || c.DotColor != "green" {
		t.Errorf("commit colors = %q/%q, want green (lane)", c.Color, c.DotColor)
	}
	if c.MessageColor != "gray" {
		t.Errorf("MessageColor = %q, want template gray", c.MessageColor)
	}
	if c.DotStrokeColor != "navy" {
		t.Errorf("DotStrokeColor = %q, want navy", c.DotStrokeColor)
	}

	c = dev.Commit(CommitOptions{Color: "pink"})
	if c.DotColor != "pink" || c.MessageColor != "pink" {
		t.Errorf("explicit color not applied: dot=%q message=%q", c.DotColor, c.MessageColor)
	}

	c = dev.Commit(CommitOptions{Color: "pink", DotColor: "black", MessageColor: "white"})
	if c.DotColor != "black" || c.MessageColor != "white" {
		t.Errorf("specific colors not applied: dot=%q message=%q", c.DotColor, c.MessageColor)
	}
}

func TestGraphCommitErrors(t *testing.T) {
	g := newTestGraph(t, Options{})
	if _, err := g.Commit(CommitOptions{}); !errors.Is(err, errors.ErrCodeNoHead) {
		t.Errorf("Commit() without head error = %v, want %v", err, errors.ErrCodeNoHead)
	}

	g.BranchNamed("master")
	if _, err := g.CommitOn("develop", CommitOptions{}); !errors.Is(err, errors.ErrCodeBranchNotFound) {
		t.Errorf("CommitOn(develop) error = %v, want %v", err, errors.ErrCodeBranchNotFound)
	}
}

func TestCommitOnKeepsHead(t *testing.T) {
	g := newTestGraph(t, Options{})
	master := g.BranchNamed("master")
	master.CommitMessage("one")
	dev := master.BranchNamed("dev")
	master.Checkout()

	c, err := g.CommitOn("dev", CommitOptions{Message: "on dev"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Branch() != dev {
		t.Errorf("commit landed on %q, want dev", c.Branch().Name)
	}
	if g.Head() != master {
		t.Errorf("Head() = %q, want master", g.Head().Name)
	}

	c, err = g.Commit(CommitOptions{Message: "on head"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Branch() != master {
		t.Errorf("Commit() landed on %q, want master", c.Branch().Name)
	}
}

func TestBranchCheckoutAndLookup(t *testing.T) {
	g := newTestGraph(t, Options{})
	master := g.BranchNamed("master")
	if g.Head() != master {
		t.Fatal("new branch not checked out")
	}
	dev := g.BranchNamed("")
	if dev.Name != DefaultBranchName {
		t.Errorf("Name = %q, want %q", dev.Name, DefaultBranchName)
	}
	if dev.Parent() != master {
		t.Errorf("Parent() = %v, want master (HEAD)", dev.Parent())
	}

	orphan := g.OrphanBranch(BranchOptions{Name: "gh-pages"})
	if orphan.Parent() != nil {
		t.Errorf("orphan Parent() = %v, want nil", orphan.Parent().Name)
	}

	if b, ok := g.Lookup("master"); !ok || b != master {
		t.Errorf("Lookup(master) = %v,%v", b, ok)
	}
	if _, ok := g.Lookup("nope"); ok {
		t.Error("Lookup(nope) found a branch")
	}

	c := master.CommitMessage("x")
	if got, ok := g.LookupCommit(c.Hash); !ok || got != c {
		t.Errorf("LookupCommit(%q) = %v,%v", c.Hash, got, ok)
	}
}

func TestBranchStyleInheritance(t *testing.T) {
	tmpl := template.New(template.Options{Branch: template.BranchOptions{LineWidth: 5, LineDash: []float64{3, 1}}})
	g := newTestGraph(t, Options{Template: &tmpl})
	a := g.BranchNamed("a")
	b := g.Branch(BranchOptions{Name: "b", LineWidth: 9, LineDash: []float64{1}})

	if a.LineWidth != 5 || len(a.LineDash) != 2 {
		t.Errorf("a style = %v %v, want template", a.LineWidth, a.LineDash)
	}
	if b.LineWidth != 9 || len(b.LineDash) != 1 {
		t.Errorf("b style = %v %v, want explicit", b.LineWidth, b.LineDash)
	}
}
