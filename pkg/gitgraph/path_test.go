package gitgraph

import (
	"testing"

	"github.com/matzehuels/gitgraph/pkg/errors"
)

func TestFirstPointIsStart(t *testing.T) {
	g := newTestGraph(t, Options{})
	master := g.BranchNamed("master")
	master.CommitMessage("one")
	master.CommitMessage("two")
	dev := master.BranchNamed("dev")
	dev.CommitMessage("three")
	orphan := g.OrphanBranch(BranchOptions{Name: "orphan"})
	orphan.CommitMessage("four")
	dev.MergeInto(master, "")
	dev.CommitMessage("five")

	for _, b := range g.Branches() {
		path := b.Path()
		if len(path) == 0 {
			t.Errorf("%s: empty path", b.Name)
			continue
		}
		if path[0].Role != Start {
			t.Errorf("%s: first role = %v, want start", b.Name, path[0].Role)
		}
		for i, p := range path[1:] {
			switch p.Role {
			case Start, Join, End:
			default:
				t.Errorf("%s: point %d has role %q", b.Name, i+1, p.Role)
			}
		}
	}
}

func TestForkPath(t *testing.T) {
	g := newTestGraph(t, Options{})
	master := g.BranchNamed("master")
	m1 := master.CommitMessage("one")
	dev := master.BranchNamed("dev")
	d1 := dev.CommitMessage("two")

	devPath := dev.Path()
	want := []PathPoint{
		{Point: m1.Position(), Role: Start},
		{Point: d1.Position(), Role: Join},
	}
	if len(devPath) != len(want) {
		t.Fatalf("dev path = %v, want %v", devPath, want)
	}
	for i := range want {
		if devPath[i] != want[i] {
			t.Errorf("dev path[%d] = %v, want %v", i, devPath[i], want[i])
		}
	}

	masterPath := master.Path()
	if len(masterPath) != 2 {
		t.Fatalf("master path = %v, want 2 points", masterPath)
	}
	if masterPath[1] != (PathPoint{Point: m1.Position(), Role: Join}) {
		t.Errorf("mirrored point = %v, want join at %v", masterPath[1], m1.Position())
	}
}

func TestMerge(t *testing.T) {
	g := newTestGraph(t, Options{})
	target := g.BranchNamed("master")
	target.CommitMessage("base")
	source := target.BranchNamed("feature")
	source.CommitMessage("work")
	priorTip := source.CommitMessage("more work")

	targetCommits := len(target.Commits())
	targetPoints := len(target.Path())
	sourcePoints := len(source.Path())
	totalCommits := len(g.Commits())

	merge, err := source.Merge(target, CommitOptions{})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if got := len(target.Commits()); got != targetCommits+1 {
		t.Errorf("target commits = %d, want %d", got, targetCommits+1)
	}
	if got := len(g.Commits()); got != totalCommits+1 {
		t.Errorf("graph commits = %d, want %d", got, totalCommits+1)
	}
	if got := len(target.Path()); got != targetPoints+1 {
		t.Errorf("target path points = %d, want %d", got, targetPoints+1)
	}

	path := source.Path()
	if got := len(path); got != sourcePoints+3 {
		t.Fatalf("source path points = %d, want %d", got, sourcePoints+3)
	}
	tail := path[len(path)-3:]
	if tail[0].Role != Join || tail[1].Role != End || tail[2].Role != Start {
		t.Errorf("tail roles = %v,%v,%v, want join,end,start", tail[0].Role, tail[1].Role, tail[2].Role)
	}
	if tail[0].Point != tail[2].Point {
		t.Errorf("join %v and start %v differ", tail[0].Point, tail[2].Point)
	}
	if tail[1].Point != merge.Position() {
		t.Errorf("end point = %v, want merge commit %v", tail[1].Point, merge.Position())
	}
	// Cursor is at 100 after the merge commit; the tail sits two steps ahead.
	if want := (Point{X: 20, Y: -50}); tail[0].Point != want {
		t.Errorf("tail point = %v, want %v", tail[0].Point, want)
	}

	if merge.Parent() != priorTip {
		t.Errorf("merge parent = %v, want source's prior tip", merge.Parent())
	}
	if !merge.IsMerge() {
		t.Error("merge commit Kind is not merge")
	}
	if merge.Message != "Merge branch `feature` into `master`" {
		t.Errorf("Message = %q", merge.Message)
	}
	if g.Head() != target {
		t.Errorf("Head() = %q, want master", g.Head().Name)
	}
}

func TestMergeCustomMessageAndHeadTarget(t *testing.T) {
	g := newTestGraph(t, Options{})
	master := g.BranchNamed("master")
	master.CommitMessage("base")
	dev := master.BranchNamed("dev")
	dev.CommitMessage("work")
	master.Checkout()

	merge, err := dev.Merge(nil, CommitOptions{Message: "ship it"})
	if err != nil {
		t.Fatal(err)
	}
	if merge.Branch() != master {
		t.Errorf("merged into %q, want HEAD master", merge.Branch().Name)
	}
	if merge.Message != "ship it" {
		t.Errorf("Message = %q, want ship it", merge.Message)
	}
}

func TestMergeInvalidTarget(t *testing.T) {
	g := newTestGraph(t, Options{})
	master := g.BranchNamed("master")
	master.CommitMessage("base")
	other := newTestGraph(t, Options{}).BranchNamed("elsewhere")

	tests := []struct {
		name   string
		target *Branch
	}{
		{"self", master},
		{"nil target resolves to self", nil},
		{"other graph", other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits := len(g.Commits())
			points := len(master.Path())

			_, err := master.Merge(tt.target, CommitOptions{})
			if !errors.Is(err, errors.ErrCodeInvalidMergeTarget) {
				t.Errorf("Merge() error = %v, want %v", err, errors.ErrCodeInvalidMergeTarget)
			}
			if len(g.Commits()) != commits || len(master.Path()) != points {
				t.Error("invalid merge mutated the graph")
			}
		})
	}
}

func TestCommitAfterMergeStartsNewSegment(t *testing.T) {
	g := newTestGraph(t, Options{})
	master := g.BranchNamed("master")
	master.CommitMessage("base")
	dev := master.BranchNamed("dev")
	dev.CommitMessage("work")
	dev.MergeInto(master, "")
	c := dev.CommitMessage("after merge")

	path := dev.Path()
	last := path[len(path)-1]
	if last.Role != Join || last.Point != c.Position() {
		t.Errorf("last point = %v, want join at %v", last, c.Position())
	}
	if path[len(path)-2].Role != Start {
		t.Errorf("point before = %v, want start", path[len(path)-2])
	}
}
