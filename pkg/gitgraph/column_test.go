package gitgraph

import "testing"

func TestColumnRootAndChild(t *testing.T) {
	g := newTestGraph(t, Options{})
	a := g.BranchNamed("a")
	b := a.BranchNamed("b")

	if a.Column() != 0 || b.Column() != 1 {
		t.Errorf("columns = %d,%d, want 0,1", a.Column(), b.Column())
	}
	if g.MaxLane() != 1 {
		t.Errorf("MaxLane() = %d, want 1", g.MaxLane())
	}
	if b.Offset() != (Point{X: 20}) {
		t.Errorf("b.Offset() = %v, want {20 0}", b.Offset())
	}
}

func TestColumnScan(t *testing.T) {
	tests := []struct {
		name   string
		build  func(g *Graph) *Branch
		column int
	}{
		{
			name: "retired first branch",
			build: func(g *Graph) *Branch {
				g.BranchNamed("a").Delete()
				return g.BranchNamed("b")
			},
			column: 0,
		},
		{
			name: "scan stops at first retired",
			build: func(g *Graph) *Branch {
				a := g.BranchNamed("a")
				g.BranchNamed("b")
				g.BranchNamed("c")
				a.Delete()
				return g.BranchNamed("d")
			},
			column: 0,
		},
		{
			name: "retired middle branch",
			build: func(g *Graph) *Branch {
				g.BranchNamed("a")
				b := g.BranchNamed("b")
				g.BranchNamed("c")
				b.Delete()
				return g.BranchNamed("d")
			},
			column: 1,
		},
		{
			name: "no retired branches",
			build: func(g *Graph) *Branch {
				g.BranchNamed("a")
				g.BranchNamed("b")
				return g.BranchNamed("c")
			},
			column: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(t, Options{})
			if got := tt.build(g).Column(); got != tt.column {
				t.Errorf("Column() = %d, want %d", got, tt.column)
			}
		})
	}
}

func TestColumnReuse(t *testing.T) {
	g := newTestGraph(t, Options{ColumnPolicy: ColumnReuse})
	a := g.BranchNamed("a")
	b := g.BranchNamed("b")
	g.BranchNamed("c")
	b.Delete()

	if got := g.BranchNamed("d").Column(); got != 1 {
		t.Errorf("d.Column() = %d, want 1 (lane of b)", got)
	}
	if got := g.BranchNamed("e").Column(); got != 3 {
		t.Errorf("e.Column() = %d, want 3", got)
	}
	a.Delete()
	if got := g.BranchNamed("f").Column(); got != 0 {
		t.Errorf("f.Column() = %d, want 0", got)
	}
	if g.MaxLane() != 3 {
		t.Errorf("MaxLane() = %d, want 3", g.MaxLane())
	}
}

func TestDeleteKeepsHistory(t *testing.T) {
	g := newTestGraph(t, Options{})
	a := g.BranchNamed("a")
	a.CommitMessage("one")
	a.Delete()
	if !a.Finished() {
		t.Error("Finished() = false after Delete")
	}
	if len(a.Commits()) != 1 || len(a.Path()) != 1 {
		t.Errorf("Delete dropped history: %d commits, %d points", len(a.Commits()), len(a.Path()))
	}
}
