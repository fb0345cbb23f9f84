package gitgraph_test

import (
	"fmt"

	"github.com/matzehuels/gitgraph/pkg/canvas/record"
	"github.com/matzehuels/gitgraph/pkg/gitgraph"
	"github.com/matzehuels/gitgraph/pkg/template"
)

func Example() {
	g, err := gitgraph.New(gitgraph.Options{TemplateName: template.PresetMetro})
	if err != nil {
		panic(err)
	}

	master := g.BranchNamed("master")
	master.CommitMessage("initial commit")
	dev := master.BranchNamed("dev")
	dev.CommitMessage("add feature")
	master.CommitMessage("hotfix")
	if _, err := dev.MergeInto(master, ""); err != nil {
		panic(err)
	}

	for _, b := range g.Branches() {
		fmt.Printf("%s: column %d, %d commits\n", b.Name, b.Column(), len(b.Commits()))
	}
	fmt.Println("HEAD:", g.Head().Name)
	// Output:
	// master: column 0, 3 commits
	// dev: column 1, 1 commits
	// HEAD: master
}

func ExampleGraph_RenderTo() {
	g, _ := gitgraph.New(gitgraph.Options{TemplateName: template.PresetBlackArrow})
	master := g.BranchNamed("master")
	master.CommitMessage("one")
	master.CommitMessage("two")

	r := record.New()
	g.RenderTo(r)
	w, h := r.Size()
	fmt.Printf("%.0fx%.0f, %d dots, %d arrows\n", w, h, r.Count(record.OpArc), r.Count(record.OpQuadraticTo))
	// Output:
	// 848x168, 2 dots, 1 arrows
}
