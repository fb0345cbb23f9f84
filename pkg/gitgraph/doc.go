// Package gitgraph lays out and draws branching commit histories.
//
// # Overview
//
// A [Graph] holds branches and commits in creation order. Layout is fully
// determined by that order and a single cursor shared by all branches, so
// commits created one after another line up in successive time slots no
// matter which lane they land on:
//
//	g, _ := gitgraph.New(gitgraph.Options{TemplateName: "metro"})
//	master := g.BranchNamed("master")
//	master.CommitMessage("initial commit")
//	dev := master.BranchNamed("dev")
//	dev.CommitMessage("work")
//	dev.MergeInto(master, "")
//
// # Lanes
//
// Each branch gets a column when it is created. The default [ColumnScan]
// policy counts live branches in creation order and stops at the first
// deleted one; [ColumnReuse] picks the lowest free column instead.
//
// # Paths
//
// Branch lines are lists of [PathPoint]. A [Start] point begins a sub-path,
// [Join] continues it and [End] terminates it at a merge commit. A fork adds
// a start point next to the parent lane and mirrors it onto the parent's
// path; a merge adds a join, an end at the merge commit and a new start.
//
// # Rendering
//
// When a [canvas.Surface] is attached the whole diagram is redrawn after
// every mutation. [Graph.RenderTo] draws onto any other surface, which is how
// PNG, SVG and draw-call exports are produced.
//
// # Hover
//
// [Graph.Hover] tests a pointer position against commit dots and reports
// hover-enter events and tooltip changes to the configured sinks.
//
// [canvas.Surface]: github.com/matzehuels/gitgraph/pkg/canvas.Surface
package gitgraph
