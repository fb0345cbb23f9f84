// Package pkg provides the core libraries for gitgraph commit diagrams.
//
// # Overview
//
// gitgraph draws branching commit histories as metro-style diagrams: each
// branch owns a lane, commits are dots along it and merges are lines joining
// two lanes. The pkg directory is organized into four main areas:
//
//  1. [gitgraph] - Domain logic (branches, commits, lane layout, hover)
//  2. [canvas] and [template] - Drawing surfaces and visual styles
//  3. [script] - The TOML diagram format and the git history importer
//  4. [pipeline] - Orchestration (parse → layout → render) with caching
//
// # Architecture
//
// The typical data flow through gitgraph:
//
//	TOML script / git repository
//	         ↓
//	    [script] package (parse, validate, replay)
//	         ↓
//	    [gitgraph] package (lanes, positions, paths)
//	         ↓
//	    [canvas] surface (raster, SVG, recorder)
//	         ↓
//	    PNG/SVG/JSON/DOT output
//
// # Quick Start
//
// Build a diagram in code and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/gitgraph/pkg/canvas/svg"
//	    "github.com/matzehuels/gitgraph/pkg/gitgraph"
//	)
//
//	surface := svg.New(svg.WithTitle("release"))
//	g, _ := gitgraph.New(gitgraph.Options{Surface: surface})
//
//	master := g.BranchNamed("master")
//	master.CommitMessage("Initial commit")
//	develop := g.BranchNamed("develop")
//	develop.CommitMessage("Add parser")
//	develop.MergeInto(master, "")
//
//	os.WriteFile("release.svg", surface.Bytes(), 0o644)
//
// # Main Packages
//
// ## Domain Logic
//
// [gitgraph] - The graph model. Branches are allocated lanes as they are
// created, commits are positioned along the graph's orientation, and every
// mutation re-renders onto the attached surface unless the graph is hidden.
// Hover testing reports commits under a pointer and drives tooltips.
//
// [template] - Resolved visual styles. Two presets ship (metro and
// blackarrow); TOML overrides are layered on top.
//
// [canvas] - The drawing interface and its implementations:
//
//   - [canvas/raster]: anti-aliased bitmap output encoded as PNG
//   - [canvas/svg]: vector output
//   - [canvas/record]: an operation log used by tests and layout snapshots
//
// [nodelink] - Graphviz DOT export of the commit graph.
//
// ## Serialization
//
// [script] - Replayable diagram scripts. Scripts are what the store keeps
// and what the importer produces from a repository's history.
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline (parse → layout → render) used by the CLI
// and the HTTP server. Ensures consistent behavior across entry points.
//
// [cache] - Layout and artifact caches: null, file and Redis backends.
//
// [store] - Diagram persistence: memory, file and MongoDB backends.
//
// [errors] - Coded errors shared by every package and mapped to HTTP
// statuses by the server.
//
// [observability] - Hooks for pipeline, cache, HTTP and hover events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/gitgraph/...           # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [gitgraph]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/gitgraph
// [template]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/template
// [canvas]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/canvas
// [canvas/raster]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/canvas/raster
// [canvas/svg]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/canvas/svg
// [canvas/record]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/canvas/record
// [nodelink]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/nodelink
// [script]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/script
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/observability
package pkg
