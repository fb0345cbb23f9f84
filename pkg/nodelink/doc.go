// Package nodelink renders a commit graph as a Graphviz node-link diagram.
//
// Where the canvas renderer reproduces the metro-map look, this package
// hands the same history to Graphviz: commits become nodes, parent links
// become edges and each branch is a cluster.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [RenderPNG] rasterizes in-process as well. The DOT source can also be
// saved and processed with external Graphviz tools.
//
// This package uses [github.com/goccy/go-graphviz] (Graphviz compiled to
// WebAssembly), so no system installation is required.
package nodelink
