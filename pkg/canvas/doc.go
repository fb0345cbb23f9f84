// Package canvas defines the drawing surface gitgraph renders onto.
//
// # Overview
//
// The layout engine never touches pixels directly. It issues 2D drawing
// primitives modelled on the HTML canvas API through [Context], and sizes the
// output through [Surface]. Three implementations ship with the module:
//
//   - [raster]: anti-aliased bitmap backed by fogleman/gg, encodes PNG
//   - [svg]: vector output written as an SVG document
//   - [record]: records every call, used for tests and draw-call export
//
// # Path Semantics
//
// Paths follow canvas rules: [Context.BeginPath] discards the current path,
// [Context.Stroke] and [Context.Fill] paint it without clearing it, and
// [Context.ClosePath] only closes the current subpath.
//
// Colors and fonts are CSS strings ("#6963FF", "steelblue",
// "normal 12pt Calibri"). Implementations that cannot interpret a value fall
// back to black or the default font rather than failing.
//
// [raster]: github.com/matzehuels/gitgraph/pkg/canvas/raster
// [svg]: github.com/matzehuels/gitgraph/pkg/canvas/svg
// [record]: github.com/matzehuels/gitgraph/pkg/canvas/record
package canvas
