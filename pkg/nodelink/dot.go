package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gitgraph/pkg/gitgraph"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds author and date lines to every node label.
	Detailed bool
	// RankDir overrides the Graphviz rank direction. Empty derives it from
	// the graph orientation: BT for vertical (oldest at the bottom like the
	// canvas), TB for vertical-reverse, LR and RL for the horizontal ones.
	RankDir string
}

// ToDOT converts a commit graph to Graphviz DOT.
//
// Edges run from parent to child. A merge commit gets a second, dashed edge
// from the previous commit of its own branch.
func ToDOT(g *gitgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankDir(g, opts))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=10, fixedsize=false, margin=\"0.05,0.05\"];\n")
	buf.WriteString("  edge [arrowsize=0.6, penwidth=2];\n")
	buf.WriteString("  ranksep=0.3;\n")
	buf.WriteString("  nodesep=0.4;\n")

	for _, b := range g.Branches() {
		commits := b.Commits()
		if len(commits) == 0 {
			continue
		}
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+strconv.Itoa(b.Column())+"_"+b.Name)
		fmt.Fprintf(&buf, "    label=%q;\n", b.Name)
		fmt.Fprintf(&buf, "    color=%q;\n", b.Color)
		buf.WriteString("    style=dashed;\n")
		for _, c := range commits {
			fmt.Fprintf(&buf, "    %q [%s];\n", nodeID(c), strings.Join(fmtAttrs(c, opts.Detailed), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, b := range g.Branches() {
		var prev *gitgraph.Commit
		for _, c := range b.Commits() {
			if p := c.Parent(); p != nil {
				fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", nodeID(p), nodeID(c), p.Branch().Color)
			}
			if c.IsMerge() && prev != nil && prev != c.Parent() {
				fmt.Fprintf(&buf, "  %q -> %q [color=%q, style=dashed];\n", nodeID(prev), nodeID(c), b.Color)
			} else if c.Parent() == nil && prev != nil {
				fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", nodeID(prev), nodeID(c), b.Color)
			}
			prev = c
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func rankDir(g *gitgraph.Graph, opts Options) string {
	if opts.RankDir != "" {
		return opts.RankDir
	}
	switch g.Orientation() {
	case gitgraph.VerticalReverse:
		return "TB"
	case gitgraph.Horizontal:
		return "LR"
	case gitgraph.HorizontalReverse:
		return "RL"
	default:
		return "BT"
	}
}

func nodeID(c *gitgraph.Commit) string { return c.Hash }

func fmtLabel(c *gitgraph.Commit, detailed bool) string {
	if !detailed {
		return c.Hash
	}
	return strings.Join([]string{c.Hash, c.Message, c.Author, c.DateString()}, "\n")
}

func fmtAttrs(c *gitgraph.Commit, detailed bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(c, detailed)),
		fmt.Sprintf("tooltip=%q", c.Message),
		fmt.Sprintf("fillcolor=%q", c.DotColor),
		fmt.Sprintf("color=%q", c.DotColor),
		"fontcolor=white",
	}
	if c.IsMerge() {
		attrs = append(attrs, "shape=doublecircle")
	}
	return attrs
}

// RenderSVG lays out and renders a DOT graph to SVG.
func RenderSVG(dot string) ([]byte, error) {
	data, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG lays out and rasterizes a DOT graph.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// pixel-sized one so the SVG scales like the canvas output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
