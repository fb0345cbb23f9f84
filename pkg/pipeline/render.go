package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gitgraph/pkg/canvas/raster"
	"github.com/matzehuels/gitgraph/pkg/canvas/svg"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/gitgraph"
	"github.com/matzehuels/gitgraph/pkg/nodelink"
)

// RenderFormat draws g in one output format. g is re-rendered onto a new
// surface, so callers must not share it between goroutines.
func RenderFormat(g *gitgraph.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		s := raster.New(raster.WithBackground(opts.Background))
		g.RenderTo(s)
		var buf bytes.Buffer
		if err := s.EncodePNG(&buf); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), nil
	case FormatSVG:
		s := svg.New(svg.WithTitle(title(opts)), svg.WithBackground(opts.Background))
		g.RenderTo(s)
		return s.Bytes(), nil
	case FormatJSON:
		return MarshalLayout(Snapshot(g))
	case FormatDOT:
		return []byte(nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatNodelink:
		return nodelink.RenderSVG(nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed}))
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}

// Render draws every requested format in parallel. Each format replays the
// script on its own graph.
func Render(ctx context.Context, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return renderFormats(ctx, opts, opts.Formats)
}

func renderFormats(ctx context.Context, opts Options, formats []string) (map[string][]byte, error) {
	out := make([][]byte, len(formats))
	eg, ctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		eg.Go(func() error {
			g, err := Build(ctx, opts)
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := RenderFormat(g, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			out[i] = data
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))
	for i, format := range formats {
		artifacts[format] = out[i]
	}
	return artifacts, nil
}

func title(opts Options) string {
	if opts.Script != nil && opts.Script.Title != "" {
		return opts.Script.Title
	}
	return "gitgraph"
}
