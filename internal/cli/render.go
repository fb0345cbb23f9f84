package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/pipeline"
	"github.com/matzehuels/gitgraph/pkg/template"
)

// renderOpts holds the command-line flags shared by render and watch.
type renderOpts struct {
	output      string   // output file (single format) or base path
	formats     []string // png, svg, json, dot, nodelink
	template    string   // preset override
	orientation string   // orientation override
	mode        string   // mode override ("compact")
	pixelRatio  float64  // PNG device pixel ratio
	background  string   // background color, empty for transparent
	detailed    bool     // author and date in DOT labels
	noCache     bool     // bypass the artifact cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{pixelRatio: pipeline.DefaultPixelRatio}

	cmd := &cobra.Command{
		Use:   "render [script.toml]",
		Short: "Render a diagram script to PNG, SVG, DOT or JSON",
		Long: `Render replays a diagram script and writes one file per format.

Without --output the files are placed next to the script:
  gitgraph render flow.toml -f svg,png   → flow.svg, flow.png`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	addRenderFlags(cmd, &opts, &formatsStr)
	return cmd
}

func addRenderFlags(cmd *cobra.Command, opts *renderOpts, formatsStr *string) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(formatsStr, "format", "f", "", "output format(s): svg (default), png, json, dot, nodelink (comma-separated)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template preset: metro, blackarrow (default: from script)")
	cmd.Flags().StringVar(&opts.orientation, "orientation", "", "vertical, vertical-reverse, horizontal, horizontal-reverse")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "layout mode: compact")
	cmd.Flags().Float64Var(&opts.pixelRatio, "pixel-ratio", opts.pixelRatio, "PNG device pixel ratio")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (default: transparent)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include author and date in DOT labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("template", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return template.Presets(), cobra.ShellCompDirectiveNoFileComp
	})
}

// pipelineOptions converts flags and a script source into pipeline options.
func (o renderOpts) pipelineOptions(src []byte) pipeline.Options {
	return pipeline.Options{
		Source:      src,
		Template:    o.template,
		Orientation: o.orientation,
		Mode:        o.mode,
		Formats:     o.formats,
		PixelRatio:  o.pixelRatio,
		Background:  o.background,
		Detailed:    o.detailed,
	}
}

// runRender renders input once and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	paths, err := renderOnce(ctx, runner, input, opts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	logger.Debug("render finished", "files", len(paths))
	return nil
}

// renderOnce reads input, executes the pipeline and writes the artifacts.
// It returns the written paths in format order.
func renderOnce(ctx context.Context, runner *pipeline.Runner, input string, opts renderOpts) ([]string, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	src, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", input)
		}
		return nil, fmt.Errorf("read %s: %w", input, err)
	}

	popts := opts.pipelineOptions(src)
	popts.Logger = logger
	res, err := runner.Execute(ctx, popts)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Rendered %s", input))
	printStats(res.Stats.Branches, res.Stats.Commits, res.CacheInfo.RenderHit)

	single := len(opts.formats) == 1
	paths := make([]string, 0, len(opts.formats))
	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, single)
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
