package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/script"
	"github.com/matzehuels/gitgraph/pkg/template"
)

// importOpts holds the import command flags.
type importOpts struct {
	output   string
	branches []string
	limit    int
	template string
	title    string
}

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	opts := importOpts{limit: script.DefaultImportLimit}

	cmd := &cobra.Command{
		Use:   "import [repo]",
		Short: "Convert a git repository's history into a diagram script",
		Long: `Import reads local branches of a git repository and writes an equivalent
diagram script. The repository defaults to the current directory.

  gitgraph import . -b main -b develop --limit 50 -o history.toml
  gitgraph render history.toml -f svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return c.runImport(cmd.Context(), path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringSliceVarP(&opts.branches, "branch", "b", nil, "branches to import (default: all local branches)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", opts.limit, "maximum number of commits, newest kept")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template preset written to the script")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title (default: repository directory name)")
	return cmd
}

func (c *CLI) runImport(ctx context.Context, path string, opts importOpts) error {
	logger := loggerFromContext(ctx)

	if opts.template != "" && !template.IsPreset(opts.template) {
		return errors.New(errors.ErrCodeInvalidOption, "unknown template %q", opts.template)
	}

	prog := newProgress(logger)
	repo, err := script.Open(path)
	if err != nil {
		return err
	}
	spin := startSpinner(ctx, spinnerOutput(), "Reading history...")
	s, err := script.FromRepository(repo, script.ImportOptions{
		Branches: opts.branches,
		Limit:    opts.limit,
		Template: opts.template,
	})
	spin.Stop()
	if err != nil {
		return err
	}
	s.Title = opts.title
	if s.Title == "" {
		if abs, err := filepath.Abs(path); err == nil {
			s.Title = filepath.Base(abs)
		}
	}

	data, err := s.Marshal()
	if err != nil {
		return err
	}
	branches, commits := s.Counts()
	logger.Debug("imported history", "branches", branches, "commits", commits)

	if opts.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done(fmt.Sprintf("Imported %s", path))
	printStats(branches, commits, false)
	printFile(opts.output)
	printNextStep("Render it", appName+" render "+opts.output)
	return nil
}
