package cli

import (
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/pkg/script"
)

// Chroma styles for each terminal palette.
const (
	styleDark  = "github-dark"
	styleLight = "github"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var theme string
	var normalize bool

	cmd := &cobra.Command{
		Use:   "show [script.toml]",
		Short: "Validate a diagram script and print it",
		Long: `Show parses and validates a script, then prints it with syntax highlighting
when stdout is a terminal. With --normalize the script is re-encoded, which
drops comments and orders keys canonically.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := script.Load(args[0])
			if err != nil {
				return err
			}
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if normalize {
				if src, err = s.Marshal(); err != nil {
					return err
				}
			}
			colored := isTerminal(os.Stdout)
			if err := writeScript(os.Stdout, src, colored, preferDark(theme)); err != nil {
				return err
			}
			if colored {
				branches, commits := s.Counts()
				printStats(branches, commits, false)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "auto", "highlight palette: dark, light, auto")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "print the re-encoded script")
	return cmd
}

// writeScript copies a TOML script to w, highlighted when colored is set.
func writeScript(w io.Writer, src []byte, colored, dark bool) error {
	if !colored {
		_, err := w.Write(src)
		return err
	}

	lexer := lexers.Get("toml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	name := styleLight
	if dark {
		name = styleDark
	}
	style := styles.Get(name)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := lexer.Tokenise(nil, string(src))
	if err != nil {
		return err
	}
	return formatter.Format(w, style, it)
}
