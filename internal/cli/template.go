package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/pkg/template"
)

// templateCommand creates the template command.
func (c *CLI) templateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect diagram templates",
	}

	cmd.AddCommand(c.templateListCommand())
	cmd.AddCommand(c.templateShowCommand())

	return cmd
}

// templateListCommand creates the "template list" subcommand.
func (c *CLI) templateListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in template presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range template.Presets() {
				printKeyValue(name, template.MustGet(name).String())
			}
			return nil
		},
	}
}

// templateShowCommand creates the "template show" subcommand.
func (c *CLI) templateShowCommand() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "show [preset|file.toml]",
		Short: "Print a fully resolved template as TOML",
		Long: `Show prints every field of a template after defaults are applied. The
argument is a preset name or a template file layered on a preset.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTemplates,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTemplateArg(args[0])
			if err != nil {
				return err
			}
			data, err := encodeTemplate(t)
			if err != nil {
				return err
			}
			return writeScript(os.Stdout, data, isTerminal(os.Stdout), preferDark(theme))
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "auto", "highlight palette: dark, light, auto")
	return cmd
}

// resolveTemplateArg treats arg as a preset name first, then as a file.
func resolveTemplateArg(arg string) (template.Template, error) {
	if template.IsPreset(arg) {
		return template.Get(arg)
	}
	return template.Load(arg)
}

func encodeTemplate(t template.Template) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}
	return buf.Bytes(), nil
}
