package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/pkg/pipeline"
	"github.com/matzehuels/gitgraph/pkg/template"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for gitgraph.

To load completions:

Bash:
  $ source <(gitgraph completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ gitgraph completion bash > /etc/bash_completion.d/gitgraph
  # macOS:
  $ gitgraph completion bash > $(brew --prefix)/etc/bash_completion.d/gitgraph

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ gitgraph completion zsh > "${fpath[1]}/_gitgraph"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ gitgraph completion fish | source

  # To load completions for each session, execute once:
  $ gitgraph completion fish > ~/.config/fish/completions/gitgraph.fish

PowerShell:
  PS> gitgraph completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> gitgraph completion powershell > gitgraph.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeScripts limits file completion to diagram scripts.
func completeScripts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeTemplates offers preset names, falling back to TOML files.
func completeTemplates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return template.Presets(), cobra.ShellCompDirectiveDefault
}

// completeFormats completes the comma-separated --format flag.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndexByte(toComplete, ','); i >= 0 {
		prefix = toComplete[:i+1]
	}
	var out []string
	for f := range pipeline.ValidFormats {
		out = append(out, prefix+f)
	}
	slices.Sort(out)
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
