package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/gitgraph"
	"github.com/matzehuels/gitgraph/pkg/pipeline"
	"github.com/matzehuels/gitgraph/pkg/template"
)

// Explorer styles
var (
	exploreSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	exploreNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	exploreDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	exploreDetailStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

const (
	glyphCommit = "●"
	glyphMerge  = "◉"
	glyphLane   = "│"
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var tmpl string

	cmd := &cobra.Command{
		Use:               "explore [script.toml]",
		Short:             "Browse a diagram's commits in the terminal",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdout) {
				return errors.New(errors.ErrCodeUnsupported, "explore needs an interactive terminal")
			}
			src, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", args[0])
			}
			g, err := pipeline.Build(cmd.Context(), pipeline.Options{Source: src, Template: tmpl})
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newExploreModel(g, args[0]), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&tmpl, "template", "t", "", "template preset used for lane colors")
	return cmd
}

// =============================================================================
// Key Bindings
// =============================================================================

type exploreKeys struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Detail key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Detail, k.Help, k.Quit}
}

func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Top, k.Bottom}, {k.Detail, k.Help, k.Quit}}
}

var defaultExploreKeys = exploreKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "newer")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "older")),
	Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "newest")),
	Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "oldest")),
	Detail: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎", "details")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// =============================================================================
// exploreModel - Commit lane browser
// =============================================================================

// exploreRow is one commit with the lane glyphs drawn to its left.
type exploreRow struct {
	lanes  string
	commit *gitgraph.Commit
}

// exploreModel is the bubbletea model for browsing commits, newest first.
type exploreModel struct {
	title      string
	rows       []exploreRow
	cursor     int
	offset     int
	height     int
	showDetail bool
	keys       exploreKeys
	help       help.Model
}

func newExploreModel(g *gitgraph.Graph, title string) exploreModel {
	return exploreModel{
		title:  title,
		rows:   laneRows(g),
		height: 15,
		keys:   defaultExploreKeys,
		help:   help.New(),
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.move(m.cursor - 1)
		case key.Matches(msg, m.keys.Down):
			m.move(m.cursor + 1)
		case key.Matches(msg, m.keys.Top):
			m.move(0)
		case key.Matches(msg, m.keys.Bottom):
			m.move(len(m.rows) - 1)
		case key.Matches(msg, m.keys.Detail):
			m.showDetail = !m.showDetail
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.height = max(msg.Height-12, 5)
		m.move(m.cursor)
	}
	return m, nil
}

// move places the cursor at i, clamped to the rows, and scrolls it into view.
func (m *exploreModel) move(i int) {
	m.cursor = max(min(i, len(m.rows)-1), 0)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// selected returns the commit under the cursor, or nil for an empty graph.
func (m exploreModel) selected() *gitgraph.Commit {
	if len(m.rows) == 0 {
		return nil
	}
	return m.rows[m.cursor].commit
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(exploreDimStyle.Render("  no commits"))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		style := exploreNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = exploreSelectedStyle
		}
		b.WriteString(cursor)
		b.WriteString(r.lanes)
		b.WriteString(" ")
		b.WriteString(exploreDimStyle.Render(r.commit.Hash))
		b.WriteString(" ")
		b.WriteString(style.Render(r.commit.Message))
		b.WriteString("\n")
	}
	b.WriteString(exploreDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))
	b.WriteString("\n")

	if m.showDetail {
		b.WriteString(exploreDetailStyle.Render(commitDetail(m.selected())))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// commitDetail formats the fields shown in the detail box.
func commitDetail(c *gitgraph.Commit) string {
	lines := []string{
		"commit  " + c.Hash,
		"branch  " + c.Branch().Name,
		"author  " + c.Author,
		"date    " + c.DateString(),
	}
	if p := c.Parent(); p != nil {
		lines = append(lines, "parent  "+p.Hash)
	}
	if c.IsMerge() {
		lines = append(lines, "kind    merge")
	}
	lines = append(lines, "", c.Message)
	if c.Detail != nil && c.Detail.Text != "" {
		lines = append(lines, "", c.Detail.Text)
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// Lanes
// =============================================================================

// laneRows draws one row per commit, newest first. A lane is active on a
// row when the row lies between the branch's fork point and its last commit
// or the last merge taking commits out of it.
func laneRows(g *gitgraph.Graph) []exploreRow {
	commits := g.Commits()
	if len(commits) == 0 {
		return nil
	}
	index := make(map[*gitgraph.Commit]int, len(commits))
	for i, c := range commits {
		index[c] = i
	}

	type span struct{ start, end int }
	spans := make(map[*gitgraph.Branch]span)
	width := 0
	for _, b := range g.Branches() {
		width = max(width, b.Column()+1)
		own := b.Commits()
		if len(own) == 0 {
			continue
		}
		s := span{start: index[own[0]], end: index[own[len(own)-1]]}
		if p := own[0].Parent(); p != nil {
			s.start = index[p]
		}
		spans[b] = s
	}
	for i, c := range commits {
		if !c.IsMerge() || c.Parent() == nil {
			continue
		}
		src := c.Parent().Branch()
		if s, ok := spans[src]; ok && i > s.end {
			s.end = i
			spans[src] = s
		}
	}

	rows := make([]exploreRow, 0, len(commits))
	for i := len(commits) - 1; i >= 0; i-- {
		c := commits[i]
		cells := make([]string, width)
		for j := range cells {
			cells[j] = " "
		}
		for _, b := range g.Branches() {
			s, ok := spans[b]
			if !ok || i < s.start || i > s.end {
				continue
			}
			cells[b.Column()] = laneStyle(b.Color).Render(glyphLane)
		}
		glyph := glyphCommit
		if c.IsMerge() {
			glyph = glyphMerge
		}
		b := c.Branch()
		cells[b.Column()] = laneStyle(firstColor(c.DotColor, c.Color, b.Color)).Render(glyph)
		rows = append(rows, exploreRow{lanes: strings.Join(cells, " "), commit: c})
	}
	return rows
}

// laneStyle maps a CSS color onto a terminal foreground.
func laneStyle(css string) lipgloss.Style {
	c, ok := template.ParseColor(css)
	if !ok {
		return exploreNormalStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(template.Hex(c)))
}

func firstColor(colors ...string) string {
	for _, c := range colors {
		if c != "" {
			return c
		}
	}
	return ""
}
