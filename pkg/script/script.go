// Package script describes commit diagrams as TOML documents.
//
// A script is a list of steps replayed against a fresh [gitgraph.Graph]:
//
//	title = "release flow"
//	template = "blackarrow"
//	orientation = "vertical"
//
//	[[step]]
//	op = "branch"
//	name = "master"
//
//	[[step]]
//	op = "commit"
//	message = "Initial commit"
//
//	[[step]]
//	op = "branch"
//	name = "develop"
//
//	[[step]]
//	op = "merge"
//	branch = "develop"
//	into = "master"
//
// Scripts are the persisted form of a diagram: the store keeps them, the
// pipeline renders them and the importer produces them from git history.
package script

import (
	"bytes"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/gitgraph"
	"github.com/matzehuels/gitgraph/pkg/template"
)

// Step operations.
const (
	OpBranch   = "branch"
	OpOrphan   = "orphan"
	OpCheckout = "checkout"
	OpDelete   = "delete"
	OpCommit   = "commit"
	OpMerge    = "merge"
)

// Column policies accepted by the column_policy key.
const (
	PolicyScan  = "scan"
	PolicyReuse = "reuse"
)

// Script is a replayable diagram description.
type Script struct {
	Title        string            `toml:"title,omitempty" json:"title,omitempty"`
	Template     string            `toml:"template,omitempty" json:"template,omitempty"` // Preset name
	Style        *template.Options `toml:"style,omitempty" json:"style,omitempty"`       // Overrides applied on top of Template
	Orientation  string            `toml:"orientation,omitempty" json:"orientation,omitempty"`
	Mode         string            `toml:"mode,omitempty" json:"mode,omitempty"`
	ColumnPolicy string            `toml:"column_policy,omitempty" json:"column_policy,omitempty"`
	Author       string            `toml:"author,omitempty" json:"author,omitempty"`
	Date         time.Time         `toml:"date,omitempty" json:"date,omitempty"` // Default commit date
	Steps        []Step            `toml:"step" json:"steps"`
}

// Step is one graph operation. Which fields apply depends on Op.
type Step struct {
	Op string `toml:"op" json:"op"`

	// branch, orphan, checkout, delete
	Name      string    `toml:"name,omitempty" json:"name,omitempty"`
	Parent    string    `toml:"parent,omitempty" json:"parent,omitempty"` // Parent branch (branch: default HEAD)
	LineWidth float64   `toml:"line_width,omitzero" json:"line_width,omitempty"`
	LineDash  []float64 `toml:"line_dash,omitempty" json:"line_dash,omitempty"`

	// commit, merge
	Branch       string    `toml:"branch,omitempty" json:"branch,omitempty"` // Commit target or merge source (default HEAD)
	Into         string    `toml:"into,omitempty" json:"into,omitempty"`     // Merge target (default HEAD)
	ParentCommit string    `toml:"parent_commit,omitempty" json:"parent_commit,omitempty"`
	Message      string    `toml:"message,omitempty" json:"message,omitempty"`
	Author       string    `toml:"author,omitempty" json:"author,omitempty"`
	Hash         string    `toml:"hash,omitempty" json:"hash,omitempty"`
	Date         time.Time `toml:"date,omitempty" json:"date,omitempty"`

	Color          string  `toml:"color,omitempty" json:"color,omitempty"`
	DotColor       string  `toml:"dot_color,omitempty" json:"dot_color,omitempty"`
	DotSize        float64 `toml:"dot_size,omitzero" json:"dot_size,omitempty"`
	DotStrokeWidth float64 `toml:"dot_stroke_width,omitzero" json:"dot_stroke_width,omitempty"`
	DotStrokeColor string  `toml:"dot_stroke_color,omitempty" json:"dot_stroke_color,omitempty"`
	MessageColor   string  `toml:"message_color,omitempty" json:"message_color,omitempty"`
	MessageFont    string  `toml:"message_font,omitempty" json:"message_font,omitempty"`

	DisplayMessage *bool `toml:"display_message,omitempty" json:"display_message,omitempty"`
	DisplayAuthor  *bool `toml:"display_author,omitempty" json:"display_author,omitempty"`
	DisplayHash    *bool `toml:"display_hash,omitempty" json:"display_hash,omitempty"`

	Detail       string  `toml:"detail,omitempty" json:"detail,omitempty"`
	DetailHeight float64 `toml:"detail_height,omitzero" json:"detail_height,omitempty"`
}

// Parse decodes and validates a TOML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "decode script")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidScript, "unknown key %q", undecoded[0].String())
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read script %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "read script %s", path)
	}
	return Parse(data)
}

// Marshal encodes the script as TOML.
func (s *Script) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode script")
	}
	return buf.Bytes(), nil
}

// Validate checks the header fields and every step without building a graph.
// References to branches are resolved only by [Script.Build].
func (s *Script) Validate() error {
	if s.Template != "" && !template.IsPreset(s.Template) {
		return errors.New(errors.ErrCodeInvalidScript, "unknown template %q", s.Template)
	}
	if s.Style != nil {
		if err := s.Style.Validate(); err != nil {
			return err
		}
	}
	if _, err := gitgraph.ParseOrientation(s.Orientation); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScript, err, "orientation")
	}
	if _, err := gitgraph.ParseMode(s.Mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScript, err, "mode")
	}
	if _, err := parsePolicy(s.ColumnPolicy); err != nil {
		return err
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScript, err, "step %d (%s)", i+1, st.Op)
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Op {
	case OpBranch, OpOrphan:
		if st.Name != "" {
			if err := errors.ValidateBranchName(st.Name); err != nil {
				return err
			}
		}
	case OpCheckout, OpDelete:
		if err := errors.ValidateBranchName(st.Name); err != nil {
			return err
		}
	case OpCommit, OpMerge:
	case "":
		return errors.New(errors.ErrCodeInvalidScript, "missing op")
	default:
		return errors.New(errors.ErrCodeInvalidScript, "unknown op %q", st.Op)
	}
	for _, c := range []string{st.Color, st.DotColor, st.DotStrokeColor, st.MessageColor} {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}

func parsePolicy(s string) (gitgraph.ColumnPolicy, error) {
	switch s {
	case "", PolicyScan:
		return gitgraph.ColumnScan, nil
	case PolicyReuse:
		return gitgraph.ColumnReuse, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidScript, "invalid column_policy %q (must be scan or reuse)", s)
}

// ResolveTemplate returns the template named by the script with its style
// overrides applied.
func (s *Script) ResolveTemplate() (template.Template, error) {
	o := template.Options{Preset: s.Template}
	if s.Style != nil {
		o = *s.Style
		if o.Preset == "" {
			o.Preset = s.Template
		}
	}
	if o.Preset == "" {
		o.Preset = template.PresetMetro
	}
	return template.Resolve(o)
}

// Counts returns the number of branches and commits the script creates.
func (s *Script) Counts() (branches, commits int) {
	for _, st := range s.Steps {
		switch st.Op {
		case OpBranch, OpOrphan:
			branches++
		case OpCommit, OpMerge:
			commits++
		}
	}
	return branches, commits
}
