package template

import (
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gitgraph/pkg/errors"
)

// Options is the partial, user-facing form of a [Template]. Zero values mean
// "use the default"; pointer fields distinguish an explicit zero (or false)
// from an unset value where the default is non-zero.
type Options struct {
	Preset string        `toml:"preset"` // Base preset the options are applied on top of
	Colors []string      `toml:"colors"`
	Branch BranchOptions `toml:"branch"`
	Arrow  ArrowOptions  `toml:"arrow"`
	Commit CommitOptions `toml:"commit"`
}

type BranchOptions struct {
	Color      string    `toml:"color"`
	LineWidth  float64   `toml:"line_width"`
	LineDash   []float64 `toml:"line_dash"`
	MergeStyle string    `toml:"merge_style"`
	SpacingX   *float64  `toml:"spacing_x"`
	SpacingY   float64   `toml:"spacing_y"`
}

type ArrowOptions struct {
	Size   float64 `toml:"size"`
	Color  string  `toml:"color"`
	Offset float64 `toml:"offset"`
}

type CommitOptions struct {
	SpacingX float64        `toml:"spacing_x"`
	SpacingY *float64       `toml:"spacing_y"`
	Color    string         `toml:"color"`
	Dot      DotOptions     `toml:"dot"`
	Message  MessageOptions `toml:"message"`
}

type DotOptions struct {
	Color       string  `toml:"color"`
	Size        float64 `toml:"size"`
	StrokeWidth float64 `toml:"stroke_width"`
	StrokeColor string  `toml:"stroke_color"`
}

type MessageOptions struct {
	Display       *bool  `toml:"display"`
	DisplayAuthor *bool  `toml:"display_author"`
	DisplayHash   *bool  `toml:"display_hash"`
	Color         string `toml:"color"`
	Font          string `toml:"font"`
}

// New resolves options into a complete Template. It never fails: unset or
// out-of-range values fall back to defaults. The Preset field is ignored; use
// [Resolve] to apply options on top of a preset.
func New(o Options) Template {
	var t Template

	t.Colors = slices.Clone(o.Colors)
	if len(t.Colors) == 0 {
		t.Colors = slices.Clone(DefaultColors)
	}

	t.Branch.Color = o.Branch.Color
	t.Branch.LineWidth = positiveOr(o.Branch.LineWidth, DefaultLineWidth)
	t.Branch.LineDash = slices.Clone(o.Branch.LineDash)
	t.Branch.MergeStyle = MergeStyleBezier
	if o.Branch.MergeStyle == MergeStyleStraight || o.Branch.MergeStyle == MergeStyleCurve {
		t.Branch.MergeStyle = o.Branch.MergeStyle
	}
	t.Branch.SpacingX = DefaultSpacingX
	if o.Branch.SpacingX != nil {
		t.Branch.SpacingX = *o.Branch.SpacingX
	}
	t.Branch.SpacingY = o.Branch.SpacingY

	t.Arrow.Size = max(o.Arrow.Size, 0)
	t.Arrow.Color = o.Arrow.Color
	t.Arrow.Offset = positiveOr(o.Arrow.Offset, DefaultArrowOffset)

	t.Commit.SpacingX = o.Commit.SpacingX
	t.Commit.SpacingY = DefaultSpacingY
	if o.Commit.SpacingY != nil {
		t.Commit.SpacingY = *o.Commit.SpacingY
	}
	t.Commit.Color = o.Commit.Color

	t.Commit.Dot.Color = o.Commit.Dot.Color
	t.Commit.Dot.Size = positiveOr(o.Commit.Dot.Size, DefaultDotSize)
	t.Commit.Dot.StrokeWidth = max(o.Commit.Dot.StrokeWidth, 0)
	t.Commit.Dot.StrokeColor = o.Commit.Dot.StrokeColor

	t.Commit.Message.Display = boolOr(o.Commit.Message.Display, true)
	t.Commit.Message.DisplayAuthor = boolOr(o.Commit.Message.DisplayAuthor, true)
	t.Commit.Message.DisplayHash = boolOr(o.Commit.Message.DisplayHash, true)
	t.Commit.Message.Color = o.Commit.Message.Color
	t.Commit.Message.Font = o.Commit.Message.Font
	if t.Commit.Message.Font == "" {
		t.Commit.Message.Font = DefaultFont
	}

	return t
}

// Resolve applies o on top of its preset (if any) and returns the resolved
// Template. An unknown preset name is an error.
func Resolve(o Options) (Template, error) {
	if o.Preset == "" {
		return New(o), nil
	}
	base, ok := presets[o.Preset]
	if !ok {
		return Template{}, errUnknownPreset(o.Preset)
	}
	return New(overlay(base, o)), nil
}

// Validate reports the first malformed color in o.
func (o Options) Validate() error {
	colors := append(slices.Clone(o.Colors),
		o.Branch.Color, o.Arrow.Color, o.Commit.Color,
		o.Commit.Dot.Color, o.Commit.Dot.StrokeColor, o.Commit.Message.Color)
	for _, c := range colors {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTemplate, err, "template colors")
		}
	}
	switch o.Branch.MergeStyle {
	case "", MergeStyleBezier, MergeStyleCurve, MergeStyleStraight:
	default:
		return errors.New(errors.ErrCodeInvalidTemplate, "invalid merge style %q (must be bezier, curve or straight)", o.Branch.MergeStyle)
	}
	return nil
}

// Parse decodes TOML template options and resolves them.
//
//	preset = "blackarrow"
//	colors = ["#000", "#333"]
//
//	[commit.dot]
//	size = 10
func Parse(data []byte) (Template, error) {
	var o Options
	if err := toml.Unmarshal(data, &o); err != nil {
		return Template{}, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode template")
	}
	if err := o.Validate(); err != nil {
		return Template{}, err
	}
	return Resolve(o)
}

// Load reads and parses a TOML template file.
func Load(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Template{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read template %s", path)
		}
		return Template{}, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "read template %s", path)
	}
	return Parse(data)
}

// overlay returns base with every set field of over applied.
func overlay(base, over Options) Options {
	out := base
	if len(over.Colors) > 0 {
		out.Colors = over.Colors
	}

	out.Branch.Color = stringOver(base.Branch.Color, over.Branch.Color)
	out.Branch.LineWidth = floatOver(base.Branch.LineWidth, over.Branch.LineWidth)
	if len(over.Branch.LineDash) > 0 {
		out.Branch.LineDash = over.Branch.LineDash
	}
	out.Branch.MergeStyle = stringOver(base.Branch.MergeStyle, over.Branch.MergeStyle)
	if over.Branch.SpacingX != nil {
		out.Branch.SpacingX = over.Branch.SpacingX
	}
	out.Branch.SpacingY = floatOver(base.Branch.SpacingY, over.Branch.SpacingY)

	out.Arrow.Size = floatOver(base.Arrow.Size, over.Arrow.Size)
	out.Arrow.Color = stringOver(base.Arrow.Color, over.Arrow.Color)
	out.Arrow.Offset = floatOver(base.Arrow.Offset, over.Arrow.Offset)

	out.Commit.SpacingX = floatOver(base.Commit.SpacingX, over.Commit.SpacingX)
	if over.Commit.SpacingY != nil {
		out.Commit.SpacingY = over.Commit.SpacingY
	}
	out.Commit.Color = stringOver(base.Commit.Color, over.Commit.Color)

	out.Commit.Dot.Color = stringOver(base.Commit.Dot.Color, over.Commit.Dot.Color)
	out.Commit.Dot.Size = floatOver(base.Commit.Dot.Size, over.Commit.Dot.Size)
	out.Commit.Dot.StrokeWidth = floatOver(base.Commit.Dot.StrokeWidth, over.Commit.Dot.StrokeWidth)
	out.Commit.Dot.StrokeColor = stringOver(base.Commit.Dot.StrokeColor, over.Commit.Dot.StrokeColor)

	msg := &out.Commit.Message
	if over.Commit.Message.Display != nil {
		msg.Display = over.Commit.Message.Display
	}
	if over.Commit.Message.DisplayAuthor != nil {
		msg.DisplayAuthor = over.Commit.Message.DisplayAuthor
	}
	if over.Commit.Message.DisplayHash != nil {
		msg.DisplayHash = over.Commit.Message.DisplayHash
	}
	msg.Color = stringOver(base.Commit.Message.Color, over.Commit.Message.Color)
	msg.Font = stringOver(base.Commit.Message.Font, over.Commit.Message.Font)

	return out
}

func positiveOr(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func stringOver(base, over string) string {
	if over != "" {
		return over
	}
	return base
}

func floatOver(base, over float64) float64 {
	if over != 0 {
		return over
	}
	return base
}
