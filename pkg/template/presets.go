package template

import (
	"slices"

	"github.com/matzehuels/gitgraph/pkg/errors"
)

func float(v float64) *float64 { return &v }

// presets holds the built-in templates as option sets so that user options
// can be overlaid field by field.
var presets = map[string]Options{
	PresetMetro: {
		Colors: []string{"#979797", "#008fb5", "#f1c109"},
		Branch: BranchOptions{
			LineWidth: 10,
			SpacingX:  float(50),
		},
		Commit: CommitOptions{
			SpacingY: float(-80),
			Dot:      DotOptions{Size: 14},
			Message:  MessageOptions{Font: "normal 14pt Arial"},
		},
	},
	PresetBlackArrow: {
		Branch: BranchOptions{
			Color:      "#000000",
			LineWidth:  4,
			SpacingX:   float(50),
			MergeStyle: MergeStyleStraight,
		},
		Commit: CommitOptions{
			SpacingY: float(-60),
			Dot: DotOptions{
				Size:        12,
				StrokeColor: "#000000",
				StrokeWidth: 7,
			},
			Message: MessageOptions{Color: "black"},
		},
		Arrow: ArrowOptions{
			Size:   16,
			Offset: 2.5,
		},
	},
}

// Presets returns the built-in preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns a built-in template by name. An empty name selects metro.
func Get(name string) (Template, error) {
	if name == "" {
		name = PresetMetro
	}
	return Resolve(Options{Preset: name})
}

// MustGet is like [Get] but panics on an unknown name. It is meant for
// package-level variables and tests.
func MustGet(name string) Template {
	t, err := Get(name)
	if err != nil {
		panic(err)
	}
	return t
}

// IsPreset reports whether name is a built-in template.
func IsPreset(name string) bool {
	_, ok := presets[name]
	return ok
}

// errUnknownPreset builds the error returned for an unknown preset name.
func errUnknownPreset(name string) error {
	return errors.New(errors.ErrCodeInvalidTemplate, "unknown template preset %q (available: %v)", name, Presets())
}
