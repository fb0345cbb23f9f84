// Package pipeline provides the script → graph → artifact pipeline.
//
// The CLI and the HTTP server render diagrams through the same [Runner], so
// defaults, caching and output bytes are identical across entry points.
//
// # Stages
//
//  1. Parse: decode the TOML script and apply option overrides
//  2. Layout: replay the script and snapshot commit positions and paths
//  3. Render: draw the requested formats (PNG, SVG, JSON, DOT, node-link SVG)
//
// Every format is drawn on its own graph instance, so formats render in
// parallel.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  src,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitgraph/pkg/cache"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/gitgraph"
	"github.com/matzehuels/gitgraph/pkg/script"
	"github.com/matzehuels/gitgraph/pkg/template"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPixelRatio is the device pixel ratio used for PNG output.
	DefaultPixelRatio = 1.0

	// MaxPixelRatio bounds PNG resolution.
	MaxPixelRatio = 4.0
)

// Format constants for output formats.
const (
	FormatPNG      = "png"
	FormatSVG      = "svg"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:      true,
	FormatSVG:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatNodelink: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatPNG:      "image/png",
	FormatSVG:      "image/svg+xml",
	FormatJSON:     "application/json",
	FormatDOT:      "text/vnd.graphviz",
	FormatNodelink: "image/svg+xml",
}

// Extensions maps each format to its file extension.
var Extensions = map[string]string{
	FormatPNG:      ".png",
	FormatSVG:      ".svg",
	FormatJSON:     ".json",
	FormatDOT:      ".dot",
	FormatNodelink: ".nodelink.svg",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// Fields other than Script and Logger come from API requests as JSON.
type Options struct {
	// Source is the TOML script. Ignored when Script is set.
	Source []byte `json:"source,omitempty"`

	// Overrides applied on top of the script header.
	Template    string `json:"template,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	Mode        string `json:"mode,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	PixelRatio float64  `json:"pixel_ratio,omitempty"`
	Background string   `json:"background,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // Author and date in DOT labels

	// Runtime options (not serialized)
	Script *script.Script   `json:"-"`
	Clock  func() time.Time `json:"-"`
	Logger *log.Logger      `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
	hash      string
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Script is the parsed script with overrides applied.
	Script *script.Script

	// ScriptHash identifies the script source in cache keys and API responses.
	ScriptHash string

	// Layout is the diagram snapshot after a full render.
	Layout gitgraph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Branches   int
	Commits    int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePixelRatio checks that a PNG pixel ratio is usable.
func ValidatePixelRatio(r float64) error {
	if math.IsNaN(r) || r <= 0 || r > MaxPixelRatio {
		return errors.New(errors.ErrCodeInvalidOption, "invalid pixel_ratio: %v (must be in (0, %v])", r, MaxPixelRatio)
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults parses the script, applies overrides and defaults,
// and checks every option. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.resolveScript(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidatePixelRatio(o.PixelRatio); err != nil {
		return err
	}
	if err := errors.ValidateColor(o.Background); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// resolveScript parses Source when needed and applies the header overrides
// to a copy, leaving a caller-provided Script untouched.
func (o *Options) resolveScript() error {
	if o.Script == nil {
		if len(o.Source) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "script source is required")
		}
		s, err := script.Parse(o.Source)
		if err != nil {
			return err
		}
		o.Script = s
		o.hash = cache.ScriptHash(o.Source)
	} else {
		data, err := o.Script.Marshal()
		if err != nil {
			return err
		}
		o.hash = cache.ScriptHash(data)
	}

	if o.Template == "" && o.Orientation == "" && o.Mode == "" {
		return nil
	}
	s := *o.Script
	if o.Template != "" {
		s.Template = o.Template
		if s.Style != nil {
			style := *s.Style
			style.Preset = ""
			s.Style = &style
		}
	}
	if o.Orientation != "" {
		s.Orientation = o.Orientation
	}
	if o.Mode != "" {
		s.Mode = o.Mode
	}
	if err := s.Validate(); err != nil {
		return err
	}
	o.Script = &s
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PixelRatio == 0 {
		o.PixelRatio = DefaultPixelRatio
	}
	if o.Clock == nil {
		// One timestamp per run keeps the formats of a run consistent.
		now := time.Now().UTC()
		o.Clock = func() time.Time { return now }
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ScriptHash returns the hash of the script source. It is empty until
// ValidateAndSetDefaults succeeds.
func (o *Options) ScriptHash() string { return o.hash }

// templateName is the preset name that keys cached output.
func (o *Options) templateName() string {
	if o.Script.Template != "" {
		return o.Script.Template
	}
	return template.PresetMetro
}

// LayoutKeyOpts returns cache key options for the layout snapshot.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Template:    o.templateName(),
		Orientation: o.Script.Orientation,
		Mode:        o.Script.Mode,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Template:    o.templateName(),
		Orientation: o.Script.Orientation,
		Mode:        o.Script.Mode,
		Background:  o.Background,
	}
	if format == FormatPNG {
		k.PixelRatio = o.PixelRatio
	}
	if o.Detailed && (format == FormatDOT || format == FormatNodelink) {
		k.Format += "+detailed"
	}
	return k
}
