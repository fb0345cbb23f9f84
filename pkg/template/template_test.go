package template

import (
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/gitgraph/pkg/errors"
)

func TestNewDefaults(t *testing.T) {
	tmpl := New(Options{})

	if !slices.Equal(tmpl.Colors, DefaultColors) {
		t.Errorf("Colors = %v, want %v", tmpl.Colors, DefaultColors)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"branch.line_width", tmpl.Branch.LineWidth, 2},
		{"branch.spacing_x", tmpl.Branch.SpacingX, 20},
		{"branch.spacing_y", tmpl.Branch.SpacingY, 0},
		{"commit.spacing_x", tmpl.Commit.SpacingX, 0},
		{"commit.spacing_y", tmpl.Commit.SpacingY, 25},
		{"commit.dot.size", tmpl.Commit.Dot.Size, 3},
		{"commit.dot.stroke_width", tmpl.Commit.Dot.StrokeWidth, 0},
		{"arrow.size", tmpl.Arrow.Size, 0},
		{"arrow.offset", tmpl.Arrow.Offset, 2},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if tmpl.Branch.MergeStyle != MergeStyleBezier {
		t.Errorf("MergeStyle = %q, want %q", tmpl.Branch.MergeStyle, MergeStyleBezier)
	}
	if !tmpl.Commit.Message.Display || !tmpl.Commit.Message.DisplayAuthor || !tmpl.Commit.Message.DisplayHash {
		t.Errorf("message display flags = %+v, want all true", tmpl.Commit.Message)
	}
	if tmpl.Commit.Message.Font != DefaultFont {
		t.Errorf("Font = %q, want %q", tmpl.Commit.Message.Font, DefaultFont)
	}
	if tmpl.Arrow.Active() {
		t.Error("Arrow.Active() = true, want false")
	}
}

func TestNewClampsBadNumbers(t *testing.T) {
	tmpl := New(Options{
		Branch: BranchOptions{LineWidth: -4},
		Arrow:  ArrowOptions{Size: -1, Offset: -3},
		Commit: CommitOptions{Dot: DotOptions{Size: -2, StrokeWidth: -1}},
	})
	if tmpl.Branch.LineWidth != DefaultLineWidth {
		t.Errorf("LineWidth = %v, want %v", tmpl.Branch.LineWidth, DefaultLineWidth)
	}
	if tmpl.Commit.Dot.Size != DefaultDotSize {
		t.Errorf("Dot.Size = %v, want %v", tmpl.Commit.Dot.Size, DefaultDotSize)
	}
	if tmpl.Arrow.Size != 0 || tmpl.Arrow.Offset != DefaultArrowOffset {
		t.Errorf("Arrow = %+v, want size 0 offset %v", tmpl.Arrow, DefaultArrowOffset)
	}
	if tmpl.Commit.Dot.StrokeWidth != 0 {
		t.Errorf("StrokeWidth = %v, want 0", tmpl.Commit.Dot.StrokeWidth)
	}
}

func TestExplicitZeroSpacing(t *testing.T) {
	zero := 0.0
	tmpl := New(Options{
		Branch: BranchOptions{SpacingX: &zero},
		Commit: CommitOptions{SpacingY: &zero},
	})
	if tmpl.Branch.SpacingX != 0 || tmpl.Commit.SpacingY != 0 {
		t.Errorf("spacing = %v/%v, want 0/0", tmpl.Branch.SpacingX, tmpl.Commit.SpacingY)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name      string
		colors    []string
		lineWidth float64
		spacingX  float64
		spacingY  float64
		dotSize   float64
		arrow     bool
		curved    bool
	}{
		{PresetMetro, []string{"#979797", "#008fb5", "#f1c109"}, 10, 50, -80, 14, false, true},
		{PresetBlackArrow, DefaultColors, 4, 50, -60, 12, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.name, err)
			}
			if !slices.Equal(tmpl.Colors, tt.colors) {
				t.Errorf("Colors = %v, want %v", tmpl.Colors, tt.colors)
			}
			if tmpl.Branch.LineWidth != tt.lineWidth {
				t.Errorf("LineWidth = %v, want %v", tmpl.Branch.LineWidth, tt.lineWidth)
			}
			if tmpl.Branch.SpacingX != tt.spacingX {
				t.Errorf("Branch.SpacingX = %v, want %v", tmpl.Branch.SpacingX, tt.spacingX)
			}
			if tmpl.Commit.SpacingY != tt.spacingY {
				t.Errorf("Commit.SpacingY = %v, want %v", tmpl.Commit.SpacingY, tt.spacingY)
			}
			if tmpl.Commit.Dot.Size != tt.dotSize {
				t.Errorf("Dot.Size = %v, want %v", tmpl.Commit.Dot.Size, tt.dotSize)
			}
			if tmpl.Arrow.Active() != tt.arrow {
				t.Errorf("Arrow.Active() = %v, want %v", tmpl.Arrow.Active(), tt.arrow)
			}
			if tmpl.Branch.Curved() != tt.curved {
				t.Errorf("Curved() = %v, want %v", tmpl.Branch.Curved(), tt.curved)
			}
		})
	}
}

func TestGetDefaultAndUnknown(t *testing.T) {
	def, err := Get("")
	if err != nil {
		t.Fatalf("Get(\"\") error = %v", err)
	}
	if def.Branch.SpacingX != 50 {
		t.Errorf("default preset spacing = %v, want metro (50)", def.Branch.SpacingX)
	}

	_, err = Get("neon")
	if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Errorf("Get(neon) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidTemplate)
	}
}

func TestParseOverlaysPreset(t *testing.T) {
	src := `
preset = "blackarrow"
colors = ["#111", "#222"]

[branch]
line_width = 6

[commit.dot]
size = 9

[commit.message]
display_author = false
`
	tmpl, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !slices.Equal(tmpl.Colors, []string{"#111", "#222"}) {
		t.Errorf("Colors = %v", tmpl.Colors)
	}
	if tmpl.Branch.LineWidth != 6 {
		t.Errorf("LineWidth = %v, want 6", tmpl.Branch.LineWidth)
	}
	if tmpl.Commit.Dot.Size != 9 {
		t.Errorf("Dot.Size = %v, want 9", tmpl.Commit.Dot.Size)
	}
	// Inherited from the preset.
	if tmpl.Arrow.Size != 16 || tmpl.Commit.Dot.StrokeWidth != 7 {
		t.Errorf("preset fields lost: arrow=%v stroke=%v", tmpl.Arrow.Size, tmpl.Commit.Dot.StrokeWidth)
	}
	if tmpl.Commit.Message.DisplayAuthor {
		t.Error("DisplayAuthor = true, want false")
	}
	if !tmpl.Commit.Message.DisplayHash {
		t.Error("DisplayHash = false, want true")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad toml", "colors = [\n"},
		{"bad color", `colors = ["#12"]`},
		{"bad merge style", "[branch]\nmerge_style = \"zigzag\""},
		{"unknown preset", `preset = "neon"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
				t.Errorf("Parse() error = %v, want %v", err, errors.ErrCodeInvalidTemplate)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.toml")
	if err := os.WriteFile(path, []byte("[commit]\nspacing_y = -40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tmpl, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tmpl.Commit.SpacingY != -40 {
		t.Errorf("SpacingY = %v, want -40", tmpl.Commit.SpacingY)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestLaneColorWraps(t *testing.T) {
	tmpl := New(Options{Colors: []string{"red", "green"}})
	tests := []struct {
		col  int
		want string
	}{
		{0, "red"}, {1, "green"}, {2, "red"}, {5, "green"}, {-1, "red"},
	}
	for _, tt := range tests {
		if got := tmpl.LaneColor(tt.col); got != tt.want {
			t.Errorf("LaneColor(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	a := New(Options{Branch: BranchOptions{LineDash: []float64{4, 2}}})
	b := a.Clone()
	b.Colors[0] = "#000000"
	b.Branch.LineDash[0] = 9
	if a.Colors[0] == "#000000" || a.Branch.LineDash[0] == 9 {
		t.Error("Clone() shares slices with the original")
	}
}

func TestParseFont(t *testing.T) {
	tests := []struct {
		in   string
		want Font
	}{
		{"normal 12pt Calibri", Font{Family: "Calibri", Size: 16}},
		{"bold 14px Arial", Font{Family: "Arial", Size: 14, Bold: true}},
		{"italic 700 10pt 'Fira Sans'", Font{Family: "Fira Sans", Size: 40.0 / 3.0, Italic: true, Bold: true}},
		{"", Font{Size: 16}},
		{"bogus", Font{Family: "bogus", Size: 16}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFont(tt.in); got != tt.want {
				t.Errorf("ParseFont(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFontFaceCached(t *testing.T) {
	f := ParseFont("bold 14px Arial")
	if f.Face() != f.Face() {
		t.Error("Face() not cached")
	}
	if f.Face() == nil {
		t.Error("Face() = nil")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in     string
		want   color.NRGBA
		wantOK bool
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}, true},
		{"#0f0", color.NRGBA{0, 255, 0, 255}, true},
		{"#0000ff80", color.NRGBA{0, 0, 255, 128}, true},
		{"black", color.NRGBA{0, 0, 0, 255}, true},
		{"White", color.NRGBA{255, 255, 255, 255}, true},
		{"nope", color.NRGBA{0, 0, 0, 255}, false},
		{"", color.NRGBA{0, 0, 0, 255}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, ok := ParseColor(tt.in)
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			got := color.NRGBAModel.Convert(c).(color.NRGBA)
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{0x69, 0x63, 0xff, 0xff}); got != "#6963ff" {
		t.Errorf("Hex = %q, want #6963ff", got)
	}
	if got := Hex(color.NRGBA{0, 0, 0xff, 0x80}); got != "#0000ff80" {
		t.Errorf("Hex = %q, want #0000ff80", got)
	}
}
