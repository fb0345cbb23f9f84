package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/gitgraph"
	"github.com/matzehuels/gitgraph/pkg/observability"
	"github.com/matzehuels/gitgraph/pkg/script"
)

const flow = `
title = "release flow"
author = "Ada <ada@example.com>"

[[step]]
op = "branch"
name = "master"

[[step]]
op = "commit"
message = "Initial commit"

[[step]]
op = "branch"
name = "develop"

[[step]]
op = "commit"
message = "Add parser"

[[step]]
op = "merge"
branch = "develop"
into = "master"
`

var fixed = time.Date(2024, 3, 9, 16, 20, 0, 0, time.UTC)

func clock() time.Time { return fixed }

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"svg", false},
		{"json", false},
		{"dot", false},
		{"nodelink", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidatePixelRatio(t *testing.T) {
	tests := []struct {
		ratio   float64
		wantErr bool
	}{
		{1, false},
		{2.5, false},
		{MaxPixelRatio, false},
		{0, true},
		{-1, true},
		{MaxPixelRatio + 1, true},
	}
	for _, tt := range tests {
		if err := ValidatePixelRatio(tt.ratio); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePixelRatio(%v) error = %v, wantErr %v", tt.ratio, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := Options{Source: []byte(flow)}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults() error = %v", err)
		}
		if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
			t.Errorf("Formats = %v, want [svg]", opts.Formats)
		}
		if opts.PixelRatio != DefaultPixelRatio {
			t.Errorf("PixelRatio = %v, want %v", opts.PixelRatio, DefaultPixelRatio)
		}
		if opts.Logger == nil || opts.Clock == nil {
			t.Error("Logger and Clock should be defaulted")
		}
		if opts.ScriptHash() == "" {
			t.Error("ScriptHash() is empty")
		}
		if opts.Script.Title != "release flow" {
			t.Errorf("Script.Title = %q", opts.Script.Title)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		opts := Options{Source: []byte(flow)}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		s := opts.Script
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if opts.Script != s {
			t.Error("second call re-parsed the script")
		}
	})

	t.Run("overrides do not mutate caller script", func(t *testing.T) {
		s, err := script.Parse([]byte(flow))
		if err != nil {
			t.Fatal(err)
		}
		opts := Options{Script: s, Template: "blackarrow", Orientation: "horizontal"}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if opts.Script.Template != "blackarrow" || opts.Script.Orientation != "horizontal" {
			t.Errorf("overrides not applied: %q %q", opts.Script.Template, opts.Script.Orientation)
		}
		if s.Template != "" || s.Orientation != "" {
			t.Error("caller script was modified")
		}
	})

	errTests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no source", Options{}, errors.ErrCodeInvalidInput},
		{"bad script", Options{Source: []byte("[[step]]\nop = \"rebase\"")}, errors.ErrCodeInvalidScript},
		{"bad format", Options{Source: []byte(flow), Formats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
		{"bad ratio", Options{Source: []byte(flow), PixelRatio: 9}, errors.ErrCodeInvalidOption},
		{"bad background", Options{Source: []byte(flow), Background: "rgb(0,0,0)"}, errors.ErrCodeInvalidColor},
		{"bad template override", Options{Source: []byte(flow), Template: "neon"}, errors.ErrCodeInvalidScript},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if code := errors.GetCode(err); code != tt.code {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Source:  []byte(flow),
		Formats: []string{FormatSVG, FormatJSON, FormatDOT, FormatPNG},
		Clock:   clock,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.Stats.Branches != 2 || res.Stats.Commits != 3 {
		t.Errorf("Stats = %+v, want 2 branches, 3 commits", res.Stats)
	}
	if len(res.Layout.Commits) != 3 || res.Layout.Head != "master" {
		t.Errorf("Layout commits = %d, head = %q", len(res.Layout.Commits), res.Layout.Head)
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact is not an SVG document")
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "release flow") {
		t.Error("svg artifact is missing the script title")
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact = %.40q", res.Artifacts[FormatDOT])
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact is not a PNG")
	}

	var l gitgraph.Layout
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &l); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if l.Commits[2].Kind != gitgraph.KindMerge {
		t.Errorf("last commit kind = %v, want merge", l.Commits[2].Kind)
	}
	if l.Commits[0].Hash != res.Layout.Commits[0].Hash {
		t.Error("json artifact and layout disagree on hashes")
	}
}

func TestExecuteUsesCache(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Source: []byte(flow), Formats: []string{FormatSVG, FormatDOT}, Clock: clock}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if c.sets != 3 {
		t.Errorf("cache sets = %d, want layout + 2 artifacts", c.sets)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	// A new format only renders the missing artifact.
	opts.Formats = []string{FormatSVG, FormatJSON}
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("RenderHit = true with an uncached format")
	}
	if c.sets != 4 {
		t.Errorf("cache sets = %d, want 4", c.sets)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	opts := Options{Source: []byte(flow), Formats: []string{FormatSVG, FormatJSON}, Clock: clock}
	a, err := Render(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range opts.Formats {
		if !bytes.Equal(a[f], b[f]) {
			t.Errorf("%s output differs between runs", f)
		}
	}
}

func TestRenderFormatUnsupported(t *testing.T) {
	opts := Options{Source: []byte(flow)}
	g, err := Build(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RenderFormat(g, "pdf", opts); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("RenderFormat(pdf) error = %v, want UNSUPPORTED", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Source: []byte(flow), PixelRatio: 2, Detailed: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.PixelRatio != 2 || k.Template != "metro" {
		t.Errorf("png key = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.PixelRatio != 0 {
		t.Errorf("svg key carries pixel ratio: %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatDOT); k.Format != "dot+detailed" {
		t.Errorf("dot key format = %q", k.Format)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	builds  int
	renders [][]string
}

func (h *countingHooks) OnBuildStart(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.builds++
}

func (h *countingHooks) OnRenderStart(_ context.Context, formats []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders = append(h.renders, formats)
}

func TestExecuteEmitsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	h := &countingHooks{}
	observability.SetPipelineHooks(h)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Source: []byte(flow), Formats: []string{FormatSVG, FormatDOT}}); err != nil {
		t.Fatal(err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.builds != 3 {
		t.Errorf("builds = %d, want layout + one per format", h.builds)
	}
	if len(h.renders) != 1 || len(h.renders[0]) != 2 {
		t.Errorf("renders = %v, want one call with both formats", h.renders)
	}
}
