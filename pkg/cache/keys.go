package cache

import "strings"

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered format of a script.
	ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string
	// LayoutKey identifies the layout snapshot of a script.
	LayoutKey(scriptHash string, opts LayoutKeyOpts) string
}

// ArtifactKeyOpts are the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Template    string  `json:"template,omitempty"`
	Orientation string  `json:"orientation,omitempty"`
	Mode        string  `json:"mode,omitempty"`
	PixelRatio  float64 `json:"pixel_ratio,omitempty"`
	Background  string  `json:"background,omitempty"`
}

// LayoutKeyOpts are the options that change the computed layout.
type LayoutKeyOpts struct {
	Template    string `json:"template,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	Mode        string `json:"mode,omitempty"`
}

// DefaultKeyer produces "artifact:<sha256>" and "layout:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", scriptHash, opts)
}

func (DefaultKeyer) LayoutKey(scriptHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", scriptHash, opts)
}

// ScriptHash normalizes line endings and hashes a script source.
func ScriptHash(src []byte) string {
	return Hash([]byte(strings.ReplaceAll(string(src), "\r\n", "\n")))
}
