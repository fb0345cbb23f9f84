package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/gitgraph/pkg/canvas/record"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/gitgraph"
)

// Snapshot renders g once onto a throwaway surface, so orientation offsets
// are current, and returns its layout.
func Snapshot(g *gitgraph.Graph) gitgraph.Layout {
	g.RenderTo(record.New())
	return g.Layout()
}

// MarshalLayout encodes a layout as indented JSON.
func MarshalLayout(l gitgraph.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return append(data, '\n'), nil
}

// UnmarshalLayout decodes a layout produced by MarshalLayout.
func UnmarshalLayout(data []byte) (gitgraph.Layout, error) {
	var l gitgraph.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return gitgraph.Layout{}, errors.Wrap(errors.ErrCodeInternal, err, "decode layout")
	}
	return l, nil
}
