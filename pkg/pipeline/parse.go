package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/gitgraph/pkg/gitgraph"
	"github.com/matzehuels/gitgraph/pkg/observability"
	"github.com/matzehuels/gitgraph/pkg/script"
)

// Build replays the script on a new hidden graph. Hashes are derived from
// the script hash, so every build of the same source is identical and can
// be drawn independently of the others.
func Build(ctx context.Context, opts Options) (*gitgraph.Graph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	s := opts.Script
	_, commits := s.Counts()

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, s.Title, len(s.Steps))
	start := time.Now()

	g, err := s.Build(gitgraph.Options{
		Hidden:     true,
		PixelRatio: opts.PixelRatio,
		Clock:      opts.Clock,
		NewHash:    script.SequentialHashes(opts.ScriptHash()),
	})
	hooks.OnBuildComplete(ctx, s.Title, commits, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return g, nil
}
