package script

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/gitgraph"
)

// Build replays the script on a new graph. Fields of base that the script
// does not set (surface, sinks, clock, hash source) are passed through; the
// script's template, orientation, mode, column policy, author and date win.
//
// Steps run with auto-rendering suspended; the graph is rendered once at the
// end when base carries a visible surface.
func (s *Script) Build(base gitgraph.Options) (*gitgraph.Graph, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := s.ResolveTemplate()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "template")
	}
	policy, _ := parsePolicy(s.ColumnPolicy)

	opts := base
	opts.Template = &tmpl
	opts.Orientation = gitgraph.Orientation(s.Orientation)
	opts.Mode = gitgraph.Mode(s.Mode)
	opts.ColumnPolicy = policy
	if s.Author != "" {
		opts.Author = s.Author
	}
	if !s.Date.IsZero() {
		date := s.Date
		opts.Clock = func() time.Time { return date }
	}
	visible := !opts.Hidden
	opts.Hidden = true

	g, err := gitgraph.New(opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "create graph")
	}
	for i, st := range s.Steps {
		if err := apply(g, st); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "step %d (%s)", i+1, st.Op)
		}
	}

	g.SetHidden(!visible)
	if visible && opts.Surface != nil {
		g.Render()
	}
	return g, nil
}

func apply(g *gitgraph.Graph, st Step) error {
	switch st.Op {
	case OpBranch:
		bo := branchOptions(st)
		if st.Parent != "" {
			parent, err := lookup(g, st.Parent)
			if err != nil {
				return err
			}
			bo.Parent = parent
		}
		g.Branch(bo)
	case OpOrphan:
		g.OrphanBranch(branchOptions(st))
	case OpCheckout:
		b, err := lookup(g, st.Name)
		if err != nil {
			return err
		}
		b.Checkout()
	case OpDelete:
		b, err := lookup(g, st.Name)
		if err != nil {
			return err
		}
		b.Delete()
	case OpCommit:
		b, err := branchOrHead(g, st.Branch)
		if err != nil {
			return err
		}
		co, err := commitOptions(g, st)
		if err != nil {
			return err
		}
		b.Commit(co)
	case OpMerge:
		src, err := branchOrHead(g, st.Branch)
		if err != nil {
			return err
		}
		var dst *gitgraph.Branch
		if st.Into != "" {
			if dst, err = lookup(g, st.Into); err != nil {
				return err
			}
		}
		co, err := commitOptions(g, st)
		if err != nil {
			return err
		}
		if _, err := src.Merge(dst, co); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidScript, "unknown op %q", st.Op)
	}
	return nil
}

func lookup(g *gitgraph.Graph, name string) (*gitgraph.Branch, error) {
	b, ok := g.Lookup(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeBranchNotFound, "unknown branch %q", name)
	}
	return b, nil
}

func branchOrHead(g *gitgraph.Graph, name string) (*gitgraph.Branch, error) {
	if name != "" {
		return lookup(g, name)
	}
	if head := g.Head(); head != nil {
		return head, nil
	}
	return nil, errors.New(errors.ErrCodeNoHead, "no branch checked out")
}

func branchOptions(st Step) gitgraph.BranchOptions {
	return gitgraph.BranchOptions{
		Name:      st.Name,
		Color:     st.Color,
		LineWidth: st.LineWidth,
		LineDash:  st.LineDash,
	}
}

func commitOptions(g *gitgraph.Graph, st Step) (gitgraph.CommitOptions, error) {
	co := gitgraph.CommitOptions{
		Message:        st.Message,
		Author:         st.Author,
		Hash:           st.Hash,
		Date:           st.Date,
		Color:          st.Color,
		DotColor:       st.DotColor,
		DotSize:        st.DotSize,
		DotStrokeWidth: st.DotStrokeWidth,
		DotStrokeColor: st.DotStrokeColor,
		MessageColor:   st.MessageColor,
		MessageFont:    st.MessageFont,
		DisplayMessage: st.DisplayMessage,
		DisplayAuthor:  st.DisplayAuthor,
		DisplayHash:    st.DisplayHash,
	}
	if st.ParentCommit != "" {
		parent, ok := g.LookupCommit(st.ParentCommit)
		if !ok {
			return co, errors.New(errors.ErrCodeNotFound, "unknown commit %q", st.ParentCommit)
		}
		co.Parent = parent
	}
	if st.Detail != "" || st.DetailHeight > 0 {
		co.Detail = &gitgraph.Detail{Text: st.Detail, Height: st.DetailHeight}
	}
	return co, nil
}

// SequentialHashes returns a hash source that derives 7-digit hex hashes from
// seed and a counter, so replaying a script yields the same hashes every time.
func SequentialHashes(seed string) func() string {
	n := 0
	return func() string {
		n++
		sum := sha256.Sum256(fmt.Appendf(nil, "%s:%d", seed, n))
		return hex.EncodeToString(sum[:])[:7]
	}
}
