package script

import (
	"cmp"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/matzehuels/gitgraph/pkg/errors"
)

// DefaultImportLimit caps the number of commits read from a repository.
const DefaultImportLimit = 200

// ImportOptions controls [FromRepository].
type ImportOptions struct {
	// Branches restricts the import to these local branches. Empty means all.
	Branches []string
	// Limit is the maximum number of commits (DefaultImportLimit when <= 0).
	// The most recent commits are kept.
	Limit int
	// Template is copied to the script header.
	Template string
}

// Open opens the repository at path (or any parent directory).
func Open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open repository %s", path)
	}
	return repo, nil
}

// FromRepository converts local branch history into a script.
//
// Every commit is assigned to the first branch whose first-parent chain
// reaches it. The checked-out branch claims first, then the others in name
// order. Commits with a second parent on another branch become merges.
func FromRepository(repo *git.Repository, opts ImportOptions) (*Script, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultImportLimit
	}

	refs, err := branchRefs(repo, opts.Branches)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no branches to import")
	}

	owner := make(map[plumbing.Hash]string)
	commits := make(map[plumbing.Hash]*object.Commit)
	for _, ref := range refs {
		name := ref.Name().Short()
		for h := ref.Hash(); !h.IsZero(); {
			if _, claimed := owner[h]; claimed {
				break
			}
			c, err := repo.CommitObject(h)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeStorage, err, "read commit %s", h)
			}
			owner[h] = name
			commits[h] = c
			if c.NumParents() == 0 {
				break
			}
			h = c.ParentHashes[0]
		}
	}

	order := topoOrder(commits)
	if len(order) > opts.Limit {
		order = order[len(order)-opts.Limit:]
	}

	s := &Script{Template: opts.Template}
	created := make(map[string]bool)
	for _, c := range order {
		name := owner[c.Hash]
		if !created[name] {
			s.Steps = append(s.Steps, branchStep(name, c, owner, created))
			created[name] = true
		}

		st := Step{
			Op:      OpCommit,
			Branch:  name,
			Message: firstLine(c.Message),
			Author:  c.Author.Name + " <" + c.Author.Email + ">",
			Hash:    c.Hash.String()[:7],
			Date:    c.Author.When.UTC(),
		}
		if c.NumParents() > 1 {
			if src, ok := owner[c.ParentHashes[1]]; ok && src != name && created[src] {
				st.Op = OpMerge
				st.Branch = src
				st.Into = name
			}
		}
		s.Steps = append(s.Steps, st)
	}
	return s, nil
}

// branchStep creates the lane for name, forking from the branch owning the
// first parent of its oldest imported commit.
func branchStep(name string, first *object.Commit, owner map[plumbing.Hash]string, created map[string]bool) Step {
	if first.NumParents() > 0 {
		if parent, ok := owner[first.ParentHashes[0]]; ok && created[parent] {
			return Step{Op: OpBranch, Name: name, Parent: parent}
		}
	}
	return Step{Op: OpOrphan, Name: name}
}

func branchRefs(repo *git.Repository, only []string) ([]*plumbing.Reference, error) {
	iter, err := repo.Branches()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list branches")
	}
	var refs []*plumbing.Reference
	err = iter.ForEach(func(r *plumbing.Reference) error {
		if len(only) == 0 || slices.Contains(only, r.Name().Short()) {
			refs = append(refs, r)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list branches")
	}

	head := ""
	if ref, err := repo.Head(); err == nil && ref.Name().IsBranch() {
		head = ref.Name().Short()
	}
	slices.SortStableFunc(refs, func(a, b *plumbing.Reference) int {
		an, bn := a.Name().Short(), b.Name().Short()
		if (an == head) != (bn == head) {
			if an == head {
				return -1
			}
			return 1
		}
		return cmp.Compare(an, bn)
	})
	return refs, nil
}

// topoOrder sorts commits oldest first. Parents always precede children;
// ties are broken by committer time, then hash.
func topoOrder(commits map[plumbing.Hash]*object.Commit) []*object.Commit {
	pending := make(map[plumbing.Hash]int, len(commits))
	children := make(map[plumbing.Hash][]plumbing.Hash)
	for h, c := range commits {
		for _, p := range c.ParentHashes {
			if _, ok := commits[p]; ok {
				pending[h]++
				children[p] = append(children[p], h)
			}
		}
	}

	var ready []*object.Commit
	for h, c := range commits {
		if pending[h] == 0 {
			ready = append(ready, c)
		}
	}

	out := make([]*object.Commit, 0, len(commits))
	for len(ready) > 0 {
		slices.SortFunc(ready, olderFirst)
		c := ready[0]
		ready = ready[1:]
		out = append(out, c)
		for _, ch := range children[c.Hash] {
			pending[ch]--
			if pending[ch] == 0 {
				ready = append(ready, commits[ch])
			}
		}
	}
	return out
}

func olderFirst(a, b *object.Commit) int {
	if c := a.Committer.When.Compare(b.Committer.When); c != 0 {
		return c
	}
	return strings.Compare(a.Hash.String(), b.Hash.String())
}

func firstLine(msg string) string {
	msg = strings.TrimSpace(msg)
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return strings.TrimSpace(msg[:i])
	}
	return msg
}
