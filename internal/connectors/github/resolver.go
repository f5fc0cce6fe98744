package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/loaderhub/internal/logger"
)

// Ref names what to load: a branch or an explicit commit, never both.
type Ref struct {
	Branch    string
	CommitSHA string
}

// Validate checks exactly one of Branch and CommitSHA is set.
func (r Ref) Validate() error {
	branch := strings.TrimSpace(r.Branch)
	commit := strings.TrimSpace(r.CommitSHA)
	switch {
	case branch == "" && commit == "":
		return ErrMissingRef
	case branch != "" && commit != "":
		return ErrAmbiguousRef
	}
	return nil
}

// String returns the branch name or commit SHA as given.
func (r Ref) String() string {
	if r.Branch != "" {
		return r.Branch
	}
	return r.CommitSHA
}

// ResolvedRef is a ref pinned to a commit and its root tree.
type ResolvedRef struct {
	Owner     string
	Repo      string
	Ref       string // branch name or commit SHA, used in permalinks
	CommitSHA string
	TreeSHA   string
}

// Resolver turns a Ref into the root tree SHA to walk.
type Resolver struct {
	getter RefGetter
}

// NewResolver creates a resolver backed by getter.
func NewResolver(getter RefGetter) *Resolver {
	return &Resolver{getter: getter}
}

// Resolve fetches branch (if given) then commit metadata.
// API errors are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, owner, repo string, ref Ref) (ResolvedRef, error) {
	if err := ref.Validate(); err != nil {
		return ResolvedRef{}, err
	}

	commitSHA := strings.TrimSpace(ref.CommitSHA)
	if branch := strings.TrimSpace(ref.Branch); branch != "" {
		b, err := r.getter.GetBranch(ctx, owner, repo, branch)
		if err != nil {
			return ResolvedRef{}, err
		}
		commitSHA = b.GetCommit().GetSHA()
		if commitSHA == "" {
			return ResolvedRef{}, fmt.Errorf("%w: branch %s has no head commit", ErrMalformedResponse, branch)
		}
		logger.Debug("github: branch %s of %s/%s is at %s", branch, owner, repo, commitSHA)
	}

	commit, err := r.getter.GetCommit(ctx, owner, repo, commitSHA)
	if err != nil {
		return ResolvedRef{}, err
	}
	treeSHA := commit.GetCommit().GetTree().GetSHA()
	if treeSHA == "" {
		return ResolvedRef{}, fmt.Errorf("%w: commit %s has no tree", ErrMalformedResponse, commitSHA)
	}
	logger.Debug("github: commit %s has root tree %s", commitSHA, treeSHA)

	return ResolvedRef{
		Owner:     owner,
		Repo:      repo,
		Ref:       strings.TrimSpace(ref.String()),
		CommitSHA: commitSHA,
		TreeSHA:   treeSHA,
	}, nil
}
