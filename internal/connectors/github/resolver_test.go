package github

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
)

func TestRef_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ref     Ref
		wantErr error
	}{
		{"branch only", Ref{Branch: "main"}, nil},
		{"commit only", Ref{CommitSHA: "abc123"}, nil},
		{"neither", Ref{}, ErrMissingRef},
		{"whitespace only", Ref{Branch: "  ", CommitSHA: " "}, ErrMissingRef},
		{"both", Ref{Branch: "main", CommitSHA: "abc123"}, ErrAmbiguousRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRef_String(t *testing.T) {
	assert.Equal(t, "main", Ref{Branch: "main"}.String())
	assert.Equal(t, "abc123", Ref{CommitSHA: "abc123"}.String())
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("branch resolves through commit to tree", func(t *testing.T) {
		api := newFakeAPI()
		api.branches["main"] = "c1"
		api.commits["c1"] = "t1"

		resolved, err := NewResolver(api).Resolve(ctx, "octo", "hub", Ref{Branch: "main"})

		require.NoError(t, err)
		assert.Equal(t, ResolvedRef{
			Owner: "octo", Repo: "hub", Ref: "main", CommitSHA: "c1", TreeSHA: "t1",
		}, resolved)
		assert.Equal(t, 1, api.branchCalls)
		assert.Equal(t, 1, api.commitCalls)
	})

	t.Run("commit skips the branch lookup", func(t *testing.T) {
		api := newFakeAPI()
		api.commits["c2"] = "t2"

		resolved, err := NewResolver(api).Resolve(ctx, "octo", "hub", Ref{CommitSHA: "c2"})

		require.NoError(t, err)
		assert.Equal(t, "t2", resolved.TreeSHA)
		assert.Equal(t, "c2", resolved.Ref)
		assert.Equal(t, 0, api.branchCalls)
		assert.Equal(t, 1, api.commitCalls)
	})

	t.Run("missing ref fails before any call", func(t *testing.T) {
		api := newFakeAPI()

		_, err := NewResolver(api).Resolve(ctx, "octo", "hub", Ref{})

		assert.ErrorIs(t, err, ErrMissingRef)
		assert.Zero(t, api.totalCalls())
	})

	t.Run("unknown branch propagates the API error", func(t *testing.T) {
		api := newFakeAPI()

		_, err := NewResolver(api).Resolve(ctx, "octo", "hub", Ref{Branch: "gone"})

		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Equal(t, 0, api.commitCalls)
	})

	t.Run("unknown commit propagates the API error", func(t *testing.T) {
		api := newFakeAPI()
		api.branches["main"] = "missing"

		_, err := NewResolver(api).Resolve(ctx, "octo", "hub", Ref{Branch: "main"})

		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("commit without tree is malformed", func(t *testing.T) {
		api := newFakeAPI()
		api.commits["c3"] = ""

		_, err := NewResolver(api).Resolve(ctx, "octo", "hub", Ref{CommitSHA: "c3"})

		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}
