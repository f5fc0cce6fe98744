package github

import (
	"context"
	"testing"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
)

// newRepoAPI serves octo/hub with branch main at commit c1:
//
//	README.md
//	node_modules/
//	  left-pad/index.js
//	src/
//	  app.py
//	  logo.png
//	setup.py
func newRepoAPI() *fakeAPI {
	api := newFakeAPI()
	api.branches["main"] = "c1"
	api.commits["c1"] = "root"
	api.trees["root"] = []*gh.TreeEntry{
		blobEntry("README.md", "b-readme"),
		treeEntry("node_modules", "nm-sha"),
		treeEntry("src", "src-sha"),
		blobEntry("setup.py", "b-setup"),
	}
	api.trees["nm-sha"] = []*gh.TreeEntry{treeEntry("left-pad", "lp-sha")}
	api.trees["lp-sha"] = []*gh.TreeEntry{blobEntry("index.js", "b-index")}
	api.trees["src-sha"] = []*gh.TreeEntry{
		blobEntry("app.py", "b-app"),
		blobEntry("logo.png", "b-logo"),
	}
	api.addTextBlob("b-readme", "# hub\n")
	api.addTextBlob("b-index", "module.exports = {}\n")
	api.addTextBlob("b-app", "print('app')\n")
	api.addTextBlob("b-setup", "from setuptools import setup\n")
	api.addRawBlob("b-logo", pngHeader)
	return api
}

func filePaths(docs []domain.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.FilePath())
	}
	return out
}

func TestLoader_LoadRepository(t *testing.T) {
	ctx := context.Background()
	onMain := Ref{Branch: "main"}

	t.Run("no filters loads every text file", func(t *testing.T) {
		api := newRepoAPI()
		loader := NewWithAPI("src-1", nil, api)

		docs, err := loader.LoadRepository(ctx, LoadOptions{Owner: "octo", Repo: "hub", Ref: onMain})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"README.md",
			"node_modules/left-pad/index.js",
			"src/app.py",
			"setup.py",
		}, filePaths(docs))
	})

	t.Run("excluded directory is pruned", func(t *testing.T) {
		api := newFakeAPI()
		api.branches["main"] = "c1"
		api.commits["c1"] = "root"
		api.trees["root"] = []*gh.TreeEntry{
			blobEntry("README.md", "b-readme"),
			treeEntry("node_modules", "nm-sha"),
		}
		api.addTextBlob("b-readme", "# hub\n")
		loader := NewWithAPI("src-1", nil, api)

		docs, err := loader.LoadRepository(ctx, LoadOptions{
			Owner:             "octo",
			Repo:              "hub",
			Ref:               onMain,
			FilterDirectories: domain.NewFilter(domain.FilterExclude, "node_modules/"),
		})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "README.md", docs[0].FilePath())
		assert.Equal(t, "README.md", docs[0].FileName())
		assert.Equal(t, "https://github.com/octo/hub/blob/main/README.md", docs[0].URL())
		assert.Equal(t, "# hub\n", docs[0].Text)
		assert.Equal(t, 0, api.treeCalls["nm-sha"])
	})

	t.Run("binary-only repository yields no documents", func(t *testing.T) {
		api := newFakeAPI()
		api.commits["c1"] = "root"
		api.trees["root"] = []*gh.TreeEntry{blobEntry("logo.png", "b-logo")}
		api.addRawBlob("b-logo", pngHeader)
		loader := NewWithAPI("src-1", nil, api)

		docs, err := loader.LoadRepository(ctx, LoadOptions{Owner: "octo", Repo: "hub", Ref: Ref{CommitSHA: "c1"}})

		require.NoError(t, err)
		assert.Empty(t, docs)
		assert.Equal(t, 1, api.blobCalls)
	})

	t.Run("include extension", func(t *testing.T) {
		api := newRepoAPI()
		loader := NewWithAPI("src-1", nil, api)

		docs, err := loader.LoadRepository(ctx, LoadOptions{
			Owner:                "octo",
			Repo:                 "hub",
			Ref:                  onMain,
			FilterFileExtensions: domain.NewFilter(domain.FilterInclude, ".py"),
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"src/app.py", "setup.py"}, filePaths(docs))
		assert.Equal(t, 2, api.blobCalls)
	})

	t.Run("commit ref uses the sha in urls", func(t *testing.T) {
		api := newRepoAPI()
		loader := NewWithAPI("src-1", &Config{WebBaseURL: "https://ghe.example.com"}, api)

		docs, err := loader.LoadRepository(ctx, LoadOptions{
			Owner:             "octo",
			Repo:              "hub",
			Ref:               Ref{CommitSHA: "c1"},
			FilterDirectories: domain.NewFilter(domain.FilterInclude, "src"),
		})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "https://ghe.example.com/octo/hub/blob/c1/src/app.py", docs[0].URL())
		assert.Equal(t, 0, api.branchCalls)
	})

	t.Run("configuration errors make no API calls", func(t *testing.T) {
		tests := []struct {
			name    string
			opts    LoadOptions
			wantErr error
		}{
			{"missing ref", LoadOptions{Owner: "octo", Repo: "hub"}, ErrMissingRef},
			{"ambiguous ref", LoadOptions{Owner: "octo", Repo: "hub", Ref: Ref{Branch: "main", CommitSHA: "c1"}}, ErrAmbiguousRef},
			{"missing owner", LoadOptions{Repo: "hub", Ref: onMain}, ErrMissingOwner},
			{"missing repo", LoadOptions{Owner: "octo", Ref: onMain}, ErrMissingRepo},
			{"negative buffer", LoadOptions{Owner: "octo", Repo: "hub", Ref: onMain, BufferSize: -1}, ErrInvalidBufferSize},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				api := newRepoAPI()
				loader := NewWithAPI("src-1", nil, api)

				docs, err := loader.LoadRepository(ctx, tt.opts)

				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				assert.Nil(t, docs)
				assert.Zero(t, api.totalCalls())
			})
		}
	})

	t.Run("missing subtree aborts with no partial result", func(t *testing.T) {
		api := newRepoAPI()
		delete(api.trees, "src-sha")
		loader := NewWithAPI("src-1", nil, api)

		docs, err := loader.LoadRepository(ctx, LoadOptions{Owner: "octo", Repo: "hub", Ref: onMain})

		assert.True(t, IsNotFound(err))
		assert.Nil(t, docs)
		assert.Zero(t, api.blobCalls)
	})

	t.Run("unknown branch", func(t *testing.T) {
		api := newRepoAPI()
		loader := NewWithAPI("src-1", nil, api)

		_, err := loader.LoadRepository(ctx, LoadOptions{Owner: "octo", Repo: "hub", Ref: Ref{Branch: "nope"}})

		assert.True(t, IsNotFound(err))
	})

	t.Run("repeated loads are identical", func(t *testing.T) {
		api := newRepoAPI()
		loader := NewWithAPI("src-1", nil, api)
		opts := LoadOptions{Owner: "octo", Repo: "hub", Ref: onMain, BufferSize: 2}

		first, err := loader.LoadRepository(ctx, opts)
		require.NoError(t, err)
		second, err := loader.LoadRepository(ctx, opts)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestLoader_Load(t *testing.T) {
	api := newRepoAPI()
	cfg := &Config{LoadOptions: LoadOptions{
		Owner:                "octo",
		Repo:                 "hub",
		Ref:                  Ref{Branch: "main"},
		FilterFileExtensions: domain.NewFilter(domain.FilterExclude, "py", "js"),
	}}
	loader := NewWithAPI("src-1", cfg, api)

	assert.Equal(t, LoaderType, loader.Type())
	assert.Equal(t, "src-1", loader.SourceID())

	docs, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, filePaths(docs))
}

func TestBuild(t *testing.T) {
	t.Run("valid source", func(t *testing.T) {
		l, err := Build(source(map[string]string{KeyRepository: "octo/hub", KeyBranch: "main"}), nil)

		require.NoError(t, err)
		assert.Equal(t, LoaderType, l.Type())
		assert.Equal(t, "src-1", l.SourceID())
	})

	t.Run("invalid source", func(t *testing.T) {
		_, err := Build(source(map[string]string{KeyRepository: "octo/hub"}), nil)

		assert.ErrorIs(t, err, ErrMissingRef)
	})

	t.Run("unparseable source", func(t *testing.T) {
		_, err := Build(source(map[string]string{KeyBufferSize: "x"}), nil)

		assert.ErrorIs(t, err, ErrInvalidBufferSize)
	})
}
