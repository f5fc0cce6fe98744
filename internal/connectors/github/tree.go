package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/loaderhub/internal/logger"
)

// Git tree entry types.
const (
	entryTypeBlob = "blob"
	entryTypeTree = "tree"
)

// Entry is a blob found by the walker with its repository-relative path.
type Entry struct {
	Entry *gh.TreeEntry
	Path  string
}

// frame is one partially consumed tree listing on the walk stack.
type frame struct {
	entries []*gh.TreeEntry
	prefix  string
	next    int
}

// Walker lists every blob reachable from a tree, one API call per directory.
type Walker struct {
	getter TreeGetter
	filter *PathFilter
}

// NewWalker creates a walker. A nil filter lets everything through.
func NewWalker(getter TreeGetter, filter *PathFilter) *Walker {
	if filter == nil {
		filter = NewPathFilter(nil, nil)
	}
	return &Walker{getter: getter, filter: filter}
}

// Walk returns the filtered blobs under treeSHA in depth-first order,
// children in the order the API lists them. A directory rejected by the
// filter is never fetched. Any fetch error aborts the walk.
func (w *Walker) Walk(ctx context.Context, owner, repo, treeSHA string) ([]Entry, error) {
	root, err := w.getter.GetTree(ctx, owner, repo, treeSHA)
	if err != nil {
		return nil, err
	}

	var result []Entry
	stack := []*frame{{entries: treeEntries(root)}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++

		fullPath := joinPath(top.prefix, entry.GetPath())

		switch entry.GetType() {
		case entryTypeBlob:
			if w.filter.AllowsFile(fullPath) {
				result = append(result, Entry{Entry: entry, Path: fullPath})
			}

		case entryTypeTree:
			if !w.filter.AllowsDirectory(fullPath) {
				logger.Debug("github: pruning directory %s", fullPath)
				continue
			}

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			subtree, err := w.getter.GetTree(ctx, owner, repo, entry.GetSHA())
			if err != nil {
				return nil, err
			}
			stack = append(stack, &frame{entries: treeEntries(subtree), prefix: fullPath})

		default:
			// Submodules ("commit") have no content in this repository.
			logger.Debug("github: skipping %s entry %s", entry.GetType(), fullPath)
		}
	}

	logger.Info("github: walk of %s/%s found %d blobs", owner, repo, len(result))
	return result, nil
}

func treeEntries(t *gh.Tree) []*gh.TreeEntry {
	if t == nil {
		return nil
	}
	return t.Entries
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
