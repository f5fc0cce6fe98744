package github

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
)

// fakeAPI is an in-memory API that records calls and blob concurrency.
type fakeAPI struct {
	mu sync.Mutex

	branches map[string]string // branch -> commit SHA
	commits  map[string]string // commit SHA -> tree SHA
	trees    map[string][]*gh.TreeEntry
	blobs    map[string]*gh.Blob
	blobErrs map[string]error

	branchCalls int
	commitCalls int
	treeCalls   map[string]int
	blobCalls   int

	blobDelay   time.Duration
	inFlight    int
	maxInFlight int
	completed   int
	// completedAtStart records, per blob call in start order, how many
	// blob calls had already finished.
	completedAtStart []int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		branches:  map[string]string{},
		commits:   map[string]string{},
		trees:     map[string][]*gh.TreeEntry{},
		blobs:     map[string]*gh.Blob{},
		blobErrs:  map[string]error{},
		treeCalls: map[string]int{},
	}
}

// totalCalls counts every API call made.
func (f *fakeAPI) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.branchCalls + f.commitCalls + f.blobCalls
	for _, c := range f.treeCalls {
		n += c
	}
	return n
}

func (f *fakeAPI) GetBranch(_ context.Context, owner, repo, branch string) (*gh.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.branchCalls++

	sha, ok := f.branches[branch]
	if !ok {
		return nil, notFoundError("/repos/" + owner + "/" + repo + "/branches/" + branch)
	}
	return &gh.Branch{
		Name:   gh.Ptr(branch),
		Commit: &gh.RepositoryCommit{SHA: gh.Ptr(sha)},
	}, nil
}

func (f *fakeAPI) GetCommit(_ context.Context, owner, repo, sha string) (*gh.RepositoryCommit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commitCalls++

	tree, ok := f.commits[sha]
	if !ok {
		return nil, notFoundError("/repos/" + owner + "/" + repo + "/commits/" + sha)
	}
	return &gh.RepositoryCommit{
		SHA:    gh.Ptr(sha),
		Commit: &gh.Commit{Tree: &gh.Tree{SHA: gh.Ptr(tree)}},
	}, nil
}

func (f *fakeAPI) GetTree(_ context.Context, owner, repo, sha string) (*gh.Tree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.treeCalls[sha]++

	entries, ok := f.trees[sha]
	if !ok {
		return nil, notFoundError("/repos/" + owner + "/" + repo + "/git/trees/" + sha)
	}
	return &gh.Tree{SHA: gh.Ptr(sha), Entries: entries}, nil
}

func (f *fakeAPI) GetBlob(ctx context.Context, owner, repo, sha string) (*gh.Blob, error) {
	f.mu.Lock()
	f.blobCalls++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.completedAtStart = append(f.completedAtStart, f.completed)
	delay := f.blobDelay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(delay):
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	f.completed++

	if err, ok := f.blobErrs[sha]; ok {
		return nil, err
	}
	blob, ok := f.blobs[sha]
	if !ok {
		return nil, notFoundError("/repos/" + owner + "/" + repo + "/git/blobs/" + sha)
	}
	return blob, nil
}

// addTextBlob registers a base64-encoded blob.
func (f *fakeAPI) addTextBlob(sha, text string) {
	f.addRawBlob(sha, []byte(text))
}

func (f *fakeAPI) addRawBlob(sha string, content []byte) {
	f.blobs[sha] = &gh.Blob{
		SHA:      gh.Ptr(sha),
		Content:  gh.Ptr(base64.StdEncoding.EncodeToString(content)),
		Encoding: gh.Ptr("base64"),
		Size:     gh.Ptr(len(content)),
	}
}

func blobEntry(name, sha string) *gh.TreeEntry {
	return &gh.TreeEntry{
		Path: gh.Ptr(name),
		Type: gh.Ptr("blob"),
		SHA:  gh.Ptr(sha),
		Mode: gh.Ptr("100644"),
	}
}

func treeEntry(name, sha string) *gh.TreeEntry {
	return &gh.TreeEntry{
		Path: gh.Ptr(name),
		Type: gh.Ptr("tree"),
		SHA:  gh.Ptr(sha),
		Mode: gh.Ptr("040000"),
	}
}

func notFoundError(path string) error {
	return &gh.ErrorResponse{
		Response: &http.Response{
			StatusCode: http.StatusNotFound,
			Request: &http.Request{
				Method: http.MethodGet,
				URL:    &url.URL{Scheme: "https", Host: "api.github.com", Path: path},
			},
		},
		Message: "Not Found",
	}
}

// pngHeader is valid base64 once encoded but not valid UTF-8.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0x00, 0x00, 0x0d}
