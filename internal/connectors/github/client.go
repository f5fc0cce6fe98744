package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/loaderhub/internal/core/ports/driven"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// RefGetter fetches the metadata needed to resolve a ref to a tree.
type RefGetter interface {
	GetBranch(ctx context.Context, owner, repo, branch string) (*gh.Branch, error)
	GetCommit(ctx context.Context, owner, repo, sha string) (*gh.RepositoryCommit, error)
}

// TreeGetter fetches a single, non-recursive tree listing.
type TreeGetter interface {
	GetTree(ctx context.Context, owner, repo, sha string) (*gh.Tree, error)
}

// BlobGetter fetches a blob by SHA.
type BlobGetter interface {
	GetBlob(ctx context.Context, owner, repo, sha string) (*gh.Blob, error)
}

// API is everything the repository loader needs from GitHub.
type API interface {
	RefGetter
	TreeGetter
	BlobGetter
}

// Ensure Client implements the interface.
var _ API = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a GitHub-compatible API root,
// e.g. https://ghe.example.com/api/v3/.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithRequestsPerSecond enables proactive throttling.
func WithRequestsPerSecond(perSecond float64) ClientOption {
	return func(c *Client) {
		c.rateLimiter = NewRateLimiter(perSecond)
	}
}

// WithHTTPClient uses httpClient as-is instead of building an authenticated
// one from the token provider.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client wraps the go-github client with helper methods.
// Errors from the API are returned unchanged.
type Client struct {
	mu            sync.Mutex
	gh            *gh.Client
	httpClient    *http.Client
	baseURL       string
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
}

// NewClient creates a new GitHub API client with a token provider.
// tokenProvider may be nil for anonymous access.
func NewClient(tokenProvider driven.TokenProvider, opts ...ClientOption) *Client {
	c := &Client{
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientWithToken creates a GitHub client with a static access token.
func NewClientWithToken(ctx context.Context, token string, opts ...ClientOption) *Client {
	c := NewClient(nil, opts...)
	if c.httpClient == nil {
		c.httpClient = newHTTPClient(ctx, token)
	}
	return c
}

// ensureClient initializes the go-github client if not already done.
// This is called lazily so we can get the token when needed.
func (c *Client) ensureClient(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gh != nil {
		return nil
	}

	httpClient := c.httpClient
	if httpClient == nil {
		var token string
		if c.tokenProvider != nil {
			t, err := c.tokenProvider.GetToken(ctx)
			if err != nil {
				return fmt.Errorf("get token: %w", err)
			}
			token = t
		}
		httpClient = newHTTPClient(ctx, token)
	}

	client := gh.NewClient(httpClient)
	if c.baseURL != "" {
		u, err := url.Parse(strings.TrimRight(c.baseURL, "/") + "/")
		if err != nil {
			return fmt.Errorf("parse base url: %w", err)
		}
		client.BaseURL = u
	}
	c.gh = client

	return nil
}

// newHTTPClient returns a bearer-token client, or a plain one when token is empty.
func newHTTPClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return &http.Client{Timeout: DefaultTimeout}
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	return tc
}

// before prepares the client and waits for the rate limiter.
func (c *Client) before(ctx context.Context) error {
	if err := c.ensureClient(ctx); err != nil {
		return err
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// GetBranch fetches branch metadata, including its head commit SHA.
func (c *Client) GetBranch(ctx context.Context, owner, repo, branch string) (*gh.Branch, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}

	b, resp, err := c.gh.Repositories.GetBranch(ctx, owner, repo, branch, 1)
	c.updateRateLimitFromResponse(resp)
	return b, err
}

// GetCommit fetches commit metadata, including its tree SHA.
func (c *Client) GetCommit(ctx context.Context, owner, repo, sha string) (*gh.RepositoryCommit, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}

	commit, resp, err := c.gh.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	c.updateRateLimitFromResponse(resp)
	return commit, err
}

// GetTree fetches the immediate children of a tree (recursive=false).
// The loader walks subtrees itself so excluded directories are never fetched.
func (c *Client) GetTree(ctx context.Context, owner, repo, sha string) (*gh.Tree, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, owner, repo, sha, false)
	c.updateRateLimitFromResponse(resp)
	return tree, err
}

// GetBlob fetches a blob (file content) by its SHA.
func (c *Client) GetBlob(ctx context.Context, owner, repo, sha string) (*gh.Blob, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}

	blob, resp, err := c.gh.Git.GetBlob(ctx, owner, repo, sha)
	c.updateRateLimitFromResponse(resp)
	return blob, err
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}
