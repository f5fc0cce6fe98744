package github

import (
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
)

// Configuration errors. All are raised before any network call and wrap
// domain.ErrInvalidInput.
var (
	// ErrMissingOwner indicates no repository owner was given.
	ErrMissingOwner = fmt.Errorf("%w: github: owner is required", domain.ErrInvalidInput)

	// ErrMissingRepo indicates no repository name was given.
	ErrMissingRepo = fmt.Errorf("%w: github: repo is required", domain.ErrInvalidInput)

	// ErrMissingRef indicates neither branch nor commit_sha was given.
	ErrMissingRef = fmt.Errorf("%w: github: one of branch or commit_sha is required", domain.ErrInvalidInput)

	// ErrAmbiguousRef indicates both branch and commit_sha were given.
	ErrAmbiguousRef = fmt.Errorf("%w: github: branch and commit_sha are mutually exclusive", domain.ErrInvalidInput)

	// ErrInvalidBufferSize indicates a negative blob buffer size.
	ErrInvalidBufferSize = fmt.Errorf("%w: github: buffer_size must not be negative", domain.ErrInvalidInput)

	// ErrInvalidRate indicates a negative requests-per-second throttle.
	ErrInvalidRate = fmt.Errorf("%w: github: requests_per_second must not be negative", domain.ErrInvalidInput)

	// ErrInvalidRepository indicates a repository string not of the form owner/repo.
	ErrInvalidRepository = fmt.Errorf("%w: github: repository must be owner/repo", domain.ErrInvalidInput)
)

// ErrMalformedResponse indicates the API returned a payload missing a field
// the loader depends on, such as a commit without a tree.
var ErrMalformedResponse = errors.New("github: malformed API response")

// Transport errors from go-github are returned unchanged; these helpers
// classify them.

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return statusCode(err) == http.StatusNotFound
}

// IsRateLimited checks if the error indicates primary or secondary rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return true
	}
	var abuseErr *gh.AbuseRateLimitError
	return errors.As(err, &abuseErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return statusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	return statusCode(err) == http.StatusForbidden
}

// statusCode extracts the HTTP status from a go-github error response.
func statusCode(err error) int {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}
	return 0
}
