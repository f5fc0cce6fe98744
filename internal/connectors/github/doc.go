// Package github implements a loader for the files of a GitHub repository.
//
// The loader reads one repository at one ref and returns every text file
// as a [domain.Document]. It is a four-stage linear pipeline; each stage
// consumes the previous stage's whole output:
//
//  1. Resolver: branch → head commit → root tree SHA (two API calls), or
//     commit → root tree SHA when a commit SHA is given directly.
//  2. Walker: fetches one tree listing per directory and applies the
//     directory and extension filters on the way down. An excluded
//     directory is pruned before its listing is requested.
//  3. BlobIterator: fetches blob content in batches of at most BufferSize
//     concurrent requests, decodes base64 and skips non-UTF-8 (binary) blobs.
//  4. Assembler: wraps each decoded blob in a document with file_path,
//     file_name and a web permalink.
//
// # Authentication
//
// A bearer token (classic or fine-grained personal access token) is taken
// from a [driven.TokenProvider]. Without one, requests are anonymous and
// limited to 60 per hour by GitHub.
//
// # Configuration
//
// Source configuration accepts the following keys:
//
//   - owner, repo: the repository. "repository" (owner/repo) may be used
//     instead.
//
//   - branch or commit_sha: exactly one is required.
//
//   - filter_directories: comma-separated path prefixes, with
//     filter_directories_mode "include" (default) or "exclude".
//
//   - filter_file_extensions: comma-separated suffixes such as ".py,.md",
//     with filter_file_extensions_mode "include" (default) or "exclude".
//
//   - buffer_size: concurrent blob fetches per batch. Default 10.
//
//   - api_base_url, web_base_url: GitHub Enterprise roots.
//
//   - requests_per_second: proactive throttle. Default off.
//
// # Error Handling
//
// Configuration errors are returned before any API call and match
// [domain.ErrInvalidInput]. API errors from go-github are returned unchanged
// and are never retried; one failed request aborts the whole load with no
// partial result. Blobs that do not decode to UTF-8 are logged and skipped.
//
// # Example Usage
//
//	cfg, _ := github.ParseConfig(source)
//	loader := github.New(source.ID, cfg, tokenProvider)
//
//	docs, err := loader.Load(ctx)
//	if err != nil {
//	    return err
//	}
package github
