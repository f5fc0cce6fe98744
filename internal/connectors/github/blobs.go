package github

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
	"github.com/custodia-labs/loaderhub/internal/logger"
)

// DefaultBufferSize is the number of blob fetches issued per batch.
const DefaultBufferSize = domain.DefaultBufferSize

// Blob content encodings returned by the API.
const (
	encodingBase64 = "base64"
	encodingUTF8   = "utf-8"
)

// ErrIteratorDone is returned by Next once every blob has been yielded.
var ErrIteratorDone = errors.New("github: no more blobs")

// DecodedBlob is a blob whose content decoded to valid UTF-8 text.
type DecodedBlob struct {
	Text string
	Path string
	SHA  string
	Size int
}

// BlobIterator fetches blobs in batches of at most bufferSize concurrent
// requests and yields the decoded text one blob at a time, in input order.
// Blobs that are not valid UTF-8 are logged and skipped.
//
// A BlobIterator is not safe for concurrent use.
type BlobIterator struct {
	getter     BlobGetter
	owner      string
	repo       string
	entries    []Entry
	bufferSize int

	next   int // index of the next entry to fetch
	buffer []DecodedBlob
	err    error
}

// NewBlobIterator creates an iterator over entries. A non-positive
// bufferSize selects DefaultBufferSize.
func NewBlobIterator(getter BlobGetter, owner, repo string, entries []Entry, bufferSize int) *BlobIterator {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &BlobIterator{
		getter:     getter,
		owner:      owner,
		repo:       repo,
		entries:    entries,
		bufferSize: bufferSize,
	}
}

// Next returns the next decoded blob. It returns ErrIteratorDone after the
// last blob, and keeps returning it (or the first fetch error) afterwards.
func (it *BlobIterator) Next(ctx context.Context) (DecodedBlob, error) {
	for {
		if it.err != nil {
			return DecodedBlob{}, it.err
		}
		if len(it.buffer) > 0 {
			b := it.buffer[0]
			it.buffer = it.buffer[1:]
			return b, nil
		}
		if it.next >= len(it.entries) {
			it.err = ErrIteratorDone
			continue
		}
		if err := it.fill(ctx); err != nil {
			it.err = err
		}
	}
}

// Collect drains the iterator.
func (it *BlobIterator) Collect(ctx context.Context) ([]DecodedBlob, error) {
	var out []DecodedBlob
	for {
		b, err := it.Next(ctx)
		if errors.Is(err, ErrIteratorDone) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
}

// fill fetches the next batch concurrently and waits for all of it.
func (it *BlobIterator) fill(ctx context.Context) error {
	end := min(it.next+it.bufferSize, len(it.entries))
	batch := it.entries[it.next:end]
	blobs := make([]*gh.Blob, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	for i, e := range batch {
		g.Go(func() error {
			b, err := it.getter.GetBlob(gctx, it.owner, it.repo, e.Entry.GetSHA())
			if err != nil {
				return err
			}
			blobs[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	it.next = end

	for i, b := range blobs {
		text, ok := decodeBlob(batch[i].Path, b)
		if !ok {
			continue
		}
		it.buffer = append(it.buffer, DecodedBlob{
			Text: text,
			Path: batch[i].Path,
			SHA:  batch[i].Entry.GetSHA(),
			Size: b.GetSize(),
		})
	}
	logger.Debug("github: fetched %d blobs (%d/%d)", len(batch), it.next, len(it.entries))
	return nil
}

// decodeBlob returns the blob text, or false when it is binary or
// undecodable. Either way is a skip, not an error.
func decodeBlob(path string, blob *gh.Blob) (string, bool) {
	var content []byte

	switch blob.GetEncoding() {
	case encodingBase64:
		raw := strings.ReplaceAll(blob.GetContent(), "\n", "")
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			logger.Warn("github: skipping %s: invalid base64 content: %v", path, err)
			return "", false
		}
		content = decoded
	case encodingUTF8, "":
		content = []byte(blob.GetContent())
	default:
		logger.Warn("github: skipping %s: unsupported encoding %q", path, blob.GetEncoding())
		return "", false
	}

	if !utf8.Valid(content) {
		logger.Warn("github: skipping %s: content is not valid UTF-8 (binary)", path)
		return "", false
	}
	return string(content), true
}
