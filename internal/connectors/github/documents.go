package github

import (
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
)

// DefaultWebBaseURL is the web root used for document permalinks.
const DefaultWebBaseURL = "https://github.com"

// Metadata keys set in addition to the domain.Meta* keys.
const (
	MetaSHA      = "sha"
	MetaSize     = "size"
	MetaOwner    = "owner"
	MetaRepo     = "repo"
	MetaRef      = "ref"
	MetaMIMEType = "mime_type"
)

// Assembler wraps decoded blobs into documents. It does no chunking or
// enrichment.
type Assembler struct {
	webBaseURL string
}

// NewAssembler creates an assembler. An empty webBaseURL selects
// DefaultWebBaseURL.
func NewAssembler(webBaseURL string) *Assembler {
	webBaseURL = strings.TrimRight(strings.TrimSpace(webBaseURL), "/")
	if webBaseURL == "" {
		webBaseURL = DefaultWebBaseURL
	}
	return &Assembler{webBaseURL: webBaseURL}
}

// Assemble builds one document per blob, preserving order.
func (a *Assembler) Assemble(resolved ResolvedRef, blobs []DecodedBlob) []domain.Document {
	docs := make([]domain.Document, 0, len(blobs))
	for _, b := range blobs {
		extra := map[string]any{
			domain.MetaFilePath: b.Path,
			domain.MetaFileName: path.Base(b.Path),
			MetaSHA:             b.SHA,
			MetaSize:            b.Size,
			MetaOwner:           resolved.Owner,
			MetaRepo:            resolved.Repo,
			MetaMIMEType:        detectFileMIMEType(b.Path),
		}
		if resolved.Ref != "" {
			extra[domain.MetaURL] = a.BlobURL(resolved.Owner, resolved.Repo, resolved.Ref, b.Path)
			extra[MetaRef] = resolved.Ref
		}

		docs = append(docs, domain.Document{
			ID:        documentID(a.BlobURL(resolved.Owner, resolved.Repo, resolved.CommitSHA, b.Path)),
			Text:      b.Text,
			ExtraInfo: extra,
		})
	}
	return docs
}

// BlobURL returns the web permalink of a file at ref.
func (a *Assembler) BlobURL(owner, repo, ref, filePath string) string {
	return fmt.Sprintf("%s/%s/%s/blob/%s/%s", a.webBaseURL, owner, repo, ref, filePath)
}

// documentID derives a stable UUID from the commit-pinned permalink, so
// loading an unchanged commit twice yields identical IDs.
func documentID(permalink string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(permalink)).String()
}

// sourceTypes lists the media type of each source language with the
// extensions that select it. The mime registry lacks most of these and
// maps ".ts" to video/mp2t.
var sourceTypes = []struct {
	mediaType  string
	extensions []string
}{
	{"text/markdown", []string{".md", ".markdown", ".mdx"}},
	{"text/x-go", []string{".go"}},
	{"text/x-python", []string{".py", ".pyi"}},
	{"text/x-rust", []string{".rs"}},
	{"text/typescript", []string{".ts", ".mts", ".cts", ".tsx"}},
	{"text/javascript", []string{".js", ".mjs", ".cjs", ".jsx"}},
	{"text/yaml", []string{".yaml", ".yml"}},
	{"text/toml", []string{".toml"}},
	{"text/x-shellscript", []string{".sh", ".bash", ".zsh"}},
	{"text/x-sql", []string{".sql"}},
	{"text/x-ruby", []string{".rb"}},
	{"text/x-java", []string{".java"}},
	{"text/x-kotlin", []string{".kt", ".kts"}},
	{"text/x-c", []string{".c", ".h"}},
	{"text/x-c++", []string{".cc", ".cpp", ".hpp"}},
	{"text/x-proto", []string{".proto"}},
}

// wellKnownFiles types extensionless files by base name.
var wellKnownFiles = map[string]string{
	"makefile":   "text/x-makefile",
	"dockerfile": "text/x-dockerfile",
	"gemfile":    "text/x-ruby",
	"go.mod":     "text/x-go-mod",
	"go.sum":     "text/plain",
}

var extensionTypes = func() map[string]string {
	m := make(map[string]string)
	for _, st := range sourceTypes {
		for _, ext := range st.extensions {
			m[ext] = st.mediaType
		}
	}
	return m
}()

// detectFileMIMEType returns the media type of a text file, without
// parameters. Every document holds decoded UTF-8, so a registry type that
// is not textual falls back to text/plain.
func detectFileMIMEType(filePath string) string {
	base := strings.ToLower(path.Base(filePath))
	if t, ok := wellKnownFiles[base]; ok {
		return t
	}

	ext := path.Ext(base)
	if ext == "" {
		return "text/plain"
	}
	if t, ok := extensionTypes[ext]; ok {
		return t
	}

	mediaType, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
	if err != nil || !isTextual(mediaType) {
		return "text/plain"
	}
	return mediaType
}

func isTextual(mediaType string) bool {
	if strings.HasPrefix(mediaType, "text/") {
		return true
	}
	switch mediaType {
	case "application/json", "application/xml", "application/javascript", "image/svg+xml":
		return true
	}
	return strings.HasSuffix(mediaType, "+json") || strings.HasSuffix(mediaType, "+xml")
}
