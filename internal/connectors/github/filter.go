package github

import (
	"path"
	"strings"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
)

// PathFilter decides which directories the walker descends into and which
// blobs it keeps.
//
// Directory prefixes match whole path segments, not raw string prefixes.
// Leading and trailing slashes are ignored, so "node_modules/" matches
// "node_modules" and "node_modules/x". Unlike a plain strings.HasPrefix
// test, "src" does not match "src2" or "src2/main.go".
type PathFilter struct {
	dirMode domain.FilterMode
	dirs    []string
	hasDirs bool
	extMode domain.FilterMode
	exts    map[string]struct{}
	hasExts bool
}

// NewPathFilter builds a filter. Either argument may be nil.
func NewPathFilter(directories, extensions *domain.Filter) *PathFilter {
	f := &PathFilter{}

	if directories != nil {
		f.hasDirs = true
		f.dirMode = directories.Mode
		for _, d := range directories.Values {
			f.dirs = append(f.dirs, strings.Trim(strings.TrimSpace(d), "/"))
		}
	}

	if extensions != nil {
		f.hasExts = true
		f.extMode = extensions.Mode
		f.exts = make(map[string]struct{}, len(extensions.Values))
		for _, e := range extensions.Values {
			f.exts[normaliseExtension(e)] = struct{}{}
		}
	}

	return f
}

// AllowsDirectory reports whether the subtree at dirPath should be fetched.
// Under an include filter, ancestors of an included prefix are descended
// into so the prefix itself can be reached.
func (f *PathFilter) AllowsDirectory(dirPath string) bool {
	if !f.hasDirs {
		return true
	}

	switch f.dirMode {
	case domain.FilterExclude:
		return !f.underAnyPrefix(dirPath)
	default:
		if f.underAnyPrefix(dirPath) {
			return true
		}
		for _, prefix := range f.dirs {
			if prefix != "" && strings.HasPrefix(prefix, dirPath+"/") {
				return true
			}
		}
		return false
	}
}

// AllowsFile reports whether a blob at filePath passes both the directory
// and the extension filter.
func (f *PathFilter) AllowsFile(filePath string) bool {
	return f.allowsFileDirectory(filePath) && f.allowsExtension(filePath)
}

func (f *PathFilter) allowsFileDirectory(filePath string) bool {
	if !f.hasDirs {
		return true
	}
	under := f.underAnyPrefix(filePath)
	if f.dirMode == domain.FilterExclude {
		return !under
	}
	return under
}

func (f *PathFilter) allowsExtension(filePath string) bool {
	if !f.hasExts {
		return true
	}
	_, listed := f.exts[strings.ToLower(path.Ext(filePath))]
	if f.extMode == domain.FilterExclude {
		return !listed
	}
	return listed
}

// underAnyPrefix reports whether p equals or lies beneath a listed prefix.
// An empty prefix (the root) contains every path.
func (f *PathFilter) underAnyPrefix(p string) bool {
	for _, prefix := range f.dirs {
		if prefix == "" || p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

// normaliseExtension lowercases an extension and ensures a leading dot.
func normaliseExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
