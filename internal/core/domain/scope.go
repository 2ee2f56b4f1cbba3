package domain

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Scope is the directory boundary of the cache. It converts absolute paths to
// scope-relative, slash-separated canonical paths and back.
type Scope struct {
	root string
}

// NewScope creates a Scope rooted at the given directory. Relative roots are
// made absolute against the process working directory.
func NewScope(root string) (Scope, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Scope{}, zerr.With(zerr.Wrap(err, ErrScopeInvalid.Error()), "scope", root)
	}
	return Scope{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute scope directory.
func (s Scope) Root() string {
	return s.root
}

// ToCanonical converts an absolute path to its canonical relative form.
// It returns false for paths outside the scope, which must never be cached.
func (s Scope) ToCanonical(path string) (string, bool) {
	if s.root == "" || !filepath.IsAbs(path) {
		return "", false
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// ToAbsolute joins the scope with a canonical relative path.
func (s Scope) ToAbsolute(canonical string) string {
	return filepath.Join(s.root, filepath.FromSlash(canonical))
}

// CallerID returns the canonical identity of a caller used in composite keys.
// Directory callers carry a trailing slash; the scope root itself is "./".
func (s Scope) CallerID(c *Caller) (string, bool) {
	canonical, ok := s.ToCanonical(c.Filename)
	if !ok {
		return "", false
	}
	if !c.Dir {
		return canonical, true
	}
	if canonical == "." {
		return "./", true
	}
	return canonical + "/", true
}

// InDependencyDir reports whether any segment of a canonical path names one of
// the given dependency directories.
func InDependencyDir(canonical string, dependencyDirs []string) bool {
	for segment := range strings.SplitSeq(canonical, "/") {
		if slices.Contains(dependencyDirs, segment) {
			return true
		}
	}
	return false
}
