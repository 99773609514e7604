// Package resolve maps raw references to files inside a repository.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultStatCacheSize bounds the number of cached stat results per tree.
const DefaultStatCacheSize = 16384

// DefaultIncludeDirs are searched for C-family includes after the source and root directories.
var DefaultIncludeDirs = []string{"include", "inc", "src", "lib"}

// ErrInvalidRoot is returned when the tree root is missing or not a directory.
var ErrInvalidRoot = errors.New("invalid repository root")

type entryKind uint8

const (
	entryMissing entryKind = iota
	entryFile
	entryDir
)

// Tree answers existence queries for slash-separated paths relative to a
// repository root. Results are cached for the lifetime of the tree.
// A Tree is safe for concurrent use.
type Tree struct {
	root        string
	includeDirs []string
	cache       *lru.Cache[string, entryKind]
}

// Option configures a Tree.
type Option func(*treeOptions)

type treeOptions struct {
	includeDirs []string
	cacheSize   int
}

// WithIncludeDirs replaces the C-family include search directories.
func WithIncludeDirs(dirs []string) Option {
	return func(o *treeOptions) {
		if dirs != nil {
			o.includeDirs = dirs
		}
	}
}

// WithStatCacheSize sets the stat cache capacity. Non-positive sizes keep the default.
func WithStatCacheSize(size int) Option {
	return func(o *treeOptions) {
		if size > 0 {
			o.cacheSize = size
		}
	}
}

// NewTree creates a tree rooted at root.
func NewTree(root string, opts ...Option) (*Tree, error) {
	o := treeOptions{includeDirs: DefaultIncludeDirs, cacheSize: DefaultStatCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, abs)
	}

	cache, err := lru.New[string, entryKind](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create stat cache: %w", err)
	}

	includeDirs := make([]string, 0, len(o.includeDirs))
	for _, dir := range o.includeDirs {
		if clean, ok := within(dir); ok {
			includeDirs = append(includeDirs, clean)
		}
	}

	return &Tree{root: abs, includeDirs: includeDirs, cache: cache}, nil
}

// Root returns the absolute root directory.
func (t *Tree) Root() string {
	return t.root
}

// IsFile reports whether rel names a regular file under the root.
func (t *Tree) IsFile(rel string) bool {
	return t.stat(rel) == entryFile
}

// IsDir reports whether rel names a directory under the root.
func (t *Tree) IsDir(rel string) bool {
	return t.stat(rel) == entryDir
}

func (t *Tree) stat(rel string) entryKind {
	clean, ok := within(rel)
	if !ok {
		return entryMissing
	}

	if kind, hit := t.cache.Get(clean); hit {
		return kind
	}

	kind := entryMissing

	info, err := os.Stat(filepath.Join(t.root, filepath.FromSlash(clean)))
	if err == nil {
		switch {
		case info.Mode().IsRegular():
			kind = entryFile
		case info.IsDir():
			kind = entryDir
		}
	}

	t.cache.Add(clean, kind)

	return kind
}

// firstFile returns the first candidate that is a file inside the root.
func (t *Tree) firstFile(candidates ...string) (string, bool) {
	for _, candidate := range candidates {
		clean, ok := within(candidate)
		if ok && t.IsFile(clean) {
			return clean, true
		}
	}

	return "", false
}

// within cleans a slash path relative to the root and rejects anything
// that escapes it. The root itself is ".".
func within(rel string) (string, bool) {
	if path.IsAbs(rel) {
		return "", false
	}

	clean := path.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}

	return clean, true
}

// parent returns the directory of a cleaned relative path.
func parent(rel string) string {
	return path.Dir(rel)
}
