// Package fileset enumerates the repository files a scan considers.
package fileset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludeDirs are directory names never descended into.
var DefaultExcludeDirs = []string{".git", "node_modules", ".venv", "venv", "build", "__pycache__"}

// Sentinel errors for enumeration.
var (
	ErrRootNotFound   = errors.New("repository root not found")
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

// Options filters the enumerated files.
type Options struct {
	// Include keeps only files matching at least one pattern. Empty keeps everything.
	Include []string
	// Exclude drops matching files and prunes matching directories.
	Exclude []string
	// ExcludeDirs are directory names skipped at any depth, added to DefaultExcludeDirs.
	ExcludeDirs []string
}

// Validate checks every pattern for syntax errors.
func (o Options) Validate() error {
	for _, pattern := range slices.Concat(o.Include, o.Exclude) {
		if !doublestar.ValidatePattern(strings.TrimPrefix(pattern, "/")) {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
	}

	return nil
}

// List walks root and returns sorted, slash-separated paths relative to it.
// Hidden directories and symlinks are skipped; unreadable entries are ignored.
func List(ctx context.Context, root string, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootNotFound, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}

	skipDirs := make(map[string]struct{})
	for _, name := range slices.Concat(DefaultExcludeDirs, opts.ExcludeDirs, bareNames(opts.Exclude)) {
		skipDirs[name] = struct{}{}
	}

	var files []string

	err = filepath.WalkDir(root, func(full string, entry fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		skip, err := shouldSkip(full, entry, walkErr)
		if skip || err != nil {
			return err
		}

		rel, err := filepath.Rel(root, full)
		if err != nil {
			return fmt.Errorf("relative path of %s: %w", full, err)
		}

		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			return visitDir(rel, entry.Name(), skipDirs, opts.Exclude)
		}

		if keepFile(rel, opts) {
			files = append(files, rel)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

func shouldSkip(full string, entry fs.DirEntry, walkErr error) (bool, error) {
	if walkErr != nil {
		if errors.Is(walkErr, fs.ErrPermission) || errors.Is(walkErr, fs.ErrNotExist) {
			if entry != nil && entry.IsDir() {
				return true, filepath.SkipDir
			}

			return true, nil
		}

		return false, fmt.Errorf("visit %s: %w", full, walkErr)
	}

	if entry == nil || entry.Type()&fs.ModeSymlink != 0 {
		return true, nil
	}

	return !entry.IsDir() && !entry.Type().IsRegular(), nil
}

func visitDir(rel, name string, skipDirs map[string]struct{}, exclude []string) error {
	if rel == "." {
		return nil
	}

	if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
		return filepath.SkipDir
	}

	if matchAny(exclude, rel) || matchAny(exclude, rel+"/*") {
		return filepath.SkipDir
	}

	return nil
}

func keepFile(rel string, opts Options) bool {
	name := path.Base(rel)

	if len(opts.Include) > 0 && !matchAny(opts.Include, rel) && !matchAny(opts.Include, name) {
		return false
	}

	return !matchAny(opts.Exclude, rel) && !matchAny(opts.Exclude, name)
}

// Match reports whether pattern matches the slash path rel. Relative patterns
// are anchored at the right, so "*.py" matches "a/b.py"; a leading "/"
// anchors at the root. "**" spans directories.
func Match(pattern, rel string) bool {
	if anchored, ok := strings.CutPrefix(pattern, "/"); ok {
		return doublestar.MatchUnvalidated(anchored, rel)
	}

	return doublestar.MatchUnvalidated(pattern, rel) || doublestar.MatchUnvalidated("**/"+pattern, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if Match(pattern, rel) {
			return true
		}
	}

	return false
}

// bareNames returns patterns that are plain directory names.
func bareNames(patterns []string) []string {
	var names []string

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "/*?[{") {
			names = append(names, pattern)
		}
	}

	return names
}
