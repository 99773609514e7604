// Package gitlib locates the git work tree a scan defaults to.
package gitlib

import (
	"errors"
	"fmt"
	"path/filepath"

	git2go "github.com/libgit2/git2go/v34"
)

// ErrNotRepository is returned when no repository encloses a path.
var ErrNotRepository = errors.New("not inside a git repository")

// ErrBareRepository is returned for repositories without a work tree.
var ErrBareRepository = errors.New("repository has no work tree")

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens a git repository at the given path.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Discover opens the repository enclosing start, walking up parent directories.
func Discover(start string) (*Repository, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", start, err)
	}

	gitDir, err := git2go.Discover(abs, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, abs)
	}

	return OpenRepository(gitDir)
}

// Path returns the repository path.
func (r *Repository) Path() string {
	return r.path
}

// Workdir returns the absolute work tree directory without a trailing separator.
func (r *Repository) Workdir() (string, error) {
	if r.repo.IsBare() {
		return "", fmt.Errorf("%w: %s", ErrBareRepository, r.path)
	}

	return filepath.Clean(r.repo.Workdir()), nil
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// DiscoverRoot returns the work tree enclosing start.
func DiscoverRoot(start string) (string, error) {
	repo, err := Discover(start)
	if err != nil {
		return "", err
	}
	defer repo.Free()

	return repo.Workdir()
}
