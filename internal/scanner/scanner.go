// Package scanner finds model documents below a folder for batch runs.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Scanner provides access to the files below a root folder.
type Scanner struct {
	root string

	mu        sync.Mutex
	fileCache []string
}

// New creates a new Scanner for the given root folder.
func New(root string) *Scanner {
	return &Scanner{
		root: root,
	}
}

// Root returns the scanned folder.
func (s *Scanner) Root() string {
	return s.root
}

// Files returns all regular files below the root as slash-separated paths
// relative to it, caching the result for the instance lifetime.
func (s *Scanner) Files(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fileCache != nil {
		return s.fileCache, nil
	}

	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", s.root)
	}

	files := []string{}
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", s.root, err)
	}

	s.fileCache = files
	return s.fileCache, nil
}

// FilesFiltered returns files matching the filter options.
func (s *Scanner) FilesFiltered(ctx context.Context, opts FilterOptions) ([]string, error) {
	all, err := s.Files(ctx)
	if err != nil {
		return nil, err
	}
	return FilterFiles(all, opts), nil
}

// ModelFiles returns the model documents below the root, joined with it and
// sorted. Folders named in exclude are skipped along with the defaults.
func (s *Scanner) ModelFiles(ctx context.Context, exclude ...string) ([]string, error) {
	rel, err := s.FilesFiltered(ctx, FilterOptions{
		ExcludeDirs:       append(DefaultExcludeDirs(), exclude...),
		IncludeExtensions: ModelExtensions,
	})
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(rel))
	for _, p := range rel {
		paths = append(paths, filepath.Join(s.root, filepath.FromSlash(p)))
	}
	return paths, nil
}
