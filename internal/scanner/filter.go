package scanner

import (
	"path/filepath"
	"sort"
	"strings"
)

// ModelExtensions lists the extensions of model documents.
var ModelExtensions = []string{".yaml", ".yml", ".json"}

// DefaultExcludeDirs returns the directories never searched for models:
// tool state and common output folders.
func DefaultExcludeDirs() []string {
	return []string{
		".git",
		".idea",
		".dfmreport",
		"node_modules",
		"dist",
		"build",
		"out",
		"testdata",
	}
}

// FilterOptions defines criteria for including or excluding files.
type FilterOptions struct {
	// ExcludeDirs names directories whose content is skipped. Matching is per
	// path segment: "out" excludes "out/a" and "pkg/out/b", not "output/a".
	ExcludeDirs []string

	// IncludeExtensions lists the accepted extensions, compared without
	// regard to case. Empty accepts every file.
	IncludeExtensions []string
}

// Filter is a compiled FilterOptions.
type Filter struct {
	exclude map[string]struct{}
	exts    map[string]struct{}
}

// NewFilter compiles opts.
func NewFilter(opts FilterOptions) *Filter {
	f := &Filter{exclude: make(map[string]struct{}, len(opts.ExcludeDirs))}
	for _, d := range opts.ExcludeDirs {
		f.exclude[d] = struct{}{}
	}
	if len(opts.IncludeExtensions) > 0 {
		f.exts = make(map[string]struct{}, len(opts.IncludeExtensions))
		for _, ext := range opts.IncludeExtensions {
			f.exts[strings.ToLower(ext)] = struct{}{}
		}
	}
	return f
}

// Match reports whether the slash-separated path passes the filter.
func (f *Filter) Match(path string) bool {
	segments := strings.Split(path, "/")
	for _, dir := range segments[:len(segments)-1] {
		if _, ok := f.exclude[dir]; ok {
			return false
		}
	}
	if f.exts == nil {
		return true
	}
	_, ok := f.exts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// FilterFiles returns the paths matching opts, sorted.
func FilterFiles(paths []string, opts FilterOptions) []string {
	if len(paths) == 0 {
		return nil
	}
	f := NewFilter(opts)

	var filtered []string
	for _, path := range paths {
		if f.Match(path) {
			filtered = append(filtered, path)
		}
	}
	sort.Strings(filtered)
	return filtered
}
