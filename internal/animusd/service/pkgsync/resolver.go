package pkgsync

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver decides whether a declared plugin package is available to the
// runtime.
type Resolver interface {
	Resolve(pkg string) bool
}

// FactoryResolver resolves against the compiled-in plugin factory table.
type FactoryResolver struct {
	names map[string]bool
}

// NewFactoryResolver builds a resolver over the given factory names.
func NewFactoryResolver(names []string) *FactoryResolver {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return &FactoryResolver{names: set}
}

func (r *FactoryResolver) Resolve(pkg string) bool {
	return r.names[pkg]
}

// PathResolver resolves against on-disk plugin bundles: a package resolves
// when a directory named after it (slashes flattened) exists under any of
// the search paths and carries a plugin.json manifest.
type PathResolver struct {
	searchPaths []string
}

// NewPathResolver builds a resolver over the given search directories.
func NewPathResolver(searchPaths []string) *PathResolver {
	return &PathResolver{searchPaths: searchPaths}
}

func (r *PathResolver) Resolve(pkg string) bool {
	dir := strings.ReplaceAll(pkg, "/", "__")
	for _, base := range r.searchPaths {
		manifest := filepath.Join(base, dir, "plugin.json")
		if st, err := os.Stat(manifest); err == nil && !st.IsDir() {
			return true
		}
	}
	return false
}

// MultiResolver resolves through its children in order.
type MultiResolver []Resolver

func (m MultiResolver) Resolve(pkg string) bool {
	for _, r := range m {
		if r.Resolve(pkg) {
			return true
		}
	}
	return false
}
