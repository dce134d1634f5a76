package walker

import (
	"path/filepath"
	"sort"
)

// Whitelist is a set of absolute file paths. A directory is covered when
// at least one member lies beneath it.
type Whitelist struct {
	files map[string]struct{}
	dirs  map[string]struct{}
}

// NewWhitelist builds a Whitelist from absolute file paths
func NewWhitelist(paths ...string) *Whitelist {
	wl := &Whitelist{
		files: make(map[string]struct{}, len(paths)),
		dirs:  make(map[string]struct{}),
	}
	for _, p := range paths {
		wl.Add(p)
	}
	return wl
}

// Add inserts an absolute file path and records all of its ancestors
func (wl *Whitelist) Add(path string) {
	path = filepath.Clean(path)
	wl.files[path] = struct{}{}
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if _, seen := wl.dirs[dir]; seen {
			break
		}
		wl.dirs[dir] = struct{}{}
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}
}

// Contains reports whether path is a member
func (wl *Whitelist) Contains(path string) bool {
	if wl == nil {
		return false
	}
	_, ok := wl.files[filepath.Clean(path)]
	return ok
}

// HasDescendant reports whether some member lies beneath dir
func (wl *Whitelist) HasDescendant(dir string) bool {
	if wl == nil {
		return false
	}
	_, ok := wl.dirs[filepath.Clean(dir)]
	return ok
}

// Len returns the number of member files
func (wl *Whitelist) Len() int {
	if wl == nil {
		return 0
	}
	return len(wl.files)
}

// Paths returns the members in sorted order
func (wl *Whitelist) Paths() []string {
	if wl == nil {
		return nil
	}
	out := make([]string, 0, len(wl.files))
	for p := range wl.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
