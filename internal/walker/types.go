// Package walker lists and recursively walks a directory tree
package walker

import (
	"errors"
	"sync"
)

var (
	// ErrRootNotFound is returned when the traversal root does not exist
	ErrRootNotFound = errors.New("root directory not found")
	// ErrNotDirectory is returned when the traversal root is not a directory
	ErrNotDirectory = errors.New("root path is not a directory")
)

// Entry is one filesystem node seen during a listing
type Entry struct {
	Path    string `json:"-"`    // Absolute, host separators
	RelPath string `json:"path"` // Root-relative, forward slashes
	Name    string `json:"name"`
	IsDir   bool   `json:"is_dir"`
	Symlink bool   `json:"symlink,omitempty"`
	Depth   int    `json:"depth"` // Children of the root have depth 1
}

// SkippedReason clarifies why a file/directory was not shown.
type SkippedReason string

const (
	ReasonIgnoredHidden     SkippedReason = "Ignored (Hidden Rule)"
	ReasonIgnoredRule       SkippedReason = "Ignored (Gitignore Rule)"
	ReasonIgnoredExtra      SkippedReason = "Ignored (Extra Ignore Pattern)"
	ReasonFilteredNoFiles   SkippedReason = "Filtered (Directories Only)"
	ReasonFilteredWhitelist SkippedReason = "Filtered (Not Selected)"
	ReasonTruncated         SkippedReason = "Truncated (Max Items)"
	ReasonSkippedPermError  SkippedReason = "Skipped (Permission Error)"
	ReasonSkippedReadError  SkippedReason = "Skipped (Read Error)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker is a struct to track skipped items
type SkippedTracker struct {
	items []SkippedItem
	mutex sync.Mutex
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns a copy of the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	out := make([]SkippedItem, len(st.items))
	copy(out, st.items)
	return out
}
