// Package walker lists and recursively walks a directory tree
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bethropolis/gitree/internal/ignore"
)

// Walk builds the visible tree below rootDir. It fails before reading
// anything if rootDir is missing or not a directory; every other error is
// absorbed and reported through the returned skipped items.
func Walk(rootDir string, matcher *ignore.IgnoreMatcher, opts ...Option) (*Node, []SkippedItem, error) {
	startTime := time.Now()

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, nil, fmt.Errorf("walker: failed to get absolute path for '%s': %w", rootDir, err)
	}

	info, err := os.Stat(absRootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("walker: %w: %s", ErrRootNotFound, absRootDir)
		}
		return nil, nil, fmt.Errorf("walker: could not access root directory '%s': %w", absRootDir, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("walker: %w: %s", ErrNotDirectory, absRootDir)
	}

	if matcher == nil {
		matcher = ignore.CreateDisabledMatcher(absRootDir)
	}

	tracker := NewSkippedTracker(100)
	w := &treeWalker{
		lister:  newLister(absRootDir, matcher, options, tracker),
		matcher: matcher,
		options: options,
		tracker: tracker,
	}

	options.Logger.Debug("walker.Walk started. Root: %s, MaxDepth: %d, ShowAll: %v", absRootDir, options.MaxDepth, options.ShowAll)

	root := &Node{Entry: Entry{
		Path:  absRootDir,
		Name:  filepath.Base(absRootDir),
		IsDir: true,
	}}
	if w.shouldExpand(0) {
		w.expand(root, matcher.RootRules())
	}

	options.Logger.Debug("Walker: Total walk time: %s", time.Since(startTime))
	return root, tracker.Items(), nil
}

type treeWalker struct {
	lister  *Lister
	matcher *ignore.IgnoreMatcher
	options WalkOptions
	tracker *SkippedTracker
}

// shouldExpand reports whether a directory at depth has its children listed
func (w *treeWalker) shouldExpand(depth int) bool {
	return w.options.MaxDepth < 0 || depth < w.options.MaxDepth
}

// expand lists node's children under rules, which already include node's
// own .gitignore, and recurses into child directories.
func (w *treeWalker) expand(node *Node, rules ignore.RuleSet) {
	node.Expanded = true

	entries, elided := w.lister.List(node.RelPath, rules)
	node.Elided = elided

	for _, entry := range entries {
		child := &Node{Entry: entry}

		if entry.IsDir && !entry.Symlink && w.shouldExpand(entry.Depth) {
			w.options.Logger.Debug("Walker: Descending into directory %q", entry.RelPath)
			w.expand(child, w.matcher.Extend(rules, entry.RelPath))

			if w.prunable(child) {
				w.tracker.Track(entry.RelPath, ReasonFilteredWhitelist, true)
				continue
			}
		}

		node.Children = append(node.Children, child)
	}
}

// prunable reports whether an expanded directory is left without any
// selected file below it. Files are never listed under NoFiles, so the
// whitelist itself decides there.
func (w *treeWalker) prunable(dir *Node) bool {
	wl := w.options.Whitelist
	if wl == nil {
		return false
	}
	if w.options.NoFiles {
		return !wl.HasDescendant(dir.Path)
	}
	return len(dir.Children) == 0
}
