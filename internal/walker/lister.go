package walker

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/gitree/internal/ignore"
	"github.com/danwakefield/fnmatch"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Lister produces the filtered, sorted children of one directory
type Lister struct {
	rootDir string
	fs      billy.Filesystem
	matcher *ignore.IgnoreMatcher
	options WalkOptions
	tracker *SkippedTracker
}

// NewLister creates a Lister anchored at rootDir
func NewLister(rootDir string, matcher *ignore.IgnoreMatcher, opts ...Option) *Lister {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return newLister(rootDir, matcher, options, NewSkippedTracker(16))
}

func newLister(rootDir string, matcher *ignore.IgnoreMatcher, options WalkOptions, tracker *SkippedTracker) *Lister {
	fs := options.Filesystem
	if fs == nil {
		fs = osfs.New(rootDir)
	}
	if matcher == nil {
		matcher = ignore.CreateDisabledMatcher(rootDir)
	}
	return &Lister{
		rootDir: rootDir,
		fs:      fs,
		matcher: matcher,
		options: options,
		tracker: tracker,
	}
}

// Skipped returns the entries this Lister has dropped so far
func (l *Lister) Skipped() []SkippedItem {
	return l.tracker.Items()
}

// List returns the visible children of relDir under rules, sorted with
// directories first, and the number of entries cut by the max-items limit.
// Unreadable directories list as empty.
func (l *Lister) List(relDir string, rules ignore.RuleSet) ([]Entry, int) {
	relDir = strings.Trim(relDir, "/")
	fsDir := "."
	if relDir != "" {
		fsDir = filepath.FromSlash(relDir)
	}

	infos, err := l.fs.ReadDir(fsDir)
	if err != nil {
		reason := ReasonSkippedReadError
		if os.IsPermission(err) {
			reason = ReasonSkippedPermError
		}
		l.options.Logger.Warn("Walker: Cannot list %q, treating it as empty: %v", displayRel(relDir), err)
		l.tracker.Track(displayRel(relDir), reason, true)
		return nil, 0
	}

	depth := ignore.Depth(relDir) + 1
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		rel := name
		if relDir != "" {
			rel = path.Join(relDir, name)
		}
		isDir, symlink := l.kind(rel, info)

		if !l.options.ShowAll && strings.HasPrefix(name, ".") {
			l.tracker.Track(rel, ReasonIgnoredHidden, isDir)
			continue
		}
		if l.matcher.ShouldIgnore(rules, rel, isDir) {
			l.tracker.Track(rel, ReasonIgnoredRule, isDir)
			continue
		}
		if matchesExtra(rel, name, l.options.ExtraIgnores) {
			l.options.Logger.Debug("Walker: Ignored %q by extra pattern", rel)
			l.tracker.Track(rel, ReasonIgnoredExtra, isDir)
			continue
		}
		if l.options.NoFiles && !isDir {
			l.tracker.Track(rel, ReasonFilteredNoFiles, false)
			continue
		}

		abs := filepath.Join(l.rootDir, filepath.FromSlash(rel))
		if wl := l.options.Whitelist; wl != nil {
			if (isDir && !wl.HasDescendant(abs)) || (!isDir && !wl.Contains(abs)) {
				l.tracker.Track(rel, ReasonFilteredWhitelist, isDir)
				continue
			}
		}

		entries = append(entries, Entry{
			Path:    abs,
			RelPath: rel,
			Name:    name,
			IsDir:   isDir,
			Symlink: symlink,
			Depth:   depth,
		})
	}

	SortEntries(entries)

	if limit := l.options.MaxItems; limit > 0 && len(entries) > limit {
		elided := len(entries) - limit
		for _, e := range entries[limit:] {
			l.tracker.Track(e.RelPath, ReasonTruncated, e.IsDir)
		}
		return entries[:limit], elided
	}
	return entries, 0
}

// kind resolves symlinks to the kind of their target. Broken links are
// reported as files.
func (l *Lister) kind(rel string, info os.FileInfo) (isDir bool, symlink bool) {
	if info.Mode()&os.ModeSymlink == 0 {
		return info.IsDir(), false
	}
	target, err := l.fs.Stat(filepath.FromSlash(rel))
	if err != nil {
		return false, true
	}
	return target.IsDir(), true
}

// SortEntries orders entries directories first, then by case-insensitive
// name. Names equal under folding keep a stable byte order.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}

// matchesExtra checks the relative path and the bare name against each
// pattern. Matching is case-sensitive and '*' also matches '/'.
func matchesExtra(rel, name string, patterns []string) bool {
	for _, p := range patterns {
		if fnmatch.Match(p, rel, 0) || fnmatch.Match(p, name, 0) {
			return true
		}
	}
	return false
}

func displayRel(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
