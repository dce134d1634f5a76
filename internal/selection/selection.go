// Package selection flattens a walk into candidate files for picking or
// archiving
package selection

import (
	"fmt"
	"strings"

	"github.com/bethropolis/gitree/internal/ignore"
	"github.com/bethropolis/gitree/internal/utils"
	"github.com/bethropolis/gitree/internal/walker"
	gitignore "github.com/denormal/go-gitignore"
)

// Options controls which files become candidates
type Options struct {
	ShowAll      bool
	ExtraIgnores []string
	Include      []string // Keep only files matching one of these; empty keeps all
	Exclude      []string // Drop files matching one of these
	Logger       utils.Logger
}

// Picker lets a user choose among labels. A nil result means the user
// cancelled.
type Picker interface {
	Pick(title string, labels []string) ([]string, error)
}

// Filter applies include and exclude pattern lists to root-relative paths
type Filter struct {
	include gitignore.GitIgnore
	exclude gitignore.GitIgnore
}

// NewFilter compiles include and exclude lists. Empty lists are inert.
func NewFilter(root string, include, exclude []string) *Filter {
	return &Filter{
		include: compile(root, include),
		exclude: compile(root, exclude),
	}
}

func compile(root string, patterns []string) gitignore.GitIgnore {
	var lines []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	// Malformed lines are skipped rather than failing the whole list
	return gitignore.New(strings.NewReader(strings.Join(lines, "\n")), root, func(gitignore.Error) bool {
		return true
	})
}

// Keep reports whether a root-relative file path passes both lists
func (f *Filter) Keep(relPath string) bool {
	if f == nil {
		return true
	}
	if f.exclude != nil && matches(f.exclude, relPath) {
		return false
	}
	if f.include != nil && !matches(f.include, relPath) {
		return false
	}
	return true
}

// matches reports whether relPath, or any directory above it, is matched
func matches(gi gitignore.GitIgnore, relPath string) bool {
	parts := strings.Split(strings.Trim(relPath, "/"), "/")
	for i := 1; i < len(parts); i++ {
		if m := gi.Relative(strings.Join(parts[:i], "/"), true); m != nil && m.Ignore() {
			return true
		}
	}
	m := gi.Relative(strings.Join(parts, "/"), false)
	return m != nil && m.Ignore()
}

// Collect walks root without depth or item limits and returns the files
// that survive ignore rules and the include/exclude lists, in display order.
func Collect(root string, matcher *ignore.IgnoreMatcher, opts Options) ([]walker.Entry, error) {
	logger := utils.OrNoop(opts.Logger)

	tree, _, err := walker.Walk(root, matcher,
		walker.WithLogger(logger),
		walker.WithShowAll(opts.ShowAll),
		walker.WithExtraIgnores(opts.ExtraIgnores),
	)
	if err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}

	filter := NewFilter(tree.Path, opts.Include, opts.Exclude)
	var out []walker.Entry
	for _, f := range tree.Files() {
		if !filter.Keep(f.RelPath) {
			logger.Debug("selection: Filtered %q by include/exclude patterns", f.RelPath)
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// Select collects candidates and hands them to picker. It returns an empty
// whitelist when nothing matches or the user cancels.
func Select(root string, matcher *ignore.IgnoreMatcher, opts Options, picker Picker) (*walker.Whitelist, error) {
	logger := utils.OrNoop(opts.Logger)

	candidates, err := Collect(root, matcher, opts)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		logger.Info("No files found to select (check your include/exclude patterns).")
		return walker.NewWhitelist(), nil
	}

	labels := make([]string, len(candidates))
	byLabel := make(map[string]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.RelPath
		byLabel[c.RelPath] = c.Path
	}

	chosen, err := picker.Pick("Select files to include:", labels)
	if err != nil {
		return nil, fmt.Errorf("selection: picker failed: %w", err)
	}
	if chosen == nil {
		logger.Info("Selection cancelled.")
		return walker.NewWhitelist(), nil
	}

	wl := walker.NewWhitelist()
	for _, label := range chosen {
		if abs, ok := byLabel[label]; ok {
			wl.Add(abs)
		}
	}
	logger.Debug("selection: %d of %d file(s) selected", wl.Len(), len(candidates))
	return wl, nil
}
