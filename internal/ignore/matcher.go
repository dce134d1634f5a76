package ignore

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bethropolis/gitree/internal/utils"
	"github.com/go-git/go-billy/v5/osfs"
)

// GitignoreFile is the name of the per-directory ignore file
const GitignoreFile = ".gitignore"

// New creates and initializes an IgnoreMatcher
func New(rootDir string, opts ...Option) (*IgnoreMatcher, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	matcher := &IgnoreMatcher{
		rootDir: absRootDir,
		depth:   -1,
		logger:  &utils.NoopLogger{},
	}

	for _, opt := range opts {
		opt(matcher)
	}

	if matcher.fs == nil {
		matcher.fs = osfs.New(absRootDir)
	}

	matcher.logger.Debug("ignore.New: Initializing for root: %s", matcher.rootDir)
	matcher.logger.Debug("ignore.New: disabled=%v, depth=%d, ignoreGit=%v", matcher.disabled, matcher.depth, matcher.ignoreGit)

	return matcher, nil
}

// RootDir returns the absolute root the matcher is anchored at
func (m *IgnoreMatcher) RootDir() string {
	return m.rootDir
}

// Enabled reports whether .gitignore files are read at all
func (m *IgnoreMatcher) Enabled() bool {
	return m != nil && !m.disabled
}

// WithinDepth reports whether a .gitignore in relDir would be read.
// The root itself has depth 0.
func (m *IgnoreMatcher) WithinDepth(relDir string) bool {
	if m == nil {
		return false
	}
	if m.depth < 0 {
		return true
	}
	return Depth(relDir) <= m.depth
}

// RootRules returns the rule set contributed by the root's own .gitignore
func (m *IgnoreMatcher) RootRules() RuleSet {
	return m.Extend(RuleSet{}, "")
}

// Extend returns parent followed by the rules of relDir/.gitignore. The
// parent is never modified.
func (m *IgnoreMatcher) Extend(parent RuleSet, relDir string) RuleSet {
	if !m.Enabled() || !m.WithinDepth(relDir) {
		return parent
	}

	relDir = cleanRel(relDir)
	lines := m.readGitignore(relDir)
	if len(lines) == 0 {
		return parent
	}

	own := Rewrite(lines, relDir)
	if len(own) == 0 {
		return parent
	}
	m.logger.Debug("ignore.Extend: %d rule(s) from %q", len(own), path.Join(relDir, GitignoreFile))
	return parent.Append(own...)
}

// Rewrite turns raw .gitignore lines from relDir into root-relative rules.
// Root lines are kept as written. Below the root a leading '/' is dropped
// before the directory prefix is added. Negation stays outside the prefix.
func Rewrite(lines []string, relDir string) []Rule {
	relDir = cleanRel(relDir)
	prefix := ""
	if relDir != "" {
		prefix = relDir + "/"
	}
	depth := Depth(relDir)

	rules := make([]Rule, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		negated := strings.HasPrefix(line, "!")
		if negated {
			line = line[1:]
		}
		if prefix != "" {
			// The directory prefix anchors the pattern on its own
			line = strings.TrimLeft(line, "/")
		}
		if line == "" || line == "/" {
			continue
		}
		rules = append(rules, Rule{
			Pattern: prefix + line,
			Negated: negated,
			Source:  relDir,
			Depth:   depth,
		})
	}
	return rules
}

// Depth returns the number of path components in a root-relative path
func Depth(relPath string) int {
	relPath = cleanRel(relPath)
	if relPath == "" {
		return 0
	}
	return strings.Count(relPath, "/") + 1
}

func cleanRel(relPath string) string {
	relPath = strings.Trim(filepath.ToSlash(relPath), "/")
	if relPath == "." {
		return ""
	}
	return relPath
}
