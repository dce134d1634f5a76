// Package pattern compiles gitignore-syntax lines into a reusable matcher
package pattern

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher evaluates root-relative paths against an ordered list of
// gitignore patterns. The last matching pattern decides the verdict.
type Matcher struct {
	matcher gitignore.Matcher
	count   int
}

// Compile builds a Matcher from gitignore lines. Blank lines and comments
// are skipped.
func Compile(lines []string) *Matcher {
	patterns := make([]gitignore.Pattern, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return &Matcher{
		matcher: gitignore.NewMatcher(patterns),
		count:   len(patterns),
	}
}

// Matches reports whether relPath is matched (and not re-included by a later
// negation). A trailing slash on relPath marks it as a directory.
func (m *Matcher) Matches(relPath string, isDir bool) bool {
	if m == nil || m.count == 0 {
		return false
	}
	if strings.HasSuffix(relPath, "/") {
		isDir = true
	}
	relPath = strings.Trim(relPath, "/")
	if relPath == "" || relPath == "." {
		return false
	}
	return m.matcher.Match(strings.Split(relPath, "/"), isDir)
}

// Len returns the number of compiled patterns
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return m.count
}
