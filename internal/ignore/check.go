package ignore

import (
	"strings"
)

// ShouldIgnore checks if a root-relative path is ignored under rules
func (m *IgnoreMatcher) ShouldIgnore(rules RuleSet, relativePath string, isDir bool) bool {
	if m == nil || m.disabled {
		return false
	}

	relativePath = cleanRel(relativePath)
	if relativePath == "" {
		return false // Never ignore the root itself
	}

	if m.ignoreGit && isPathInGitDir(relativePath, isDir) {
		m.logger.Debug("ignore.ShouldIgnore: Ignored %q (.git rule)", relativePath)
		return true
	}

	matcher := rules.Matcher()
	if matcher == nil {
		return false
	}

	// Directory-only patterns ("build/") apply when isDir is set
	if matcher.Matches(relativePath, isDir) {
		m.logger.Debug("ignore.ShouldIgnore: Ignored %q by gitignore rules", relativePath)
		return true
	}
	return false
}

// isPathInGitDir checks if a path is inside a .git directory
func isPathInGitDir(relativePath string, isDir bool) bool {
	parts := strings.Split(relativePath, "/")
	for i, part := range parts {
		if part == ".git" {
			if isDir || i < len(parts)-1 {
				return true
			}
		}
	}
	return false
}
