// Package ignore discovers and composes nested .gitignore files
//
// Rules found in a directory's .gitignore are rewritten to be relative to
// the traversal root and appended after the rules of every ancestor, so a
// single last-match-wins evaluation over the composed list gives the same
// verdict git would give for the combined files.
package ignore

// NewFromConfig creates an IgnoreMatcher from a Config struct
func NewFromConfig(cfg Config) (*IgnoreMatcher, error) {
	options := []Option{
		WithDepth(cfg.Depth),
		WithGitDir(cfg.IgnoreGit),
		WithDisabled(cfg.Disabled),
	}

	if cfg.Logger != nil {
		options = append(options, WithLogger(cfg.Logger))
	}

	return New(cfg.RootDir, options...)
}

// CreateDisabledMatcher returns a matcher that ignores nothing
func CreateDisabledMatcher(rootDir string) *IgnoreMatcher {
	matcher, err := New(rootDir, WithDisabled(true))
	if err != nil {
		return &IgnoreMatcher{rootDir: rootDir, disabled: true}
	}
	return matcher
}
