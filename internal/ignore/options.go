package ignore

import (
	"github.com/bethropolis/gitree/internal/utils"
	"github.com/go-git/go-billy/v5"
)

// Option functions for configuration
type Option func(*IgnoreMatcher)

// WithDepth limits how deep below the root .gitignore files are read.
// A negative depth means no limit.
func WithDepth(depth int) Option {
	return func(m *IgnoreMatcher) {
		m.depth = depth
	}
}

// WithGitDir always hides .git directories, independent of .gitignore rules
func WithGitDir(ignore bool) Option {
	return func(m *IgnoreMatcher) {
		m.ignoreGit = ignore
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(m *IgnoreMatcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithDisabled(disabled bool) Option {
	return func(m *IgnoreMatcher) {
		m.disabled = disabled
	}
}

// WithFilesystem reads .gitignore files through fs instead of the OS
// filesystem rooted at rootDir. Paths given to fs are root-relative.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(m *IgnoreMatcher) {
		if fs != nil {
			m.fs = fs
		}
	}
}
