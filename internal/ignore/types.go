// Package ignore discovers and composes nested .gitignore files
package ignore

import (
	"sync"

	"github.com/bethropolis/gitree/internal/pattern"
	"github.com/bethropolis/gitree/internal/utils"
	"github.com/go-git/go-billy/v5"
)

// IgnoreMatcher reads .gitignore files below a root and answers whether a
// root-relative path is ignored under a composed RuleSet.
type IgnoreMatcher struct {
	fs billy.Filesystem

	// Configuration flags
	rootDir   string
	depth     int // negative means unlimited
	ignoreGit bool
	logger    utils.Logger
	disabled  bool
}

// Config holds configuration options for the ignore matcher
type Config struct {
	RootDir   string
	Depth     int
	IgnoreGit bool
	Logger    utils.Logger
	Disabled  bool
}

// Rule is one pattern line, already rewritten to be root-relative.
type Rule struct {
	Pattern string // without the leading '!'
	Negated bool
	Source  string // root-relative directory of the defining .gitignore
	Depth   int    // depth of Source from the root
}

// Line renders the rule back into gitignore syntax
func (r Rule) Line() string {
	if r.Negated {
		return "!" + r.Pattern
	}
	return r.Pattern
}

// RuleSet is an immutable, ordered sequence of rules. Parent rules always
// precede child rules.
type RuleSet struct {
	rules []Rule

	once     *sync.Once
	compiled **pattern.Matcher
}
