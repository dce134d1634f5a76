package ignore

import (
	"sync"

	"github.com/bethropolis/gitree/internal/pattern"
)

// NewRuleSet builds a RuleSet holding a copy of rules
func NewRuleSet(rules ...Rule) RuleSet {
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return newRuleSet(owned)
}

func newRuleSet(rules []Rule) RuleSet {
	var compiled *pattern.Matcher
	return RuleSet{
		rules:    rules,
		once:     &sync.Once{},
		compiled: &compiled,
	}
}

// Append returns a new RuleSet with rules added after the receiver's rules.
// The receiver keeps its own backing array, so siblings extending the same
// parent never see each other's rules.
func (rs RuleSet) Append(rules ...Rule) RuleSet {
	if len(rules) == 0 {
		return rs
	}
	combined := make([]Rule, 0, len(rs.rules)+len(rules))
	combined = append(combined, rs.rules...)
	combined = append(combined, rules...)
	return newRuleSet(combined)
}

// Len returns the number of rules
func (rs RuleSet) Len() int {
	return len(rs.rules)
}

// Rules returns a copy of the ordered rules
func (rs RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Lines renders the rules in gitignore syntax, parent rules first
func (rs RuleSet) Lines() []string {
	lines := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		lines[i] = r.Line()
	}
	return lines
}

// Matcher returns the compiled pattern matcher for this rule set. It is
// compiled at most once per RuleSet.
func (rs RuleSet) Matcher() *pattern.Matcher {
	if len(rs.rules) == 0 {
		return nil
	}
	if rs.once == nil {
		return pattern.Compile(rs.Lines())
	}
	rs.once.Do(func() {
		*rs.compiled = pattern.Compile(rs.Lines())
	})
	return *rs.compiled
}
