package patterns

import (
	"fmt"
	"regexp"
)

// PatternRule is a single weighted, tagged regular expression.
// Patterns are compiled case-insensitively when the library is loaded.
type PatternRule struct {
	Pattern string `yaml:"pattern"`
	Weight  int    `yaml:"weight"`
	Tag     string `yaml:"tag"`

	re *regexp.Regexp
}

func (r *PatternRule) compile() error {
	re, err := regexp.Compile("(?i)" + r.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", r.Pattern, err)
	}
	r.re = re
	return nil
}

// MatchString reports whether the rule matches anywhere in s
func (r PatternRule) MatchString(s string) bool {
	return r.re != nil && r.re.MatchString(s)
}

// FindAllIndex returns up to n match spans in s (all when n < 0)
func (r PatternRule) FindAllIndex(s string, n int) [][]int {
	if r.re == nil {
		return nil
	}
	return r.re.FindAllStringIndex(s, n)
}

// CountMatches returns the number of non-overlapping matches in s
func (r PatternRule) CountMatches(s string) int {
	return len(r.FindAllIndex(s, -1))
}

// ReplaceAll replaces every match in s with repl
func (r PatternRule) ReplaceAll(s, repl string) string {
	if r.re == nil {
		return s
	}
	return r.re.ReplaceAllString(s, repl)
}

// RuleSet is an ordered list of rules
type RuleSet []PatternRule

// Any reports whether any rule in the set matches s
func (rs RuleSet) Any(s string) bool {
	for _, r := range rs {
		if r.MatchString(s) {
			return true
		}
	}
	return false
}

// Score sums weight times match count across the set
func (rs RuleSet) Score(s string) int {
	total := 0
	for _, r := range rs {
		total += r.Weight * r.CountMatches(s)
	}
	return total
}

// Spans returns every match span of every rule in s, in rule order
func (rs RuleSet) Spans(s string) [][]int {
	var spans [][]int
	for _, r := range rs {
		spans = append(spans, r.FindAllIndex(s, -1)...)
	}
	return spans
}

// Strip replaces every match of every rule, in order, with a single space
func (rs RuleSet) Strip(s string) string {
	for _, r := range rs {
		s = r.ReplaceAll(s, " ")
	}
	return s
}

func (rs RuleSet) compile(set string) error {
	for i := range rs {
		if err := rs[i].compile(); err != nil {
			return &LoadError{Message: fmt.Sprintf("%s[%d]", set, i), Cause: err}
		}
	}
	return nil
}
