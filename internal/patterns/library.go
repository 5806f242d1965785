// Package patterns provides the rule data that drives resume analysis.
// Rules are stored as YAML, embedded at compile time, and compiled once per load.
package patterns

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-analyzer/internal/types"
)

//go:embed library.yaml
var defaultLibraryData []byte

// GeneralContext is the context used when no domain context scores
const GeneralContext = "general"

// WeakPhrase is a rule flagging language that understates impact
type WeakPhrase struct {
	PatternRule `yaml:",inline"`
	Phrase      string   `yaml:"phrase"`
	Reason      string   `yaml:"reason"`
	Fixes       []string `yaml:"fixes"`
}

// Label returns the canonical phrase of the rule, or the lowercased match
// when the rule declares none
func (w WeakPhrase) Label(match string) string {
	if w.Phrase != "" {
		return w.Phrase
	}
	return strings.ToLower(match)
}

// MetricClauses holds one text per suggestion type
type MetricClauses struct {
	Volume     string `yaml:"volume"`
	Efficiency string `yaml:"efficiency"`
	Money      string `yaml:"money"`
}

// For returns the clause for the given suggestion type
func (m MetricClauses) For(t types.SuggestionType) string {
	switch t {
	case types.SuggestionVolume:
		return m.Volume
	case types.SuggestionEfficiency:
		return m.Efficiency
	case types.SuggestionMoney:
		return m.Money
	default:
		return ""
	}
}

// Context is a work domain recognized by weighted rules, listed highest weight first
type Context struct {
	Name    string        `yaml:"name"`
	Rules   RuleSet       `yaml:"rules"`
	Metrics MetricClauses `yaml:"metrics"`
}

// Category is a named default keyword set
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// PriorityTiers lists the terms that rank above nice-to-have
type PriorityTiers struct {
	Critical  []string `yaml:"critical"`
	Important []string `yaml:"important"`
}

// Library is the complete rule set. It must not be modified after Load;
// every analysis component reads it concurrently.
type Library struct {
	Version          string              `yaml:"version"`
	WeakPhrases      []WeakPhrase        `yaml:"weak_phrases"`
	AchievementVerbs []string            `yaml:"achievement_verbs"`
	SenioritySignals RuleSet             `yaml:"seniority_signals"`
	Buzzwords        []string            `yaml:"buzzwords"`
	Metrics          RuleSet             `yaml:"metrics"`
	DateNoise        RuleSet             `yaml:"date_noise"`
	YearCounts       RuleSet             `yaml:"year_counts"`
	PersonalInfo     RuleSet             `yaml:"personal_info"`
	LinkedIn         string              `yaml:"linkedin"`
	Sections         RuleSet             `yaml:"sections"`
	Technologies     map[string]string   `yaml:"technologies"`
	CommonWordTechs  []string            `yaml:"common_word_technologies"`
	Contexts         []Context           `yaml:"contexts"`
	GeneralMetrics   MetricClauses       `yaml:"general_metrics"`
	Explanations     MetricClauses       `yaml:"explanations"`
	Categories       []Category          `yaml:"categories"`
	Synonyms         map[string][]string `yaml:"synonyms"`
	Priorities       PriorityTiers       `yaml:"priorities"`

	achievementRe *regexp.Regexp
	linkedInRe    *regexp.Regexp
	buzzwordRules RuleSet
	techRules     RuleSet
	commonWords   map[string]bool
	tiers         map[string]types.Priority
	vocabulary    []string
}

var (
	defaultOnce    sync.Once
	defaultLibrary *Library
)

// Default returns the embedded library. It panics if the embedded data is invalid,
// which can only happen through a broken build.
func Default() *Library {
	defaultOnce.Do(func() {
		lib, err := Load(defaultLibraryData)
		if err != nil {
			panic(fmt.Sprintf("failed to load embedded pattern library: %v", err))
		}
		defaultLibrary = lib
	})
	return defaultLibrary
}

// LoadFile loads a library from a YAML file on disk
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return Load(data)
}

// Load parses and compiles a YAML pattern library
func Load(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}

	if strings.TrimSpace(lib.Version) == "" {
		return nil, &LoadError{Message: "version is required"}
	}
	if len(lib.Categories) == 0 {
		return nil, &LoadError{Message: "at least one keyword category is required"}
	}

	for i := range lib.WeakPhrases {
		if err := lib.WeakPhrases[i].compile(); err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("weak_phrases[%d]", i), Cause: err}
		}
	}
	sets := []struct {
		name  string
		rules RuleSet
	}{
		{"seniority_signals", lib.SenioritySignals},
		{"metrics", lib.Metrics},
		{"date_noise", lib.DateNoise},
		{"year_counts", lib.YearCounts},
		{"personal_info", lib.PersonalInfo},
		{"sections", lib.Sections},
	}
	for _, set := range sets {
		if err := set.rules.compile(set.name); err != nil {
			return nil, err
		}
	}
	for i := range lib.Contexts {
		if lib.Contexts[i].Name == "" {
			return nil, &LoadError{Message: fmt.Sprintf("contexts[%d] has no name", i)}
		}
		if err := lib.Contexts[i].Rules.compile("contexts." + lib.Contexts[i].Name); err != nil {
			return nil, err
		}
	}

	if err := lib.buildDerived(); err != nil {
		return nil, err
	}
	return &lib, nil
}

func (l *Library) buildDerived() error {
	if len(l.AchievementVerbs) > 0 {
		re, err := regexp.Compile(`(?i)\b(?:` + alternation(l.AchievementVerbs) + `)\b`)
		if err != nil {
			return &LoadError{Message: "achievement_verbs", Cause: err}
		}
		l.achievementRe = re
	}

	if l.LinkedIn != "" {
		re, err := regexp.Compile("(?i)" + l.LinkedIn)
		if err != nil {
			return &LoadError{Message: "linkedin", Cause: err}
		}
		l.linkedInRe = re
	}

	l.buzzwordRules = make(RuleSet, 0, len(l.Buzzwords))
	for _, word := range l.Buzzwords {
		rule := PatternRule{Pattern: `\b` + regexp.QuoteMeta(word) + `\b`, Weight: 1, Tag: word}
		if err := rule.compile(); err != nil {
			return &LoadError{Message: "buzzwords", Cause: err}
		}
		l.buzzwordRules = append(l.buzzwordRules, rule)
	}

	keys := make([]string, 0, len(l.Technologies))
	for key := range l.Technologies {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	l.techRules = make(RuleSet, 0, len(keys))
	for _, key := range keys {
		rule := PatternRule{Pattern: `\b` + regexp.QuoteMeta(key) + `\b`, Weight: 1, Tag: l.Technologies[key]}
		if err := rule.compile(); err != nil {
			return &LoadError{Message: "technologies", Cause: err}
		}
		l.techRules = append(l.techRules, rule)
	}

	l.commonWords = make(map[string]bool, len(l.CommonWordTechs))
	for _, word := range l.CommonWordTechs {
		l.commonWords[strings.ToLower(strings.TrimSpace(word))] = true
	}

	l.tiers = make(map[string]types.Priority)
	for _, term := range l.Priorities.Important {
		l.tiers[strings.ToLower(term)] = types.PriorityImportant
	}
	for _, term := range l.Priorities.Critical {
		l.tiers[strings.ToLower(term)] = types.PriorityCritical
	}

	seen := make(map[string]bool)
	for _, category := range l.Categories {
		for _, kw := range category.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && !seen[kw] {
				seen[kw] = true
				l.vocabulary = append(l.vocabulary, kw)
			}
		}
	}
	return nil
}

func alternation(words []string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
	}
	return strings.Join(quoted, "|")
}

// HasAchievementVerb reports whether s contains an achievement verb
func (l *Library) HasAchievementVerb(s string) bool {
	return l.achievementRe != nil && l.achievementRe.MatchString(s)
}

// HasLinkedIn reports whether s contains a LinkedIn profile reference
func (l *Library) HasLinkedIn(s string) bool {
	return l.linkedInRe != nil && l.linkedInRe.MatchString(s)
}

// BuzzwordRules returns the whole-word rules built from the buzzword list
func (l *Library) BuzzwordRules() RuleSet {
	return l.buzzwordRules
}

// TechnologyRules returns one whole-word rule per technology, tagged with its
// display name, sorted by key
func (l *Library) TechnologyRules() RuleSet {
	return l.techRules
}

// IsCommonWord reports whether a technology key doubles as an everyday word
func (l *Library) IsCommonWord(term string) bool {
	return l.commonWords[strings.ToLower(term)]
}

// PriorityOf returns the tier of a term; unlisted terms are nice-to-have
func (l *Library) PriorityOf(term string) types.Priority {
	if p, ok := l.tiers[strings.ToLower(strings.TrimSpace(term))]; ok {
		return p
	}
	return types.PriorityNiceToHave
}

// Vocabulary returns every category keyword once, in category then list order
func (l *Library) Vocabulary() []string {
	return l.vocabulary
}

// SynonymsOf returns the synonyms registered for term
func (l *Library) SynonymsOf(term string) []string {
	return l.Synonyms[strings.ToLower(term)]
}

// DefaultCategory is the first declared category, used when nothing else applies
func (l *Library) DefaultCategory() string {
	return l.Categories[0].Name
}

// CategoryKeywords returns the keyword list of a named category
func (l *Library) CategoryKeywords(name string) ([]string, bool) {
	for _, c := range l.Categories {
		if strings.EqualFold(c.Name, name) {
			return c.Keywords, true
		}
	}
	return nil, false
}

// CategoryNames returns category names in declaration order
func (l *Library) CategoryNames() []string {
	names := make([]string, 0, len(l.Categories))
	for _, c := range l.Categories {
		names = append(names, c.Name)
	}
	return names
}

// ContextMetrics returns the default metric clauses for a context, falling back to general
func (l *Library) ContextMetrics(name string) MetricClauses {
	for _, c := range l.Contexts {
		if c.Name == name {
			return c.Metrics
		}
	}
	return l.GeneralMetrics
}

// Technology returns the display name of a known technology
func (l *Library) Technology(term string) (string, bool) {
	name, ok := l.Technologies[strings.ToLower(term)]
	return name, ok
}
