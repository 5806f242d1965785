// Package keywords matches resume text against job or category keywords.
package keywords

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// contextRadius is the number of characters kept on each side of a match
	contextRadius = 40

	// locationBody marks a match outside any recognized section
	locationBody = "body"
)

// recommended sections for a missing keyword, by priority
var missingLocations = map[types.Priority]string{
	types.PriorityCritical:   "skills",
	types.PriorityImportant:  "experience",
	types.PriorityNiceToHave: "summary",
}

// Result is the outcome of keyword matching
type Result struct {
	Matched  []types.Keyword
	Missing  []types.Keyword
	Coverage float64 // matched / (matched + missing), 0 when there are no candidates
	Category string
	Source   string
}

// Matcher finds expected keywords in resume text. It is safe for concurrent use.
type Matcher struct {
	lib      *patterns.Library
	patterns map[string]*regexp.Regexp
}

// NewMatcher creates a Matcher and compiles a whole-word pattern for every
// vocabulary term and synonym in lib
func NewMatcher(lib *patterns.Library) *Matcher {
	m := &Matcher{lib: lib, patterns: make(map[string]*regexp.Regexp)}
	for _, term := range lib.Vocabulary() {
		m.add(term)
		for _, synonym := range lib.SynonymsOf(term) {
			m.add(synonym)
		}
	}
	return m
}

func (m *Matcher) add(term string) {
	term = parsing.NormalizeTerm(term)
	if term == "" || m.patterns[term] != nil {
		return
	}
	m.patterns[term] = wholeWord(term)
}

// wholeWord matches term where it is not glued to other word characters.
// '+' and '#' count as word characters so "c" never matches inside "c++".
func wholeWord(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^a-z0-9+#])(` + regexp.QuoteMeta(term) + `)(?:$|[^a-z0-9+#])`)
}

// find returns the byte offset of the first whole-word occurrence of term, or -1
func (m *Matcher) find(text, term string) int {
	re, ok := m.patterns[term]
	if !ok {
		re = wholeWord(term)
	}
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return -1
	}
	return loc[2]
}

// Match compares text against keywords taken from jobDescription when it
// yields any, otherwise against the default set of category. An empty or
// unknown category is detected from the text.
func (m *Matcher) Match(text, jobDescription, category string) Result {
	if _, ok := m.lib.CategoryKeywords(category); !ok {
		category = m.DetectCategory(text)
	}

	source := types.KeywordSourceJobDescription
	candidates := m.ExtractTerms(jobDescription)
	if len(candidates) == 0 {
		source = types.KeywordSourceCategoryDefault
		candidates, _ = m.lib.CategoryKeywords(category)
	}

	result := Result{
		Matched:  []types.Keyword{},
		Missing:  []types.Keyword{},
		Category: category,
		Source:   source,
	}

	seen := make(map[string]bool)
	for _, raw := range candidates {
		term := parsing.NormalizeTerm(raw)
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true

		if pos, variant := m.locate(text, term); pos >= 0 {
			result.Matched = append(result.Matched, types.Keyword{
				Term:     term,
				Location: m.sectionAt(text, pos),
				Context:  snippet(text, pos, len(variant)),
			})
			continue
		}

		priority := m.lib.PriorityOf(term)
		result.Missing = append(result.Missing, types.Keyword{
			Term:     term,
			Priority: priority,
			Location: missingLocations[priority],
			Synonyms: m.lib.SynonymsOf(term),
		})
	}

	sort.SliceStable(result.Missing, func(i, j int) bool {
		return result.Missing[i].Priority.Weight() > result.Missing[j].Priority.Weight()
	})

	if total := len(result.Matched) + len(result.Missing); total > 0 {
		result.Coverage = float64(len(result.Matched)) / float64(total)
	}
	return result
}

// locate finds the earliest occurrence of term or any of its synonyms
func (m *Matcher) locate(text, term string) (int, string) {
	best, bestVariant := -1, ""
	variants := append([]string{term}, m.lib.SynonymsOf(term)...)
	for _, variant := range variants {
		variant = parsing.NormalizeTerm(variant)
		if pos := m.find(text, variant); pos >= 0 && (best < 0 || pos < best) {
			best, bestVariant = pos, variant
		}
	}
	return best, bestVariant
}

// ExtractTerms returns the vocabulary terms present in a job description,
// ordered by first appearance
func (m *Matcher) ExtractTerms(jobDescription string) []string {
	if strings.TrimSpace(jobDescription) == "" {
		return nil
	}

	type hit struct {
		term string
		pos  int
	}
	var hits []hit
	for _, term := range m.lib.Vocabulary() {
		if pos := m.find(jobDescription, term); pos >= 0 {
			hits = append(hits, hit{term: term, pos: pos})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	terms := make([]string, 0, len(hits))
	for _, h := range hits {
		terms = append(terms, h.term)
	}
	return terms
}

// DetectCategory picks the category whose keywords occur most often in text.
// Ties go to the earlier category; no hits at all yields the default category.
func (m *Matcher) DetectCategory(text string) string {
	best, bestHits := m.lib.DefaultCategory(), 0
	for _, category := range m.lib.Categories {
		hits := 0
		for _, kw := range category.Keywords {
			if m.find(text, parsing.NormalizeTerm(kw)) >= 0 {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = category.Name, hits
		}
	}
	return best
}

// sectionAt returns the tag of the last section header starting before pos
func (m *Matcher) sectionAt(text string, pos int) string {
	location, start := locationBody, -1
	for _, rule := range m.lib.Sections {
		for _, span := range rule.FindAllIndex(text, -1) {
			if span[0] <= pos && span[0] > start {
				location, start = rule.Tag, span[0]
			}
		}
	}
	return location
}

func snippet(text string, pos, length int) string {
	start := max(0, pos-contextRadius)
	end := min(len(text), pos+length+contextRadius)
	return strings.Join(strings.Fields(strings.ToValidUTF8(text[start:end], "")), " ")
}
