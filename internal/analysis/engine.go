// Package analysis runs every analyzer over one resume and assembles the result.
package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/keywords"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/quantification"
	"github.com/jonathan/resume-analyzer/internal/rewriting"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/seniority"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/jonathan/resume-analyzer/internal/validation"
)

// maxSuggestions caps how many units receive rewrite suggestions
const maxSuggestions = 5

// Engine holds the analyzers built from one pattern library. It keeps no
// per-run state and is safe for concurrent use.
type Engine struct {
	lib        *patterns.Library
	normalizer *parsing.Normalizer
	matcher    *keywords.Matcher
	auditor    *quantification.Auditor
	inferencer *seniority.Inferencer
	generator  *rewriting.Generator
}

// New creates an Engine bound to lib
func New(lib *patterns.Library) *Engine {
	return &Engine{
		lib:        lib,
		normalizer: parsing.NewNormalizer(lib),
		matcher:    keywords.NewMatcher(lib),
		auditor:    quantification.NewAuditor(lib),
		inferencer: seniority.NewInferencer(lib),
		generator:  rewriting.NewGenerator(lib),
	}
}

// Analyze runs the engine built from the embedded pattern library
func Analyze(in types.AnalysisInput) (*types.AnalysisResult, error) {
	return New(patterns.Default()).Analyze(in)
}

// Library returns the pattern library the engine was built from
func (e *Engine) Library() *patterns.Library {
	return e.lib
}

// Analyze produces the full assessment of in. Only malformed input is an
// error; empty or noisy text yields a low-signal result.
func (e *Engine) Analyze(in types.AnalysisInput) (*types.AnalysisResult, error) {
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	if err := e.checkCategory(in.Category); err != nil {
		return nil, err
	}

	text := in.Text
	units := e.normalizer.Segment(text)
	kw := e.matcher.Match(text, in.JobDescription, in.Category)
	format := validation.CheckFormat(e.lib, text)
	weak := validation.DetectWeakPhrases(e.lib, text)
	quant := e.auditor.Audit(units)

	breakdown := scoring.Combine(
		scoring.KeywordScore(kw.Coverage),
		scoring.FormatScore(format.Issues),
		scoring.CompletenessScore(scoring.Completeness{
			Sections:        format.Sections,
			Contact:         format.Contact,
			QuantifiedCount: quant.Quantified,
		}),
	)

	estimate := e.inferencer.Infer(seniority.Input{
		OverallScore:  breakdown.Overall,
		DeclaredYears: in.YearsOfExperience,
		ExpectedLevel: in.ExperienceLevel,
		Text:          text,
	})

	return &types.AnalysisResult{
		Score:                    breakdown,
		Grade:                    scoring.Grade(breakdown.Overall),
		Percentile:               scoring.Percentile(breakdown.Overall),
		Category:                 kw.Category,
		KeywordSource:            kw.Source,
		MatchedKeywords:          kw.Matched,
		MissingKeywords:          kw.Missing,
		Issues:                   format.Issues,
		Sections:                 format.Sections,
		Contact:                  format.Contact,
		WeakPhrases:              weak,
		UnquantifiedAchievements: quant.Findings,
		QuantifiedCount:          quant.Quantified,
		Seniority:                estimate,
		Suggestions:              e.suggest(units, quant.Findings),
		Stats: types.TextStats{
			WordCount: parsing.WordCount(text),
			UnitCount: len(units),
		},
		PatternVersion: e.lib.Version,
	}, nil
}

// suggest rewrites up to maxSuggestions units: those containing a weak
// phrase first, then unquantified achievements, each unit at most once
func (e *Engine) suggest(units []parsing.Unit, unquantified []types.MetricFinding) []types.BulletSuggestion {
	suggestions := []types.BulletSuggestion{}
	used := make(map[int]bool)

	add := func(u parsing.Unit, source string) {
		if len(suggestions) >= maxSuggestions || used[u.Index] {
			return
		}
		used[u.Index] = true
		suggestions = append(suggestions, e.generator.Suggest(u.Text, source))
	}

	for _, u := range units {
		if e.hasWeakPhrase(u.Text) {
			add(u, types.SourceWeakPhrase)
		}
	}
	for _, f := range unquantified {
		if f.SentenceIndex < len(units) {
			add(units[f.SentenceIndex], types.SourceUnquantified)
		}
	}
	return suggestions
}

func (e *Engine) hasWeakPhrase(s string) bool {
	for _, rule := range e.lib.WeakPhrases {
		if rule.MatchString(s) {
			return true
		}
	}
	return false
}

// checkInput rejects text that is not valid UTF-8 and fields outside their allowed values
func checkInput(in *types.AnalysisInput) error {
	if !utf8.ValidString(in.Text) || !utf8.ValidString(in.JobDescription) {
		return &InvalidInputError{Message: "text must be valid UTF-8"}
	}
	if err := in.Validate(); err != nil {
		return &InvalidInputError{Message: "field validation failed", Cause: err}
	}
	return nil
}

// checkCategory rejects a category the library does not declare
func (e *Engine) checkCategory(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := e.lib.CategoryKeywords(name); !ok {
		return &InvalidInputError{Message: fmt.Sprintf("unknown category %q (known: %s)", name, strings.Join(e.lib.CategoryNames(), ", "))}
	}
	return nil
}

// Suggest returns rewrite candidates for a single sentence outside of a
// full analysis
func (e *Engine) Suggest(sentence string) types.BulletSuggestion {
	return e.generator.Suggest(sentence, "")
}
