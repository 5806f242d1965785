// Package quantification finds achievement statements that lack a measurable result.
package quantification

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// maxFindings caps the unquantified findings returned per run
const maxFindings = 15

// Report summarizes quantification across all units
type Report struct {
	Findings   []types.MetricFinding `json:"findings"`
	Quantified int                   `json:"quantified"`
	WithVerb   int                   `json:"with_verb"`
	Density    float64               `json:"density"` // Quantified / WithVerb
}

// Auditor checks units for real metrics
type Auditor struct {
	lib *patterns.Library
}

// NewAuditor creates an Auditor bound to lib
func NewAuditor(lib *patterns.Library) *Auditor {
	return &Auditor{lib: lib}
}

// Audit examines each unit that contains an achievement verb. Units whose
// text still carries a metric after dates are stripped count as quantified;
// the rest become findings.
func (a *Auditor) Audit(units []parsing.Unit) Report {
	report := Report{Findings: []types.MetricFinding{}}

	for _, u := range units {
		if !a.HasAchievementVerb(u.Text) {
			continue
		}
		report.WithVerb++

		if a.HasRealMetric(u.Text) {
			report.Quantified++
			continue
		}
		if len(report.Findings) < maxFindings {
			report.Findings = append(report.Findings, types.MetricFinding{
				SentenceIndex:          u.Index,
				Line:                   u.Line,
				Text:                   u.Text,
				AchievementVerbPresent: true,
				HasRealMetric:          false,
			})
		}
	}

	if report.WithVerb > 0 {
		report.Density = float64(report.Quantified) / float64(report.WithVerb)
	}
	return report
}

// HasAchievementVerb reports whether s contains an achievement verb
func (a *Auditor) HasAchievementVerb(s string) bool {
	return a.lib.HasAchievementVerb(s)
}

// datePrepositions mark a following year-shaped number as a date
var datePrepositions = map[string]bool{
	"in": true, "since": true, "from": true, "during": true, "until": true, "circa": true, "of": true,
}

// StripDates removes years, month names and numeric dates from s. A
// year-shaped count followed by a unit ("2000 users") is kept unless a date
// preposition precedes it.
func (a *Auditor) StripDates(s string) string {
	kept := a.yearCounts(s)
	if len(kept) == 0 {
		return a.lib.DateNoise.Strip(s)
	}

	var b strings.Builder
	last := 0
	for _, span := range kept {
		b.WriteString(a.lib.DateNoise.Strip(s[last:span[0]]))
		b.WriteString(s[span[0]:span[1]])
		last = span[1]
	}
	b.WriteString(a.lib.DateNoise.Strip(s[last:]))
	return b.String()
}

// yearCounts returns the non-overlapping year-count spans of s in text order
func (a *Auditor) yearCounts(s string) [][]int {
	spans := a.lib.YearCounts.Spans(s)
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	var kept [][]int
	end := 0
	for _, span := range spans {
		if span[0] < end {
			continue
		}
		words := strings.Fields(s[:span[0]])
		if len(words) > 0 && datePrepositions[strings.ToLower(words[len(words)-1])] {
			continue
		}
		kept = append(kept, span)
		end = span[1]
	}
	return kept
}

// HasRealMetric reports whether s contains a metric once dates are removed
func (a *Auditor) HasRealMetric(s string) bool {
	return a.lib.Metrics.Any(a.StripDates(s))
}
