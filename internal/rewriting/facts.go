package rewriting

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/quantification"
)

var timeframeRe = regexp.MustCompile(`(?i)\b(?:in|within|over|under)\s+(?:\d+|one|two|three|four|six|twelve)\s+(?:days?|weeks?|months?|quarters?|years?)\b`)

// Facts are the details already present in a sentence. Suggestions are
// built from these and never invent a technology, verb or number of their own.
type Facts struct {
	Verb         string                  `json:"verb,omitempty"`
	Remainder    string                  `json:"remainder"`
	Technologies []string                `json:"technologies,omitempty"`
	Metrics      []quantification.Metric `json:"metrics,omitempty"`
	TeamSize     int                     `json:"team_size,omitempty"`
	Stakeholders int                     `json:"stakeholders,omitempty"`
	Timeframe    string                  `json:"timeframe,omitempty"`
}

// Prefix is the user's own phrasing that every candidate starts with
func (f Facts) Prefix() string {
	if f.Verb == "" {
		return f.Remainder
	}
	return strings.TrimSpace(f.Verb + " " + f.Remainder)
}

// metric returns the first metric of the given kind
func (f Facts) metric(kind string) (quantification.Metric, bool) {
	for _, m := range f.Metrics {
		if m.Kind == kind {
			return m, true
		}
	}
	return quantification.Metric{}, false
}

// ExtractFacts reads the leading verb, technologies, metrics, team size and
// timeframe from a sanitized sentence
func (g *Generator) ExtractFacts(sanitized string) Facts {
	var facts Facts
	facts.Verb, facts.Remainder = splitLeadingVerb(sanitized)

	seen := make(map[string]bool)
	for _, rule := range g.lib.TechnologyRules() {
		if rule.MatchString(sanitized) && !seen[rule.Tag] {
			seen[rule.Tag] = true
			facts.Technologies = append(facts.Technologies, rule.Tag)
		}
	}

	facts.Metrics = g.auditor.Extract(sanitized)
	for _, m := range facts.Metrics {
		switch {
		case m.Kind == quantification.KindTeam && facts.TeamSize == 0:
			facts.TeamSize = int(m.Value)
		case m.Kind == quantification.KindScale && m.Unit == "stakeholders" && facts.Stakeholders == 0:
			facts.Stakeholders = int(m.Value)
		}
	}

	facts.Timeframe = timeframeRe.FindString(sanitized)
	return facts
}
