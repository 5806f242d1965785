package rewriting

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(t *testing.T, s types.BulletSuggestion, kind types.SuggestionType) types.SuggestionCandidate {
	t.Helper()
	for _, c := range s.Candidates {
		if c.Type == kind {
			return c
		}
	}
	require.Failf(t, "candidate not found", "type %s", kind)
	return types.SuggestionCandidate{}
}

func TestSuggest_WebContextFallback(t *testing.T) {
	g := NewGenerator(patterns.Default())

	s := g.Suggest("Helped with various projects using Python and React.", types.SourceWeakPhrase)

	assert.False(t, s.Generic)
	assert.Equal(t, "web", s.PrimaryContext)
	assert.Equal(t, types.SourceWeakPhrase, s.Source)
	require.Len(t, s.Candidates, 3)
	assert.Equal(t, types.SuggestionVolume, s.Candidates[0].Type)
	assert.Equal(t, types.SuggestionEfficiency, s.Candidates[1].Type)
	assert.Equal(t, types.SuggestionMoney, s.Candidates[2].Type)

	volume := candidate(t, s, types.SuggestionVolume)
	assert.Equal(t, "Helped with various projects using Python and React, serving 100K+ monthly active users", volume.ImprovedText)
	assert.Contains(t, volume.ImprovedText, "users")
	assert.Equal(t, "Shows the scale and reach of the work", volume.Explanation)
}

func TestSuggest_AmplifiesExistingNumbers(t *testing.T) {
	g := NewGenerator(patterns.Default())

	s := g.Suggest("Reduced checkout latency by 35% across 2M requests and saved $40K", types.SourceUnquantified)

	assert.Equal(t, "optimization", s.PrimaryContext)
	prefix := "Reduced checkout latency by 35% across 2M requests and saved $40K, "
	assert.Equal(t, prefix+"scaling to 3M+ requests", candidate(t, s, types.SuggestionVolume).ImprovedText)
	assert.Equal(t, prefix+"improving overall efficiency by 53%", candidate(t, s, types.SuggestionEfficiency).ImprovedText)
	assert.Equal(t, prefix+"driving an estimated $60K+ in annual impact", candidate(t, s, types.SuggestionMoney).ImprovedText)
}

func TestSuggest_PercentageBecomesMoney(t *testing.T) {
	g := NewGenerator(patterns.Default())

	s := g.Suggest("Improved conversion rate by 20% for the checkout funnel", types.SourceUnquantified)

	assert.True(t, strings.HasSuffix(candidate(t, s, types.SuggestionEfficiency).ImprovedText, "improving overall efficiency by 30%"))
	assert.True(t, strings.HasSuffix(candidate(t, s, types.SuggestionMoney).ImprovedText, "worth an estimated $50K in annual savings"))
}

func TestSuggest_PercentageGainIsCapped(t *testing.T) {
	g := NewGenerator(patterns.Default())

	tests := []struct {
		sentence string
		expected string
	}{
		{"Reduced cloud spend by 60% for the analytics org", "improving overall efficiency by 80%"},
		{"Raised test coverage to 90% across the monorepo", "improving overall efficiency by 95%"},
		{"Raised test coverage to 98% across the monorepo", "improving overall efficiency by 98%"},
	}

	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			s := g.Suggest(tt.sentence, types.SourceUnquantified)
			assert.True(t, strings.HasSuffix(candidate(t, s, types.SuggestionEfficiency).ImprovedText, tt.expected))
		})
	}
}

func TestSuggest_TeamSize(t *testing.T) {
	g := NewGenerator(patterns.Default())

	s := g.Suggest("Led a team of 8 engineers to rebuild the billing platform", types.SourceUnquantified)
	assert.True(t, strings.HasSuffix(candidate(t, s, types.SuggestionVolume).ImprovedText, "coordinating a team of 8 across 4+ partner teams"))

	s = g.Suggest("Led a team of 6 engineers working with 12 stakeholders on pricing", types.SourceUnquantified)
	assert.True(t, strings.HasSuffix(candidate(t, s, types.SuggestionVolume).ImprovedText, "coordinating a team of 6 with 12+ stakeholders"))
}

func TestSuggest_GenericFallback(t *testing.T) {
	g := NewGenerator(patterns.Default())

	tests := []struct {
		name     string
		sentence string
	}{
		{"personal info only", "US Citizen, authorized to work, no sponsorship needed"},
		{"too short", "Worked on it"},
		{"too few words", "Did stuff"},
		{"contact line", "jane@example.com | (555) 123-4567"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := g.Suggest(tt.sentence, types.SourceWeakPhrase)

			assert.True(t, s.Generic)
			assert.Equal(t, patterns.GeneralContext, s.PrimaryContext)
			assert.Equal(t, tt.sentence, s.Original)
			require.Len(t, s.Candidates, 3)
			for _, c := range s.Candidates {
				assert.True(t, strings.HasPrefix(c.Explanation, "Example only"))
				assert.Contains(t, c.ImprovedText, "[")
				assert.NotContains(t, c.ImprovedText, "Citizen")
			}
		})
	}
}

func TestSuggest_NeverInventsTechnology(t *testing.T) {
	g := NewGenerator(patterns.Default())

	s := g.Suggest("Maintained the internal wiki for the support team", types.SourceUnquantified)
	require.False(t, s.Generic)
	for _, c := range s.Candidates {
		assert.True(t, strings.HasPrefix(c.ImprovedText, "Maintained the internal wiki for the support team, "))
		for _, tech := range patterns.Default().Technologies {
			assert.NotContains(t, c.ImprovedText, tech)
		}
	}
}

func TestSuggest_Deterministic(t *testing.T) {
	g := NewGenerator(patterns.Default())
	sentence := "Built dashboards in Tableau for 40 stakeholders"
	assert.Equal(t, g.Suggest(sentence, types.SourceUnquantified), g.Suggest(sentence, types.SourceUnquantified))
}

func TestSanitize(t *testing.T) {
	g := NewGenerator(patterns.Default())

	sanitized, ok := g.Sanitize("- Migrated billing to Go in Jan 2021 (contact: me@x.io).")
	assert.True(t, ok)
	assert.NotContains(t, sanitized, "me@x.io")
	assert.NotContains(t, sanitized, "2021")
	assert.True(t, strings.HasPrefix(sanitized, "Migrated billing to Go"))

	_, ok = g.Sanitize("Bachelor of Science, State University, GPA 3.9")
	assert.False(t, ok)
}

func TestExtractFacts(t *testing.T) {
	g := NewGenerator(patterns.Default())

	facts := g.ExtractFacts("Migrated 40 services to Kubernetes and Docker within 6 months")
	assert.Equal(t, "Migrated", facts.Verb)
	assert.Equal(t, "40 services to Kubernetes and Docker within 6 months", facts.Remainder)
	assert.Equal(t, []string{"Docker", "Kubernetes"}, facts.Technologies)
	assert.Equal(t, "within 6 months", facts.Timeframe)
	require.NotEmpty(t, facts.Metrics)
	assert.Equal(t, "services", facts.Metrics[0].Unit)

	noVerb := g.ExtractFacts("Responsible for the payments API and on-call rotation")
	assert.Empty(t, noVerb.Verb)
	assert.Equal(t, "Responsible for the payments API and on-call rotation", noVerb.Prefix())
}

func TestTemplate_Render(t *testing.T) {
	tests := []struct {
		name     string
		template Template
		expected string
	}{
		{"joined", Template{Prefix: "Built the API.", Clause: "serving 10K+ users"}, "Built the API, serving 10K+ users"},
		{"no clause", Template{Prefix: "Built the API"}, "Built the API"},
		{"no prefix", Template{Clause: "serving 10K+ users"}, "serving 10K+ users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.template.Render())
		})
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{150, "150"},
		{1500, "2K"},
		{18000, "18K"},
		{3e6, "3M"},
		{2.25e6, "2.3M"},
		{1.2e9, "1.2B"},
		{999.6, "1K"},
		{999_600, "1M"},
		{999_960_000, "1B"},
		{999_400, "999K"},
		{2.5e12, "2500B"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatCount(tt.value))
	}
}

func TestSuggest_ScaleRoundsIntoNextUnit(t *testing.T) {
	g := NewGenerator(patterns.Default())

	s := g.Suggest("Grew the community platform to 666,400 users", types.SourceUnquantified)

	improved := candidate(t, s, types.SuggestionVolume).ImprovedText
	assert.Contains(t, improved, "scaling to 1M+ users")
	assert.NotContains(t, improved, "1000K")
}

func TestIsActionVerb(t *testing.T) {
	assert.True(t, isActionVerb("Built"))
	assert.True(t, isActionVerb("led,"))
	assert.True(t, isActionVerb("Streamlined"))
	assert.False(t, isActionVerb("Responsible"))
	assert.False(t, isActionVerb("red"))
}
