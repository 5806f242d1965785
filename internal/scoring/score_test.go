package scoring

import (
	"math"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestKeywordScore(t *testing.T) {
	assert.Equal(t, 80, KeywordScore(12.0/15.0))
	assert.Equal(t, 0, KeywordScore(0))
	assert.Equal(t, 100, KeywordScore(1))
	assert.Equal(t, 100, KeywordScore(1.7))
	assert.Equal(t, 0, KeywordScore(-0.2))
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		name     string
		issues   []types.Issue
		expected int
	}{
		{"no issues", nil, 100},
		{"all passed", []types.Issue{{Status: types.StatusPassed, Severity: types.SeverityHigh}}, 100},
		{"failed high", []types.Issue{{Status: types.StatusFailed, Severity: types.SeverityHigh}}, 85},
		{"warning medium", []types.Issue{{Status: types.StatusWarning, Severity: types.SeverityMedium}}, 96},
		{"warning low rounds", []types.Issue{{Status: types.StatusWarning, Severity: types.SeverityLow}}, 99},
		{
			"mixed",
			[]types.Issue{
				{Status: types.StatusFailed, Severity: types.SeverityHigh},
				{Status: types.StatusFailed, Severity: types.SeverityMedium},
				{Status: types.StatusWarning, Severity: types.SeverityLow},
			},
			76,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatScore(tt.issues))
		})
	}

	many := make([]types.Issue, 10)
	for i := range many {
		many[i] = types.Issue{Status: types.StatusFailed, Severity: types.SeverityHigh}
	}
	assert.Equal(t, 0, FormatScore(many))
}

func TestCompletenessScore(t *testing.T) {
	full := Completeness{
		Sections:        []string{"experience", "education", "skills", "summary", "projects"},
		Contact:         types.ContactInfo{Email: true, Phone: true, LinkedIn: true},
		QuantifiedCount: 7,
	}
	assert.Equal(t, 100, CompletenessScore(full))

	partial := Completeness{
		Sections:        []string{"experience", "skills"},
		Contact:         types.ContactInfo{Email: true},
		QuantifiedCount: 2,
	}
	assert.Equal(t, 54, CompletenessScore(partial))

	assert.Equal(t, 0, CompletenessScore(Completeness{}))
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name                           string
		keywords, format, completeness int
		expected                       types.ScoreBreakdown
	}{
		{"weights", 80, 90, 60, types.ScoreBreakdown{Overall: 78, Keywords: 80, Format: 90, Completeness: 60}},
		{"fractional overall", 50, 51, 50, types.ScoreBreakdown{Overall: 50, Keywords: 50, Format: 51, Completeness: 50}},
		{"clamped components", 150, -20, 100, types.ScoreBreakdown{Overall: 70, Keywords: 100, Format: 0, Completeness: 100}},
		{"all zero", 0, 0, 0, types.ScoreBreakdown{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Combine(tt.keywords, tt.format, tt.completeness))
		})
	}
}

func TestCombine_OverallFormula(t *testing.T) {
	for k := 0; k <= 100; k += 7 {
		for f := 0; f <= 100; f += 11 {
			for c := 0; c <= 100; c += 13 {
				b := Combine(k, f, c)
				expected := int(math.Round(0.45*float64(k) + 0.30*float64(f) + 0.25*float64(c)))
				assert.Equal(t, expected, b.Overall, "k=%d f=%d c=%d", k, f, c)
			}
		}
	}
}

func TestGradeAndPercentile(t *testing.T) {
	tests := []struct {
		overall    int
		grade      string
		percentile int
	}{
		{95, "A", 95},
		{87, "B", 85},
		{82, "B", 75},
		{76, "C", 65},
		{71, "C", 55},
		{65, "D", 50},
		{40, "F", 25},
		{5, "F", 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.grade, Grade(tt.overall), "grade for %d", tt.overall)
		assert.Equal(t, tt.percentile, Percentile(tt.overall), "percentile for %d", tt.overall)
	}
}
