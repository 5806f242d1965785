package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		Score:         types.ScoreBreakdown{Overall: 82, Keywords: 80, Format: 90, Completeness: 75},
		Grade:         "B",
		Percentile:    75,
		Category:      "tech",
		KeywordSource: types.KeywordSourceJobDescription,
		MatchedKeywords: []types.Keyword{
			{Term: "postgresql"},
			{Term: "kubernetes"},
		},
		MissingKeywords: []types.Keyword{
			{Term: "terraform", Priority: types.PriorityImportant},
		},
		Issues: []types.Issue{
			{ID: "sections", Title: "Standard sections", Status: types.StatusPassed, Severity: types.SeverityHigh},
			{ID: "contact_phone", Title: "Phone number", Status: types.StatusWarning, Severity: types.SeverityMedium, Reason: "No phone number found"},
		},
		WeakPhrases: []types.WeakPhraseFinding{
			{Phrase: "worked on", Line: 7, Reason: "Vague about what you actually did", Fixes: []string{"Developed", "Built"}},
		},
		Seniority: types.SeniorityEstimate{
			DetectedLevel:   types.LevelSenior,
			ExpectedLevel:   types.LevelStaff,
			ExperienceYears: 7,
			SignalsDetected: 3,
			SignalStrength:  types.SignalModerate,
			ConfidenceScore: 55,
			ReviewRequired:  true,
		},
		Suggestions: []types.BulletSuggestion{
			{
				Original:         "Worked on the billing service",
				PrimaryContext:   "web",
				SecondaryContext: "leadership",
				Candidates: []types.SuggestionCandidate{
					{Type: types.SuggestionVolume, ImprovedText: "Developed the billing service, serving 100K+ users"},
				},
			},
		},
		Stats: types.TextStats{WordCount: 120, UnitCount: 8},
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, patterns.Default())

	p.PrintReport(sampleResult())
	output := buf.String()

	for _, want := range []string{
		"RESUME SCORE", "82 / 100", "grade B", "top 25%",
		"KEYWORDS", "PostgreSQL, Kubernetes", "Terraform (important)",
		"FORMAT ISSUES", "1 of 2 checks need attention", "⚠ Phone number [medium]",
		"WEAK PHRASES", "\"worked on\" (line 7)", "Try: Developed, Built",
		"SENIORITY", "Detected level: senior", "Expected level: staff", "manual review recommended",
		"SUGGESTED REWRITES", "context: web + leadership", "→ [volume]",
	} {
		assert.Contains(t, output, want)
	}
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, patterns.Default()).PrintReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintIssues_AllPassed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, patterns.Default())

	p.PrintIssues([]types.Issue{{ID: "sections", Status: types.StatusPassed}})
	assert.Contains(t, buf.String(), "ALL FORMAT CHECKS PASSED")
}

func TestPrintWeakPhrases_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, patterns.Default()).PrintWeakPhrases(nil)
	assert.Empty(t, buf.String())
}

func TestPrintKeywords_TruncatesMissing(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, patterns.Default())

	result := &types.AnalysisResult{Category: "tech", KeywordSource: types.KeywordSourceCategoryDefault}
	for _, term := range []string{"python", "java", "sql", "aws", "docker", "git", "jest"} {
		result.MissingKeywords = append(result.MissingKeywords, types.Keyword{Term: term, Priority: types.PriorityCritical})
	}
	p.PrintKeywords(result)

	output := buf.String()
	assert.Contains(t, output, "Matched: none")
	assert.Contains(t, output, "Missing (7)")
	assert.Contains(t, output, "... and 2 more keywords")
	assert.NotContains(t, output, "Jest")
}

func TestPrintBatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, patterns.Default())

	p.PrintBatch([]BatchRow{
		{Name: "alice", Overall: 91, Grade: "A"},
		{Name: "bob", Err: errors.New("invalid input")},
	})

	output := buf.String()
	assert.Contains(t, output, "BATCH RESULTS")
	assert.Contains(t, output, "✓ alice")
	assert.Contains(t, output, "✗ bob")
	assert.Contains(t, output, "1 analyzed, 1 failed")
}

func TestPrintBox_LineWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, patterns.Default())

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}

func TestPrintLibrary(t *testing.T) {
	var buf bytes.Buffer
	lib := patterns.Default()
	NewPrinter(&buf, lib).PrintLibrary(lib)

	out := buf.String()
	assert.Contains(t, out, "PATTERN LIBRARY")
	assert.Contains(t, out, lib.Version)
	for _, name := range lib.CategoryNames() {
		assert.Contains(t, out, name)
	}
}
