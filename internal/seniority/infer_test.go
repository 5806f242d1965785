package seniority

import (
	"testing"

	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score    int
		expected types.ExperienceLevel
	}{
		{0, types.LevelEntry},
		{29, types.LevelEntry},
		{30, types.LevelJunior},
		{49, types.LevelJunior},
		{50, types.LevelMid},
		{69, types.LevelMid},
		{70, types.LevelSenior},
		{84, types.LevelSenior},
		{85, types.LevelStaff},
		{100, types.LevelStaff},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LevelForScore(tt.score), "score %d", tt.score)
	}
}

func TestLevelForYears(t *testing.T) {
	assert.Equal(t, types.LevelEntry, LevelForYears(0))
	assert.Equal(t, types.LevelJunior, LevelForYears(2))
	assert.Equal(t, types.LevelMid, LevelForYears(5))
	assert.Equal(t, types.LevelSenior, LevelForYears(9))
	assert.Equal(t, types.LevelStaff, LevelForYears(10))
}

func TestInfer(t *testing.T) {
	inf := NewInferencer(patterns.Default())

	leadership := "Led the platform team. Architected the billing system. Mentored five engineers and set the roadmap."

	tests := []struct {
		name           string
		input          Input
		level          types.ExperienceLevel
		strength       types.SignalStrength
		confidence     int
		reviewRequired bool
	}{
		{
			name:       "strong agreement",
			input:      Input{OverallScore: 90, DeclaredYears: intPtr(12), Text: leadership},
			level:      types.LevelStaff,
			strength:   types.SignalStrong,
			confidence: 95,
		},
		{
			name:       "adjacent tenure",
			input:      Input{OverallScore: 75, DeclaredYears: intPtr(4), Text: "Led a migration and managed vendors"},
			level:      types.LevelSenior,
			strength:   types.SignalModerate,
			confidence: 70,
		},
		{
			name:           "disagreeing tenure",
			input:          Input{OverallScore: 20, DeclaredYears: intPtr(15), Text: "Wrote unit tests"},
			level:          types.LevelEntry,
			strength:       types.SignalWeak,
			confidence:     45,
			reviewRequired: true,
		},
		{
			name:           "unknown years",
			input:          Input{OverallScore: 10},
			level:          types.LevelEntry,
			strength:       types.SignalWeak,
			confidence:     35,
			reviewRequired: true,
		},
		{
			name:       "years from date ranges",
			input:      Input{OverallScore: 55, Text: "Acme 2015 - 2019\nGlobex 2019 - 2020\nMentored interns and led standups"},
			level:      types.LevelMid,
			strength:   types.SignalModerate,
			confidence: 85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimate := inf.Infer(tt.input)
			assert.Equal(t, tt.level, estimate.DetectedLevel)
			assert.Equal(t, tt.strength, estimate.SignalStrength)
			assert.Equal(t, tt.confidence, estimate.ConfidenceScore)
			assert.Equal(t, tt.reviewRequired, estimate.ReviewRequired)
			assert.Equal(t, len(estimate.DetectedSignals), estimate.SignalsDetected)
		})
	}
}

func TestInfer_ReviewFlagTracksConfidence(t *testing.T) {
	inf := NewInferencer(patterns.Default())

	for score := 0; score <= 100; score += 5 {
		for _, years := range []*int{nil, intPtr(0), intPtr(3), intPtr(8), intPtr(20)} {
			estimate := inf.Infer(Input{OverallScore: score, DeclaredYears: years, Text: "Led and managed"})
			assert.Equal(t, estimate.ConfidenceScore < ReviewThreshold, estimate.ReviewRequired)
			assert.GreaterOrEqual(t, estimate.ConfidenceScore, 0)
			assert.LessOrEqual(t, estimate.ConfidenceScore, 100)
		}
	}
}

func TestInfer_EchoesExpectedLevel(t *testing.T) {
	estimate := NewInferencer(patterns.Default()).Infer(Input{OverallScore: 60, ExpectedLevel: types.LevelSenior})
	assert.Equal(t, types.LevelSenior, estimate.ExpectedLevel)
	assert.Equal(t, types.LevelMid, estimate.DetectedLevel)
}

func TestEstimateYears(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"no ranges", "Built things", 0},
		{"single range", "Acme Corp, 2016 - 2020", 4},
		{"en dash and to", "Acme 2010–2012, Globex 2014 to 2015", 3},
		{"overlapping ranges merge", "Acme 2010 - 2015\nSide project 2012 - 2016", 6},
		{"present uses latest year", "Acme 2018 - 2021\nGlobex 2021 - Present\nAward 2023", 5},
		{"present without later year", "Globex 2019 - present", 0},
		{"capped", "1950 - 2024", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EstimateYears(tt.text))
		})
	}
}
