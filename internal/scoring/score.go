// Package scoring combines keyword, format and completeness signals into one score.
package scoring

import (
	"math"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Weights of the score components
const (
	keywordWeight      = 0.45
	formatWeight       = 0.30
	completenessWeight = 0.25
)

// Penalties for a failed issue by severity; warnings cost half
var severityPenalty = map[types.Severity]float64{
	types.SeverityHigh:   15,
	types.SeverityMedium: 8,
	types.SeverityLow:    3,
}

// Completeness points
const (
	pointsPerEssentialSection = 20
	pointsEmail               = 10
	pointsPhone               = 10
	pointsLinkedIn            = 5
	pointsSummary             = 5
	pointsPerQuantified       = 2
	maxQuantifiedPoints       = 10
)

// Completeness holds the presence signals scored by CompletenessScore
type Completeness struct {
	Sections        []string
	Contact         types.ContactInfo
	QuantifiedCount int
}

// KeywordScore converts a coverage ratio into a 0-100 score
func KeywordScore(coverage float64) int {
	return clamp(int(math.Round(coverage * 100)))
}

// FormatScore starts at 100 and subtracts a penalty per failed or warning issue
func FormatScore(issues []types.Issue) int {
	penalty := 0.0
	for _, issue := range issues {
		switch issue.Status {
		case types.StatusFailed:
			penalty += severityPenalty[issue.Severity]
		case types.StatusWarning:
			penalty += severityPenalty[issue.Severity] / 2
		}
	}
	return clamp(int(math.Round(100 - penalty)))
}

// CompletenessScore awards points for standard sections, contact channels
// and quantified achievements
func CompletenessScore(c Completeness) int {
	score := 0
	for _, section := range c.Sections {
		switch section {
		case "experience", "education", "skills":
			score += pointsPerEssentialSection
		case "summary":
			score += pointsSummary
		}
	}
	if c.Contact.Email {
		score += pointsEmail
	}
	if c.Contact.Phone {
		score += pointsPhone
	}
	if c.Contact.LinkedIn {
		score += pointsLinkedIn
	}
	score += min(maxQuantifiedPoints, pointsPerQuantified*max(0, c.QuantifiedCount))
	return clamp(score)
}

// Combine clamps each component to [0,100] and computes the weighted overall score
func Combine(keywords, format, completeness int) types.ScoreBreakdown {
	keywords, format, completeness = clamp(keywords), clamp(format), clamp(completeness)
	overall := keywordWeight*float64(keywords) + formatWeight*float64(format) + completenessWeight*float64(completeness)
	return types.ScoreBreakdown{
		Overall:      clamp(int(math.Round(overall))),
		Keywords:     keywords,
		Format:       format,
		Completeness: completeness,
	}
}

// Grade maps an overall score to a letter grade
func Grade(overall int) string {
	switch {
	case overall >= 90:
		return "A"
	case overall >= 80:
		return "B"
	case overall >= 70:
		return "C"
	case overall >= 60:
		return "D"
	default:
		return "F"
	}
}

// Percentile estimates the share of applicants an overall score beats
func Percentile(overall int) int {
	switch {
	case overall >= 90:
		return 95
	case overall >= 85:
		return 85
	case overall >= 80:
		return 75
	case overall >= 75:
		return 65
	case overall >= 70:
		return 55
	default:
		return max(10, overall-15)
	}
}

func clamp(n int) int {
	return max(0, min(100, n))
}
