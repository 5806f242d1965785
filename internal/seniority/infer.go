// Package seniority infers a candidate's seniority from score, tenure and vocabulary.
package seniority

import (
	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	baseConfidence = 40
	// ReviewThreshold is the confidence below which an estimate needs review
	ReviewThreshold = 60

	sameLevelBonus     = 30
	adjacentLevelBonus = 15
	unknownYearsMalus  = 10

	strongSignalWeight   = 6
	moderateSignalWeight = 3
)

var strengthBonus = map[types.SignalStrength]int{
	types.SignalStrong:   25,
	types.SignalModerate: 15,
	types.SignalWeak:     5,
}

// Input carries everything the inferencer looks at
type Input struct {
	OverallScore  int
	DeclaredYears *int
	ExpectedLevel types.ExperienceLevel
	Text          string
}

// Inferencer estimates seniority using the library's signal rules
type Inferencer struct {
	lib *patterns.Library
}

// NewInferencer creates an Inferencer bound to lib
func NewInferencer(lib *patterns.Library) *Inferencer {
	return &Inferencer{lib: lib}
}

// Infer maps the overall score to a level and rates confidence by how well
// tenure and leadership vocabulary agree with it
func (inf *Inferencer) Infer(in Input) types.SeniorityEstimate {
	estimate := types.SeniorityEstimate{
		DetectedLevel: LevelForScore(in.OverallScore),
		ExpectedLevel: in.ExpectedLevel,
	}

	yearsKnown := in.DeclaredYears != nil
	if yearsKnown {
		estimate.ExperienceYears = *in.DeclaredYears
	} else {
		estimate.ExperienceYears = EstimateYears(in.Text)
		yearsKnown = estimate.ExperienceYears > 0
	}

	weight := 0
	for _, rule := range inf.lib.SenioritySignals {
		if rule.MatchString(in.Text) {
			estimate.DetectedSignals = append(estimate.DetectedSignals, rule.Tag)
			weight += rule.Weight
		}
	}
	estimate.SignalsDetected = len(estimate.DetectedSignals)
	estimate.SignalStrength = strengthOf(weight)

	confidence := baseConfidence + strengthBonus[estimate.SignalStrength]
	if yearsKnown {
		confidence += agreementBonus(estimate.DetectedLevel, LevelForYears(estimate.ExperienceYears))
	} else {
		confidence -= unknownYearsMalus
	}
	estimate.ConfidenceScore = max(0, min(100, confidence))
	estimate.ReviewRequired = estimate.ConfidenceScore < ReviewThreshold
	return estimate
}

// LevelForScore buckets an overall score into a level
func LevelForScore(score int) types.ExperienceLevel {
	switch {
	case score >= 85:
		return types.LevelStaff
	case score >= 70:
		return types.LevelSenior
	case score >= 50:
		return types.LevelMid
	case score >= 30:
		return types.LevelJunior
	default:
		return types.LevelEntry
	}
}

// LevelForYears buckets years of experience into a level
func LevelForYears(years int) types.ExperienceLevel {
	switch {
	case years >= 10:
		return types.LevelStaff
	case years >= 6:
		return types.LevelSenior
	case years >= 3:
		return types.LevelMid
	case years >= 1:
		return types.LevelJunior
	default:
		return types.LevelEntry
	}
}

func strengthOf(weight int) types.SignalStrength {
	switch {
	case weight >= strongSignalWeight:
		return types.SignalStrong
	case weight >= moderateSignalWeight:
		return types.SignalModerate
	default:
		return types.SignalWeak
	}
}

func agreementBonus(a, b types.ExperienceLevel) int {
	switch diff := a.Rank() - b.Rank(); {
	case diff == 0:
		return sameLevelBonus
	case diff == 1 || diff == -1:
		return adjacentLevelBonus
	default:
		return 0
	}
}
