//nolint:revive // types is a standard Go package name pattern
package types

// SignalStrength summarizes how much seniority evidence the text carries
type SignalStrength string

// Signal strengths
const (
	SignalWeak     SignalStrength = "weak"
	SignalModerate SignalStrength = "moderate"
	SignalStrong   SignalStrength = "strong"
)

// SeniorityEstimate is the inferred seniority of the candidate
type SeniorityEstimate struct {
	DetectedLevel   ExperienceLevel `json:"detected_level"`
	ConfidenceScore int             `json:"confidence_score"`
	ExperienceYears int             `json:"experience_years"`
	ExpectedLevel   ExperienceLevel `json:"expected_level,omitempty"`
	SignalsDetected int             `json:"signals_detected"`
	SignalStrength  SignalStrength  `json:"signal_strength"`
	DetectedSignals []string        `json:"detected_signals,omitempty"`
	ReviewRequired  bool            `json:"review_required"`
}
