//nolint:revive // types is a standard Go package name pattern
package types

// IssueStatus is the outcome of one structural check
type IssueStatus string

// Issue statuses
const (
	StatusPassed  IssueStatus = "passed"
	StatusFailed  IssueStatus = "failed"
	StatusWarning IssueStatus = "warning"
)

// Severity of a structural issue
type Severity string

// Issue severities
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue is the result of a single structural or formatting check
type Issue struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Status   IssueStatus `json:"status"`
	Severity Severity    `json:"severity"`
	Reason   string      `json:"reason"`
	Fix      string      `json:"fix,omitempty"`
}

// WeakPhraseFinding is one occurrence of a weak phrase in the resume
type WeakPhraseFinding struct {
	Phrase   string   `json:"phrase"`
	Line     int      `json:"line"`
	Sentence int      `json:"sentence"`
	Context  string   `json:"context"`
	Reason   string   `json:"reason"`
	Fixes    []string `json:"fixes,omitempty"`
}

// MetricFinding describes an achievement statement and whether it is quantified
type MetricFinding struct {
	SentenceIndex          int    `json:"sentence_index"`
	Line                   int    `json:"line"`
	Text                   string `json:"text"`
	AchievementVerbPresent bool   `json:"achievement_verb_present"`
	HasRealMetric          bool   `json:"has_real_metric"`
}
