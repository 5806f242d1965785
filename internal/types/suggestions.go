//nolint:revive // types is a standard Go package name pattern
package types

// SuggestionType identifies the kind of impact a rewrite emphasizes
type SuggestionType string

// Suggestion types
const (
	SuggestionVolume     SuggestionType = "volume"
	SuggestionEfficiency SuggestionType = "efficiency"
	SuggestionMoney      SuggestionType = "money"
)

// Suggestion sources
const (
	SourceWeakPhrase   = "weak_phrase"
	SourceUnquantified = "unquantified"
)

// SuggestionCandidate is one rewritten version of a bullet
type SuggestionCandidate struct {
	Type         SuggestionType `json:"type"`
	ImprovedText string         `json:"improved_text"`
	Explanation  string         `json:"explanation"`
}

// BulletSuggestion groups the rewrite candidates for one original bullet
type BulletSuggestion struct {
	Original         string                `json:"original"`
	Source           string                `json:"source,omitempty"`
	PrimaryContext   string                `json:"primary_context"`
	SecondaryContext string                `json:"secondary_context,omitempty"`
	Generic          bool                  `json:"generic"`
	Candidates       []SuggestionCandidate `json:"candidates"`
}

// ContextScore is the weighted rule score of one work context
type ContextScore struct {
	Context string `json:"context"`
	Score   int    `json:"score"`
}
