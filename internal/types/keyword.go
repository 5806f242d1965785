//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Priority ranks how important a missing keyword is
type Priority string

// Keyword priorities
const (
	PriorityCritical   Priority = "critical"
	PriorityImportant  Priority = "important"
	PriorityNiceToHave Priority = "nice-to-have"
)

// Weight orders priorities; higher is more important
func (p Priority) Weight() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityImportant:
		return 2
	case PriorityNiceToHave:
		return 1
	default:
		return 0
	}
}

// Keyword is a single matched or missing term
type Keyword struct {
	Term     string   `json:"term"`
	Priority Priority `json:"priority,omitempty"`
	Location string   `json:"location,omitempty"`
	Context  string   `json:"context,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// UnmarshalJSON accepts either a bare string or a keyword object, so callers
// never have to branch on the shape of upstream keyword data.
func (k *Keyword) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var term string
		if err := json.Unmarshal(data, &term); err != nil {
			return err
		}
		*k = NormalizeKeyword(Keyword{Term: term})
		return nil
	}

	type plain Keyword
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("keyword must be a string or object: %w", err)
	}
	*k = NormalizeKeyword(Keyword(p))
	return nil
}

// NormalizeKeyword trims the term, drops empty synonyms and clears an unknown priority
func NormalizeKeyword(k Keyword) Keyword {
	k.Term = strings.Join(strings.Fields(k.Term), " ")
	switch k.Priority {
	case PriorityCritical, PriorityImportant, PriorityNiceToHave, "":
	default:
		k.Priority = ""
	}
	if len(k.Synonyms) > 0 {
		synonyms := make([]string, 0, len(k.Synonyms))
		for _, s := range k.Synonyms {
			if s = strings.TrimSpace(s); s != "" {
				synonyms = append(synonyms, s)
			}
		}
		k.Synonyms = synonyms
	}
	return k
}
