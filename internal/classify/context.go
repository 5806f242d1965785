// Package classify assigns resume statements to work contexts.
package classify

import (
	"sort"

	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Result is the ranked context classification of one statement
type Result struct {
	Primary   string               `json:"primary"`
	Secondary string               `json:"secondary,omitempty"`
	Scores    []types.ContextScore `json:"scores"`
}

// Classifier scores text against the library's contexts
type Classifier struct {
	lib *patterns.Library
}

// NewClassifier creates a Classifier bound to lib
func NewClassifier(lib *patterns.Library) *Classifier {
	return &Classifier{lib: lib}
}

// Classify scores every context as the sum of rule weight times match count.
// Scores are ranked highest first with ties kept in declaration order. Text
// matching no context is classified as general.
func (c *Classifier) Classify(text string) Result {
	scores := make([]types.ContextScore, 0, len(c.lib.Contexts))
	for _, ctx := range c.lib.Contexts {
		scores = append(scores, types.ContextScore{Context: ctx.Name, Score: ctx.Rules.Score(text)})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })

	result := Result{Primary: patterns.GeneralContext, Scores: scores}
	if len(scores) == 0 || scores[0].Score == 0 {
		return result
	}
	result.Primary = scores[0].Context
	if len(scores) > 1 && scores[1].Score > 0 {
		result.Secondary = scores[1].Context
	}
	return result
}
