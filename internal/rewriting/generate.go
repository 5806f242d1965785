package rewriting

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/classify"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/quantification"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// growthFactor scales an existing number into its amplified version
	growthFactor = 1.5
	// maxPercentGain caps how many points an amplified percentage may add
	maxPercentGain = 20
	// maxPercent caps amplified percentages
	maxPercent = 95
	// percentRevenueBase is the annual figure a percentage is applied to when
	// converting it into money
	percentRevenueBase = 250000
	// genericNote prefixes every explanation of a generic suggestion
	genericNote = "Example only: replace the bracketed parts with your own facts. "
)

// suggestionTypes is the fixed order of candidates in every suggestion
var suggestionTypes = []types.SuggestionType{types.SuggestionVolume, types.SuggestionEfficiency, types.SuggestionMoney}

// genericTemplates are the fallback candidates. They are placeholders and
// state nothing about the user's experience.
var genericTemplates = map[types.SuggestionType]string{
	types.SuggestionVolume:     "[Action verb] [project or responsibility], serving [number]+ [users, customers or records]",
	types.SuggestionEfficiency: "[Action verb] [process or system], reducing [time or cost] by [X]%",
	types.SuggestionMoney:      "[Action verb] [initiative], generating or saving $[amount] annually",
}

// Generator builds rewrite candidates from a sentence's own content
type Generator struct {
	lib        *patterns.Library
	normalizer *parsing.Normalizer
	classifier *classify.Classifier
	auditor    *quantification.Auditor
}

// NewGenerator creates a Generator bound to lib
func NewGenerator(lib *patterns.Library) *Generator {
	return &Generator{
		lib:        lib,
		normalizer: parsing.NewNormalizer(lib),
		classifier: classify.NewClassifier(lib),
		auditor:    quantification.NewAuditor(lib),
	}
}

// Sanitize strips personal information and dates from sentence and reports
// whether enough content remains to rewrite it
func (g *Generator) Sanitize(sentence string) (string, bool) {
	sanitized := strings.TrimRight(g.normalizer.StripNoise(sentence), ".!;: ")
	return sanitized, isRewritable(sanitized)
}

// Suggest returns volume, efficiency and money candidates for sentence.
// Sentences with too little content get the generic placeholder set.
func (g *Generator) Suggest(sentence, source string) types.BulletSuggestion {
	suggestion := types.BulletSuggestion{
		Original:       sentence,
		Source:         source,
		PrimaryContext: patterns.GeneralContext,
	}

	sanitized, ok := g.Sanitize(sentence)
	if !ok {
		suggestion.Generic = true
		suggestion.Candidates = g.genericCandidates()
		return suggestion
	}

	ctx := g.classifier.Classify(sanitized)
	suggestion.PrimaryContext = ctx.Primary
	suggestion.SecondaryContext = ctx.Secondary

	facts := g.ExtractFacts(sanitized)
	defaults := g.lib.ContextMetrics(ctx.Primary)

	clauses := map[types.SuggestionType]string{
		types.SuggestionVolume:     volumeClause(facts, defaults),
		types.SuggestionEfficiency: efficiencyClause(facts, defaults),
		types.SuggestionMoney:      moneyClause(facts, defaults),
	}
	for _, t := range suggestionTypes {
		suggestion.Candidates = append(suggestion.Candidates, types.SuggestionCandidate{
			Type:         t,
			ImprovedText: Template{Prefix: facts.Prefix(), Clause: clauses[t]}.Render(),
			Explanation:  g.lib.Explanations.For(t),
		})
	}
	return suggestion
}

func (g *Generator) genericCandidates() []types.SuggestionCandidate {
	candidates := make([]types.SuggestionCandidate, 0, len(suggestionTypes))
	for _, t := range suggestionTypes {
		candidates = append(candidates, types.SuggestionCandidate{
			Type:         t,
			ImprovedText: genericTemplates[t],
			Explanation:  genericNote + g.lib.Explanations.For(t),
		})
	}
	return candidates
}

// volumeClause amplifies an existing scale figure, else cites the team,
// else falls back to the context default
func volumeClause(f Facts, defaults patterns.MetricClauses) string {
	if m, ok := f.metric(quantification.KindScale); ok && m.Unit != "stakeholders" {
		return fmt.Sprintf("scaling to %s+ %s", formatCount(m.Value*growthFactor), m.Unit)
	}
	if f.TeamSize > 0 {
		if f.Stakeholders > 0 {
			return fmt.Sprintf("coordinating a team of %d with %d+ stakeholders", f.TeamSize, f.Stakeholders)
		}
		return fmt.Sprintf("coordinating a team of %d across %d+ partner teams", f.TeamSize, max(2, f.TeamSize/2))
	}
	return defaults.Volume
}

// efficiencyClause amplifies an existing percentage within a capped gain
func efficiencyClause(f Facts, defaults patterns.MetricClauses) string {
	if m, ok := f.metric(quantification.KindPercentage); ok {
		amplified := math.Min(m.Value*growthFactor, m.Value+maxPercentGain)
		amplified = math.Min(amplified, maxPercent)
		amplified = math.Max(amplified, m.Value)
		return fmt.Sprintf("improving overall efficiency by %s%%", formatNumber(math.Round(amplified)))
	}
	return defaults.Efficiency
}

// moneyClause amplifies an existing amount, or prices an existing percentage
func moneyClause(f Facts, defaults patterns.MetricClauses) string {
	if m, ok := f.metric(quantification.KindCurrency); ok {
		return fmt.Sprintf("driving an estimated %s%s+ in annual impact", m.Unit, formatCount(m.Value*growthFactor))
	}
	if m, ok := f.metric(quantification.KindPercentage); ok {
		estimate := m.Value / 100 * percentRevenueBase
		return fmt.Sprintf("worth an estimated $%s in annual savings", formatCount(estimate))
	}
	return defaults.Money
}

// countUnits lists count suffixes with the decimals kept at each scale
var countUnits = []struct {
	scale    float64
	suffix   string
	decimals int
}{
	{1, "", 0},
	{1e3, "K", 0},
	{1e6, "M", 1},
	{1e9, "B", 1},
}

// formatCount renders v with a K, M or B suffix. Rounding happens before the
// suffix is chosen, so 999,600 renders as 1M rather than 1000K.
func formatCount(v float64) string {
	i := 0
	for i+1 < len(countUnits) && v >= countUnits[i+1].scale {
		i++
	}
	for {
		unit := countUnits[i]
		rounded := roundTo(v/unit.scale, unit.decimals)
		if rounded < 1000 || i+1 == len(countUnits) {
			return formatNumber(rounded) + unit.suffix
		}
		i++
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
