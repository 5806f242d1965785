package quantification

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Metric kinds, matching the library's metric rule tags
const (
	KindPercentage = "percentage"
	KindCurrency   = "currency"
	KindMultiplier = "multiplier"
	KindRange      = "range"
	KindScale      = "scale"
	KindMagnitude  = "magnitude"
	KindTeam       = "team"
	KindDelta      = "delta"
	KindRanking    = "ranking"
)

// Metric is one measurable figure found in a sentence
type Metric struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
	Raw   string  `json:"raw"`
}

var (
	numberRe     = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	multiplierRe = regexp.MustCompile(`(?i)^\s?(thousand|million|billion|bn|mm|k|m|b)\b`)
	trailWordRe  = regexp.MustCompile(`([a-zA-Z]+)\s*$`)
)

var magnitudes = map[string]float64{
	"k": 1e3, "thousand": 1e3,
	"m": 1e6, "mm": 1e6, "million": 1e6,
	"b": 1e9, "bn": 1e9, "billion": 1e9,
}

// Extract returns the metrics in s, ordered by position. Dates are stripped
// first; where matches overlap the rule listed first in the library wins.
func (a *Auditor) Extract(s string) []Metric {
	stripped := a.StripDates(s)

	type found struct {
		span   []int
		metric Metric
	}
	var hits []found
	var spans [][]int
	for _, rule := range a.lib.Metrics {
		for _, span := range rule.FindAllIndex(stripped, -1) {
			if overlaps(spans, span) {
				continue
			}
			raw := strings.TrimSpace(stripped[span[0]:span[1]])
			value, ok := parseValue(raw)
			if !ok {
				continue
			}
			spans = append(spans, span)
			hits = append(hits, found{span, Metric{Kind: rule.Tag, Value: value, Unit: unitOf(rule.Tag, raw), Raw: raw}})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].span[0] < hits[j].span[0] })

	metrics := make([]Metric, 0, len(hits))
	for _, h := range hits {
		metrics = append(metrics, h.metric)
	}
	return metrics
}

func overlaps(spans [][]int, span []int) bool {
	for _, s := range spans {
		if span[0] < s[1] && s[0] < span[1] {
			return true
		}
	}
	return false
}

// parseValue reads the first number in raw, scaled by a k/m/b style suffix
func parseValue(raw string) (float64, bool) {
	loc := numberRe.FindStringIndex(raw)
	if loc == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw[loc[0]:loc[1]], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if m := multiplierRe.FindStringSubmatch(raw[loc[1]:]); m != nil {
		value *= magnitudes[strings.ToLower(m[1])]
	}
	return value, true
}

func unitOf(kind, raw string) string {
	switch kind {
	case KindPercentage:
		return "%"
	case KindCurrency:
		for _, r := range raw {
			return string(r)
		}
	case KindMultiplier:
		return "x"
	case KindScale:
		if m := trailWordRe.FindStringSubmatch(raw); m != nil {
			return strings.ToLower(m[1])
		}
	case KindTeam:
		return "people"
	}
	return ""
}
