// Package parsing splits resume text into analyzable units and normalizes terms.
package parsing

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/patterns"
)

// personalInfoThreshold is the share of a unit's characters that may match
// personal-info patterns before the unit is discarded
const personalInfoThreshold = 0.3

// UnitKind records which splitting strategy produced a unit
type UnitKind string

// Unit kinds, in strategy priority order
const (
	KindBullet   UnitKind = "bullet"
	KindNumbered UnitKind = "numbered"
	KindSentence UnitKind = "sentence"
	KindLine     UnitKind = "line"
)

// Unit is one bullet-like statement of the resume
type Unit struct {
	Index int      `json:"index"`
	Text  string   `json:"text"`
	Line  int      `json:"line"` // 1-based line in the original text
	Kind  UnitKind `json:"kind"`
}

var (
	bulletLineRe   = regexp.MustCompile(`^\s*(?:[-*•·▪◦‣●○■□➢➤→–]|>)\s+(.+?)\s*$`)
	numberedLineRe = regexp.MustCompile(`^\s*\(?\d{1,2}[.)]\s+(.+?)\s*$`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// Normalizer segments resume text using a pattern library
type Normalizer struct {
	lib *patterns.Library
}

// NewNormalizer creates a Normalizer bound to lib
func NewNormalizer(lib *patterns.Library) *Normalizer {
	return &Normalizer{lib: lib}
}

// SplitLines normalizes line endings and splits text into lines
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// Segment splits text into units. Explicit bullets win, then numbered items,
// then capitalized sentences, then raw lines. Units dominated by personal
// information (contact data, degrees, dates) are dropped.
func (n *Normalizer) Segment(text string) []Unit {
	lines := SplitLines(text)

	units := markedUnits(lines, bulletLineRe, KindBullet)
	if len(units) == 0 {
		units = markedUnits(lines, numberedLineRe, KindNumbered)
	}
	if len(units) == 0 {
		units = sentenceUnits(lines)
		if len(units) < 2 {
			units = nil
		}
	}
	if len(units) == 0 {
		units = lineUnits(lines)
	}

	kept := make([]Unit, 0, len(units))
	for _, u := range units {
		if u.Text == "" || n.isSectionHeader(u.Text) {
			continue
		}
		if n.PersonalInfoRatio(u.Text) > personalInfoThreshold {
			continue
		}
		u.Index = len(kept)
		kept = append(kept, u)
	}
	return kept
}

func markedUnits(lines []string, re *regexp.Regexp, kind UnitKind) []Unit {
	var units []Unit
	for i, line := range lines {
		if m := re.FindStringSubmatch(line); m != nil {
			units = append(units, Unit{Text: collapseSpaces(m[1]), Line: i + 1, Kind: kind})
		}
	}
	return units
}

func sentenceUnits(lines []string) []Unit {
	var units []Unit
	for i, line := range lines {
		for _, sentence := range SplitSentences(line) {
			first, _ := utf8.DecodeRuneInString(sentence)
			if !unicode.IsUpper(first) {
				continue
			}
			units = append(units, Unit{Text: sentence, Line: i + 1, Kind: KindSentence})
		}
	}
	return units
}

func lineUnits(lines []string) []Unit {
	var units []Unit
	for i, line := range lines {
		if trimmed := collapseSpaces(line); trimmed != "" {
			units = append(units, Unit{Text: trimmed, Line: i + 1, Kind: KindLine})
		}
	}
	return units
}

// SplitSentences splits a line at terminal punctuation followed by whitespace
// and a capital letter
func SplitSentences(line string) []string {
	line = collapseSpaces(line)
	if line == "" {
		return nil
	}

	var sentences []string
	start := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		j := i + 1
		if j >= len(line) || line[j] != ' ' {
			continue
		}
		for j < len(line) && line[j] == ' ' {
			j++
		}
		next, _ := utf8.DecodeRuneInString(line[j:])
		if !unicode.IsUpper(next) {
			continue
		}
		if s := strings.TrimSpace(line[start : i+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = j
	}
	if s := strings.TrimSpace(line[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func (n *Normalizer) isSectionHeader(s string) bool {
	return n.lib.Sections.Any(s)
}

// PersonalInfoRatio returns the share of s covered by personal-info matches
func (n *Normalizer) PersonalInfoRatio(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	covered := coveredLength(n.lib.PersonalInfo.Spans(s))
	return float64(covered) / float64(len(s))
}

// coveredLength merges overlapping spans and returns the total length
func coveredLength(spans [][]int) int {
	if len(spans) == 0 {
		return 0
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	total := 0
	curStart, curEnd := spans[0][0], spans[0][1]
	for _, span := range spans[1:] {
		if span[0] <= curEnd {
			curEnd = max(curEnd, span[1])
			continue
		}
		total += curEnd - curStart
		curStart, curEnd = span[0], span[1]
	}
	return total + curEnd - curStart
}

// StripNoise removes personal information and explicit dates from s.
// Bare month names are left alone since they double as ordinary words.
func (n *Normalizer) StripNoise(s string) string {
	s = StripMarker(s)
	s = n.lib.PersonalInfo.Strip(s)
	for _, rule := range n.lib.DateNoise {
		if rule.Tag == "month" {
			continue
		}
		s = rule.ReplaceAll(s, " ")
	}
	s = collapseSpaces(s)
	return strings.Trim(s, " ,;:|-–()")
}

// StripMarker removes a leading bullet or number marker from a line
func StripMarker(line string) string {
	if m := bulletLineRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if m := numberedLineRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return strings.TrimSpace(line)
}

// WordCount counts whitespace-separated words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
