// Package validation provides rule-based checks of resume text.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// maxOccurrencesPerPhrase caps findings per weak-phrase rule
	maxOccurrencesPerPhrase = 2
	// maxWeakPhraseFindings caps the total number of weak-phrase findings
	maxWeakPhraseFindings = 10
	// contextRadius is the number of characters kept on each side of a finding
	contextRadius = 50
	// maxContextLength is the longest context string returned, ellipsis included
	maxContextLength = 120
)

var sentenceBoundaryRe = regexp.MustCompile(`[.!?]\s+[A-Z]`)

// DetectWeakPhrases scans text for weak phrases in library order. Each rule
// reports at most two occurrences and the scan stops after ten findings.
// Findings carry the rule's canonical phrase, so variants share one label.
func DetectWeakPhrases(lib *patterns.Library, text string) []types.WeakPhraseFinding {
	findings := []types.WeakPhraseFinding{}
	if text == "" {
		return findings
	}

	lineStarts := lineOffsets(text)
	for _, rule := range lib.WeakPhrases {
		for _, span := range rule.FindAllIndex(text, maxOccurrencesPerPhrase) {
			if len(findings) >= maxWeakPhraseFindings {
				return findings
			}
			line, lineStart := lineAt(lineStarts, span[0])
			findings = append(findings, types.WeakPhraseFinding{
				Phrase:   rule.Label(text[span[0]:span[1]]),
				Line:     line,
				Sentence: len(sentenceBoundaryRe.FindAllStringIndex(text[lineStart:span[0]+1], -1)),
				Context:  phraseContext(text, span[0], span[1]),
				Reason:   rule.Reason,
				Fixes:    rule.Fixes,
			})
		}
	}
	return findings
}

// lineOffsets returns the byte offset at which each line starts
func lineOffsets(text string) []int {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// lineAt returns the 1-based line containing pos and the offset where it starts
func lineAt(offsets []int, pos int) (int, int) {
	line := 0
	for i, start := range offsets {
		if start > pos {
			break
		}
		line = i
	}
	return line + 1, offsets[line]
}

// phraseContext returns the text surrounding [start, end), whitespace
// collapsed and truncated with an ellipsis when longer than maxContextLength
func phraseContext(text string, start, end int) string {
	from := max(0, start-contextRadius)
	to := min(len(text), end+contextRadius)
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}

	context := strings.Join(strings.Fields(text[from:to]), " ")
	if utf8.RuneCountInString(context) <= maxContextLength {
		return context
	}
	runes := []rune(context)
	return string(runes[:maxContextLength-3]) + "..."
}
