// Package rewriting generates grounded rewrite suggestions for resume bullets.
package rewriting

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// minSanitizedChars is the shortest sanitized sentence worth rewriting
	minSanitizedChars = 15
	// minMeaningfulWords is the fewest content words a sentence must keep
	minMeaningfulWords = 3
)

// Common action verbs that open resume bullets (heuristic check)
var strongVerbs = map[string]bool{
	"achieved": true, "architected": true, "built": true, "created": true,
	"delivered": true, "designed": true, "developed": true, "engineered": true,
	"implemented": true, "improved": true, "increased": true, "launched": true,
	"led": true, "optimized": true, "reduced": true, "scaled": true,
	"shipped": true, "transformed": true, "ran": true, "wrote": true,
	"drove": true, "grew": true, "cut": true, "won": true, "made": true,
	"set": true, "taught": true, "oversaw": true,
}

// function words that do not count toward a sentence's meaningful words
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "by": true,
	"for": true, "from": true, "in": true, "into": true, "is": true, "it": true,
	"no": true, "not": true, "of": true, "on": true, "or": true, "the": true,
	"to": true, "with": true, "was": true, "were": true,
}

// isActionVerb reports whether word reads as a leading action verb
func isActionVerb(word string) bool {
	word = strings.ToLower(strings.TrimRight(word, ".,!?;:"))
	if strongVerbs[word] {
		return true
	}
	// past-tense words of reasonable length are usually verbs in a bullet
	return strings.HasSuffix(word, "ed") && len(word) > 3
}

// splitLeadingVerb returns the first word when it is an action verb, and the rest
func splitLeadingVerb(text string) (verb, remainder string) {
	text = strings.TrimSpace(text)
	parts := strings.SplitN(text, " ", 2)
	if len(parts) == 0 || !isActionVerb(parts[0]) {
		return "", text
	}
	verb = strings.TrimSuffix(parts[0], ",")
	if len(parts) == 2 {
		remainder = strings.TrimSpace(parts[1])
	}
	return verb, remainder
}

// meaningfulWords counts words with at least two letters that are not stop words
func meaningfulWords(text string) int {
	n := 0
	for _, word := range strings.Fields(text) {
		word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }))
		if stopWords[word] || !hasLetters(word, 2) {
			continue
		}
		n++
	}
	return n
}

func hasLetters(word string, n int) bool {
	count := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			count++
		}
	}
	return count >= n
}

// isRewritable reports whether a sanitized sentence carries enough content
// to build a grounded suggestion from
func isRewritable(sanitized string) bool {
	return utf8.RuneCountInString(sanitized) >= minSanitizedChars && meaningfulWords(sanitized) >= minMeaningfulWords
}
