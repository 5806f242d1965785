package parsing

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/patterns"
)

// CanonicalTerm returns the display form of a term: the library's spelling for
// known technologies, otherwise the term with its first letter capitalized
// when it is a single lowercase word.
func CanonicalTerm(lib *patterns.Library, term string) string {
	normalized := strings.Join(strings.Fields(term), " ")
	if normalized == "" {
		return ""
	}

	if name, ok := lib.Technology(normalized); ok {
		return name
	}

	// Mixed case is assumed intentional
	if normalized != strings.ToUpper(normalized) && normalized != strings.ToLower(normalized) {
		return normalized
	}

	if normalized == strings.ToLower(normalized) && !strings.Contains(normalized, " ") {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// NormalizeTerm lowercases and collapses whitespace for comparisons
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), " "))
}
