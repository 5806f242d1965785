// Package observability provides logging setup and formatted report output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
	lib *patterns.Library
}

// NewPrinter creates a new Printer that writes to the given writer. Keyword
// terms are displayed in the spelling lib knows them by.
func NewPrinter(out io.Writer, lib *patterns.Library) *Printer {
	return &Printer{out: out, lib: lib}
}

// truncate shortens s to at most n runes, ending with "..." when cut
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// moreLine reports how many items were left out of a list
func moreLine(sb *strings.Builder, total, shown int, noun string) {
	if total > shown {
		sb.WriteString(fmt.Sprintf("  ... and %d more %s\n", total-shown, noun))
	}
}

// PrintReport prints every section of an analysis result
func (p *Printer) PrintReport(result *types.AnalysisResult) {
	if result == nil {
		return
	}
	p.PrintScore(result)
	p.PrintKeywords(result)
	p.PrintIssues(result.Issues)
	p.PrintWeakPhrases(result.WeakPhrases)
	p.PrintSeniority(result.Seniority)
	p.PrintSuggestions(result.Suggestions)
}

// PrintScore outputs the overall score, grade and component breakdown.
func (p *Printer) PrintScore(result *types.AnalysisResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:      %d / 100  (grade %s, top %d%%)\n", result.Score.Overall, result.Grade, 100-result.Percentile))
	sb.WriteString(fmt.Sprintf("Keywords:     %d\n", result.Score.Keywords))
	sb.WriteString(fmt.Sprintf("Format:       %d\n", result.Score.Format))
	sb.WriteString(fmt.Sprintf("Completeness: %d\n", result.Score.Completeness))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Words: %d   Statements: %d   Quantified: %d", result.Stats.WordCount, result.Stats.UnitCount, result.QuantifiedCount))

	p.printBox("RESUME SCORE", sb.String())
}

// PrintKeywords outputs matched and missing keywords, missing ones with their priority.
func (p *Printer) PrintKeywords(result *types.AnalysisResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Category: %s   Source: %s\n\n", result.Category, result.KeywordSource))

	matched := make([]string, 0, len(result.MatchedKeywords))
	for _, k := range result.MatchedKeywords {
		matched = append(matched, parsing.CanonicalTerm(p.lib, k.Term))
	}
	if len(matched) > 0 {
		sb.WriteString(fmt.Sprintf("Matched (%d): %s\n", len(matched), strings.Join(matched, ", ")))
	} else {
		sb.WriteString("Matched: none\n")
	}

	if len(result.MissingKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("Missing (%d):\n", len(result.MissingKeywords)))
		count := min(len(result.MissingKeywords), maxItemsToShow)
		for _, k := range result.MissingKeywords[:count] {
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", parsing.CanonicalTerm(p.lib, k.Term), k.Priority))
		}
		moreLine(&sb, len(result.MissingKeywords), count, "keywords")
	}

	p.printBox("KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIssues outputs the checks that did not pass.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIssues(issues []types.Issue) {
	var open []types.Issue
	for _, issue := range issues {
		if issue.Status != types.StatusPassed {
			open = append(open, issue)
		}
	}
	if len(open) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL FORMAT CHECKS PASSED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d of %d checks need attention:\n\n", len(open), len(issues)))
	for i, issue := range open {
		marker := "⚠"
		if issue.Status == types.StatusFailed {
			marker = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s [%s]\n", marker, issue.Title, issue.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", issue.Reason))
		if i < len(open)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("FORMAT ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWeakPhrases outputs weak phrases with their line and suggested replacements.
func (p *Printer) PrintWeakPhrases(findings []types.WeakPhraseFinding) {
	if len(findings) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(findings), maxItemsToShow)
	for i, f := range findings[:count] {
		sb.WriteString(fmt.Sprintf("\"%s\" (line %d)\n", f.Phrase, f.Line))
		sb.WriteString(fmt.Sprintf("  %s\n", f.Reason))
		if len(f.Fixes) > 0 {
			sb.WriteString(fmt.Sprintf("  Try: %s\n", strings.Join(f.Fixes, ", ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	moreLine(&sb, len(findings), count, "phrases")

	p.printBox("WEAK PHRASES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSeniority outputs the inferred level and how much to trust it.
func (p *Printer) PrintSeniority(s types.SeniorityEstimate) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Detected level: %s\n", s.DetectedLevel))
	if s.ExpectedLevel != "" {
		sb.WriteString(fmt.Sprintf("Expected level: %s\n", s.ExpectedLevel))
	}
	sb.WriteString(fmt.Sprintf("Experience:     %d years\n", s.ExperienceYears))
	sb.WriteString(fmt.Sprintf("Signals:        %d (%s)\n", s.SignalsDetected, s.SignalStrength))
	sb.WriteString(fmt.Sprintf("Confidence:     %d", s.ConfidenceScore))
	if s.ReviewRequired {
		sb.WriteString("  (manual review recommended)")
	}

	p.printBox("SENIORITY", sb.String())
}

// PrintSuggestions outputs the first rewrite candidate of each suggestion.
func (p *Printer) PrintSuggestions(suggestions []types.BulletSuggestion) {
	if len(suggestions) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range suggestions {
		sb.WriteString(fmt.Sprintf("• %s\n", s.Original))
		context := s.PrimaryContext
		if s.SecondaryContext != "" {
			context += " + " + s.SecondaryContext
		}
		sb.WriteString(fmt.Sprintf("  context: %s\n", context))
		for _, c := range s.Candidates {
			sb.WriteString(fmt.Sprintf("  → [%s] %s\n", c.Type, c.ImprovedText))
		}
		if i < len(suggestions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SUGGESTED REWRITES", strings.TrimSuffix(sb.String(), "\n"))
}

// BatchRow is one line of a batch summary
type BatchRow struct {
	Name    string
	Overall int
	Grade   string
	Err     error
}

// PrintBatch outputs one line per analyzed resume.
func (p *Printer) PrintBatch(rows []BatchRow) {
	if len(rows) == 0 {
		return
	}

	var sb strings.Builder
	failed := 0
	for _, row := range rows {
		if row.Err != nil {
			failed++
			sb.WriteString(fmt.Sprintf("✗ %-30s %s\n", truncate(row.Name, 30), row.Err))
			continue
		}
		sb.WriteString(fmt.Sprintf("✓ %-30s %3d  %s\n", truncate(row.Name, 30), row.Overall, row.Grade))
	}
	sb.WriteString(fmt.Sprintf("\n%d analyzed, %d failed", len(rows)-failed, failed))

	p.printBox("BATCH RESULTS", sb.String())
}

// PrintLibrary outputs a summary of the rules in lib.
func (p *Printer) PrintLibrary(lib *patterns.Library) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Version:           %s\n", lib.Version))
	sb.WriteString(fmt.Sprintf("Weak phrases:      %d\n", len(lib.WeakPhrases)))
	sb.WriteString(fmt.Sprintf("Achievement verbs: %d\n", len(lib.AchievementVerbs)))
	sb.WriteString(fmt.Sprintf("Seniority signals: %d\n", len(lib.SenioritySignals)))
	sb.WriteString(fmt.Sprintf("Metric patterns:   %d\n", len(lib.Metrics)))
	sb.WriteString(fmt.Sprintf("Technologies:      %d\n", len(lib.Technologies)))
	sb.WriteString(fmt.Sprintf("Vocabulary:        %d terms\n", len(lib.Vocabulary())))

	contexts := make([]string, 0, len(lib.Contexts))
	for _, c := range lib.Contexts {
		contexts = append(contexts, c.Name)
	}
	sb.WriteString(fmt.Sprintf("\nContexts: %s\n", strings.Join(contexts, ", ")))

	sb.WriteString("\nCategories:\n")
	for _, c := range lib.Categories {
		sb.WriteString(fmt.Sprintf("  • %-14s %d keywords\n", c.Name, len(c.Keywords)))
	}

	p.printBox("PATTERN LIBRARY", strings.TrimSuffix(sb.String(), "\n"))
}
