package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	maxHyperlinks         = 5
	longLineChars         = 120
	maxLongLines          = 3
	repetitiveStartLimit  = 4
	minRecommendedSection = 4
	failingBuzzwordCount  = 4
	maxListedExamples     = 3
)

// essential sections every resume is expected to have
var essentialSections = []string{"experience", "education", "skills"}

var (
	tableRowRe    = regexp.MustCompile(`\|.*\|.*\|`)
	columnGapRe   = regexp.MustCompile(`\S\s{4,}\S`)
	textBoxRe     = regexp.MustCompile(`^\s*(?:[│┃║].*[│┃║]|\+[-=]{3,}\+)\s*$`)
	pageMarkRe    = regexp.MustCompile(`(?i)^\s*(?:page\s+\d+(?:\s+of\s+\d+)?|\d+\s*/\s*\d+|confidential|curriculum vitae)\s*$`)
	urlRe         = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	blankRunRe    = regexp.MustCompile(`\n[ \t]*\n[ \t]*\n[ \t]*\n`)
	bulletMarkRe  = regexp.MustCompile(`^\s*([-*•·▪◦‣●○■□➢➤→–>])\s+`)
	smartQuoteRe  = regexp.MustCompile(`[“”‘’]`)
	specialCharRe = regexp.MustCompile(`[©®™§¶†‡\x{00A0}\x{200B}-\x{200F}\x{FEFF}]`)
	monthYearRe   = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(?:19|20)\d{2}\b`)
	slashDateRe   = regexp.MustCompile(`\b\d{1,2}/(?:19|20)\d{2}\b`)
	isoDateRe     = regexp.MustCompile(`\b(?:19|20)\d{2}-\d{2}\b`)
)

// FormatReport is the outcome of the structural checks
type FormatReport struct {
	Issues   []types.Issue
	Sections []string
	Contact  types.ContactInfo
}

// document is the pre-split text shared by all checks
type document struct {
	lib      *patterns.Library
	text     string
	lines    []string
	sections []string
	contact  types.ContactInfo
}

type check struct {
	id       string
	title    string
	severity types.Severity
	fix      string
	eval     func(d *document) (types.IssueStatus, string)
}

var checks = []check{
	{"sections", "Standard sections", types.SeverityHigh,
		"Add clearly labeled Experience, Education and Skills sections", checkSections},
	{"contact_email", "Email address", types.SeverityHigh,
		"Add a professional email address near the top", checkEmail},
	{"contact_phone", "Phone number", types.SeverityMedium,
		"Add a phone number to the contact line", checkPhone},
	{"tables", "Tables", types.SeverityHigh,
		"Replace tables with plain lines and bullets", checkTables},
	{"columns", "Multi-column layout", types.SeverityHigh,
		"Use a single-column layout", checkColumns},
	{"text_boxes", "Text boxes", types.SeverityMedium,
		"Move boxed content into regular sections", checkTextBoxes},
	{"graphics", "Graphics characters", types.SeverityMedium,
		"Remove icons, emoji and box-drawing characters", checkGraphics},
	{"special_characters", "Special characters", types.SeverityLow,
		"Remove invisible or decorative symbols", checkSpecialCharacters},
	{"smart_quotes", "Smart quotes", types.SeverityLow,
		"Use straight quotes and apostrophes", checkSmartQuotes},
	{"excessive_spacing", "Excessive spacing", types.SeverityLow,
		"Keep at most one blank line between blocks", checkSpacing},
	{"headers_footers", "Headers and footers", types.SeverityLow,
		"Remove page numbers and running headers", checkHeadersFooters},
	{"hyperlinks", "Hyperlinks", types.SeverityLow,
		"Keep only the most relevant links", checkHyperlinks},
	{"bullet_consistency", "Bullet consistency", types.SeverityLow,
		"Use the same bullet character throughout", checkBulletConsistency},
	{"long_lines", "Line length", types.SeverityLow,
		"Break long lines into concise bullets", checkLongLines},
	{"date_formats", "Date formats", types.SeverityLow,
		"Use one date format everywhere, for example Jan 2020", checkDateFormats},
	{"buzzwords", "Buzzwords", types.SeverityMedium,
		"Replace clichés with concrete accomplishments", checkBuzzwords},
	{"capitalization", "Technical capitalization", types.SeverityLow,
		"Use the official spelling of technology names", checkCapitalization},
	{"repetitive_starts", "Repetitive bullet starts", types.SeverityMedium,
		"Vary the verbs that open your bullets", checkRepetitiveStarts},
}

// CheckFormat runs every structural check against text. Each check yields
// exactly one issue, in a fixed order.
func CheckFormat(lib *patterns.Library, text string) FormatReport {
	d := &document{
		lib:      lib,
		text:     text,
		lines:    parsing.SplitLines(text),
		sections: DetectSections(lib, text),
		contact:  DetectContact(lib, text),
	}

	issues := make([]types.Issue, 0, len(checks))
	for _, c := range checks {
		status, reason := c.eval(d)
		issue := types.Issue{
			ID:       c.id,
			Title:    c.title,
			Status:   status,
			Severity: c.severity,
			Reason:   reason,
		}
		if status != types.StatusPassed {
			issue.Fix = c.fix
		}
		issues = append(issues, issue)
	}

	return FormatReport{Issues: issues, Sections: d.sections, Contact: d.contact}
}

// DetectSections returns the tags of the section headers present, in library order
func DetectSections(lib *patterns.Library, text string) []string {
	sections := []string{}
	seen := make(map[string]bool)
	for _, rule := range lib.Sections {
		if !seen[rule.Tag] && rule.MatchString(text) {
			seen[rule.Tag] = true
			sections = append(sections, rule.Tag)
		}
	}
	return sections
}

// DetectContact reports which contact channels appear in text
func DetectContact(lib *patterns.Library, text string) types.ContactInfo {
	var info types.ContactInfo
	for _, rule := range lib.PersonalInfo {
		switch rule.Tag {
		case "email":
			info.Email = info.Email || rule.MatchString(text)
		case "phone":
			info.Phone = info.Phone || rule.MatchString(text)
		}
	}
	info.LinkedIn = lib.HasLinkedIn(text)
	return info
}

func passed(reason string) (types.IssueStatus, string) { return types.StatusPassed, reason }

func countLines(lines []string, re *regexp.Regexp) int {
	n := 0
	for _, line := range lines {
		if re.MatchString(line) {
			n++
		}
	}
	return n
}

func checkSections(d *document) (types.IssueStatus, string) {
	var missing []string
	for _, s := range essentialSections {
		if !contains(d.sections, s) {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		return types.StatusFailed, "Missing sections: " + strings.Join(missing, ", ")
	}
	if len(d.sections) < minRecommendedSection {
		return types.StatusWarning, fmt.Sprintf("Only %d sections found; consider adding a summary or projects", len(d.sections))
	}
	return passed(fmt.Sprintf("Found %d sections", len(d.sections)))
}

func checkEmail(d *document) (types.IssueStatus, string) {
	if !d.contact.Email {
		return types.StatusFailed, "No email address found"
	}
	return passed("Email address found")
}

func checkPhone(d *document) (types.IssueStatus, string) {
	if !d.contact.Phone {
		return types.StatusWarning, "No phone number found"
	}
	return passed("Phone number found")
}

func checkTables(d *document) (types.IssueStatus, string) {
	rows := countLines(d.lines, tableRowRe)
	tabbed := 0
	for _, line := range d.lines {
		if strings.Count(line, "\t") >= 2 {
			tabbed++
		}
	}
	if rows+tabbed >= 2 {
		return types.StatusFailed, fmt.Sprintf("%d table-like lines found", rows+tabbed)
	}
	return passed("No tables detected")
}

func checkColumns(d *document) (types.IssueStatus, string) {
	gapped := 0
	for _, line := range d.lines {
		if columnGapRe.MatchString(strings.TrimSpace(line)) {
			gapped++
		}
	}
	if gapped >= 3 {
		return types.StatusFailed, fmt.Sprintf("%d lines look like side-by-side columns", gapped)
	}
	return passed("Single-column layout")
}

func checkTextBoxes(d *document) (types.IssueStatus, string) {
	if n := countLines(d.lines, textBoxRe); n >= 2 {
		return types.StatusFailed, fmt.Sprintf("%d boxed lines found", n)
	}
	return passed("No text boxes detected")
}

func isGraphic(r rune) bool {
	switch {
	case r >= 0x2500 && r <= 0x259F: // box drawing, block elements
		return true
	case r >= 0x25A0 && r <= 0x25FF && r != '■' && r != '□' && r != '●' && r != '○' && r != '◦' && r != '▪': // geometric shapes minus common bullets
		return true
	case r >= 0x2600 && r <= 0x27BF && r != '➢' && r != '➤': // symbols, dingbats minus arrow bullets
		return true
	case r >= 0x1F300 && r <= 0x1FAFF: // emoji
		return true
	}
	return false
}

func checkGraphics(d *document) (types.IssueStatus, string) {
	n := 0
	for _, r := range d.text {
		if isGraphic(r) {
			n++
		}
	}
	if n > 0 {
		return types.StatusFailed, fmt.Sprintf("%d graphics characters found", n)
	}
	return passed("No graphics characters")
}

func checkSpecialCharacters(d *document) (types.IssueStatus, string) {
	if n := len(specialCharRe.FindAllStringIndex(d.text, -1)); n > 0 {
		return types.StatusWarning, fmt.Sprintf("%d special characters found", n)
	}
	return passed("No special characters")
}

func checkSmartQuotes(d *document) (types.IssueStatus, string) {
	if n := len(smartQuoteRe.FindAllStringIndex(d.text, -1)); n > 0 {
		return types.StatusWarning, fmt.Sprintf("%d smart quotes found", n)
	}
	return passed("Straight quotes only")
}

func checkSpacing(d *document) (types.IssueStatus, string) {
	normalized := strings.Join(d.lines, "\n")
	if blankRunRe.MatchString(normalized) {
		return types.StatusWarning, "Three or more consecutive blank lines found"
	}
	return passed("Spacing is consistent")
}

func checkHeadersFooters(d *document) (types.IssueStatus, string) {
	if n := countLines(d.lines, pageMarkRe); n > 0 {
		return types.StatusWarning, fmt.Sprintf("%d page header or footer lines found", n)
	}
	return passed("No headers or footers")
}

func checkHyperlinks(d *document) (types.IssueStatus, string) {
	n := len(urlRe.FindAllStringIndex(d.text, -1))
	if n > maxHyperlinks {
		return types.StatusWarning, fmt.Sprintf("%d links found; more than %d distracts reviewers", n, maxHyperlinks)
	}
	return passed(fmt.Sprintf("%d links found", n))
}

func checkBulletConsistency(d *document) (types.IssueStatus, string) {
	markers := make(map[string]bool)
	for _, line := range d.lines {
		if m := bulletMarkRe.FindStringSubmatch(line); m != nil {
			markers[m[1]] = true
		}
	}
	if len(markers) > 1 {
		return types.StatusWarning, fmt.Sprintf("%d different bullet characters used", len(markers))
	}
	return passed("Bullets are consistent")
}

func checkLongLines(d *document) (types.IssueStatus, string) {
	n := 0
	for _, line := range d.lines {
		if utf8.RuneCountInString(strings.TrimSpace(line)) > longLineChars {
			n++
		}
	}
	if n > maxLongLines {
		return types.StatusWarning, fmt.Sprintf("%d lines exceed %d characters", n, longLineChars)
	}
	return passed("Line lengths are reasonable")
}

func checkDateFormats(d *document) (types.IssueStatus, string) {
	styles := 0
	for _, re := range []*regexp.Regexp{monthYearRe, slashDateRe, isoDateRe} {
		if re.MatchString(d.text) {
			styles++
		}
	}
	if styles > 1 {
		return types.StatusWarning, fmt.Sprintf("%d different date formats used", styles)
	}
	return passed("Date formats are consistent")
}

func checkBuzzwords(d *document) (types.IssueStatus, string) {
	var found []string
	for _, rule := range d.lib.BuzzwordRules() {
		if rule.MatchString(d.text) {
			found = append(found, rule.Tag)
		}
	}
	switch {
	case len(found) >= failingBuzzwordCount:
		return types.StatusFailed, "Buzzwords found: " + joinExamples(found)
	case len(found) > 0:
		return types.StatusWarning, "Buzzwords found: " + joinExamples(found)
	}
	return passed("No buzzwords")
}

func checkCapitalization(d *document) (types.IssueStatus, string) {
	var wrong []string
	for _, rule := range d.lib.TechnologyRules() {
		for _, span := range rule.FindAllIndex(d.text, -1) {
			written := d.text[span[0]:span[1]]
			if written == rule.Tag || (written == strings.ToLower(written) && d.lib.IsCommonWord(written)) {
				continue
			}
			wrong = append(wrong, fmt.Sprintf("%s → %s", written, rule.Tag))
			break
		}
	}
	if len(wrong) > 0 {
		return types.StatusWarning, "Check spelling: " + joinExamples(wrong)
	}
	return passed("Technology names are capitalized correctly")
}

func checkRepetitiveStarts(d *document) (types.IssueStatus, string) {
	counts := make(map[string]int)
	var order []string
	for _, line := range d.lines {
		words := strings.Fields(parsing.StripMarker(line))
		if len(words) == 0 || !startsWithLetter(words[0]) {
			continue
		}
		first := strings.ToLower(strings.TrimRight(words[0], ".,;:"))
		if counts[first] == 0 {
			order = append(order, first)
		}
		counts[first]++
	}
	var repeated []string
	for _, word := range order {
		if counts[word] >= repetitiveStartLimit {
			repeated = append(repeated, fmt.Sprintf("%q ×%d", word, counts[word]))
		}
	}
	if len(repeated) > 0 {
		return types.StatusWarning, "Repeated openers: " + joinExamples(repeated)
	}
	return passed("Bullet openers are varied")
}

func startsWithLetter(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsLetter(r)
}

func joinExamples(items []string) string {
	if len(items) > maxListedExamples {
		return strings.Join(items[:maxListedExamples], ", ") + fmt.Sprintf(" and %d more", len(items)-maxListedExamples)
	}
	return strings.Join(items, ", ")
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
