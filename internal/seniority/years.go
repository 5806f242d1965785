package seniority

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// maxEstimatedYears caps the tenure read from date ranges
const maxEstimatedYears = 50

var (
	yearRe      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	yearRangeRe = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*(?:-|–|—|to)\s*((?:19|20)\d{2}|present|current|now)\b`)
)

// EstimateYears sums the spans of "YYYY - YYYY" ranges in text, merging
// overlaps. An open range ends at the latest year written anywhere in the
// text so the estimate never depends on the clock.
func EstimateYears(text string) int {
	latest := 0
	for _, y := range yearRe.FindAllString(text, -1) {
		latest = max(latest, atoi(y))
	}

	var spans [][2]int
	for _, m := range yearRangeRe.FindAllStringSubmatch(text, -1) {
		start := atoi(m[1])
		end := latest
		if !isOpenEnded(m[2]) {
			end = atoi(m[2])
		}
		if end > start {
			spans = append(spans, [2]int{start, end})
		}
	}
	if len(spans) == 0 {
		return 0
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	total := 0
	cur := spans[0]
	for _, s := range spans[1:] {
		if s[0] <= cur[1] {
			cur[1] = max(cur[1], s[1])
			continue
		}
		total += cur[1] - cur[0]
		cur = s
	}
	total += cur[1] - cur[0]
	return min(total, maxEstimatedYears)
}

func isOpenEnded(s string) bool {
	switch strings.ToLower(s) {
	case "present", "current", "now":
		return true
	}
	return false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
