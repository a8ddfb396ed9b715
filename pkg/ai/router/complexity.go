package router

import (
	"regexp"
	"strings"
)

// Templates the rule engine answers verbatim. Prefix matches on the
// normalized query, so "hi there" and "show top churn accounts" both
// count as simple.
var simplePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(hi|hello|hey)`),
	regexp.MustCompile(`^(bye|goodbye)`),
	regexp.MustCompile(`^(thank|thanks)`),
	regexp.MustCompile(`^show (top|high|low)`),
	regexp.MustCompile(`^list (low|high)`),
	regexp.MustCompile(`^tell me about \w+`),
	regexp.MustCompile(`^give details for \d+`),
	regexp.MustCompile(`^upsell candidates`),
	regexp.MustCompile(`^show distribution`),
}

// Keywords that signal a query needs free-form reasoning rather than a
// canned list.
var complexIndicators = []string{
	"analyze", "compare", "trend", "pattern", "insight", "recommendation",
	"why", "how", "what if", "explain", "describe", "summarize",
	"relationship", "correlation", "impact", "effect",
}

// ScoreComplexity estimates, in [0,1], how much free-form reasoning a
// query needs. Simple templates score 0.2. Everything else starts at 0.5
// and climbs 0.1 per indicator keyword, plus 0.2 for a question mark or
// compound phrasing, capped at 1.0.
func ScoreComplexity(query string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, p := range simplePatterns {
		if p.MatchString(q) {
			return 0.2
		}
	}

	score := 0.5
	for _, kw := range complexIndicators {
		if strings.Contains(q, kw) {
			score += 0.1
		}
	}
	if strings.Contains(query, "?") || strings.Contains(q, " and ") || strings.Contains(q, " or ") {
		score += 0.2
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
