package router

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultSuggestions is the catalog of example queries offered when no
// route produces an answer.
var DefaultSuggestions = []string{
	"show top churn accounts",
	"suggest upsell for high-value segment",
	"show customer segments",
	"list low-risk customers",
	"show high-value customers",
	"tell me about C00001",
	"who are at risk of churn",
	"give details for 2",
	"upsell candidates",
	"show distribution of segments",
}

const (
	// similarityFloor rejects "did you mean" hints that are barely related.
	similarityFloor = 0.6

	// maxShownSuggestions keeps the fallback reply scannable.
	maxShownSuggestions = 5
)

// Suggester builds the fallback reply with an optional closest-match hint.
type Suggester struct {
	catalog []string
}

// NewSuggester wraps a suggestion catalog. An empty catalog falls back to
// DefaultSuggestions.
func NewSuggester(catalog []string) *Suggester {
	if len(catalog) == 0 {
		catalog = DefaultSuggestions
	}
	return &Suggester{catalog: catalog}
}

// Closest returns the catalog entry nearest to the query when it clears
// the similarity floor. Ties keep the earliest entry, so the result is
// deterministic for a fixed catalog.
func (s *Suggester) Closest(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	best := ""
	bestScore := 0.0
	for _, c := range s.catalog {
		if score := similarity(q, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore >= similarityFloor {
		return best, true
	}
	return "", false
}

// FallbackReply lists the leading catalog entries and, when the query is
// close to one of them, a "did you mean" hint.
func (s *Suggester) FallbackReply(query string) string {
	var b strings.Builder
	b.WriteString("🤔 I didn't quite understand that query. Here are some things you can ask me:\n\n")
	for i, c := range s.catalog {
		if i == maxShownSuggestions {
			break
		}
		b.WriteString("• ")
		b.WriteString(c)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if closest, ok := s.Closest(query); ok {
		b.WriteString(fmt.Sprintf(" Did you mean: '%s'?", closest))
	}
	return b.String()
}

// similarity is a normalized edit-distance ratio in [0,1], 1 meaning equal.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}
