// Package rules is the deterministic half of the chatbot: whole-word
// social replies, follow-up resolution against the session's last list,
// and keyword intents executed directly on the dataset snapshot.
package rules

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"crm-insights-be/pkg/dataset"
	"crm-insights-be/pkg/insight"
	"crm-insights-be/pkg/store"
)

const (
	listLimit       = 10
	lowRiskMaxChurn = 0.2
)

const detailHint = "\n\nYou can say 'give details for 2' to get more info."

var customerKeyPattern = regexp.MustCompile(`(?:tell me about|info on|details for|show customer|who is)\s+([a-z0-9_ -]+)`)

// Engine answers queries that deterministic rules can handle. It only ever
// mutates the session's LastList; the snapshot is read-only.
type Engine struct {
	snapshot *dataset.Snapshot
	rng      *rand.Rand
	logger   *log.Logger
}

// NewEngine wires the engine. A nil rng gets a time-seeded one; tests pass
// a seeded rng for deterministic replies and offers.
func NewEngine(snapshot *dataset.Snapshot, rng *rand.Rand, logger *log.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = log.New(os.Stdout, "[RULES] ", log.LstdFlags)
	}
	return &Engine{snapshot: snapshot, rng: rng, logger: logger}
}

// SocialReply handles greetings, thanks, and goodbyes. It never touches
// the session list.
func (e *Engine) SocialReply(query string) (string, bool) {
	q := normalize(query)
	switch {
	case matchesAny(q, greetingPatterns):
		return e.pick(greetingReplies), true
	case matchesAny(q, thanksPatterns):
		return e.pick(thanksReplies), true
	case matchesAny(q, byePatterns):
		return e.pick(byeReplies), true
	}
	return "", false
}

// FollowUp resolves "give details for N" against the session's last list.
// Without a list the query falls through to normal intent handling, where
// "details for" doubles as a customer-lookup trigger.
func (e *Engine) FollowUp(query string, sess *store.Session) (string, bool) {
	if sess == nil || len(sess.LastList) == 0 {
		return "", false
	}
	rank, ok := ParseRankReference(normalize(query))
	if !ok {
		return "", false
	}

	for _, item := range sess.LastList {
		if item.Rank != rank {
			continue
		}
		row, ok := e.snapshot.FindByID(item.CustomerID)
		if !ok {
			return fmt.Sprintf("I couldn't load full details for item %d (ID %s).", rank, item.CustomerID), true
		}
		return insight.Narrative(row), true
	}

	ranks := make([]string, 0, len(sess.LastList))
	for _, item := range sess.LastList {
		ranks = append(ranks, strconv.Itoa(item.Rank))
	}
	return fmt.Sprintf("I don't have item %d in the last list. Try one of these: %s", rank, strings.Join(ranks, ", ")), true
}

// Dispatch matches the query against the lexicon and executes the intent.
// The second return is false when no rule applies.
func (e *Engine) Dispatch(query string, sess *store.Session) (string, bool) {
	if sess == nil {
		sess = store.NewSession("")
	}
	q := normalize(query)
	intent, ok := MatchIntent(q)
	if !ok {
		return "", false
	}
	e.logger.Printf("intent=%s", intent)

	switch intent {
	case IntentChurn, IntentHighRisk:
		return e.churnList(sess), true
	case IntentLowRisk:
		return e.lowRiskList(sess), true
	case IntentHighValue:
		return e.highValueList(sess), true
	case IntentUpsell:
		return e.upsellList(sess), true
	case IntentSegment:
		return e.segmentDistribution(sess), true
	case IntentCustomer:
		return e.customerDetail(q)
	}
	return "", false
}

func (e *Engine) churnList(sess *store.Session) string {
	results := insight.TopInsights(e.snapshot, listLimit)
	lines := make([]string, 0, len(results))
	items := make([]store.ResultItem, 0, len(results))
	for i, ri := range results {
		rank := i + 1
		c := ri.Customer
		lines = append(lines, fmt.Sprintf("%d. %s (ID %s) — churn %.0f%%", rank, c.DisplayName(), c.ID, c.ChurnProbability*100))
		items = append(items, store.ResultItem{Rank: rank, CustomerID: c.ID, Company: c.CompanyName, Insight: ri.Insight})
	}
	sess.SetLastList(items)
	return "🚨 Churn or High-risk customers:\n" + strings.Join(lines, "\n") + detailHint
}

func (e *Engine) lowRiskList(sess *store.Session) string {
	rows := e.snapshot.LowRisk(lowRiskMaxChurn, listLimit)
	if len(rows) == 0 {
		return "No low-risk customers found."
	}
	lines := make([]string, 0, len(rows))
	items := make([]store.ResultItem, 0, len(rows))
	for i, c := range rows {
		rank := i + 1
		lines = append(lines, fmt.Sprintf("%d. %s (ID %s) — churn %.0f%%", rank, c.DisplayName(), c.ID, c.ChurnProbability*100))
		items = append(items, store.ResultItem{Rank: rank, CustomerID: c.ID, Company: c.CompanyName})
	}
	sess.SetLastList(items)
	return "✅ Low-risk customers:\n" + strings.Join(lines, "\n")
}

func (e *Engine) highValueList(sess *store.Session) string {
	rows := e.snapshot.HighValueBySpend(listLimit)
	if len(rows) == 0 {
		return "No high-value customers found."
	}
	lines := make([]string, 0, len(rows))
	items := make([]store.ResultItem, 0, len(rows))
	for i, c := range rows {
		rank := i + 1
		lines = append(lines, fmt.Sprintf("%d. %s (ID %s) — spent $%s", rank, c.DisplayName(), c.ID, dataset.FormatMoney(c.Monetary)))
		items = append(items, store.ResultItem{Rank: rank, CustomerID: c.ID, Company: c.CompanyName})
	}
	sess.SetLastList(items)
	return "🏆 High-value customers:\n" + strings.Join(lines, "\n")
}

func (e *Engine) upsellList(sess *store.Session) string {
	cands := insight.UpsellCandidates(e.snapshot.Rows(), e.rng, listLimit)
	if len(cands) == 0 {
		return "No immediate upsell candidates found by the rule."
	}
	lines := make([]string, 0, len(cands))
	items := make([]store.ResultItem, 0, len(cands))
	for i, c := range cands {
		rank := i + 1
		lines = append(lines, fmt.Sprintf("%d. %s (ID %s) — %s", rank, c.Company, c.CustomerID, c.Recommendation))
		items = append(items, store.ResultItem{Rank: rank, CustomerID: c.CustomerID, Company: c.Company, Insight: c.Recommendation})
	}
	sess.SetLastList(items)
	return "💡 Upsell candidates:\n" + strings.Join(lines, "\n")
}

// segmentDistribution clears the last list: counts are not a ranked,
// reference-able result.
func (e *Engine) segmentDistribution(sess *store.Session) string {
	counts := e.snapshot.SegmentCounts()
	sess.ClearLastList()
	lines := make([]string, 0, len(counts))
	for _, c := range counts {
		lines = append(lines, fmt.Sprintf("%s: %d", c.Segment, c.Count))
	}
	return "📊 Segment distribution:\n" + strings.Join(lines, "\n")
}

func (e *Engine) customerDetail(q string) (string, bool) {
	m := customerKeyPattern.FindStringSubmatch(q)
	if m == nil {
		return "", false
	}
	key := strings.ToUpper(strings.TrimSpace(m[1]))
	row, ok := e.snapshot.Find(key)
	if !ok {
		return fmt.Sprintf("No customer matching '%s'. Try a customer id like C00001.", key), true
	}
	return insight.Narrative(row), true
}

func (e *Engine) pick(replies []string) string {
	return replies[e.rng.Intn(len(replies))]
}

func normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
