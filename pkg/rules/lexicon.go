package rules

import "strings"

// Intent names.
const (
	IntentChurn     = "churn"
	IntentHighRisk  = "high_risk"
	IntentLowRisk   = "low_risk"
	IntentHighValue = "high_value"
	IntentUpsell    = "upsell"
	IntentSegment   = "segment"
	IntentCustomer  = "customer"
)

// Intent maps a name to its trigger substrings.
type Intent struct {
	Name     string
	Triggers []string
}

// Lexicon is the ordered intent table. Matching walks it top to bottom and
// the first intent with any substring hit wins; the order is part of the
// behavioral contract, so do not reorder entries.
var Lexicon = []Intent{
	{Name: IntentChurn, Triggers: []string{"churn", "at risk", "likely to cancel", "leaving", "show top churn accounts", "who are at risk"}},
	{Name: IntentHighRisk, Triggers: []string{"high risk", "very risky", "extreme churn"}},
	{Name: IntentLowRisk, Triggers: []string{"low risk", "safe customers", "loyal customers", "list low-risk customers"}},
	{Name: IntentHighValue, Triggers: []string{"high-value", "high value", "top customers", "best customers", "show high-value customers"}},
	{Name: IntentUpsell, Triggers: []string{"upsell", "cross-sell", "expansion", "growth", "upsell candidates", "suggest upsell"}},
	{Name: IntentSegment, Triggers: []string{"segment", "group", "distribution", "breakdown", "show customer segments", "show distribution of segments"}},
	{Name: IntentCustomer, Triggers: []string{"tell me about", "info on", "details for", "show customer", "who is"}},
}

// MatchIntent resolves the normalized query to the first matching intent.
func MatchIntent(q string) (string, bool) {
	for _, intent := range Lexicon {
		for _, trigger := range intent.Triggers {
			if strings.Contains(q, trigger) {
				return intent.Name, true
			}
		}
	}
	return "", false
}
