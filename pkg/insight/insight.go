// Package insight turns customer rows into short analyst-style narratives
// and rule-based upsell recommendations.
package insight

import (
	"fmt"
	"strings"

	"crm-insights-be/pkg/dataset"
)

// Signal thresholds for the qualitative churn narrative.
const (
	HighChurnThreshold     = 0.6
	LowEngagementThreshold = 0.35
	StaleContactDays       = 90
)

// Reasons lists the qualitative churn signals present on a row.
func Reasons(c dataset.Customer) []string {
	var out []string
	if c.ChurnProbability > HighChurnThreshold {
		out = append(out, "high churn probability")
	}
	if c.EngagementScore < LowEngagementThreshold {
		out = append(out, "low engagement")
	}
	if c.RecencyDays > StaleContactDays {
		out = append(out, "no recent contact")
	}
	return out
}

// Action recommends the follow-up matching the churn severity.
func Action(c dataset.Customer) string {
	if c.ChurnProbability > HighChurnThreshold {
		return "Recommend outreach: phone call within 48h + 10% renewal incentive."
	}
	return "Recommend targeted upsell or account review."
}

// Narrative composes the one-sentence customer summary used for detail
// views and follow-up answers.
func Narrative(c dataset.Customer) string {
	reasonText := strings.Join(Reasons(c), ", ")
	if reasonText == "" {
		reasonText = "mixed indicators"
	}
	return fmt.Sprintf("%s (segment: %s) — churn: %.0f%%. Last interaction: %s. Key signals: %s. %s",
		c.DisplayName(), c.Segment, c.ChurnProbability*100, c.LastInteractionLabel(), reasonText, Action(c))
}

// RiskInsight pairs a customer with its narrative.
type RiskInsight struct {
	Customer dataset.Customer
	Insight  string
}

// TopInsights returns narratives for the n highest-churn customers.
func TopInsights(s *dataset.Snapshot, n int) []RiskInsight {
	rows := s.TopByChurn(n)
	out := make([]RiskInsight, 0, len(rows))
	for _, r := range rows {
		out = append(out, RiskInsight{Customer: r, Insight: Narrative(r)})
	}
	return out
}
