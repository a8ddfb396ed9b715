package insight

import (
	"fmt"
	"math/rand"

	"crm-insights-be/pkg/dataset"
)

// UpsellOffers is the fixed catalog a recommendation draws from.
var UpsellOffers = []string{
	"Upgrade to the Enterprise Analytics Suite",
	"Adopt the AI-powered Customer Support Bot",
	"Add Advanced Security & Compliance module",
	"Bundle with Premium API Access",
	"Expand to Multi-User Collaboration features",
	"Upgrade to Dedicated Account Manager + Priority Support",
}

// Upsell rule bounds: established high-value accounts with room to grow.
const (
	maxUpsellDiversity = 2
	maxUpsellChurn     = 0.4
)

// RecommendUpsell applies the upsell rule to one row. The rng picks the
// offer, so callers can seed it for deterministic output.
func RecommendUpsell(c dataset.Customer, rng *rand.Rand) (string, bool) {
	if c.Segment != dataset.SegmentHighValue {
		return "", false
	}
	if c.ProductDiversity > maxUpsellDiversity || c.ChurnProbability >= maxUpsellChurn {
		return "", false
	}
	offer := UpsellOffers[rng.Intn(len(UpsellOffers))]
	return fmt.Sprintf("%s is a strong candidate for upsell → %s.", c.DisplayName(), offer), true
}

// UpsellCandidate ties a recommendation back to its customer.
type UpsellCandidate struct {
	CustomerID     string `json:"customer_id"`
	Company        string `json:"company_name"`
	Recommendation string `json:"recommendation"`
}

// UpsellCandidates scans rows in order and applies the rule, stopping at
// limit when limit > 0.
func UpsellCandidates(rows []dataset.Customer, rng *rand.Rand, limit int) []UpsellCandidate {
	var out []UpsellCandidate
	for _, r := range rows {
		rec, ok := RecommendUpsell(r, rng)
		if !ok {
			continue
		}
		out = append(out, UpsellCandidate{CustomerID: r.ID, Company: r.CompanyName, Recommendation: rec})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
