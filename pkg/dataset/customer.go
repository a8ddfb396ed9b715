package dataset

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Segment labels produced by the offline segmentation pipeline.
const (
	SegmentHighValue = "high_value"
	SegmentMidValue  = "mid_value"
	SegmentAtRisk    = "at_risk"
	SegmentUnknown   = "unknown"
)

// DefaultRecencyDays marks a customer with no recorded interaction.
const DefaultRecencyDays = 9999

// Customer is one row of the processed customer dataset. The offline
// pipeline already assigned Segment and ChurnProbability; this service
// never recomputes them.
type Customer struct {
	ID               string     `json:"customer_id"`
	CompanyName      string     `json:"company_name"`
	Industry         string     `json:"industry"`
	Segment          string     `json:"segment"`
	ChurnProbability float64    `json:"churn_prob"`
	EngagementScore  float64    `json:"engagement_score"`
	Monetary         float64    `json:"monetary"`
	ProductDiversity int        `json:"product_diversity"`
	RecencyDays      int        `json:"recency_days"`
	TenureDays       int        `json:"tenure_days"`
	Churned          bool       `json:"churned"`
	LastInteraction  *time.Time `json:"last_interaction_date,omitempty"`
}

// DisplayName prefers the company name, falling back to the id.
func (c Customer) DisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	return c.ID
}

// LastInteractionLabel renders the last interaction date or "N/A".
func (c Customer) LastInteractionLabel() string {
	if c.LastInteraction == nil {
		return "N/A"
	}
	return c.LastInteraction.Format("2006-01-02")
}

// normalize applies the documented column defaults. It runs when rows are
// parsed from CSV and again when a snapshot is built from database rows, so
// both paths serve the same values.
func (c Customer) normalize() Customer {
	if c.Segment == "" {
		c.Segment = SegmentUnknown
	}
	if c.ChurnProbability < 0 {
		c.ChurnProbability = 0
	}
	if c.ChurnProbability > 1 {
		c.ChurnProbability = 1
	}
	if c.Monetary < 0 {
		c.Monetary = 0
	}
	if c.ProductDiversity < 0 {
		c.ProductDiversity = 0
	}
	if c.RecencyDays <= 0 && c.LastInteraction == nil {
		c.RecencyDays = DefaultRecencyDays
	}
	return c
}

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders a dollar amount with thousands separators.
func FormatMoney(v float64) string {
	return moneyPrinter.Sprintf("%.2f", v)
}
