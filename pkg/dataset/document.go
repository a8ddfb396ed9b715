package dataset

import "fmt"

// BuildDocument renders the retrieval chunk for one customer. One chunk
// per customer; the whole profile fits comfortably in a single embedding.
func BuildDocument(c Customer) string {
	status := "Active"
	if c.Churned {
		status = "Churned"
	}
	return fmt.Sprintf(`Customer ID: %s
Company Name: %s
Industry: %s
Engagement Score: %.2f
Last Interaction: %s
Churn Status: %s
Segment: %s
Churn Probability: %.1f%%
Total Spend: $%s
Tenure Days: %d
Product Diversity: %d`,
		c.ID,
		c.CompanyName,
		c.Industry,
		c.EngagementScore,
		c.LastInteractionLabel(),
		status,
		c.Segment,
		c.ChurnProbability*100,
		FormatMoney(c.Monetary),
		c.TenureDays,
		c.ProductDiversity,
	)
}

// DocumentMetadata is stored next to the chunk so retrieval results carry
// the structured fields without re-parsing the text.
func DocumentMetadata(c Customer) map[string]interface{} {
	status := "Active"
	if c.Churned {
		status = "Churned"
	}
	return map[string]interface{}{
		"customer_id":       c.ID,
		"company_name":      c.CompanyName,
		"industry":          c.Industry,
		"segment":           c.Segment,
		"churn_status":      status,
		"churn_probability": c.ChurnProbability,
		"engagement_score":  c.EngagementScore,
		"monetary":          c.Monetary,
	}
}
