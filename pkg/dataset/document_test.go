package dataset

import (
	"strings"
	"testing"
	"time"
)

func TestBuildDocument(t *testing.T) {
	d := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	c := Customer{
		ID:               "C00042",
		CompanyName:      "Acme Corp",
		Industry:         "Manufacturing",
		Segment:          SegmentHighValue,
		ChurnProbability: 0.123,
		EngagementScore:  0.87,
		Monetary:         125000.5,
		ProductDiversity: 2,
		TenureDays:       730,
		Churned:          false,
		LastInteraction:  &d,
	}

	doc := BuildDocument(c)
	for _, want := range []string{
		"Customer ID: C00042",
		"Company Name: Acme Corp",
		"Industry: Manufacturing",
		"Engagement Score: 0.87",
		"Last Interaction: 2024-03-02",
		"Churn Status: Active",
		"Segment: high_value",
		"Churn Probability: 12.3%",
		"Total Spend: $125,000.50",
		"Tenure Days: 730",
		"Product Diversity: 2",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestBuildDocumentChurnedNoDate(t *testing.T) {
	doc := BuildDocument(Customer{ID: "C1", Churned: true})
	if !strings.Contains(doc, "Churn Status: Churned") {
		t.Errorf("expected Churned status:\n%s", doc)
	}
	if !strings.Contains(doc, "Last Interaction: N/A") {
		t.Errorf("expected N/A last interaction:\n%s", doc)
	}
}

func TestDocumentMetadata(t *testing.T) {
	meta := DocumentMetadata(Customer{ID: "C7", CompanyName: "Globex", Segment: SegmentAtRisk, ChurnProbability: 0.8})
	if meta["customer_id"] != "C7" || meta["company_name"] != "Globex" {
		t.Errorf("identity fields wrong: %+v", meta)
	}
	if meta["churn_status"] != "Active" {
		t.Errorf("expected Active churn_status, got %v", meta["churn_status"])
	}
	if meta["churn_probability"] != 0.8 {
		t.Errorf("expected churn_probability 0.8, got %v", meta["churn_probability"])
	}
}
