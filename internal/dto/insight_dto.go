package dto

type CustomerSummaryDTO struct {
	CustomerId       string  `json:"customer_id"`
	CompanyName      string  `json:"company_name"`
	Industry         string  `json:"industry,omitempty"`
	Segment          string  `json:"segment"`
	ChurnProbability float64 `json:"churn_probability"`
	EngagementScore  float64 `json:"engagement_score"`
	Monetary         float64 `json:"monetary"`
}

type UpsellCandidateDTO struct {
	CustomerId     string `json:"customer_id"`
	CompanyName    string `json:"company_name"`
	Recommendation string `json:"recommendation"`
}

type SummaryResponse struct {
	Segments         map[string]int       `json:"segments"`
	TopRisk          []CustomerSummaryDTO `json:"top_risk"`
	UpsellCandidates []UpsellCandidateDTO `json:"upsell_candidates"`
}

type SegmentCustomersResponse struct {
	Segment   string               `json:"segment"`
	Count     int                  `json:"count"`
	Customers []CustomerSummaryDTO `json:"customers"`
}

type UpsellListResponse struct {
	Count      int                  `json:"count"`
	Candidates []UpsellCandidateDTO `json:"candidates"`
}

type ServiceInfoResponse struct {
	Service      string   `json:"service"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
	Examples     []string `json:"examples"`
}
