package service

import (
	"context"
	"math/rand"
	"time"

	"crm-insights-be/internal/dto"
	"crm-insights-be/pkg/ai/router"
	"crm-insights-be/pkg/dataset"
	"crm-insights-be/pkg/insight"
)

const (
	ServiceName    = "crm-insights-be"
	ServiceVersion = "1.0.0"

	summaryTopRiskLimit    = 10
	summaryUpsellLimit     = 10
	segmentCustomerCap     = 200
	upsellCandidateListCap = 50
)

type IInsightService interface {
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
	Segment(ctx context.Context, segment string) (*dto.SegmentCustomersResponse, error)
	UpsellCandidates(ctx context.Context) (*dto.UpsellListResponse, error)
	Info(ctx context.Context) *dto.ServiceInfoResponse
}

// insightService serves the analytics endpoints straight from the snapshot.
type insightService struct {
	snapshot *dataset.Snapshot
	rng      *rand.Rand
}

func NewInsightService(snapshot *dataset.Snapshot) IInsightService {
	return &insightService{
		snapshot: snapshot,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *insightService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	segments := make(map[string]int)
	for _, sc := range s.snapshot.SegmentCounts() {
		segments[sc.Segment] = sc.Count
	}

	topRisk := make([]dto.CustomerSummaryDTO, 0, summaryTopRiskLimit)
	for _, c := range s.snapshot.TopByChurn(summaryTopRiskLimit) {
		topRisk = append(topRisk, toCustomerSummary(c))
	}

	candidates := insight.UpsellCandidates(s.snapshot.Rows(), s.rng, summaryUpsellLimit)
	upsell := make([]dto.UpsellCandidateDTO, 0, len(candidates))
	for _, c := range candidates {
		upsell = append(upsell, toUpsellCandidate(c))
	}

	return &dto.SummaryResponse{
		Segments:         segments,
		TopRisk:          topRisk,
		UpsellCandidates: upsell,
	}, nil
}

// Segment lists a segment's customers, capped. A segment with no rows is
// treated as unknown and returns nil so the controller can 404.
func (s *insightService) Segment(ctx context.Context, segment string) (*dto.SegmentCustomersResponse, error) {
	rows := s.snapshot.BySegment(segment)
	if len(rows) == 0 {
		return nil, nil
	}

	count := len(rows)
	if count > segmentCustomerCap {
		rows = rows[:segmentCustomerCap]
	}

	customers := make([]dto.CustomerSummaryDTO, 0, len(rows))
	for _, c := range rows {
		customers = append(customers, toCustomerSummary(c))
	}

	return &dto.SegmentCustomersResponse{
		Segment:   rows[0].Segment,
		Count:     count,
		Customers: customers,
	}, nil
}

func (s *insightService) UpsellCandidates(ctx context.Context) (*dto.UpsellListResponse, error) {
	candidates := insight.UpsellCandidates(s.snapshot.Rows(), s.rng, upsellCandidateListCap)
	out := make([]dto.UpsellCandidateDTO, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, toUpsellCandidate(c))
	}

	return &dto.UpsellListResponse{
		Count:      len(out),
		Candidates: out,
	}, nil
}

func (s *insightService) Info(ctx context.Context) *dto.ServiceInfoResponse {
	return &dto.ServiceInfoResponse{
		Service: ServiceName,
		Version: ServiceVersion,
		Capabilities: []string{
			"rule-based query routing",
			"retrieval-augmented answers over customer records",
			"follow-up references into the last listed results",
			"segment analytics",
			"upsell recommendations",
		},
		Examples: router.DefaultSuggestions,
	}
}

func toCustomerSummary(c dataset.Customer) dto.CustomerSummaryDTO {
	return dto.CustomerSummaryDTO{
		CustomerId:       c.ID,
		CompanyName:      c.CompanyName,
		Industry:         c.Industry,
		Segment:          c.Segment,
		ChurnProbability: c.ChurnProbability,
		EngagementScore:  c.EngagementScore,
		Monetary:         c.Monetary,
	}
}

func toUpsellCandidate(c insight.UpsellCandidate) dto.UpsellCandidateDTO {
	return dto.UpsellCandidateDTO{
		CustomerId:     c.CustomerID,
		CompanyName:    c.Company,
		Recommendation: c.Recommendation,
	}
}
