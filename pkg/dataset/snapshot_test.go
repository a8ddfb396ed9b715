package dataset

import (
	"testing"
	"time"
)

func testRows() []Customer {
	d := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	return []Customer{
		{ID: "C00001", CompanyName: "Acme Corp", Segment: SegmentHighValue, ChurnProbability: 0.9, Monetary: 120000, ProductDiversity: 1, RecencyDays: 120, LastInteraction: &d},
		{ID: "C00002", CompanyName: "Globex", Segment: SegmentMidValue, ChurnProbability: 0.1, Monetary: 40000, ProductDiversity: 3, RecencyDays: 12, LastInteraction: &d},
		{ID: "C00003", CompanyName: "Initech", Segment: SegmentHighValue, ChurnProbability: 0.3, Monetary: 250000, ProductDiversity: 2, RecencyDays: 30, LastInteraction: &d},
		{ID: "C00004", CompanyName: "Umbrella", Segment: SegmentAtRisk, ChurnProbability: 0.5, Monetary: 9000, ProductDiversity: 1, RecencyDays: 200, LastInteraction: &d},
	}
}

func TestTopByChurn(t *testing.T) {
	s := NewSnapshot(testRows())

	top := s.TopByChurn(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(top))
	}
	if top[0].ID != "C00001" || top[1].ID != "C00004" {
		t.Errorf("wrong ordering: %s, %s", top[0].ID, top[1].ID)
	}

	// The snapshot itself must stay in load order.
	if s.Rows()[0].ID != "C00001" || s.Rows()[1].ID != "C00002" {
		t.Errorf("snapshot rows were reordered")
	}
}

func TestLowRisk(t *testing.T) {
	s := NewSnapshot(testRows())
	rows := s.LowRisk(0.2, 10)
	if len(rows) != 1 {
		t.Fatalf("expected 1 low-risk row, got %d", len(rows))
	}
	if rows[0].ID != "C00002" {
		t.Errorf("expected C00002, got %s", rows[0].ID)
	}
}

func TestHighValueBySpend(t *testing.T) {
	s := NewSnapshot(testRows())
	rows := s.HighValueBySpend(10)
	if len(rows) != 2 {
		t.Fatalf("expected 2 high_value rows, got %d", len(rows))
	}
	if rows[0].ID != "C00003" {
		t.Errorf("expected biggest spender first, got %s", rows[0].ID)
	}
}

func TestSegmentCounts(t *testing.T) {
	s := NewSnapshot(testRows())
	counts := s.SegmentCounts()
	if len(counts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(counts))
	}
	if counts[0].Segment != SegmentHighValue || counts[0].Count != 2 {
		t.Errorf("expected high_value first with 2, got %+v", counts[0])
	}
	// Ties resolved by name: at_risk before mid_value.
	if counts[1].Segment != SegmentAtRisk || counts[2].Segment != SegmentMidValue {
		t.Errorf("tie ordering wrong: %+v", counts)
	}
}

func TestFind(t *testing.T) {
	s := NewSnapshot(testRows())

	tests := []struct {
		name   string
		key    string
		wantID string
		wantOk bool
	}{
		{name: "exact id", key: "C00002", wantID: "C00002", wantOk: true},
		{name: "lowercase id", key: "c00002", wantID: "C00002", wantOk: true},
		{name: "company name", key: "acme corp", wantID: "C00001", wantOk: true},
		{name: "unknown", key: "WAYNE", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Find(tt.key)
			if ok != tt.wantOk {
				t.Fatalf("Find(%q) ok = %v, want %v", tt.key, ok, tt.wantOk)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("Find(%q) = %s, want %s", tt.key, got.ID, tt.wantID)
			}
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	s := NewSnapshot([]Customer{
		{ID: "X1", ChurnProbability: 1.7, Monetary: -5},
		{ID: "X2", Segment: "vip", ChurnProbability: -0.2},
	})

	r0 := s.Rows()[0]
	if r0.Segment != SegmentUnknown {
		t.Errorf("empty segment should default to %q, got %q", SegmentUnknown, r0.Segment)
	}
	if r0.ChurnProbability != 1 {
		t.Errorf("churn probability should clamp to 1, got %v", r0.ChurnProbability)
	}
	if r0.Monetary != 0 {
		t.Errorf("negative monetary should floor at 0, got %v", r0.Monetary)
	}
	if r0.RecencyDays != DefaultRecencyDays {
		t.Errorf("missing recency should default to %d, got %d", DefaultRecencyDays, r0.RecencyDays)
	}

	r1 := s.Rows()[1]
	if r1.Segment != "vip" {
		t.Errorf("custom segment should survive, got %q", r1.Segment)
	}
	if r1.ChurnProbability != 0 {
		t.Errorf("negative churn probability should clamp to 0, got %v", r1.ChurnProbability)
	}
}
