// Package dataset holds the immutable in-memory view of the processed
// customer table that the rule engine and the analytics services read.
package dataset

import (
	"sort"
	"strings"
)

// SegmentCount is one bucket of the segment distribution.
type SegmentCount struct {
	Segment string `json:"segment"`
	Count   int    `json:"count"`
}

// Snapshot is a read-only copy of the customer dataset, loaded once per
// process. Callers must not mutate the rows it returns.
type Snapshot struct {
	rows []Customer
}

// NewSnapshot copies the rows and applies the load-time column defaults.
func NewSnapshot(rows []Customer) *Snapshot {
	normalized := make([]Customer, 0, len(rows))
	for _, r := range rows {
		normalized = append(normalized, r.normalize())
	}
	return &Snapshot{rows: normalized}
}

func (s *Snapshot) Len() int { return len(s.rows) }

// Rows returns the full dataset in load order.
func (s *Snapshot) Rows() []Customer { return s.rows }

// TopByChurn returns up to n rows with the highest churn probability.
func (s *Snapshot) TopByChurn(n int) []Customer {
	out := s.copyRows()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChurnProbability > out[j].ChurnProbability
	})
	return head(out, n)
}

// LowRisk returns up to n rows with churn probability below maxProb,
// least risky first.
func (s *Snapshot) LowRisk(maxProb float64, n int) []Customer {
	var out []Customer
	for _, r := range s.rows {
		if r.ChurnProbability < maxProb {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChurnProbability < out[j].ChurnProbability
	})
	return head(out, n)
}

// HighValueBySpend returns up to n high_value rows, biggest spenders first.
func (s *Snapshot) HighValueBySpend(n int) []Customer {
	var out []Customer
	for _, r := range s.rows {
		if r.Segment == SegmentHighValue {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Monetary > out[j].Monetary
	})
	return head(out, n)
}

// BySegment returns rows whose segment matches, case-insensitively.
func (s *Snapshot) BySegment(segment string) []Customer {
	want := strings.ToLower(strings.TrimSpace(segment))
	var out []Customer
	for _, r := range s.rows {
		if strings.ToLower(r.Segment) == want {
			out = append(out, r)
		}
	}
	return out
}

// SegmentCounts returns the segment distribution, ordered by count
// descending and then by name so the output is deterministic.
func (s *Snapshot) SegmentCounts() []SegmentCount {
	counts := map[string]int{}
	for _, r := range s.rows {
		counts[r.Segment]++
	}
	out := make([]SegmentCount, 0, len(counts))
	for seg, n := range counts {
		out = append(out, SegmentCount{Segment: seg, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}

// FindByID looks a row up by its exact customer id.
func (s *Snapshot) FindByID(id string) (Customer, bool) {
	for _, r := range s.rows {
		if r.ID == id {
			return r, true
		}
	}
	return Customer{}, false
}

// Find matches a key against customer id or company name,
// case-insensitively, returning the first hit in load order.
func (s *Snapshot) Find(key string) (Customer, bool) {
	want := strings.ToUpper(strings.TrimSpace(key))
	for _, r := range s.rows {
		if strings.ToUpper(r.ID) == want || strings.ToUpper(r.CompanyName) == want {
			return r, true
		}
	}
	return Customer{}, false
}

func (s *Snapshot) copyRows() []Customer {
	out := make([]Customer, len(s.rows))
	copy(out, s.rows)
	return out
}

func head(rows []Customer, n int) []Customer {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
