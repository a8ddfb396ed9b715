package rules

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"crm-insights-be/pkg/dataset"
	"crm-insights-be/pkg/store"
)

func newTestEngine() *Engine {
	snap := dataset.NewSnapshot([]dataset.Customer{
		{ID: "C1", CompanyName: "Acme Corp", Segment: dataset.SegmentAtRisk, ChurnProbability: 0.9, EngagementScore: 0.2, Monetary: 5000, ProductDiversity: 2, RecencyDays: 150},
		{ID: "C2", CompanyName: "Globex", Segment: dataset.SegmentHighValue, ChurnProbability: 0.1, EngagementScore: 0.8, Monetary: 90000, ProductDiversity: 1, RecencyDays: 5},
		{ID: "C3", CompanyName: "Initech", Segment: dataset.SegmentMidValue, ChurnProbability: 0.5, EngagementScore: 0.5, Monetary: 20000, ProductDiversity: 4, RecencyDays: 40},
	})
	return NewEngine(snap, rand.New(rand.NewSource(42)), nil)
}

func TestSocialReply(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name   string
		query  string
		wantOk bool
	}{
		{name: "greeting", query: "hi", wantOk: true},
		{name: "greeting sentence", query: "good morning team", wantOk: true},
		{name: "thanks", query: "thanks a lot", wantOk: true},
		{name: "bye", query: "ok bye", wantOk: true},
		{name: "embedded word is not a greeting", query: "this is history", wantOk: false},
		{name: "data question", query: "show top churn accounts", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, ok := e.SocialReply(tt.query)
			if ok != tt.wantOk {
				t.Fatalf("SocialReply(%q) ok = %v, want %v (reply %q)", tt.query, ok, tt.wantOk, reply)
			}
			if ok && reply == "" {
				t.Errorf("matched social query returned empty reply")
			}
		})
	}
}

func TestSocialReplySeededDeterminism(t *testing.T) {
	snap := dataset.NewSnapshot(nil)
	a, _ := NewEngine(snap, rand.New(rand.NewSource(7)), nil).SocialReply("hello")
	b, _ := NewEngine(snap, rand.New(rand.NewSource(7)), nil).SocialReply("hello")
	if a != b {
		t.Errorf("same seed should produce the same reply:\n%s\n%s", a, b)
	}
}

func TestDispatchChurnList(t *testing.T) {
	e := newTestEngine()
	sess := store.NewSession("s1")

	reply, ok := e.Dispatch("show top churn accounts", sess)
	if !ok {
		t.Fatal("churn query should be handled")
	}
	if !strings.HasPrefix(reply, "🚨 Churn or High-risk customers:") {
		t.Errorf("unexpected header:\n%s", reply)
	}
	if !strings.Contains(reply, "1. Acme Corp (ID C1) — churn 90%") {
		t.Errorf("highest churn row should rank first:\n%s", reply)
	}
	if !strings.Contains(reply, "give details for 2") {
		t.Errorf("detail hint missing:\n%s", reply)
	}

	if len(sess.LastList) != 3 {
		t.Fatalf("expected 3 result items, got %d", len(sess.LastList))
	}
	for i, item := range sess.LastList {
		if item.Rank != i+1 {
			t.Errorf("ranks must be dense and 1-based, got %d at position %d", item.Rank, i)
		}
		if _, found := e.snapshot.FindByID(item.CustomerID); !found {
			t.Errorf("result item id %s not in snapshot", item.CustomerID)
		}
	}
	if sess.LastList[0].CustomerID != "C1" || sess.LastList[0].Insight == "" {
		t.Errorf("first item should be C1 with an insight, got %+v", sess.LastList[0])
	}
}

func TestDispatchChurnListIdempotent(t *testing.T) {
	e := newTestEngine()
	s1, s2 := store.NewSession("a"), store.NewSession("b")
	e.Dispatch("show top churn accounts", s1)
	e.Dispatch("show top churn accounts", s2)
	if !reflect.DeepEqual(s1.LastList, s2.LastList) {
		t.Errorf("same query should produce the same list:\n%+v\n%+v", s1.LastList, s2.LastList)
	}
}

func TestFollowUp(t *testing.T) {
	e := newTestEngine()
	sess := store.NewSession("s1")

	// No list yet: the query falls through to intent handling.
	if _, ok := e.FollowUp("give details for 1", sess); ok {
		t.Fatal("follow-up without a list should fall through")
	}

	e.Dispatch("show top churn accounts", sess)

	reply, ok := e.FollowUp("give details for 1", sess)
	if !ok {
		t.Fatal("follow-up with a list should resolve")
	}
	if !strings.Contains(reply, "Acme Corp") || !strings.Contains(reply, "high churn probability") {
		t.Errorf("expected the C1 narrative:\n%s", reply)
	}

	reply, ok = e.FollowUp("tell me more about 9", sess)
	if !ok {
		t.Fatal("out-of-range rank should still answer")
	}
	if !strings.Contains(reply, "I don't have item 9") || !strings.Contains(reply, "1, 2, 3") {
		t.Errorf("expected the valid ranks to be listed:\n%s", reply)
	}
}

func TestFollowUpStaleID(t *testing.T) {
	e := newTestEngine()
	sess := store.NewSession("s1")
	sess.SetLastList([]store.ResultItem{{Rank: 1, CustomerID: "GONE", Company: "Ghost"}})

	reply, ok := e.FollowUp("details for 1", sess)
	if !ok {
		t.Fatal("stale id should still answer")
	}
	if !strings.Contains(reply, "couldn't load full details for item 1 (ID GONE)") {
		t.Errorf("unexpected reply:\n%s", reply)
	}
}

func TestDispatchLowRiskEmpty(t *testing.T) {
	snap := dataset.NewSnapshot([]dataset.Customer{
		{ID: "C1", CompanyName: "Acme", ChurnProbability: 0.6},
	})
	e := NewEngine(snap, rand.New(rand.NewSource(1)), nil)
	sess := store.NewSession("s1")
	sess.SetLastList([]store.ResultItem{{Rank: 1, CustomerID: "C1", Company: "Acme"}})

	reply, ok := e.Dispatch("list low-risk customers", sess)
	if !ok || reply != "No low-risk customers found." {
		t.Fatalf("unexpected reply: %q ok=%v", reply, ok)
	}
	// An empty result must not disturb the existing reference list.
	if len(sess.LastList) != 1 {
		t.Errorf("empty low-risk result should leave last list alone, got %+v", sess.LastList)
	}
}

func TestDispatchHighValue(t *testing.T) {
	e := newTestEngine()
	sess := store.NewSession("s1")

	reply, ok := e.Dispatch("show high-value customers", sess)
	if !ok {
		t.Fatal("high-value query should be handled")
	}
	if !strings.Contains(reply, "1. Globex (ID C2) — spent $90,000.00") {
		t.Errorf("expected formatted spend line:\n%s", reply)
	}
}

func TestDispatchUpsell(t *testing.T) {
	e := newTestEngine()
	sess := store.NewSession("s1")

	reply, ok := e.Dispatch("upsell candidates", sess)
	if !ok {
		t.Fatal("upsell query should be handled")
	}
	// Only C2 passes the rule: high_value, diversity 1, churn 0.1.
	if len(sess.LastList) != 1 || sess.LastList[0].CustomerID != "C2" {
		t.Fatalf("expected exactly C2 as candidate, got %+v", sess.LastList)
	}
	if !strings.Contains(reply, "💡 Upsell candidates:") || !strings.Contains(reply, "strong candidate for upsell") {
		t.Errorf("unexpected reply:\n%s", reply)
	}
}

func TestDispatchSegmentClearsLastList(t *testing.T) {
	e := newTestEngine()
	sess := store.NewSession("s1")
	e.Dispatch("show top churn accounts", sess)
	if len(sess.LastList) == 0 {
		t.Fatal("precondition: list should be populated")
	}

	reply, ok := e.Dispatch("show customer segments", sess)
	if !ok {
		t.Fatal("segment query should be handled")
	}
	if !strings.Contains(reply, "📊 Segment distribution:") {
		t.Errorf("unexpected reply:\n%s", reply)
	}
	if len(sess.LastList) != 0 {
		t.Errorf("segment intent must clear the last list, got %+v", sess.LastList)
	}
}

func TestDispatchCustomerLookup(t *testing.T) {
	e := newTestEngine()
	sess := store.NewSession("s1")

	tests := []struct {
		name     string
		query    string
		wantOk   bool
		contains string
	}{
		{name: "by id", query: "tell me about C1", wantOk: true, contains: "Acme Corp"},
		{name: "by company", query: "who is globex", wantOk: true, contains: "Globex"},
		{name: "unknown key", query: "info on WAYNE", wantOk: true, contains: "No customer matching 'WAYNE'. Try a customer id like C00001."},
		{name: "trigger without key", query: "who is", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, ok := e.Dispatch(tt.query, sess)
			if ok != tt.wantOk {
				t.Fatalf("Dispatch(%q) ok = %v, want %v", tt.query, ok, tt.wantOk)
			}
			if ok && !strings.Contains(reply, tt.contains) {
				t.Errorf("Dispatch(%q) = %q, want substring %q", tt.query, reply, tt.contains)
			}
		})
	}
}
