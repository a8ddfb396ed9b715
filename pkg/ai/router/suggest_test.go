package router

import (
	"strings"
	"testing"
)

func TestSuggesterClosest(t *testing.T) {
	s := NewSuggester(nil)

	tests := []struct {
		name     string
		query    string
		wantHint string
		wantOK   bool
	}{
		{
			name:     "near miss",
			query:    "show top churn account",
			wantHint: "show top churn accounts",
			wantOK:   true,
		},
		{
			name:     "case and whitespace ignored",
			query:    "  Upsell Candidates ",
			wantHint: "upsell candidates",
			wantOK:   true,
		},
		{
			name:   "unrelated query",
			query:  "xyzzy quux plugh",
			wantOK: false,
		},
		{
			name:   "empty query",
			query:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint, ok := s.Closest(tt.query)
			if ok != tt.wantOK {
				t.Fatalf("Closest(%q) ok = %v, want %v", tt.query, ok, tt.wantOK)
			}
			if ok && hint != tt.wantHint {
				t.Errorf("Closest(%q) = %q, want %q", tt.query, hint, tt.wantHint)
			}
		})
	}
}

func TestSuggesterClosestDeterministic(t *testing.T) {
	s := NewSuggester(nil)
	first, ok := s.Closest("show top churn account")
	if !ok {
		t.Fatal("expected a close match")
	}
	for i := 0; i < 10; i++ {
		got, ok := s.Closest("show top churn account")
		if !ok || got != first {
			t.Fatalf("run %d: Closest returned (%q, %v), want (%q, true)", i, got, ok, first)
		}
	}
}

func TestFallbackReply(t *testing.T) {
	s := NewSuggester(nil)

	reply := s.FallbackReply("shoow top churn accounts")
	if !strings.HasPrefix(reply, "🤔 I didn't quite understand that query.") {
		t.Errorf("unexpected fallback prefix: %q", reply)
	}
	if got := strings.Count(reply, "• "); got != maxShownSuggestions {
		t.Errorf("fallback lists %d suggestions, want %d", got, maxShownSuggestions)
	}
	for _, want := range DefaultSuggestions[:maxShownSuggestions] {
		if !strings.Contains(reply, want) {
			t.Errorf("fallback reply missing suggestion %q", want)
		}
	}
	if !strings.Contains(reply, "Did you mean: 'show top churn accounts'?") {
		t.Errorf("fallback reply missing hint: %q", reply)
	}

	noHint := s.FallbackReply("xyzzy quux plugh")
	if strings.Contains(noHint, "Did you mean") {
		t.Errorf("unrelated query should not get a hint: %q", noHint)
	}
}
