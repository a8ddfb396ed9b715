package router

import (
	"math"
	"testing"
)

func TestScoreComplexitySimpleTemplates(t *testing.T) {
	queries := []string{
		"hi",
		"Hello there",
		"thanks a lot",
		"bye",
		"show top churn accounts",
		"show high-value customers",
		"list low-risk customers",
		"tell me about C00001",
		"give details for 2",
		"upsell candidates",
		"show distribution of segments",
	}

	for _, q := range queries {
		if got := ScoreComplexity(q); got != 0.2 {
			t.Errorf("ScoreComplexity(%q) = %v, want 0.2", q, got)
		}
	}
}

func TestScoreComplexityScaling(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{
			name:  "no indicators",
			query: "customers in retail",
			want:  0.5,
		},
		{
			name:  "single indicator",
			query: "describe the retail segment",
			want:  0.6,
		},
		{
			name:  "question mark bonus",
			query: "which segment spends most?",
			want:  0.7,
		},
		{
			name:  "conjunction bonus",
			query: "churn and engagement by segment",
			want:  0.7,
		},
		{
			name:  "indicators plus question",
			query: "why do customers churn?",
			want:  0.8,
		},
		{
			name:  "stacked indicators clamp at one",
			query: "analyze the trend and explain why churn correlates with engagement?",
			want:  1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreComplexity(tt.query)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScoreComplexity(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestScoreComplexityRange(t *testing.T) {
	queries := []string{
		"",
		"?",
		"analyze compare trend pattern insight recommendation why how explain describe summarize relationship correlation impact effect and what if?",
	}
	for _, q := range queries {
		got := ScoreComplexity(q)
		if got < 0 || got > 1 {
			t.Errorf("ScoreComplexity(%q) = %v, want within [0,1]", q, got)
		}
	}
}
