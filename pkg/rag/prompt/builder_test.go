package prompt

import (
	"strings"
	"testing"

	"crm-insights-be/pkg/store"
)

func TestGroundedBuilderBuild(t *testing.T) {
	docs := []store.Document{
		{ID: "e1", CustomerID: "C00001", Text: "Customer ID: C00001\nCompany Name: Acme Corp"},
		{ID: "e2", CustomerID: "C00002", Text: "Customer ID: C00002\nCompany Name: Globex"},
	}

	got := NewGroundedBuilder("which customers are at risk?", docs).Build()

	wantFragments := []string{
		"Customer Relationship Management (CRM) insights",
		"<customer_context>",
		"[Record 1]",
		"Company Name: Acme Corp",
		"[Record 2]",
		"Company Name: Globex",
		"<user_question>\nwhich customers are at risk?",
		"Now answer based on the customer context:",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(got, frag) {
			t.Errorf("prompt missing %q\nprompt:\n%s", frag, got)
		}
	}

	if idx1, idx2 := strings.Index(got, "[Record 1]"), strings.Index(got, "[Record 2]"); idx1 > idx2 {
		t.Error("records are not in retrieval order")
	}
}

func TestGroundedBuilderEmptyContext(t *testing.T) {
	got := NewGroundedBuilder("anything", nil).Build()
	if !strings.Contains(got, "<customer_context>\n</customer_context>") {
		t.Errorf("empty context should still emit the context section:\n%s", got)
	}
}
