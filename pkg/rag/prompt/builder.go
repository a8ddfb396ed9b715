package prompt

import (
	"fmt"
	"strings"

	"crm-insights-be/pkg/store"
)

// GroundedBuilder builds the generation prompt from retrieved customer records
type GroundedBuilder struct {
	query string
	docs  []store.Document
}

// NewGroundedBuilder creates a prompt builder for one query and its context
func NewGroundedBuilder(query string, docs []store.Document) *GroundedBuilder {
	return &GroundedBuilder{
		query: query,
		docs:  docs,
	}
}

// Build assembles the grounded prompt: persona, retrieved context, guidelines
// and the user's question
func (b *GroundedBuilder) Build() string {
	var prompt strings.Builder

	b.writePersona(&prompt)
	b.writeContext(&prompt)
	b.writeGuidelines(&prompt)
	b.writeUserQuery(&prompt)

	return prompt.String()
}

func (b *GroundedBuilder) writePersona(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are an AI assistant specialized in Customer Relationship Management (CRM) insights.\n")
	prompt.WriteString("Answer the user's question using only the customer records provided below.\n")
	prompt.WriteString("</task>\n\n")
}

func (b *GroundedBuilder) writeContext(prompt *strings.Builder) {
	prompt.WriteString("<customer_context>\n")
	for i, d := range b.docs {
		prompt.WriteString(fmt.Sprintf("[Record %d]\n", i+1))
		prompt.WriteString(d.Text)
		prompt.WriteString("\n\n")
	}
	prompt.WriteString("</customer_context>\n\n")
}

func (b *GroundedBuilder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Ground every statement in the customer context above\n")
	prompt.WriteString("2. Include relevant metrics (churn probability, spend, engagement) when they support the answer\n")
	prompt.WriteString("3. Be conversational but professional\n")
	prompt.WriteString("4. If the context doesn't contain what's being asked, say so honestly\n")
	prompt.WriteString("</guidelines>\n\n")
}

func (b *GroundedBuilder) writeUserQuery(prompt *strings.Builder) {
	prompt.WriteString("<user_question>\n")
	prompt.WriteString(b.query)
	prompt.WriteString("\n</user_question>\n\n")
	prompt.WriteString("Now answer based on the customer context:")
}
