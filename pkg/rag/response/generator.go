package response

import (
	"context"
	"log"
	"os"

	"crm-insights-be/pkg/llm"
)

// Generator runs the model call for the RAG pipeline and keeps a full
// prompt/response trace in the dedicated LLM log.
type Generator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

// NewGenerator creates a new response generator
func NewGenerator(llmProvider llm.LLMProvider, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Generate sends the grounded prompt to the model and returns its reply
// verbatim. Both sides of the exchange are logged before any error handling,
// so the trace survives provider failures.
func (g *Generator) Generate(ctx context.Context, promptText string) (string, error) {
	g.logger.Printf("[GENERATION] prompt (%d chars):\n%s", len(promptText), promptText)

	reply, err := g.llmProvider.Chat(ctx, []llm.Message{{Role: "user", Content: promptText}})
	if err != nil {
		g.logger.Printf("[ERROR] LLM generation failed: %v", err)
		return "", err
	}

	g.logger.Printf("[GENERATION] response (%d chars):\n%s", len(reply), reply)
	return reply, nil
}
