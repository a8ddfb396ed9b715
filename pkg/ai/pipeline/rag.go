package pipeline

import (
	"context"
	"log"
	"os"
	"strings"

	"crm-insights-be/pkg/rag/prompt"
	"crm-insights-be/pkg/rag/response"
	"crm-insights-be/pkg/store"
)

// Replies that signal the pipeline could not produce a grounded answer.
// The router treats both as unusable and keeps looking for a response.
const (
	NoContextReply    = "I couldn't find relevant information in the database. Please try rephrasing your question."
	GenerationApology = "I apologize, but I'm having trouble generating a response right now. Please try again."
)

// DefaultTopK is how many customer chunks are retrieved per query.
const DefaultTopK = 5

// Retriever finds customer chunks relevant to a query, nearest first.
type Retriever interface {
	Execute(ctx context.Context, query string, topK int) ([]store.Document, error)
}

// ResponseCache memoizes usable answers keyed by query.
type ResponseCache interface {
	Get(ctx context.Context, query string) (string, bool)
	Set(ctx context.Context, query, reply string)
}

// RAGPipeline answers free-form questions grounded in retrieved customer
// records. The cache is optional; a nil cache disables memoization.
type RAGPipeline struct {
	retriever Retriever
	generator *response.Generator
	cache     ResponseCache
	topK      int
	logger    *log.Logger
}

// NewRAGPipeline creates the retrieval-augmented answer pipeline. A
// non-positive topK falls back to DefaultTopK.
func NewRAGPipeline(
	retriever Retriever,
	generator *response.Generator,
	responseCache ResponseCache,
	topK int,
	logger *log.Logger,
) *RAGPipeline {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}
	return &RAGPipeline{
		retriever: retriever,
		generator: generator,
		cache:     responseCache,
		topK:      topK,
		logger:    logger,
	}
}

// Respond runs retrieval then generation. The second return reports whether
// the reply is a usable grounded answer; sentinel and apology replies come
// back with false so the caller can fall through to other responders.
func (p *RAGPipeline) Respond(ctx context.Context, query string) (string, bool) {
	if p.cache != nil {
		if reply, ok := p.cache.Get(ctx, query); ok {
			p.logger.Printf("[RAG] cache hit")
			return reply, true
		}
	}

	docs, err := p.retriever.Execute(ctx, query, p.topK)
	if err != nil {
		p.logger.Printf("[RAG] retrieval failed: %v", err)
		return NoContextReply, false
	}
	if len(docs) == 0 {
		p.logger.Printf("[RAG] no matching documents")
		return NoContextReply, false
	}

	p.logger.Printf("[RAG] retrieved %d documents", len(docs))

	promptText := prompt.NewGroundedBuilder(query, docs).Build()

	reply, err := p.generator.Generate(ctx, promptText)
	if err != nil {
		p.logger.Printf("[RAG] generation failed: %v", err)
		return GenerationApology, false
	}
	if strings.TrimSpace(reply) == "" {
		p.logger.Printf("[RAG] empty generation result")
		return GenerationApology, false
	}

	if p.cache != nil {
		p.cache.Set(ctx, query, reply)
	}
	return reply, true
}
