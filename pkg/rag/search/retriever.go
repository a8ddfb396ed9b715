package search

import (
	"context"
	"fmt"
	"log"

	"crm-insights-be/internal/repository/contract"
	"crm-insights-be/pkg/embedding"
	"crm-insights-be/pkg/store"
)

// Retriever embeds the query and runs vector search over customer chunks
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	embeddings        contract.CustomerEmbeddingRepository
	logger            *log.Logger
}

// NewRetriever creates a new customer chunk retriever
func NewRetriever(
	embeddingProvider embedding.EmbeddingProvider,
	embeddings contract.CustomerEmbeddingRepository,
	logger *log.Logger,
) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		embeddings:        embeddings,
		logger:            logger,
	}
}

// Execute returns the topK chunks closest to the query, nearest first
func (r *Retriever) Execute(ctx context.Context, query string, topK int) ([]store.Document, error) {
	embeddingRes, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	scored, err := r.embeddings.SearchSimilarWithScore(ctx, embeddingRes.Embedding.Values, topK, 0.0)
	if err != nil {
		r.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, err
	}

	r.logger.Printf("[DEBUG] Raw search results: %d documents", len(scored))

	docs := make([]store.Document, 0, len(scored))
	for _, res := range scored {
		docs = append(docs, store.Document{
			ID:         res.Embedding.Id.String(),
			CustomerID: res.Embedding.CustomerId,
			Text:       res.Embedding.Document,
			Distance:   1 - res.Similarity,
			Metadata:   res.Embedding.Metadata,
		})
	}
	return docs, nil
}
