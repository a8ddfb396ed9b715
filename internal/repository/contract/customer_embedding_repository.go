package contract

import (
	"context"

	"crm-insights-be/internal/entity"
	"crm-insights-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredCustomerEmbedding wraps CustomerEmbedding with its similarity score
type ScoredCustomerEmbedding struct {
	Embedding  *entity.CustomerEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type CustomerEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.CustomerEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.CustomerEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCustomerId(ctx context.Context, customerId string) error
	DeleteAllUnscoped(ctx context.Context) error // Hard delete, used by full re-ingest
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomerEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Advanced
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.CustomerEmbedding, error)
	// SearchSimilarWithScore returns embeddings with their similarity scores, filtered by threshold
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredCustomerEmbedding, error)
}
