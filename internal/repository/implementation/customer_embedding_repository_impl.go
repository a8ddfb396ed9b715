package implementation

import (
	"context"
	"errors"

	"crm-insights-be/internal/entity"
	"crm-insights-be/internal/mapper"
	"crm-insights-be/internal/model"
	"crm-insights-be/internal/repository/contract"
	"crm-insights-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CustomerEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CustomerEmbeddingMapper
}

func NewCustomerEmbeddingRepository(db *gorm.DB) contract.CustomerEmbeddingRepository {
	return &CustomerEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewCustomerEmbeddingMapper(),
	}
}

func (r *CustomerEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CustomerEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.CustomerEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *CustomerEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.CustomerEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *CustomerEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CustomerEmbedding{}, id).Error
}

func (r *CustomerEmbeddingRepositoryImpl) DeleteByCustomerId(ctx context.Context, customerId string) error {
	return r.db.WithContext(ctx).Where("customer_id = ?", customerId).Delete(&model.CustomerEmbedding{}).Error
}

func (r *CustomerEmbeddingRepositoryImpl) DeleteAllUnscoped(ctx context.Context) error {
	return r.db.WithContext(ctx).Unscoped().Where("1 = 1").Delete(&model.CustomerEmbedding{}).Error
}

func (r *CustomerEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomerEmbedding, error) {
	var m model.CustomerEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CustomerEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerEmbedding, error) {
	var models []*model.CustomerEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CustomerEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CustomerEmbedding{}).Count(&count).Error
	return count, err
}

func (r *CustomerEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.CustomerEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}
	var models []*model.CustomerEmbedding

	// pgvector cosine distance: embedding_value <=> vector
	err := r.db.WithContext(ctx).
		Where("customer_embeddings.deleted_at IS NULL").
		Order(gorm.Expr("embedding_value <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&models).Error

	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// SearchSimilarWithScore returns embeddings with similarity scores, filtered by threshold
func (r *CustomerEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredCustomerEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	// So we compute: 1 - (embedding_value <=> query_vector) = cosine_similarity
	type result struct {
		model.CustomerEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("customer_embeddings").
		Select("customer_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("customer_embeddings.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scoredEmbeddings := make([]*contract.ScoredCustomerEmbedding, len(results))
	for i, res := range results {
		scoredEmbeddings[i] = &contract.ScoredCustomerEmbedding{
			Embedding:  r.mapper.ToEntity(&res.CustomerEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scoredEmbeddings, nil
}
