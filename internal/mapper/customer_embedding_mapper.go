package mapper

import (
	"encoding/json"
	"time"

	"crm-insights-be/internal/entity"
	"crm-insights-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CustomerEmbeddingMapper struct{}

func NewCustomerEmbeddingMapper() *CustomerEmbeddingMapper {
	return &CustomerEmbeddingMapper{}
}

func (m *CustomerEmbeddingMapper) ToEntity(e *model.CustomerEmbedding) *entity.CustomerEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		// Ignore malformed metadata rather than failing the read
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.CustomerEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CustomerId:     e.CustomerId,
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *CustomerEmbeddingMapper) ToModel(e *entity.CustomerEmbedding) *model.CustomerEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	var metadata []byte
	if e.Metadata != nil {
		metadata, _ = json.Marshal(e.Metadata)
	}

	return &model.CustomerEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CustomerId:     e.CustomerId,
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *CustomerEmbeddingMapper) ToEntities(embeddings []*model.CustomerEmbedding) []*entity.CustomerEmbedding {
	entities := make([]*entity.CustomerEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *CustomerEmbeddingMapper) ToModels(embeddings []*entity.CustomerEmbedding) []*model.CustomerEmbedding {
	models := make([]*model.CustomerEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
