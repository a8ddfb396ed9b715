package entity

import (
	"time"

	"github.com/google/uuid"
)

type CustomerEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	CustomerId     string
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
