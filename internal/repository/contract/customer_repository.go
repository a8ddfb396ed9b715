package contract

import (
	"context"

	"crm-insights-be/internal/entity"
	"crm-insights-be/internal/repository/specification"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	CreateBulk(ctx context.Context, customers []*entity.Customer) error
	// Upsert inserts or replaces customers keyed by their dataset id, so
	// re-running an ingest is safe.
	Upsert(ctx context.Context, customers []*entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Customer, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
