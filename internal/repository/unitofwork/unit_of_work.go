package unitofwork

import (
	"context"

	"crm-insights-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CustomerRepository() contract.CustomerRepository
	CustomerEmbeddingRepository() contract.CustomerEmbeddingRepository
}
