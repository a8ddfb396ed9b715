package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"crm-insights-be/internal/dto"
	"crm-insights-be/internal/entity"
	domainEvents "crm-insights-be/internal/events"
	"crm-insights-be/internal/mapper"
	"crm-insights-be/internal/repository/unitofwork"
	"crm-insights-be/pkg/dataset"
)

type IIngestService interface {
	IngestCSV(ctx context.Context, path string) (*dto.IngestSummary, error)
}

// ingestService loads the processed customer CSV into the customers table
// and queues one embed job per row for the consumer.
type ingestService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   domainEvents.Publisher
	mapper           *mapper.CustomerMapper
}

func NewIngestService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher domainEvents.Publisher,
) IIngestService {
	return &ingestService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		mapper:           mapper.NewCustomerMapper(),
	}
}

func (s *ingestService) IngestCSV(ctx context.Context, path string) (*dto.IngestSummary, error) {
	rows, err := dataset.LoadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s contains no usable rows", path)
	}

	customers := make([]*entity.Customer, 0, len(rows))
	for _, r := range rows {
		customers = append(customers, s.mapper.FromDatasetRow(r))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CustomerRepository().Upsert(ctx, customers); err != nil {
		return nil, fmt.Errorf("failed to upsert customers: %w", err)
	}

	summary := &dto.IngestSummary{Customers: len(customers)}
	for _, c := range customers {
		payload, err := json.Marshal(dto.CustomerEmbedMessage{CustomerId: c.Id})
		if err != nil {
			summary.Skipped++
			continue
		}
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			log.Printf("[WARN] Failed to queue embed job for %s: %v", c.Id, err)
			summary.Skipped++
			continue
		}
		summary.Queued++
	}

	if s.eventPublisher != nil {
		s.eventPublisher.PublishDatasetIngested(ctx, summary.Customers, summary.Queued, summary.Skipped)
	}

	return summary, nil
}
