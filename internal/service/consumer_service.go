package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"crm-insights-be/internal/dto"
	"crm-insights-be/internal/entity"
	"crm-insights-be/internal/mapper"
	"crm-insights-be/internal/repository/specification"
	"crm-insights-be/internal/repository/unitofwork"
	"crm-insights-be/pkg/dataset"
	"crm-insights-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the embed topic: each message names a customer
// whose profile chunk gets re-embedded and swapped in atomically.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	mapper            *mapper.CustomerMapper
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		mapper:            mapper.NewCustomerMapper(),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CustomerEmbedMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.embeddingProvider == nil {
		log.Printf("[WARN] No embedding provider configured, dropping embed job for %s", payload.CustomerId)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Processing embedding for customer %s", payload.CustomerId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByCustomerID{ID: payload.CustomerId})
	if err != nil {
		log.Printf("[ERROR] Failed to get customer %s: %v", payload.CustomerId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if customer == nil {
		log.Printf("[ERROR] Customer not found: %s", payload.CustomerId)
		msg.Ack() // Customer deleted? Ack.
		return
	}

	// One profile chunk per customer, rebuilt from the row on every pass
	row := cs.mapper.ToDatasetRow(customer)
	document := dataset.BuildDocument(row)
	metadata := dataset.DocumentMetadata(row)

	log.Printf("[INFO] Generating embedding for customer %s (document length: %d)", payload.CustomerId, len(document))

	res, err := cs.embeddingProvider.Generate(document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for customer %s: %v", payload.CustomerId, err)
		msg.Nack()
		return
	}

	newEmbedding := &entity.CustomerEmbedding{
		Id:             uuid.New(),
		Document:       document,
		EmbeddingValue: res.Embedding.Values,
		CustomerId:     customer.Id,
		Metadata:       metadata,
		CreatedAt:      time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.CustomerEmbeddingRepository().DeleteByCustomerId(ctx, customer.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.CustomerEmbeddingRepository().CreateBulk(ctx, []*entity.CustomerEmbedding{newEmbedding}); err != nil {
		log.Printf("[ERROR] Failed to create embedding: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Customer %s embedded", payload.CustomerId)
	msg.Ack()
}
