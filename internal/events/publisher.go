package events

import (
	"context"
	"time"

	"crm-insights-be/internal/constant"
	"crm-insights-be/internal/pkg/logger"
	pkgEvents "crm-insights-be/pkg/events"
	pktNats "crm-insights-be/pkg/nats"
)

// Publisher abstracts event publishing for the chatbot domain
type Publisher interface {
	PublishChatTurnCompleted(ctx context.Context, sessionId, route string, complexity float64)
	PublishDatasetIngested(ctx context.Context, customers, queued, skipped int)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based event publisher. A nil transport
// turns every publish into a no-op, so callers don't care whether the bus
// connected at startup.
func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishChatTurnCompleted emits CHAT_TURN_COMPLETED after a routed chat turn
func (p *NatsPublisher) PublishChatTurnCompleted(ctx context.Context, sessionId, route string, complexity float64) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: constant.EventChatTurn,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"route":      route,
			"complexity": complexity,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENT_BUS", "Failed to publish CHAT_TURN_COMPLETED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishDatasetIngested emits DATASET_INGESTED once a CSV load finishes
func (p *NatsPublisher) PublishDatasetIngested(ctx context.Context, customers, queued, skipped int) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: constant.EventDatasetIngested,
		Data: map[string]interface{}{
			"customers": customers,
			"queued":    queued,
			"skipped":   skipped,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENT_BUS", "Failed to publish DATASET_INGESTED event", map[string]interface{}{"error": err.Error()})
	}
}
