package bootstrap

import (
	"context"
	"log"

	"crm-insights-be/internal/config"
	"crm-insights-be/internal/controller"
	domainEvents "crm-insights-be/internal/events"
	"crm-insights-be/internal/mapper"
	"crm-insights-be/internal/pkg/logger"
	"crm-insights-be/internal/repository/memory"
	"crm-insights-be/internal/repository/specification"
	"crm-insights-be/internal/repository/unitofwork"
	"crm-insights-be/internal/service"
	"crm-insights-be/pkg/ai/pipeline"
	"crm-insights-be/pkg/dataset"
	"crm-insights-be/pkg/embedding"
	"crm-insights-be/pkg/embedding/jina"
	"crm-insights-be/pkg/events"
	"crm-insights-be/pkg/llm"
	"crm-insights-be/pkg/llm/factory"
	ragcache "crm-insights-be/pkg/rag/cache"

	pktNats "crm-insights-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	InsightController controller.IInsightController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for cmd/seed to reuse the same wiring
	IngestService service.IIngestService

	// Snapshot is the read-only analytics view the rules and insight
	// endpoints serve from
	Snapshot *dataset.Snapshot
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Dataset Snapshot
	// Loaded once from the customers table; immutable for the process
	// lifetime. Rule replies and insight endpoints never hit the DB again.
	snapshot := loadSnapshot(uowFactory)

	// 4. AI Providers
	// A provider failure downgrades the chatbot to rule-only instead of
	// killing the process; deterministic replies must survive on their own.
	var embeddingProvider embedding.EmbeddingProvider
	var llmProvider llm.LLMProvider
	if cfg.Chatbot.UseRAG {
		// Jina lives outside the factory, its package imports the
		// embedding types and the factory cannot import it back.
		if cfg.Ai.EmbeddingProvider == "jina" {
			if cfg.Keys.Jina == "" {
				log.Printf("[WARN] JINA_API_KEY is empty, embedding provider disabled")
			} else {
				embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
				log.Printf("[INFO] Using Embedding Provider: jina")
			}
		} else {
			ep, err := embedding.NewProvider(
				cfg.Ai.EmbeddingProvider,
				cfg.Keys.GoogleGemini,
				cfg.Ai.OllamaBaseURL,
				cfg.Ai.OllamaModel,
			)
			if err != nil {
				log.Printf("[WARN] Failed to initialize embedding provider: %v", err)
			} else {
				embeddingProvider = ep
				log.Printf("[INFO] Using Embedding Provider: %s", cfg.Ai.EmbeddingProvider)
			}
		}

		llmKey := cfg.Keys.GoogleGemini
		if cfg.Ai.LLMProvider == "huggingface" {
			llmKey = cfg.Keys.HuggingFace
		}
		lp, err := factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			cfg.Ai.OllamaBaseURL,
			llmKey,
		)
		if err != nil {
			log.Printf("[WARN] Failed to initialize LLM provider: %v", err)
		} else {
			llmProvider = lp
			log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
		}
	} else {
		log.Printf("[INFO] RAG disabled by config, chatbot runs rule-only")
	}

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 5. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}
	if natsSub != nil {
		// Mirror every domain event into its own rotating file; the bus
		// is chatty and would drown the main log.
		eventLogger := logger.NewIsolatedLogger("logs/events.log")
		err := natsSub.Subscribe("events.>", "crm-insights-api", func(ctx context.Context, evt events.Event) error {
			eventLogger.Info("EVENT_BUS", evt.EventType(), evt.Payload())
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to event bus: %v", err)
		}
	}

	// Redis answer cache
	var responseCache pipeline.ResponseCache
	if cfg.Redis.Enabled {
		rc, err := ragcache.NewResponseCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log.Default())
		if err != nil {
			log.Printf("[WARN] Redis unavailable, running without answer cache: %v", err)
		} else {
			responseCache = rc
		}
	}

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
	)

	domainEventPublisher := domainEvents.NewNatsPublisher(natsPub, sysLogger)

	chatService := service.NewChatService(
		uowFactory,
		snapshot,
		embeddingProvider,
		llmProvider,
		responseCache,
		sessionRepo,
		domainEventPublisher,
		cfg.Chatbot,
	)

	insightService := service.NewInsightService(snapshot)
	ingestService := service.NewIngestService(uowFactory, publisherService, domainEventPublisher)

	// 7. Controllers
	return &Container{
		ChatController:    controller.NewChatController(chatService),
		InsightController: controller.NewInsightController(insightService),

		ConsumerService: consumerService,
		IngestService:   ingestService,

		Snapshot: snapshot,
	}
}

// loadSnapshot pulls every customer row into memory. An empty table is
// survivable (rule replies come back empty); a failing query is not.
func loadSnapshot(uowFactory unitofwork.RepositoryFactory) *dataset.Snapshot {
	uow := uowFactory.NewUnitOfWork(context.Background())
	// Ordered by id so ranked replies are stable across restarts.
	customers, err := uow.CustomerRepository().FindAll(
		context.Background(),
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load customers (run migrate first?): %v", err)
	}
	if len(customers) == 0 {
		log.Printf("[WARN] Customer table is empty, run the seed command to ingest a dataset")
	}

	rows := mapper.NewCustomerMapper().ToDatasetRows(customers)
	snapshot := dataset.NewSnapshot(rows)
	log.Printf("[INFO] Dataset snapshot loaded: %d customers", snapshot.Len())
	return snapshot
}
