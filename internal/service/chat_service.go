package service

import (
	"context"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"crm-insights-be/internal/config"
	"crm-insights-be/internal/dto"
	domainEvents "crm-insights-be/internal/events"
	"crm-insights-be/internal/repository/memory"
	"crm-insights-be/internal/repository/unitofwork"
	"crm-insights-be/pkg/ai/pipeline"
	"crm-insights-be/pkg/ai/router"
	"crm-insights-be/pkg/dataset"
	"crm-insights-be/pkg/embedding"
	"crm-insights-be/pkg/llm"
	"crm-insights-be/pkg/rag/response"
	"crm-insights-be/pkg/rag/search"
	"crm-insights-be/pkg/rules"

	"github.com/google/uuid"
)

// IChatService defines the conversational interface
type IChatService interface {
	SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	DeleteSession(ctx context.Context, sessionId string) (*dto.DeleteSessionResponse, error)
}

// chatService owns the query router and the session store behind it
type chatService struct {
	queryRouter    *router.Router
	sessionRepo    *memory.SessionRepository
	eventPublisher domainEvents.Publisher
	routerLogger   *log.Logger
}

// NewChatService assembles the routing stack: deterministic rules over the
// snapshot, plus the retrieval pipeline when providers are configured. A nil
// embedding or LLM provider leaves the router in rule-only mode.
func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	snapshot *dataset.Snapshot,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	responseCache pipeline.ResponseCache,
	sessionRepo *memory.SessionRepository,
	eventPublisher domainEvents.Publisher,
	chatbotCfg config.ChatbotConfig,
) IChatService {
	routerLogger := initRouterLogger()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ruleEngine := rules.NewEngine(snapshot, rng, routerLogger)

	var ragResponder router.RAGResponder
	if chatbotCfg.UseRAG && embeddingProvider != nil && llmProvider != nil {
		embeddingRepo := uowFactory.NewUnitOfWork(context.Background()).CustomerEmbeddingRepository()
		retriever := search.NewRetriever(embeddingProvider, embeddingRepo, routerLogger)
		generator := response.NewGenerator(llmProvider, initLLMLogger())
		ragResponder = pipeline.NewRAGPipeline(retriever, generator, responseCache, chatbotCfg.RAGTopK, routerLogger)
	} else {
		routerLogger.Printf("[ROUTER] retrieval disabled, running rule-only")
	}

	queryRouter := router.NewRouter(ruleEngine, ragResponder, chatbotCfg.RAGThreshold, routerLogger)

	return &chatService{
		queryRouter:    queryRouter,
		sessionRepo:    sessionRepo,
		eventPublisher: eventPublisher,
		routerLogger:   routerLogger,
	}
}

func initRouterLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "query_router.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[ROUTER] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// SendChat routes one conversational turn. An empty or unknown session id
// starts a fresh session whose id comes back in the response.
func (cs *chatService) SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}
	sess := cs.sessionRepo.GetOrCreate(sessionId)

	result := cs.queryRouter.HandleQuery(ctx, request.Query, sess)

	sess.LastQuery = request.Query
	cs.sessionRepo.Save(sess)

	if cs.eventPublisher != nil {
		cs.eventPublisher.PublishChatTurnCompleted(ctx, sessionId, result.Route, result.Complexity)
	}

	return &dto.ChatResponse{
		SessionId:  sessionId,
		Reply:      result.Reply,
		Route:      result.Route,
		Complexity: result.Complexity,
	}, nil
}

// DeleteSession drops the conversational context. Deleting an unknown id is
// a no-op, not an error.
func (cs *chatService) DeleteSession(ctx context.Context, sessionId string) (*dto.DeleteSessionResponse, error) {
	cs.sessionRepo.Delete(sessionId)
	return &dto.DeleteSessionResponse{SessionId: sessionId}, nil
}
