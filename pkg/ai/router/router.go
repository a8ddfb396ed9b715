package router

import (
	"context"
	"log"
	"os"

	"crm-insights-be/pkg/store"
)

// Route labels reported with every reply.
const (
	RouteSocial    = "social"
	RouteFollowUp  = "followup"
	RouteRule      = "rule"
	RouteRAG       = "rag"
	RouteRuleRetry = "rule-retry"
	RouteFallback  = "fallback"
)

// DefaultRAGThreshold is the complexity score at which queries skip the
// rule engine and go straight to retrieval.
const DefaultRAGThreshold = 0.7

// RuleEngine is the deterministic responder consulted before and, for
// complex queries, after retrieval.
type RuleEngine interface {
	SocialReply(query string) (string, bool)
	FollowUp(query string, sess *store.Session) (string, bool)
	Dispatch(query string, sess *store.Session) (string, bool)
}

// RAGResponder answers free-form questions from retrieved context. The
// second return reports whether the text is a usable answer rather than a
// not-found sentinel or an apology.
type RAGResponder interface {
	Respond(ctx context.Context, query string) (string, bool)
}

// Result is one routed conversational turn.
type Result struct {
	Reply      string
	Route      string
	Complexity float64
}

// Router decides which engine answers each query. A nil RAGResponder puts
// the router in rule-only mode; every query then resolves through rules or
// the suggestion fallback.
type Router struct {
	rules     RuleEngine
	rag       RAGResponder
	suggester *Suggester
	threshold float64
	logger    *log.Logger
}

// NewRouter creates a query router. A non-positive threshold falls back to
// DefaultRAGThreshold.
func NewRouter(rules RuleEngine, rag RAGResponder, threshold float64, logger *log.Logger) *Router {
	if threshold <= 0 {
		threshold = DefaultRAGThreshold
	}
	if logger == nil {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}
	return &Router{
		rules:     rules,
		rag:       rag,
		suggester: NewSuggester(nil),
		threshold: threshold,
		logger:    logger,
	}
}

// HandleQuery routes a single turn. Social and follow-up checks run before
// scoring; cheap queries try rules first, expensive ones try retrieval
// first with rules as the retry. Every path returns a reply.
func (r *Router) HandleQuery(ctx context.Context, query string, sess *store.Session) *Result {
	if sess == nil {
		sess = store.NewSession("")
	}

	if reply, ok := r.rules.SocialReply(query); ok {
		r.logger.Printf("[ROUTER] social reply for %q", truncateLog(query, 50))
		return &Result{Reply: reply, Route: RouteSocial}
	}

	if reply, ok := r.rules.FollowUp(query, sess); ok {
		r.logger.Printf("[ROUTER] follow-up resolved against last list")
		return &Result{Reply: reply, Route: RouteFollowUp}
	}

	complexity := ScoreComplexity(query)
	r.logger.Printf("[ROUTER] complexity=%.2f query=%q", complexity, truncateLog(query, 50))

	if complexity < r.threshold {
		if reply, ok := r.rules.Dispatch(query, sess); ok {
			return &Result{Reply: reply, Route: RouteRule, Complexity: complexity}
		}
	}

	if r.rag != nil {
		if reply, ok := r.rag.Respond(ctx, query); ok {
			return &Result{Reply: reply, Route: RouteRAG, Complexity: complexity}
		}
		r.logger.Printf("[ROUTER] no usable retrieval answer, falling back")
	}

	if complexity >= r.threshold {
		if reply, ok := r.rules.Dispatch(query, sess); ok {
			return &Result{Reply: reply, Route: RouteRuleRetry, Complexity: complexity}
		}
	}

	return &Result{
		Reply:      r.suggester.FallbackReply(query),
		Route:      RouteFallback,
		Complexity: complexity,
	}
}

// truncateLog truncates a string for logging
func truncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
