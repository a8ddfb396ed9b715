package pipeline

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"crm-insights-be/pkg/llm"
	"crm-insights-be/pkg/rag/response"
	"crm-insights-be/pkg/store"
)

type fakeRetriever struct {
	docs []store.Document
	err  error
}

func (f *fakeRetriever) Execute(ctx context.Context, query string, topK int) ([]store.Document, error) {
	return f.docs, f.err
}

type fakeLLM struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	if len(history) > 0 {
		f.lastPrompt = history[len(history)-1].Content
	}
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type fakeCache struct {
	entries map[string]string
	gets    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, query string) (string, bool) {
	f.gets++
	reply, ok := f.entries[query]
	return reply, ok
}

func (f *fakeCache) Set(ctx context.Context, query, reply string) {
	f.sets++
	f.entries[query] = reply
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testGenerator(provider llm.LLMProvider) *response.Generator {
	return response.NewGenerator(provider, testLogger())
}

var testDocs = []store.Document{
	{ID: "e1", CustomerID: "C00001", Text: "Customer ID: C00001\nCompany Name: Acme Corp", Distance: 0.1},
}

func TestRespondGroundedAnswer(t *testing.T) {
	retriever := &fakeRetriever{docs: testDocs}
	provider := &fakeLLM{reply: "Acme Corp shows elevated churn risk."}
	p := NewRAGPipeline(retriever, testGenerator(provider), nil, 0, testLogger())

	reply, usable := p.Respond(context.Background(), "which customers are at risk?")
	if !usable {
		t.Fatal("expected a usable answer")
	}
	if reply != "Acme Corp shows elevated churn risk." {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(provider.lastPrompt, "Company Name: Acme Corp") {
		t.Error("prompt does not include the retrieved context")
	}
	if !strings.Contains(provider.lastPrompt, "which customers are at risk?") {
		t.Error("prompt does not include the user question")
	}
}

func TestRespondNoDocuments(t *testing.T) {
	retriever := &fakeRetriever{}
	provider := &fakeLLM{reply: "should never be called"}
	p := NewRAGPipeline(retriever, testGenerator(provider), nil, 0, testLogger())

	reply, usable := p.Respond(context.Background(), "anything")
	if usable {
		t.Fatal("empty retrieval must not be usable")
	}
	if reply != NoContextReply {
		t.Errorf("reply = %q, want the no-context sentinel", reply)
	}
	if provider.calls != 0 {
		t.Errorf("generation ran %d times without context", provider.calls)
	}
}

func TestRespondRetrievalError(t *testing.T) {
	retriever := &fakeRetriever{err: errors.New("connection refused")}
	p := NewRAGPipeline(retriever, testGenerator(&fakeLLM{}), nil, 0, testLogger())

	reply, usable := p.Respond(context.Background(), "anything")
	if usable || reply != NoContextReply {
		t.Errorf("got (%q, %v), want no-context sentinel and false", reply, usable)
	}
}

func TestRespondGenerationFailure(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeLLM
	}{
		{name: "error", provider: &fakeLLM{err: errors.New("model overloaded")}},
		{name: "blank reply", provider: &fakeLLM{reply: "   \n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewRAGPipeline(&fakeRetriever{docs: testDocs}, testGenerator(tt.provider), nil, 0, testLogger())
			reply, usable := p.Respond(context.Background(), "anything")
			if usable || reply != GenerationApology {
				t.Errorf("got (%q, %v), want apology and false", reply, usable)
			}
		})
	}
}

func TestRespondCaching(t *testing.T) {
	retriever := &fakeRetriever{docs: testDocs}
	provider := &fakeLLM{reply: "grounded answer"}
	responseCache := newFakeCache()
	p := NewRAGPipeline(retriever, testGenerator(provider), responseCache, 0, testLogger())

	if _, usable := p.Respond(context.Background(), "q"); !usable {
		t.Fatal("first call should produce a usable answer")
	}
	if _, usable := p.Respond(context.Background(), "q"); !usable {
		t.Fatal("second call should hit the cache")
	}
	if provider.calls != 1 {
		t.Errorf("generation ran %d times, want 1", provider.calls)
	}
	if responseCache.sets != 1 {
		t.Errorf("cache stored %d entries, want 1", responseCache.sets)
	}
}

func TestRespondFailuresNotCached(t *testing.T) {
	responseCache := newFakeCache()
	p := NewRAGPipeline(&fakeRetriever{}, testGenerator(&fakeLLM{}), responseCache, 0, testLogger())

	p.Respond(context.Background(), "q")
	if responseCache.sets != 0 {
		t.Errorf("sentinel replies must not be cached, got %d sets", responseCache.sets)
	}
}
