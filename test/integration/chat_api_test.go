package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"crm-insights-be/internal/config"
	"crm-insights-be/internal/controller"
	"crm-insights-be/internal/dto"
	"crm-insights-be/internal/pkg/serverutils"
	"crm-insights-be/internal/repository/memory"
	"crm-insights-be/internal/service"
	"crm-insights-be/pkg/dataset"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the HTTP surface against an in-memory snapshot, no DB
// and no AI providers. The router runs rule-only.
func newTestApp() *fiber.App {
	snapshot := dataset.NewSnapshot(sampleRows())
	sessionRepo := memory.NewSessionRepository()

	chatbotCfg := config.ChatbotConfig{UseRAG: false, RAGThreshold: 0.7, RAGTopK: 5}
	chatService := service.NewChatService(nil, snapshot, nil, nil, nil, sessionRepo, nil, chatbotCfg)
	insightService := service.NewInsightService(snapshot)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	controller.NewChatController(chatService).RegisterRoutes(api)
	controller.NewInsightController(insightService).RegisterRoutes(api)
	return app
}

func sampleRows() []dataset.Customer {
	return []dataset.Customer{
		{ID: "C00001", CompanyName: "Acme Corp", Industry: "Retail", Segment: "high_value", ChurnProbability: 0.90, EngagementScore: 0.20, Monetary: 100000, ProductDiversity: 2, RecencyDays: 120, TenureDays: 900},
		{ID: "C00002", CompanyName: "Globex", Industry: "Finance", Segment: "high_value", ChurnProbability: 0.20, EngagementScore: 0.80, Monetary: 250000, ProductDiversity: 2, RecencyDays: 5, TenureDays: 1200},
		{ID: "C00003", CompanyName: "Initech", Industry: "Technology", Segment: "mid_value", ChurnProbability: 0.50, EngagementScore: 0.50, Monetary: 20000, ProductDiversity: 3, RecencyDays: 30, TenureDays: 400},
		{ID: "C00004", CompanyName: "Umbrella Health", Industry: "Healthcare", Segment: "at_risk", ChurnProbability: 0.85, EngagementScore: 0.10, Monetary: 5000, ProductDiversity: 1, RecencyDays: 200, TenureDays: 700},
		{ID: "C00005", CompanyName: "Stark Industries", Industry: "Energy", Segment: "at_risk", ChurnProbability: 0.70, EngagementScore: 0.30, Monetary: 8000, ProductDiversity: 2, RecencyDays: 90, TenureDays: 300},
		{ID: "C00006", CompanyName: "Wayne Logistics", Industry: "Logistics", Segment: "mid_value", ChurnProbability: 0.10, EngagementScore: 0.90, Monetary: 30000, ProductDiversity: 4, RecencyDays: 3, TenureDays: 1500},
	}
}

func postChat(t *testing.T, app *fiber.App, sessionId, query string) (*http.Response, serverutils.BaseResponse[dto.ChatResponse]) {
	t.Helper()

	body, err := json.Marshal(dto.ChatRequest{SessionId: sessionId, Query: query})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope serverutils.BaseResponse[dto.ChatResponse]
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp, envelope
}

func TestChatAPIConversation(t *testing.T) {
	app := newTestApp()

	// First turn opens a session and answers from the churn rule
	resp, envelope := postChat(t, app, "", "show top churn accounts")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", envelope.Status)
	require.NotEmpty(t, envelope.Data.SessionId)
	assert.Equal(t, "rule", envelope.Data.Route)
	assert.Contains(t, envelope.Data.Reply, "Churn or High-risk customers")
	assert.Contains(t, envelope.Data.Reply, "Acme Corp")

	sessionId := envelope.Data.SessionId

	// Follow-up resolves rank 2 against the last list (Umbrella, 0.85)
	resp, envelope = postChat(t, app, sessionId, "tell me more about 2")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "followup", envelope.Data.Route)
	assert.Equal(t, sessionId, envelope.Data.SessionId)
	assert.Contains(t, envelope.Data.Reply, "Umbrella Health")

	// Out-of-range rank is answered, not dropped
	_, envelope = postChat(t, app, sessionId, "give details for 99")
	assert.Equal(t, "followup", envelope.Data.Route)
	assert.Contains(t, envelope.Data.Reply, "I don't have item 99")

	// Dropping the session forgets the list; the same reference query now
	// falls through to the suggestion fallback
	req, err := http.NewRequest(http.MethodDelete, "/api/chat/sessions/"+sessionId, nil)
	require.NoError(t, err)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, envelope = postChat(t, app, sessionId, "tell me more about 2")
	assert.Equal(t, "fallback", envelope.Data.Route)
	assert.Contains(t, envelope.Data.Reply, "didn't quite understand")
}

func TestChatAPIValidation(t *testing.T) {
	app := newTestApp()

	req, err := http.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var envelope serverutils.BaseResponse[any]
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, http.StatusBadRequest, envelope.Code)
}

func TestSummaryEndpoint(t *testing.T) {
	app := newTestApp()

	req, err := http.NewRequest(http.MethodGet, "/api/summary", nil)
	require.NoError(t, err)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope serverutils.BaseResponse[dto.SummaryResponse]
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &envelope))

	assert.Equal(t, 2, envelope.Data.Segments["high_value"])
	assert.Equal(t, 2, envelope.Data.Segments["mid_value"])
	assert.Equal(t, 2, envelope.Data.Segments["at_risk"])

	require.NotEmpty(t, envelope.Data.TopRisk)
	assert.Equal(t, "C00001", envelope.Data.TopRisk[0].CustomerId)

	// Only Globex passes the upsell rule in the fixture
	require.Len(t, envelope.Data.UpsellCandidates, 1)
	assert.Equal(t, "C00002", envelope.Data.UpsellCandidates[0].CustomerId)
}

func TestSegmentEndpoint(t *testing.T) {
	app := newTestApp()

	// Case-insensitive match
	req, err := http.NewRequest(http.MethodGet, "/api/segment/HIGH_VALUE", nil)
	require.NoError(t, err)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope serverutils.BaseResponse[dto.SegmentCustomersResponse]
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "high_value", envelope.Data.Segment)
	assert.Equal(t, 2, envelope.Data.Count)
	assert.Len(t, envelope.Data.Customers, 2)

	// Unknown segment is a 404
	req, err = http.NewRequest(http.MethodGet, "/api/segment/enterprise", nil)
	require.NoError(t, err)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpsellEndpoint(t *testing.T) {
	app := newTestApp()

	req, err := http.NewRequest(http.MethodGet, "/api/upsell", nil)
	require.NoError(t, err)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope serverutils.BaseResponse[dto.UpsellListResponse]
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, 1, envelope.Data.Count)
	require.Len(t, envelope.Data.Candidates, 1)
	assert.Equal(t, "Globex", envelope.Data.Candidates[0].CompanyName)
	assert.NotEmpty(t, envelope.Data.Candidates[0].Recommendation)
}

func TestInfoEndpoint(t *testing.T) {
	app := newTestApp()

	req, err := http.NewRequest(http.MethodGet, "/api/info", nil)
	require.NoError(t, err)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope serverutils.BaseResponse[dto.ServiceInfoResponse]
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, service.ServiceName, envelope.Data.Service)
	assert.Len(t, envelope.Data.Examples, 10)
	assert.NotEmpty(t, envelope.Data.Capabilities)
}
