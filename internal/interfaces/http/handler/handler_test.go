package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanieelRC/LegislaBot/internal/application/bill"
	"github.com/DanieelRC/LegislaBot/internal/application/document"
	"github.com/DanieelRC/LegislaBot/internal/application/example"
	"github.com/DanieelRC/LegislaBot/internal/application/settings"
	"github.com/DanieelRC/LegislaBot/internal/application/usage"
	"github.com/DanieelRC/LegislaBot/internal/config"
	"github.com/DanieelRC/LegislaBot/internal/infrastructure/llm"
	"github.com/DanieelRC/LegislaBot/internal/infrastructure/persistence/postgres"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/dto"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/handler"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/router"
	"github.com/DanieelRC/LegislaBot/internal/workflow/chain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine *gin.Engine
}

func newTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "legislabot", Env: "test"},
		LLM: config.LLMConfig{
			Mock: true,
			Providers: map[string]config.ProviderConfig{
				"google": {Type: config.ProviderTypeGemini, APIKeyEnv: "GOOGLE_GENERATIVE_AI_API_KEY"},
				"openai": {Type: config.ProviderTypeOpenAI, APIKeyEnv: "OPENAI_API_KEY"},
			},
			Stages: config.StagesConfig{
				Research: config.StageConfig{Provider: "google", Temperature: 0.3},
				Draft:    config.StageConfig{Provider: "openai", Temperature: 0.2},
				Refine:   config.StageConfig{Provider: "openai", Temperature: 0.1},
			},
		},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	client, err := postgres.NewClient(&config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		LogLevel: "silent",
		SQLite:   config.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Migrate(context.Background()))

	cfg := newTestConfig()
	tx := postgres.NewTxManager(client)
	drafts := postgres.NewDraftRepository(client)
	bills := postgres.NewBillRepository(client)
	usageRepo := postgres.NewAPIUsageRepository(client)

	provider := settings.NewProvider(postgres.NewSettingRepository(client), tx)
	stages := chain.NewBillChain(llm.NewFactory(cfg), usage.NewRecorder(usageRepo, usage.DefaultPriceTable()), chain.ConfigFrom(cfg.LLM.Stages))
	draftService := bill.NewDraftService(drafts, bills, tx)
	generator := bill.NewGenerationService(bill.NewPipeline(provider, stages), draftService)

	handlers := &router.Handlers{
		Health:   handler.NewHealthHandler(client, nil, &cfg.LLM),
		Bill:     handler.NewBillHandler(generator, bill.NewJobService(postgres.NewJobRepository(client), nil, generator), bill.NewBillService(bills)),
		Draft:    handler.NewDraftHandler(draftService),
		Example:  handler.NewExampleHandler(example.NewService(postgres.NewExampleRepository(client), nil, 0)),
		Settings: handler.NewSettingsHandler(provider),
		Usage:    handler.NewUsageHandler(usage.NewStats(usageRepo)),
		Document: handler.NewDocumentHandler(),
	}
	return &testServer{engine: router.New(cfg, handlers, nil).Engine()}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp dto.Response[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestGenerateBillSavesDraft(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/bills/generate", dto.GenerateBillRequest{Topic: "transporte público", Save: true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	out := decode[dto.GenerateBillResponse](t, w)
	assert.Contains(t, out.Content, "TRANSPORTE PÚBLICO")
	assert.Contains(t, out.Title, "TRANSPORTE PÚBLICO")
	assert.Empty(t, out.Warning)
	require.NotNil(t, out.DraftID)

	w = s.do(t, http.MethodGet, "/v1/drafts/"+strconv.FormatInt(*out.DraftID, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)
	draft := decode[dto.DraftResponse](t, w)
	assert.Equal(t, out.Content, draft.Content)
	assert.Equal(t, out.Title, draft.Title)
}

func TestGenerateBillWithoutSave(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/bills/generate", dto.GenerateBillRequest{Topic: "agua potable"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[dto.GenerateBillResponse](t, w).DraftID)

	w = s.do(t, http.MethodGet, "/v1/drafts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.DraftListResponse](t, w).Drafts)
}

func TestGenerateBillRejectsEmptyTopic(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing", map[string]any{}},
		{"blank", dto.GenerateBillRequest{Topic: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/v1/bills/generate", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGenerateAsyncWithoutQueue(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/bills/generate/async", dto.GenerateBillRequest{Topic: "salud"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(t, http.MethodGet, "/v1/jobs/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBillCRUD(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/bills", dto.CreateBillRequest{Title: "Ley de Movilidad", Content: "texto", Topic: "movilidad"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.BillResponse](t, w)
	assert.Equal(t, "draft", created.Status)
	path := "/v1/bills/" + strconv.FormatInt(created.ID, 10)

	w = s.do(t, http.MethodPost, "/v1/bills", dto.CreateBillRequest{Content: "x", Topic: "y", Status: "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, path, dto.UpdateBillRequest{Status: "published"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[dto.BillResponse](t, w)
	assert.Equal(t, "published", updated.Status)
	assert.Equal(t, "Ley de Movilidad", updated.Title)

	w = s.do(t, http.MethodGet, "/v1/bills?q=MOVIL&status=published", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[dto.BillListResponse](t, w).Bills, 1)

	w = s.do(t, http.MethodGet, "/v1/bills?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "3002", decodeError(t, w).Error.ErrorCode)

	w = s.do(t, http.MethodGet, "/v1/bills/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConvertDraft(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/drafts", dto.CreateDraftRequest{Title: "Borrador", Content: "contenido"})
	require.Equal(t, http.StatusCreated, w.Code)
	draft := decode[dto.DraftResponse](t, w)
	path := "/v1/drafts/" + strconv.FormatInt(draft.ID, 10)

	w = s.do(t, http.MethodPost, path+"/convert", dto.ConvertDraftRequest{Topic: "seguridad"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := decode[dto.BillResponse](t, w)
	assert.Equal(t, "seguridad", b.Topic)
	assert.Equal(t, "contenido", b.Content)

	w = s.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	linked := decode[dto.DraftResponse](t, w)
	require.NotNil(t, linked.BillID)
	assert.Equal(t, b.ID, *linked.BillID)

	w = s.do(t, http.MethodPost, path+"/convert", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExamples(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/examples", dto.CreateExampleRequest{Title: "Ley de Aguas", Content: "texto", Category: "ambiental"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.ExampleResponse](t, w)
	assert.True(t, created.IsActive)

	w = s.do(t, http.MethodPost, "/v1/examples", dto.CreateExampleRequest{Title: "Sin contenido"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/v1/examples?category=ambiental", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[dto.ExampleListResponse](t, w).Examples, 1)

	w = s.do(t, http.MethodGet, "/v1/examples?category=fiscal", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.ExampleListResponse](t, w).Examples)

	w = s.do(t, http.MethodGet, "/v1/examples/"+strconv.FormatInt(created.ID, 10), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/v1/examples/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsAndUsageTracking(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/settings", dto.UpdateSettingsRequest{Settings: map[string]string{"enable_api_usage_tracking": "yes"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/v1/settings", dto.UpdateSettingsRequest{Settings: map[string]string{
		"enable_api_usage_tracking": "true",
		"default_legislator":        "Dip. Ana López",
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[dto.SettingsResponse](t, w)
	values := map[string]string{}
	for _, st := range got.Settings {
		values[st.Key] = st.Value
	}
	assert.Equal(t, "true", values["enable_api_usage_tracking"])

	w = s.do(t, http.MethodPost, "/v1/bills/generate", dto.GenerateBillRequest{Topic: "educación"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/v1/usage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[dto.UsageSummaryResponse](t, w)
	require.NotEmpty(t, summary.Usage)
	var requests int64
	for _, row := range summary.Usage {
		requests += row.Requests
	}
	assert.Equal(t, int64(3), requests)

	w = s.do(t, http.MethodGet, "/v1/usage/daily?days=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[dto.DailyUsageResponse](t, w).DailyUsage, 1)

	w = s.do(t, http.MethodGet, "/v1/usage?start_date=2026-13-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, "/v1/usage?start_date=2026-10-02&end_date=2026-10-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, "/v1/usage/daily?days=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

const sampleBill = `LEY DE MOVILIDAD SUSTENTABLE

EXPOSICIÓN DE MOTIVOS

La movilidad es un derecho.

PROPUESTA

Artículo 1. Objeto de la ley.

Ciudad de México, a 1 de octubre de 2026
Dip. Ana López`

func TestDocuments(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/documents/validate", dto.DocumentRequest{Content: "texto sin formato"})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[document.ValidationResult](t, w)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Issues)

	w = s.do(t, http.MethodPost, "/v1/documents/preview", dto.DocumentRequest{Content: sampleBill})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "LEY DE MOVILIDAD SUSTENTABLE")

	w = s.do(t, http.MethodPost, "/v1/documents/export", dto.ExportRequest{Content: sampleBill, Format: "html"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment;")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".html")

	w = s.do(t, http.MethodPost, "/v1/documents/export", dto.ExportRequest{Content: sampleBill, Format: "pdf"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckEnvInMockMode(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/check-env", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.CheckEnvResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.MissingVars)

	w = s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health handler.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Services["database"])
	assert.Equal(t, "configured", health.Services["openai"])
}

type stubChecker struct{ err error }

func (s stubChecker) HealthCheck(context.Context) error { return s.err }

func TestHealthDegraded(t *testing.T) {
	llmCfg := &config.LLMConfig{
		Providers: map[string]config.ProviderConfig{
			"google": {Type: config.ProviderTypeGemini, APIKeyEnv: "GOOGLE_GENERATIVE_AI_API_KEY", APIKey: "g-key"},
			"openai": {Type: config.ProviderTypeOpenAI, APIKeyEnv: "OPENAI_API_KEY"},
		},
		Stages: config.StagesConfig{
			Research: config.StageConfig{Provider: "google"},
			Draft:    config.StageConfig{Provider: "openai"},
			Refine:   config.StageConfig{Provider: "openai"},
		},
	}
	h := handler.NewHealthHandler(stubChecker{err: errors.New("connection refused")}, stubChecker{}, llmCfg)

	engine := gin.New()
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
	engine.GET("/check-env", h.CheckEnv)

	serve := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := serve("/health")
	require.Equal(t, http.StatusMultiStatus, w.Code)
	var health handler.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "disconnected", health.Services["database"])
	assert.Equal(t, "configured", health.Services["google"])
	assert.Equal(t, "missing", health.Services["openai"])
	assert.Equal(t, "connected", health.Services["redis"])

	assert.Equal(t, http.StatusServiceUnavailable, serve("/ready").Code)

	var env dto.CheckEnvResponse
	require.NoError(t, json.Unmarshal(serve("/check-env").Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, []string{"OPENAI_API_KEY"}, env.MissingVars)
}
