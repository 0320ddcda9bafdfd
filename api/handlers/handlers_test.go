package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"promoai-api/api/middleware"
	"promoai-api/internal/auth"
	"promoai-api/internal/common"
	"promoai-api/internal/config"
	"promoai-api/internal/events"
	"promoai-api/internal/generator"
	"promoai-api/internal/history"
	"promoai-api/internal/mining"
	"promoai-api/internal/session"
	"promoai-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// mockGenerator is a hand-rolled generator.Service for handler tests
type mockGenerator struct {
	generateResult generator.Result
	refineResult   generator.Result
	petriResult    generator.PetriNetResult

	lastGenerate generator.GenerateRequest
	lastRefine   generator.RefineRequest
}

func (m *mockGenerator) Generate(_ context.Context, req generator.GenerateRequest) generator.Result {
	m.lastGenerate = req
	return m.generateResult
}

func (m *mockGenerator) Refine(_ context.Context, req generator.RefineRequest) generator.Result {
	m.lastRefine = req
	return m.refineResult
}

func (m *mockGenerator) GeneratePetriNet(_ context.Context, req generator.PetriNetRequest) generator.PetriNetResult {
	return m.petriResult
}

// mockMining is a hand-rolled mining.Service for handler tests
type mockMining struct {
	analysis     *mining.Analysis
	analyzeError error

	convertResult string
	convertError  error
	lastFrom      string
	lastTo        string

	lastSessionID common.SessionID
}

func (m *mockMining) Analyze(_ context.Context, sessionID common.SessionID, fileName string, reader io.Reader) (*mining.Analysis, error) {
	m.lastSessionID = sessionID
	io.Copy(io.Discard, reader)
	if m.analyzeError != nil {
		return nil, m.analyzeError
	}
	return m.analysis, nil
}

func (m *mockMining) Convert(_ context.Context, content, from, to string) (string, error) {
	m.lastFrom = from
	m.lastTo = to
	if m.convertError != nil {
		return "", m.convertError
	}
	return m.convertResult, nil
}

// testEnv wires real session and auth services around mocked generation
// and mining services.
type testEnv struct {
	router    *gin.Engine
	sessions  *session.Store
	auth      *auth.Service
	generator *mockGenerator
	mining    *mockMining
	clock     *common.MockClock

	historyRepo *history.MockRepository
	eventBus    *events.MockEventBus
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithAuth(t, config.AuthConfig{
		Enabled:     true,
		Username:    "admin",
		Password:    "s3cret",
		TokenSecret: "test-secret",
	})
}

func newTestEnvWithAuth(t *testing.T, authCfg config.AuthConfig) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := common.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	zapLogger := zaptest.NewLogger(t)
	appLogger := logger.New("development")
	sessionCfg := config.SessionConfig{TTL: 3600, CleanupInterval: 300}

	env := &testEnv{
		sessions:    session.NewStore(sessionCfg, clock, zapLogger),
		auth:        auth.NewService(authCfg, sessionCfg, clock, zapLogger),
		generator:   &mockGenerator{},
		mining:      &mockMining{},
		clock:       clock,
		historyRepo: history.NewMockRepository(),
		eventBus:    events.NewMockEventBus(),
	}

	historyService, err := history.NewService(env.historyRepo, env.eventBus, zapLogger)
	require.NoError(t, err)

	llmCfg := config.LLMConfig{
		DefaultProvider: "openai",
		OpenAI:          config.ProviderConfig{Model: "gpt-4"},
		Anthropic:       config.ProviderConfig{Model: "claude-3-sonnet-20240229"},
		Google:          config.ProviderConfig{Model: "gemini-pro"},
		Cohere:          config.ProviderConfig{Model: "command"},
	}

	authHandler := NewAuthHandler(env.auth, env.sessions, llmCfg, appLogger)
	generationHandler := NewGenerationHandler(env.generator, env.mining, env.sessions, appLogger)
	miningHandler := NewMiningHandler(env.mining, env.sessions, appLogger)
	exportHandler := NewExportHandler(env.mining, appLogger)
	historyHandler := NewHistoryHandler(historyService, appLogger)

	router := gin.New()
	router.POST("/auth/login", authHandler.Login)

	authed := router.Group("")
	authed.Use(middleware.SessionAuth(env.auth, env.sessions, appLogger))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.POST("/models/generate", generationHandler.Generate)
	authed.POST("/models/refine", generationHandler.Refine)
	authed.POST("/models/petri-net", generationHandler.PetriNet)
	authed.GET("/models/current", generationHandler.Current)
	authed.POST("/models/reset", generationHandler.Reset)
	authed.POST("/models/import", generationHandler.Import)
	authed.GET("/models/export", exportHandler.Export)
	authed.POST("/logs/analyze", miningHandler.Analyze)
	authed.GET("/history", historyHandler.List)

	env.router = router
	return env
}

// login opens a session and returns the bearer token
func (env *testEnv) login(t *testing.T) string {
	t.Helper()

	w := env.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"username": "admin",
		"password": "s3cret",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (env *testEnv) doJSON(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) doUpload(t *testing.T, path, fileName string, content []byte, fields map[string]string, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
