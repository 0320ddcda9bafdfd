package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"promoai-api/internal/session"
	"promoai-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func requestLoggingRouter(handler gin.HandlerFunc) (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	appLogger, logs := newObservedLogger()

	router := gin.New()
	router.Use(RequestLogging(appLogger))
	router.GET("/ping", handler)
	return router, logs
}

func findEntry(t *testing.T, logs *observer.ObservedLogs, message string) observer.LoggedEntry {
	t.Helper()
	entries := logs.FilterMessage(message).All()
	require.Len(t, entries, 1)
	return entries[0]
}

func TestRequestLogging_LogsStartAndCompletion(t *testing.T) {
	router, logs := requestLoggingRouter(func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	started := findEntry(t, logs, "Request started")
	fields := started.ContextMap()
	assert.Equal(t, "/ping", fields["path"])
	assert.NotEmpty(t, fields["request_id"])

	completed := findEntry(t, logs, "Request completed")
	fields = completed.ContextMap()
	assert.Equal(t, int64(http.StatusNoContent), fields["status_code"])
	assert.Equal(t, fields["request_id"], started.ContextMap()["request_id"])
}

func TestRequestLogging_CompletionCarriesSessionID(t *testing.T) {
	router, logs := requestLoggingRouter(func(c *gin.Context) {
		c.Set(SessionContextKey, &session.Session{ID: "session-42"})
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	completed := findEntry(t, logs, "Request completed")
	assert.Equal(t, "session-42", completed.ContextMap()["session_id"])

	// The start line fires before any session is resolved
	started := findEntry(t, logs, "Request started")
	assert.NotContains(t, started.ContextMap(), "session_id")
}
