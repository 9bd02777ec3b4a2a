package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// requestLog finds the completion entry written by GinMiddleware.
func requestLog(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	for _, entry := range recorded.All() {
		if entry.Message == "HTTP Request" {
			return entry
		}
	}
	t.Fatal("no request log entry recorded")
	return observer.LoggedEntry{}
}

func serveWithMiddleware(level zapcore.Level, status int, target string, pre ...gin.HandlerFunc) (*httptest.ResponseRecorder, *observer.ObservedLogs) {
	core, recorded := observer.New(level)

	router := gin.New()
	for _, mw := range pre {
		router.Use(mw)
	}
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/echo", func(c *gin.Context) {
		c.JSON(status, gin.H{"status": status})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", target, nil)
	router.ServeHTTP(w, req)
	return w, recorded
}

func TestGinMiddleware_LogsCompletedRequest(t *testing.T) {
	w, recorded := serveWithMiddleware(zapcore.InfoLevel, http.StatusOK, "/echo")

	assert.Equal(t, http.StatusOK, w.Code)
	entry := requestLog(t, recorded)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := make(map[string]zapcore.Field)
	for _, f := range entry.Context {
		fields[f.Key] = f
	}
	for _, key := range []string{"status", "latency", "client_ip", "user_agent", "method", "path"} {
		assert.Contains(t, fields, key)
	}
}

func TestGinMiddleware_CarriesRequestID(t *testing.T) {
	setID := func(c *gin.Context) {
		c.Set("request_id", "req-abc-123")
		c.Next()
	}
	_, recorded := serveWithMiddleware(zapcore.InfoLevel, http.StatusOK, "/echo", setID)

	entry := requestLog(t, recorded)
	found := false
	for _, f := range entry.Context {
		if f.Key == "request_id" {
			found = true
			assert.Equal(t, "req-abc-123", f.String)
		}
	}
	assert.True(t, found, "request_id should be in log fields")
}

func TestGinMiddleware_StatusDrivesLevel(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"client error logs at warn", http.StatusBadRequest, zapcore.WarnLevel},
		{"server error logs at error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, recorded := serveWithMiddleware(tt.level, tt.status, "/echo")

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.level, requestLog(t, recorded).Level)
		})
	}
}

func TestGinMiddleware_IncludesQueryString(t *testing.T) {
	_, recorded := serveWithMiddleware(zapcore.InfoLevel, http.StatusOK, "/echo?search=phone&page=2")

	entry := requestLog(t, recorded)
	found := false
	for _, f := range entry.Context {
		if f.Key == "query" {
			found = true
			assert.Contains(t, f.String, "search=phone")
		}
	}
	assert.True(t, found, "query should be in log fields")
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		panic("exploded")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/boom", nil)
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotEmpty(t, recorded.All())
	assert.Contains(t, recorded.All()[0].Message, "Panic recovered")
}

func TestGetGinLogger(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)

	var got *zap.Logger
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/echo", func(c *gin.Context) {
		got = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/echo", nil))

	assert.NotNil(t, got)
}

func TestGetGinLogger_WithoutMiddleware(t *testing.T) {
	var got *zap.Logger
	router := gin.New()
	router.GET("/echo", func(c *gin.Context) {
		got = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/echo", nil))

	// No-op logger, usable without panicking
	require.NotNil(t, got)
	assert.NotPanics(t, func() {
		got.Info("noop")
	})
}
