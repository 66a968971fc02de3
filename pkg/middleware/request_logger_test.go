package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger_LogsAndSetsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/generate", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/health?x=1", nil))
	require.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest("POST", "/api/generate", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/metrics", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "request completed", entries[0].Message)
	require.Equal(t, "/api/health?x=1", entries[0].ContextMap()["path"])
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, "req-42", entries[1].ContextMap()["request_id"])
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/p", func(c *gin.Context) {
		var v map[string]interface{}
		if err := c.ShouldBindJSON(&v); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/p", strings.NewReader(`{"a":1}`)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/p", strings.NewReader(`{"a":"`+strings.Repeat("x", 64)+`"}`)))
	require.Equal(t, http.StatusBadRequest, w.Code)
}
