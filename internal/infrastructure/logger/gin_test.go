package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("request_id", "req-test")
		c.Next()
	})
	engine.Use(Recovery(log))
	engine.Use(GinMiddleware(log))
	return engine
}

func TestGinMiddleware(t *testing.T) {
	t.Run("logs one entry per request with standard fields", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		engine := newTestEngine(zap.New(core))
		engine.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok?verbose=1", nil)
		engine.ServeHTTP(w, req)

		entries := logs.FilterMessage("request completed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zap.InfoLevel, entries[0].Level)

		fields := entries[0].ContextMap()
		assert.Equal(t, "req-test", fields["request_id"])
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "/ok", fields["path"])
		assert.Equal(t, int64(http.StatusOK), fields["status"])
		assert.Equal(t, "verbose=1", fields["query"])
	})

	t.Run("escalates level with the status code", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		engine := newTestEngine(zap.New(core))
		engine.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
		engine.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

		entries := logs.FilterMessage("request completed").All()
		require.Len(t, entries, 2)
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
		assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	})

	t.Run("seeds the request context for downstream correlation", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		engine := newTestEngine(zap.New(core))
		engine.GET("/ctx", func(c *gin.Context) {
			ctx := c.Request.Context()
			assert.Equal(t, "req-test", RequestIDFromContext(ctx))
			FromContext(ctx).Info("handler entry")
			c.Status(http.StatusOK)
		})

		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ctx", nil))

		entries := logs.FilterMessage("handler entry").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-test", entries[0].ContextMap()["request_id"])
	})
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	engine := newTestEngine(zap.New(core))
	engine.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "boom", fields["panic"])
	assert.Equal(t, "/panic", fields["path"])
}
