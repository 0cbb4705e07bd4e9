package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
	limit   int
	window  time.Duration
}

func (f *fakeLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	f.limit, f.window = limit, window
	return f.allowed, f.err
}

func keyFn(clientID, endpoint string) string { return clientID + "|" + endpoint }

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name     string
		cfg      RateLimitConfig
		limiter  *fakeLimiter
		wantCode int
		wantKeys int
	}{
		{"disabled", RateLimitConfig{Enabled: false}, &fakeLimiter{}, http.StatusOK, 0},
		{"allowed", RateLimitConfig{Enabled: true, Requests: 3, Window: time.Minute}, &fakeLimiter{allowed: true}, http.StatusOK, 1},
		{"rejected", RateLimitConfig{Enabled: true, Requests: 3, Window: time.Minute}, &fakeLimiter{}, http.StatusTooManyRequests, 1},
		{"limiter down fails open", RateLimitConfig{Enabled: true}, &fakeLimiter{err: errors.New("redis down")}, http.StatusOK, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.POST("/v1/bills/generate", RateLimit(tt.cfg, tt.limiter, keyFn), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/v1/bills/generate", nil)
			req.RemoteAddr = "10.0.0.7:51234"
			w := serve(engine, req)

			assert.Equal(t, tt.wantCode, w.Code)
			require.Len(t, tt.limiter.keys, tt.wantKeys)
			if tt.wantKeys > 0 {
				assert.Equal(t, "10.0.0.7|/v1/bills/generate", tt.limiter.keys[0])
			}
			if tt.wantCode == http.StatusTooManyRequests {
				var resp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "1006", resp.Error.ErrorCode)
			}
		})
	}
}

func TestRateLimitDefaults(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	engine := gin.New()
	engine.GET("/x", RateLimit(RateLimitConfig{Enabled: true}, limiter, keyFn), func(c *gin.Context) {})

	serve(engine, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, 5, limiter.limit)
	assert.Equal(t, time.Minute, limiter.window)
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("propagates header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := serve(engine, req)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("generates when missing or oversized", func(t *testing.T) {
		for _, header := range []string{"", strings.Repeat("x", maxRequestIDLen+1)} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set(RequestIDHeader, header)
			}
			w := serve(engine, req)
			id := w.Header().Get(RequestIDHeader)
			assert.Len(t, id, 36)
			assert.NotEqual(t, header, id)
		}
	})
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery())
	engine.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1007", resp.Error.ErrorCode)
}

func TestCORSCredentials(t *testing.T) {
	preflight := func(cfg CORSConfig, origin string) *httptest.ResponseRecorder {
		engine := gin.New()
		engine.Use(CORS(cfg))
		engine.POST("/v1/bills/generate", func(c *gin.Context) {})
		req := httptest.NewRequest(http.MethodOptions, "/v1/bills/generate", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		return serve(engine, req)
	}

	w := preflight(CORSConfig{}, "http://example.test")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

	w = preflight(CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}, "http://localhost:3000")
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
