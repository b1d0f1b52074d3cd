package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/performance-portal/goldenpath/pkg/errors"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	return New(append([]Option{WithName("test-api"), WithVersion("test")}, opts...)...)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	h := s.setupRoutes()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestReadyEndpoint(t *testing.T) {
	s := newTestServer(t)
	h := s.setupRoutes()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	s.setReady(true)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDefaultRouteListsRegisteredPaths(t *testing.T) {
	s := newTestServer(t, WithHandler(map[string]http.HandlerFunc{
		"/v1/bundle": func(w http.ResponseWriter, r *http.Request) {},
	}))
	h := s.setupRoutes()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Name   string   `json:"name"`
		Routes []string `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test-api", resp.Name)
	assert.Contains(t, resp.Routes, "POST /v1/bundle")
	assert.Contains(t, resp.Routes, "GET /metrics")
}

func TestMiddlewareAssignsRequestID(t *testing.T) {
	s := newTestServer(t, WithHandler(map[string]http.HandlerFunc{
		"/v1/echo": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	}))
	h := s.setupRoutes()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/echo", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMiddlewareRateLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = rate.Limit(1)
	cfg.RateLimitBurst = 1

	s := newTestServer(t, WithConfig(cfg), WithHandler(map[string]http.HandlerFunc{
		"/v1/echo": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	}))
	h := s.setupRoutes()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/echo", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/echo", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeRateLimitExceeded, resp.Code)
	assert.True(t, resp.Retryable)
}

func TestWriteErrorFromErr_StatusMapping(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeUnknownLanguage, http.StatusBadRequest},
		{errors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{errors.ErrCodeInfeasibleSizing, http.StatusUnprocessableEntity},
		{errors.ErrCodeInfeasiblePolicy, http.StatusUnprocessableEntity},
		{errors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{errors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{errors.ErrCodeBundleInconsistent, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/v1/bundle", nil)

			WriteErrorFromErr(w, r, errors.New(tt.code, "boom"))

			require.Equal(t, tt.status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.status >= 500, resp.Retryable)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestWriteErrorFromErr_CarriesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/bundle", nil)

	err := errors.New(errors.ErrCodeUnknownLanguage, "unknown language %q", "jav").
		WithDetail("suggestion", "java")
	WriteErrorFromErr(w, r, err)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "java", resp.Details["suggestion"])
}
