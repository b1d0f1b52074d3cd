package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/performance-portal/goldenpath/pkg/bundle"
	"github.com/performance-portal/goldenpath/pkg/errors"
	"github.com/performance-portal/goldenpath/pkg/server"
)

const validBody = `{"name":"payments","lang":"java","image":"registry.example.com/payments:1.2.3","rps":100,"latencyMs":200,"tier":"prod"}`

func TestHandleBundle_Success(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/bundle", strings.NewReader(validBody))
	w := httptest.NewRecorder()

	HandleBundle(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var b bundle.Bundle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, "payments", b.Identity.Name)
	assert.Equal(t, int32(2), b.Derived.Policy.MinReplicas)
	require.NotNil(t, b.Deployment)
	assert.Equal(t, "payments", b.Deployment.Name)
}

func TestHandleBundle_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/bundle", nil)
	w := httptest.NewRecorder()

	HandleBundle(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeMethodNotAllowed, resp.Code)
}

func TestHandleBundle_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/bundle", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	HandleBundle(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeInvalidRequest, resp.Code)
	assert.False(t, resp.Retryable)
}

func TestHandleBundle_DerivationErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{
			"unknown language",
			`{"name":"payments","lang":"rust","image":"img","rps":100,"latencyMs":200,"tier":"prod"}`,
			http.StatusBadRequest,
			errors.ErrCodeUnknownLanguage,
		},
		{
			"infeasible sizing",
			`{"name":"payments","lang":"java","image":"img","rps":100000,"latencyMs":200,"tier":"prod"}`,
			http.StatusUnprocessableEntity,
			errors.ErrCodeInfeasibleSizing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/bundle", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			HandleBundle(w, req)

			require.Equal(t, tt.status, w.Code)

			var resp server.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}
