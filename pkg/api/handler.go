package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/performance-portal/goldenpath/pkg/bundle"
	"github.com/performance-portal/goldenpath/pkg/errors"
	"github.com/performance-portal/goldenpath/pkg/serializer"
	"github.com/performance-portal/goldenpath/pkg/server"
)

// HandleBundle processes derivation requests over HTTP.
// It accepts a POST with a JSON bundle.Request body and responds with the
// assembled bundle as JSON.
//
// Example:
//
//	POST /v1/bundle
//	Content-Type: application/json
//	Body: {"name":"checkout","lang":"java","image":"registry.local/checkout","rps":100,"latencyMs":200,"tier":"prod"}
func HandleBundle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method": r.Method,
			})
		return
	}

	var req bundle.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	b, err := bundle.Assemble(&req)
	if err != nil {
		slog.Debug("bundle request failed", "app", req.Name, "error", err)
		server.WriteErrorFromErr(w, r, err)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, b)
}
