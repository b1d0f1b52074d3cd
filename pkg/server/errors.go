package server

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/performance-portal/goldenpath/pkg/errors"
	"github.com/performance-portal/goldenpath/pkg/serializer"
)

// ErrorResponse is the JSON error envelope returned by every API endpoint.
type ErrorResponse struct {
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// WriteError writes an error response envelope.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps an engine error to an HTTP response using its
// structured code. Derivation failures are client errors: the input
// combination was unreasonable, and retrying the same request cannot help.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeUnknownLanguage, errors.ErrCodeInvalidRequest:
		status = http.StatusBadRequest
	case errors.ErrCodeInfeasibleSizing, errors.ErrCodeInfeasiblePolicy:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeMethodNotAllowed:
		status = http.StatusMethodNotAllowed
	case errors.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	}

	var details map[string]any
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		details = se.Details
	}

	WriteError(w, r, status, code, err.Error(), status >= 500, details)
}
