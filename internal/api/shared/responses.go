package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/copyforge-api/internal/platform/logger"
	"github.com/phrazzld/copyforge-api/internal/redact"
)

// Error status names carried in the error envelope. They follow the
// callable-function convention so existing clients can switch on them.
const (
	StatusInvalidArgument   = "invalid-argument"
	StatusUnauthenticated   = "unauthenticated"
	StatusPermissionDenied  = "permission-denied"
	StatusNotFound          = "not-found"
	StatusAlreadyExists     = "already-exists"
	StatusResourceExhausted = "resource-exhausted"
	StatusUnavailable       = "unavailable"
	StatusInternal          = "internal"
)

// ErrorBody is the payload of the "error" member of an error response.
type ErrorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse defines the standard error response structure:
// {"error":{"status":...,"message":...}}.
type ErrorResponse struct {
	Error   ErrorBody `json:"error"`
	Code    int       `json:"-"` // Not serialized to JSON, used for logging
	TraceID string    `json:"trace_id,omitempty"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// StatusName returns the envelope status name for an HTTP status code.
func StatusName(code int) string {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
		return StatusInvalidArgument
	case http.StatusUnauthorized:
		return StatusUnauthenticated
	case http.StatusForbidden:
		return StatusPermissionDenied
	case http.StatusNotFound:
		return StatusNotFound
	case http.StatusConflict:
		return StatusAlreadyExists
	case http.StatusTooManyRequests:
		return StatusResourceExhausted
	case http.StatusServiceUnavailable:
		return StatusUnavailable
	default:
		return StatusInternal
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error envelope with the given status code and message.
// It also sets the TraceID from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	logger.FromContext(r.Context()).Debug("sending error response",
		"status_code", status,
		"message", message,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, newErrorResponse(status, message, traceID))
}

// RespondWithErrorAndLog writes a JSON error envelope and logs the detailed
// (redacted) error. Only userMessage reaches the client.
//
// 5xx responses are logged at ERROR, 429 at WARN, other 4xx at DEBUG unless
// WithElevatedLogLevel is given.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", redact.String(userMessage)),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	case responseOpts.elevateLogLevel && status >= http.StatusBadRequest:
		logLevel = slog.LevelWarn
	}

	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, newErrorResponse(status, userMessage, traceID))
}

func newErrorResponse(status int, message, traceID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Status:  StatusName(status),
			Message: message,
		},
		Code:    status,
		TraceID: traceID,
	}
}
