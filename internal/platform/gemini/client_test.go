package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/phrazzld/copyforge-api/internal/config"
	"github.com/phrazzld/copyforge-api/internal/generation"
	"github.com/phrazzld/copyforge-api/internal/platform/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-key-123"

var testStrategy = generation.Strategy{Model: "gemini-2.0-flash", Version: "v1beta"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		BaseURL:               baseURL,
		SafetyThreshold:       "BLOCK_ONLY_HIGH",
		RequestTimeoutSeconds: 5,
	}
}

func newClient(t *testing.T, cfg config.LLMConfig, opts ...gemini.ClientOption) *gemini.Client {
	t.Helper()
	client, err := gemini.NewClient(cfg, discardLogger(), opts...)
	require.NoError(t, err)
	return client
}

// respond returns a handler that writes status and body verbatim.
func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func textBody(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}],"role":"model"},"finishReason":"STOP"}]}`
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func requireAttemptError(t *testing.T, err error) *generation.AttemptError {
	t.Helper()
	require.Error(t, err)
	attemptErr, ok := generation.LastAttempt(err)
	require.True(t, ok, "expected *AttemptError, got %T", err)
	return attemptErr
}

func TestNewClient(t *testing.T) {
	t.Run("nil logger", func(t *testing.T) {
		_, err := gemini.NewClient(testConfig("http://localhost"), nil)
		assert.ErrorIs(t, err, gemini.ErrInvalidClientConfig)
	})

	t.Run("invalid base url", func(t *testing.T) {
		_, err := gemini.NewClient(testConfig("not-a-url"), discardLogger())
		assert.ErrorIs(t, err, gemini.ErrInvalidClientConfig)
	})

	t.Run("unknown threshold", func(t *testing.T) {
		cfg := testConfig("http://localhost")
		cfg.SafetyThreshold = "BLOCK_SOME"
		_, err := gemini.NewClient(cfg, discardLogger())
		assert.ErrorIs(t, err, gemini.ErrInvalidClientConfig)
	})

	t.Run("negative rate", func(t *testing.T) {
		cfg := testConfig("http://localhost")
		cfg.RequestsPerMinute = -1
		_, err := gemini.NewClient(cfg, discardLogger())
		assert.ErrorIs(t, err, gemini.ErrInvalidClientConfig)
	})
}

func TestAttemptRequestShape(t *testing.T) {
	var (
		gotPath   string
		gotKey    string
		gotMethod string
		gotType   string
		gotBody   map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		respond(http.StatusOK, textBody("Hello World"))(w, r)
	}))
	defer srv.Close()

	client := newClient(t, testConfig(srv.URL))
	text, err := client.Attempt(context.Background(), testStrategy, "Write a haiku", testKey)
	require.NoError(t, err)

	assert.Equal(t, "Hello World", text)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, testKey, gotKey)
	assert.Equal(t, "application/json", gotType)

	contents := gotBody["contents"].([]any)
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]any)["parts"].([]any)
	assert.Equal(t, "Write a haiku", parts[0].(map[string]any)["text"])

	settings := gotBody["safetySettings"].([]any)
	require.Len(t, settings, 4)
	categories := make([]string, 0, len(settings))
	for _, s := range settings {
		entry := s.(map[string]any)
		assert.Equal(t, "BLOCK_ONLY_HIGH", entry["threshold"])
		categories = append(categories, entry["category"].(string))
	}
	assert.ElementsMatch(t, []string{
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
	}, categories)
}

func TestAttemptWithoutSafetyOverride(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		respond(http.StatusOK, textBody("ok"))(w, r)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.SafetyThreshold = ""
	client := newClient(t, cfg)

	_, err := client.Attempt(context.Background(), testStrategy, "prompt", testKey)
	require.NoError(t, err)
	assert.NotContains(t, gotBody, "safetySettings")
}

func TestAttemptClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		kind       generation.ErrorKind
		sentinel   error
		message    string
		statusCode int
	}{
		{
			name:       "upstream error with message",
			status:     http.StatusForbidden,
			body:       `{"error":{"code":403,"message":"quota exceeded","status":"PERMISSION_DENIED"}}`,
			kind:       generation.KindUpstream,
			sentinel:   generation.ErrUpstream,
			message:    "quota exceeded",
			statusCode: http.StatusForbidden,
		},
		{
			name:       "upstream error without body",
			status:     http.StatusServiceUnavailable,
			body:       ``,
			kind:       generation.KindUpstream,
			sentinel:   generation.ErrUpstream,
			message:    "API Error: 503 Service Unavailable",
			statusCode: http.StatusServiceUnavailable,
		},
		{
			name:       "upstream error with non-json body",
			status:     http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			kind:       generation.KindUpstream,
			sentinel:   generation.ErrUpstream,
			message:    "API Error: 502 Bad Gateway",
			statusCode: http.StatusBadGateway,
		},
		{
			name:       "prompt blocked",
			status:     http.StatusOK,
			body:       `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			kind:       generation.KindSafetyBlocked,
			sentinel:   generation.ErrSafetyBlocked,
			message:    "Blocked by safety filter: SAFETY",
			statusCode: http.StatusOK,
		},
		{
			name:       "finish reason without content",
			status:     http.StatusOK,
			body:       `{"candidates":[{"finishReason":"MAX_TOKENS"}]}`,
			kind:       generation.KindMalformedResponse,
			sentinel:   generation.ErrMalformedResponse,
			message:    "Generation stopped: MAX_TOKENS",
			statusCode: http.StatusOK,
		},
		{
			name:       "no candidates",
			status:     http.StatusOK,
			body:       `{"candidates":[]}`,
			kind:       generation.KindMalformedResponse,
			sentinel:   generation.ErrMalformedResponse,
			message:    "Invalid response format from AI",
			statusCode: http.StatusOK,
		},
		{
			name:       "content without parts",
			status:     http.StatusOK,
			body:       `{"candidates":[{"content":{"parts":[]}}]}`,
			kind:       generation.KindMalformedResponse,
			sentinel:   generation.ErrMalformedResponse,
			message:    "Invalid response format from AI",
			statusCode: http.StatusOK,
		},
		{
			name:       "not json",
			status:     http.StatusOK,
			body:       `definitely not json`,
			kind:       generation.KindMalformedResponse,
			sentinel:   generation.ErrMalformedResponse,
			message:    "Invalid response format from AI",
			statusCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(respond(tt.status, tt.body))
			defer srv.Close()

			client := newClient(t, testConfig(srv.URL))
			text, err := client.Attempt(context.Background(), testStrategy, "prompt", testKey)

			assert.Empty(t, text)
			attemptErr := requireAttemptError(t, err)
			assert.Equal(t, tt.kind, attemptErr.Kind)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, tt.statusCode, attemptErr.StatusCode)
			assert.Equal(t, testStrategy, attemptErr.Strategy)
		})
	}
}

func TestAttemptTransportError(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, textBody("unused")))
	baseURL := srv.URL
	srv.Close()

	client := newClient(t, testConfig(baseURL))
	_, err := client.Attempt(context.Background(), testStrategy, "prompt", testKey)

	attemptErr := requireAttemptError(t, err)
	assert.Equal(t, generation.KindTransport, attemptErr.Kind)
	assert.ErrorIs(t, err, generation.ErrTransport)
	assert.Zero(t, attemptErr.StatusCode)
	assert.True(t, strings.HasPrefix(err.Error(), "Network error: "), err.Error())
	assert.NotContains(t, err.Error(), testKey)
}

func TestAttemptResponseTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"`))
		_, _ = w.Write([]byte(strings.Repeat("a", 4<<20)))
		_, _ = w.Write([]byte(`"}]}}]}`))
	}))
	defer srv.Close()

	client := newClient(t, testConfig(srv.URL))
	_, err := client.Attempt(context.Background(), testStrategy, "prompt", testKey)

	attemptErr := requireAttemptError(t, err)
	assert.Equal(t, generation.KindMalformedResponse, attemptErr.Kind)
	assert.ErrorIs(t, err, gemini.ErrResponseTooLarge)
}

func TestAttemptRateLimiterHonoursContext(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		respond(http.StatusOK, textBody("ok"))(w, r)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.RequestsPerMinute = 1
	client := newClient(t, cfg)

	_, err := client.Attempt(context.Background(), testStrategy, "prompt", testKey)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Attempt(ctx, testStrategy, "prompt", testKey)

	attemptErr := requireAttemptError(t, err)
	assert.Equal(t, generation.KindTransport, attemptErr.Kind)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWithHTTPClient(t *testing.T) {
	var used bool
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		used = true
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(textBody("from transport"))),
			Header:     make(http.Header),
		}, nil
	})}

	client := newClient(t, testConfig("https://example.test"), gemini.WithHTTPClient(hc))
	text, err := client.Attempt(context.Background(), testStrategy, "prompt", testKey)

	require.NoError(t, err)
	assert.True(t, used)
	assert.Equal(t, "from transport", text)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
