package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/copyforge-api/internal/generation"
	"github.com/phrazzld/copyforge-api/internal/mocks"
	"github.com/phrazzld/copyforge-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentRouter(svc service.ContentService) http.Handler {
	h := NewContentHandler(svc)
	r := chi.NewRouter()
	r.Post("/api/content/generate", h.GenerateContent)
	r.Post("/api/content/refine", h.RefineContent)
	return r
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestContentHandler_GenerateContent(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockContentService{
			GenerateContentFn: func(ctx context.Context, topic, platform, tone string) (string, error) {
				assert.Equal(t, "Go", topic)
				assert.Equal(t, "Email", platform)
				assert.Equal(t, "Calm", tone)
				return "Hello World", nil
			},
		}

		rec := postJSON(t, newContentRouter(svc), "/api/content/generate",
			`{"topic":"Go","platform":"Email","tone":"Calm"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"text":"Hello World"}`, rec.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		rec := postJSON(t, newContentRouter(&mocks.MockContentService{}), "/api/content/generate", `{"topic":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":{"status":"invalid-argument","message":"Invalid request format"}}`, rec.Body.String())
	})

	t.Run("invalid argument", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockContentService{Err: generation.InvalidArgument("Missing required fields")}

		rec := postJSON(t, newContentRouter(svc), "/api/content/generate", `{"topic":"Go"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":{"status":"invalid-argument","message":"Missing required fields"}}`, rec.Body.String())
	})
}

func TestContentHandler_RefineContent(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockContentService{
		RefineContentFn: func(ctx context.Context, content, instruction string) (string, error) {
			return strings.ToUpper(content), nil
		},
	}

	rec := postJSON(t, newContentRouter(svc), "/api/content/refine", `{"content":"quiet","instruction":"louder"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"QUIET"}`, rec.Body.String())
}

// newGatewayRouter wires the real gateway and content service behind the handler.
func newGatewayRouter(t *testing.T, up *mocks.MockUpstream, credential string) http.Handler {
	t.Helper()
	gw, err := generation.NewGateway(up, generation.DefaultStrategies(), nil)
	require.NoError(t, err)
	svc, err := service.NewContentService(gw, credential, nil)
	require.NoError(t, err)
	return newContentRouter(svc)
}

func attemptErr(kind generation.ErrorKind, message string) error {
	return generation.NewAttemptError(kind, generation.Strategy{}, message, nil)
}

func TestContentEndpoints_ThroughGateway(t *testing.T) {
	t.Parallel()
	const body = `{"topic":"Launch","platform":"Blog Post","tone":"Bold"}`

	t.Run("falls back until a strategy succeeds", func(t *testing.T) {
		t.Parallel()
		up := &mocks.MockUpstream{Results: []mocks.UpstreamResult{
			{Err: attemptErr(generation.KindUpstream, "API Error: 503 Service Unavailable")},
			{Err: attemptErr(generation.KindMalformedResponse, "Invalid response format from AI")},
			{Text: "Hello World"},
		}}

		rec := postJSON(t, newGatewayRouter(t, up, "key"), "/api/content/generate", body)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"text":"Hello World"}`, rec.Body.String())
		assert.Len(t, up.Calls(), 3)
	})

	t.Run("every strategy fails with the last message", func(t *testing.T) {
		t.Parallel()
		up := &mocks.MockUpstream{Results: []mocks.UpstreamResult{
			{Err: attemptErr(generation.KindUpstream, "API Error: 503 Service Unavailable")},
			{Err: attemptErr(generation.KindUpstream, "API Error: 403 Forbidden")},
		}}

		rec := postJSON(t, newGatewayRouter(t, up, "key"), "/api/content/generate", body)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":{"status":"internal","message":"API Error: 403 Forbidden"}}`, rec.Body.String())
		assert.Len(t, up.Calls(), len(generation.DefaultStrategies()))
	})

	t.Run("missing fields make no upstream call", func(t *testing.T) {
		t.Parallel()
		up := &mocks.MockUpstream{}

		rec := postJSON(t, newGatewayRouter(t, up, "key"), "/api/content/generate", `{"topic":"Launch"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, up.Calls())
	})

	t.Run("missing credential makes no upstream call", func(t *testing.T) {
		t.Parallel()
		up := &mocks.MockUpstream{}

		rec := postJSON(t, newGatewayRouter(t, up, ""), "/api/content/generate", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Gemini API Key is missing")
		assert.Empty(t, up.Calls())
	})

	t.Run("refine failure is generic", func(t *testing.T) {
		t.Parallel()
		up := &mocks.MockUpstream{Results: []mocks.UpstreamResult{
			{Err: attemptErr(generation.KindUpstream, "API Error: 500 Internal Server Error")},
		}}

		rec := postJSON(t, newGatewayRouter(t, up, "key"), "/api/content/refine",
			`{"content":"draft","instruction":"shorter"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t,
			`{"error":{"status":"internal","message":"failed to refine content. Please try again."}}`,
			rec.Body.String())
		assert.Len(t, up.Calls(), 2)
	})
}
