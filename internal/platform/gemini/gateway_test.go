package gemini_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/phrazzld/copyforge-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedServer answers each model with a fixed status and body and records
// the order in which models were requested.
type scriptedServer struct {
	mu      sync.Mutex
	calls   []string
	replies map[string]http.HandlerFunc
}

func newScriptedServer(t *testing.T, replies map[string]http.HandlerFunc) (*scriptedServer, *httptest.Server) {
	t.Helper()
	s := &scriptedServer{replies: replies}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		model := strings.TrimSuffix(r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:], ":generateContent")
		s.mu.Lock()
		s.calls = append(s.calls, model)
		s.mu.Unlock()

		reply, ok := s.replies[model]
		if !ok {
			http.NotFound(w, r)
			return
		}
		reply(w, r)
	}))
	t.Cleanup(srv.Close)
	return s, srv
}

func (s *scriptedServer) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func strategies(models ...string) []generation.Strategy {
	out := make([]generation.Strategy, 0, len(models))
	for _, m := range models {
		out = append(out, generation.Strategy{Model: m, Version: "v1beta"})
	}
	return out
}

func refinePair() (generation.Strategy, generation.Strategy) {
	return generation.Strategy{Model: "refine-primary", Version: "v1beta"},
		generation.Strategy{Model: "refine-backup", Version: "v1beta"}
}

func newGateway(t *testing.T, baseURL string, log *slog.Logger, list []generation.Strategy, opts ...generation.Option) *generation.Gateway {
	t.Helper()
	client := newClient(t, testConfig(baseURL))
	gw, err := generation.NewGateway(client, list, log, opts...)
	require.NoError(t, err)
	return gw
}

func TestGatewayFallsThroughToFirstSuccess(t *testing.T) {
	server, srv := newScriptedServer(t, map[string]http.HandlerFunc{
		"model-a": respond(http.StatusServiceUnavailable, ``),
		"model-b": respond(http.StatusOK, `{}`),
		"model-c": respond(http.StatusOK, textBody("Hello World")),
	})
	gw := newGateway(t, srv.URL, discardLogger(), strategies("model-a", "model-b", "model-c"))

	text, err := gw.Generate(context.Background(), "Say hello", testKey)

	require.NoError(t, err)
	assert.Equal(t, "Hello World", text)
	assert.Equal(t, []string{"model-a", "model-b", "model-c"}, server.Calls())
}

func TestGatewayReportsLastUpstreamMessage(t *testing.T) {
	quota := respond(http.StatusForbidden, `{"error":{"code":403,"message":"quota exceeded","status":"PERMISSION_DENIED"}}`)
	server, srv := newScriptedServer(t, map[string]http.HandlerFunc{
		"model-a": quota,
		"model-b": quota,
	})
	gw := newGateway(t, srv.URL, discardLogger(), strategies("model-a", "model-b"))

	text, err := gw.Generate(context.Background(), "Say hello", testKey)

	assert.Empty(t, text)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrAllStrategiesExhausted)
	assert.ErrorIs(t, err, generation.ErrUpstream)
	assert.Equal(t, "quota exceeded", err.Error())
	assert.Equal(t, []string{"model-a", "model-b"}, server.Calls())

	last, ok := generation.LastAttempt(err)
	require.True(t, ok)
	assert.Equal(t, "model-b", last.Strategy.Model)
	assert.Equal(t, http.StatusForbidden, last.StatusCode)
}

func TestGatewayDiscardsEarlierMessages(t *testing.T) {
	_, srv := newScriptedServer(t, map[string]http.HandlerFunc{
		"model-a": respond(http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`),
		"model-b": respond(http.StatusOK, `{"candidates":[{"finishReason":"MAX_TOKENS"}]}`),
	})
	gw := newGateway(t, srv.URL, discardLogger(), strategies("model-a", "model-b"))

	_, err := gw.Generate(context.Background(), "Say hello", testKey)

	require.Error(t, err)
	assert.Equal(t, "Generation stopped: MAX_TOKENS", err.Error())
	assert.ErrorIs(t, err, generation.ErrMalformedResponse)
	assert.NotErrorIs(t, err, generation.ErrSafetyBlocked)
}

func TestGatewaySafetyBlockMovesOn(t *testing.T) {
	server, srv := newScriptedServer(t, map[string]http.HandlerFunc{
		"model-a": respond(http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`),
		"model-b": respond(http.StatusOK, textBody("safe answer")),
	})
	gw := newGateway(t, srv.URL, discardLogger(), strategies("model-a", "model-b"))

	text, err := gw.Generate(context.Background(), "Say hello", testKey)

	require.NoError(t, err)
	assert.Equal(t, "safe answer", text)
	assert.Len(t, server.Calls(), 2)
}

func TestGatewayMissingCredentialMakesNoRequests(t *testing.T) {
	server, srv := newScriptedServer(t, map[string]http.HandlerFunc{
		"model-a": respond(http.StatusOK, textBody("unused")),
	})
	gw := newGateway(t, srv.URL, discardLogger(), strategies("model-a"))

	_, err := gw.Generate(context.Background(), "Say hello", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrMissingCredential)
	assert.Equal(t, "Gemini API Key is missing", err.Error())
	assert.Empty(t, server.Calls())
}

func TestGatewayRefineThroughClient(t *testing.T) {
	t.Run("backup succeeds", func(t *testing.T) {
		server, srv := newScriptedServer(t, map[string]http.HandlerFunc{
			"refine-primary": respond(http.StatusInternalServerError, ``),
			"refine-backup":  respond(http.StatusOK, textBody("shorter text")),
		})
		primary, backup := refinePair()
		gw := newGateway(t, srv.URL, discardLogger(), strategies("model-a"),
			generation.WithRefineStrategies(primary, backup))

		text, err := gw.Refine(context.Background(), "long text", "make it shorter", testKey)

		require.NoError(t, err)
		assert.Equal(t, "shorter text", text)
		assert.Equal(t, []string{"refine-primary", "refine-backup"}, server.Calls())
	})

	t.Run("both fail with generic message", func(t *testing.T) {
		_, srv := newScriptedServer(t, map[string]http.HandlerFunc{
			"refine-primary": respond(http.StatusForbidden, `{"error":{"message":"quota exceeded"}}`),
			"refine-backup":  respond(http.StatusForbidden, `{"error":{"message":"quota exceeded"}}`),
		})
		primary, backup := refinePair()
		gw := newGateway(t, srv.URL, discardLogger(), strategies("model-a"),
			generation.WithRefineStrategies(primary, backup))

		_, err := gw.Refine(context.Background(), "long text", "make it shorter", testKey)

		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrRefineFailed)
		assert.Equal(t, "failed to refine content. Please try again.", err.Error())
	})
}

func TestGatewayLogsNeverContainCredential(t *testing.T) {
	_, srv := newScriptedServer(t, map[string]http.HandlerFunc{
		"model-a": respond(http.StatusServiceUnavailable, ``),
	})
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	gw := newGateway(t, srv.URL, log, strategies("model-a"))

	_, err := gw.Generate(context.Background(), "Say hello", testKey)

	require.Error(t, err)
	assert.Contains(t, buf.String(), "model-a")
	assert.NotContains(t, buf.String(), testKey)
}
