package gemini_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/phrazzld/copyforge-api/internal/config"
	"github.com/phrazzld/copyforge-api/internal/generation"
	"github.com/phrazzld/copyforge-api/internal/platform/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGatewayFromConfig(t *testing.T) {
	t.Parallel()

	script, srv := newScriptedServer(t, map[string]http.HandlerFunc{
		"model-a":      respond(http.StatusServiceUnavailable, `{}`),
		"model-b":      respond(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"from b"}]}}]}`),
		"refine-first": respond(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"refined"}]}}]}`),
	})

	cfg := testConfig(srv.URL)
	cfg.Strategies = []config.StrategyConfig{
		{Model: "model-a", Version: "v1beta"},
		{Model: "model-b", Version: "v1"},
	}
	cfg.RefinePrimary = config.StrategyConfig{Model: "refine-first", Version: "v1beta"}
	cfg.RefineBackup = config.StrategyConfig{Model: "refine-second", Version: "v1beta"}

	gw, err := gemini.NewGateway(cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, []generation.Strategy{
		{Model: "model-a", Version: "v1beta"},
		{Model: "model-b", Version: "v1"},
	}, gw.Strategies())

	text, err := gw.Generate(context.Background(), "prompt", "key")
	require.NoError(t, err)
	assert.Equal(t, "from b", text)

	text, err = gw.Refine(context.Background(), "draft", "shorter", "key")
	require.NoError(t, err)
	assert.Equal(t, "refined", text)

	assert.Equal(t, []string{"model-a", "model-b", "refine-first"}, script.Calls())
}

func TestNewGatewayRejectsEmptyStrategies(t *testing.T) {
	t.Parallel()

	cfg := testConfig("https://example.invalid")
	cfg.RefinePrimary = config.StrategyConfig{Model: "a", Version: "v1beta"}
	cfg.RefineBackup = config.StrategyConfig{Model: "b", Version: "v1beta"}

	_, err := gemini.NewGateway(cfg, discardLogger())
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestNewGatewayRejectsBadClientConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig("not a url")
	cfg.Strategies = []config.StrategyConfig{{Model: "a", Version: "v1beta"}}

	_, err := gemini.NewGateway(cfg, discardLogger())
	assert.ErrorIs(t, err, gemini.ErrInvalidClientConfig)
}
