package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/copyforge-api/internal/config"
	"github.com/phrazzld/copyforge-api/internal/generation"
	"github.com/phrazzld/copyforge-api/internal/platform/logger"
	"golang.org/x/time/rate"
)

// maxResponseBytes caps how much of any response body is read.
const maxResponseBytes = 4 << 20

// Client performs single generateContent calls. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	limiter    *rate.Limiter
	safety     []SafetySetting
	logger     *slog.Logger
}

var _ generation.Upstream = (*Client)(nil)

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithSafetySettings overrides the safety settings derived from configuration.
func WithSafetySettings(settings []SafetySetting) ClientOption {
	return func(c *Client) {
		c.safety = settings
	}
}

// NewClient builds a Client from the llm configuration section.
// A RequestsPerMinute of zero disables client-side rate limiting.
func NewClient(cfg config.LLMConfig, log *slog.Logger, opts ...ClientOption) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrInvalidClientConfig)
	}

	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrInvalidClientConfig, cfg.BaseURL)
	}

	threshold, err := ParseThreshold(cfg.SafetyThreshold)
	if err != nil {
		return nil, err
	}

	if cfg.RequestsPerMinute < 0 {
		return nil, fmt.Errorf("%w: requests per minute cannot be negative", ErrInvalidClientConfig)
	}

	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(base.String(), "/"),
		timeout:    cfg.RequestTimeout(),
		safety:     SafetySettings(threshold),
		logger:     log.With(slog.String("component", "gemini_client")),
	}
	if cfg.RequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Attempt issues one generateContent request for strategy and classifies
// the outcome. Failures are always returned as *generation.AttemptError.
func (c *Client) Attempt(
	ctx context.Context,
	strategy generation.Strategy,
	prompt, credential string,
) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", generation.NewAttemptError(generation.KindTransport, strategy,
				fmt.Sprintf(msgRateLimitFailed, err), err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(generateContentRequest{
		Contents:       []content{{Parts: []part{{Text: prompt}}}},
		SafetySettings: c.safety,
	})
	if err != nil {
		return "", generation.NewAttemptError(generation.KindTransport, strategy,
			"failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(strategy, credential), bytes.NewReader(body))
	if err != nil {
		return "", generation.NewAttemptError(generation.KindTransport, strategy,
			fmt.Sprintf(msgNetworkFailure, "invalid request"), err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cause := stripURL(err)
		return "", generation.NewAttemptError(generation.KindTransport, strategy,
			fmt.Sprintf(msgNetworkFailure, cause), cause)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		cause := stripURL(err)
		return "", generation.NewAttemptError(generation.KindTransport, strategy,
			fmt.Sprintf(msgNetworkFailure, cause), cause)
	}
	if len(raw) > maxResponseBytes {
		return "", generation.NewAttemptError(generation.KindMalformedResponse, strategy,
			msgInvalidFormat, ErrResponseTooLarge)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		attemptErr := generation.NewAttemptError(generation.KindUpstream, strategy,
			upstreamMessage(resp.StatusCode, raw), nil)
		attemptErr.StatusCode = resp.StatusCode
		return "", attemptErr
	}

	text, attemptErr := parseSuccess(strategy, raw)
	if attemptErr != nil {
		attemptErr.StatusCode = resp.StatusCode
		return "", attemptErr
	}

	logger.FromContextOrDefault(ctx, c.logger).DebugContext(ctx, "gemini response received",
		slog.String("strategy_model", strategy.Model),
		slog.Int("status_code", resp.StatusCode),
		slog.Int("response_bytes", len(raw)))

	return text, nil
}

// endpoint builds {base}/{version}/models/{model}:generateContent?key={credential}.
func (c *Client) endpoint(strategy generation.Strategy, credential string) string {
	return fmt.Sprintf("%s/%s/models/%s:generateContent?key=%s",
		c.baseURL,
		url.PathEscape(strategy.Version),
		url.PathEscape(strategy.Model),
		url.QueryEscape(credential))
}

// upstreamMessage prefers the API's own error message and falls back to the
// status line.
func upstreamMessage(status int, raw []byte) string {
	var envelope errorResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil {
		if msg := strings.TrimSpace(envelope.Error.Message); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf(msgAPIError, status, http.StatusText(status))
}

// parseSuccess extracts the first candidate's text from a 2xx body.
func parseSuccess(strategy generation.Strategy, raw []byte) (string, *generation.AttemptError) {
	var resp generateContentResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", generation.NewAttemptError(generation.KindMalformedResponse, strategy, msgInvalidFormat, err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", generation.NewAttemptError(generation.KindSafetyBlocked, strategy,
			fmt.Sprintf(msgSafetyBlocked, resp.PromptFeedback.BlockReason), nil)
	}

	if len(resp.Candidates) == 0 {
		return "", generation.NewAttemptError(generation.KindMalformedResponse, strategy, msgInvalidFormat, nil)
	}

	first := resp.Candidates[0]
	if first.Content == nil || len(first.Content.Parts) == 0 {
		msg := msgInvalidFormat
		if first.FinishReason != "" {
			msg = fmt.Sprintf(msgGenerationStop, first.FinishReason)
		}
		return "", generation.NewAttemptError(generation.KindMalformedResponse, strategy, msg, nil)
	}

	return first.Content.Parts[0].Text, nil
}

// stripURL drops the request URL from net/http errors; it carries the
// credential in its query string.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
