package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/copyforge-api/internal/platform/logger"
	"github.com/phrazzld/copyforge-api/internal/redact"
)

// Gateway implements Generator by walking an ordered strategy list against
// an Upstream. Attempts are strictly sequential and stop at the first success.
type Gateway struct {
	upstream      Upstream
	strategies    []Strategy
	refinePrimary Strategy
	refineBackup  Strategy
	logger        *slog.Logger
}

// Ensure Gateway implements Generator
var _ Generator = (*Gateway)(nil)

// Option customizes a Gateway.
type Option func(*Gateway)

// WithRefineStrategies overrides the primary and backup strategies used by Refine.
func WithRefineStrategies(primary, backup Strategy) Option {
	return func(g *Gateway) {
		g.refinePrimary = primary
		g.refineBackup = backup
	}
}

// NewGateway creates a Gateway that tries strategies in the given order.
// The slice is copied; later changes by the caller have no effect.
// If logger is nil, slog.Default() is used.
func NewGateway(upstream Upstream, strategies []Strategy, log *slog.Logger, opts ...Option) (*Gateway, error) {
	if upstream == nil {
		return nil, fmt.Errorf("%w: upstream cannot be nil", ErrInvalidConfig)
	}
	if err := validateStrategies(strategies); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	primary, backup := DefaultRefineStrategies()
	g := &Gateway{
		upstream:      upstream,
		strategies:    append([]Strategy(nil), strategies...),
		refinePrimary: primary,
		refineBackup:  backup,
		logger:        log.With(slog.String("component", "generation_gateway")),
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := validateStrategies([]Strategy{g.refinePrimary, g.refineBackup}); err != nil {
		return nil, fmt.Errorf("refine strategies: %w", err)
	}
	return g, nil
}

// Strategies returns a copy of the configured generation order.
func (g *Gateway) Strategies() []Strategy {
	return append([]Strategy(nil), g.strategies...)
}

// Generate returns the text produced by the first strategy that succeeds.
//
// A missing prompt or credential fails with ErrInvalidArgument before any
// upstream call. When every strategy fails, the returned error matches
// ErrAllStrategiesExhausted and its message is the last attempt's message.
func (g *Gateway) Generate(ctx context.Context, prompt, credential string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", InvalidArgument("prompt cannot be empty")
	}
	if strings.TrimSpace(credential) == "" {
		return "", ErrMissingCredential
	}

	return g.run(ctx, "generate", g.strategies, prompt, credential)
}

// Refine rewrites text according to instruction, trying the primary refine
// strategy and then exactly one backup. If both fail the error message is
// always the generic ErrRefineFailed text; the upstream messages are only
// logged and remain reachable through errors.As.
func (g *Gateway) Refine(ctx context.Context, text, instruction, credential string) (string, error) {
	if strings.TrimSpace(credential) == "" {
		return "", ErrMissingCredential
	}

	prompt, err := BuildRefinePrompt(text, instruction)
	if err != nil {
		return "", err
	}

	result, err := g.run(ctx, "refine", []Strategy{g.refinePrimary, g.refineBackup}, prompt, credential)
	if err != nil {
		return "", &refineError{cause: err}
	}
	return result, nil
}

// run is the fallback loop shared by Generate and Refine.
func (g *Gateway) run(
	ctx context.Context,
	operation string,
	strategies []Strategy,
	prompt string,
	credential string,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger).With(slog.String("operation", operation))

	var last *AttemptError
	for i, strategy := range strategies {
		attemptNum := i + 1

		if err := ctx.Err(); err != nil {
			log.WarnContext(ctx, "generation cancelled",
				"attempt", attemptNum,
				"ctx_err", err)
			return "", fmt.Errorf("generation cancelled before %s: %w", strategy, err)
		}

		log.InfoContext(ctx, "attempting generation strategy",
			"attempt", attemptNum,
			"max_attempts", len(strategies),
			"strategy_model", strategy.Model,
			"strategy_version", strategy.Version)

		text, err := g.upstream.Attempt(ctx, strategy, prompt, credential)
		if err == nil {
			log.InfoContext(ctx, "generation strategy succeeded",
				"attempt", attemptNum,
				"strategy_model", strategy.Model,
				"strategy_version", strategy.Version,
				"text_length", len(text))
			return text, nil
		}

		last = toAttemptError(strategy, err)
		log.WarnContext(ctx, "generation strategy failed",
			"attempt", attemptNum,
			"strategy_model", strategy.Model,
			"strategy_version", strategy.Version,
			"error_kind", string(last.Kind),
			"status_code", last.StatusCode,
			"error", redact.String(last.Message))
	}

	exhausted := &exhaustedError{last: last}
	log.ErrorContext(ctx, "all generation strategies failed",
		"attempts", len(strategies),
		"last_error", redact.String(exhausted.Error()))
	return "", exhausted
}

// toAttemptError normalizes whatever the upstream returned into an AttemptError.
// Unclassified errors are treated as transport failures.
func toAttemptError(strategy Strategy, err error) *AttemptError {
	var attemptErr *AttemptError
	if errors.As(err, &attemptErr) {
		if attemptErr.Strategy == (Strategy{}) {
			attemptErr.Strategy = strategy
		}
		return attemptErr
	}
	return NewAttemptError(KindTransport, strategy, err.Error(), err)
}

// refineError hides upstream detail behind the generic refine failure message.
type refineError struct {
	cause error
}

func (e *refineError) Error() string {
	return ErrRefineFailed.Error()
}

func (e *refineError) Unwrap() []error {
	return []error{ErrRefineFailed, e.cause}
}
