package generation

import (
	"context"
)

// Upstream performs exactly one generation attempt against the external API.
// Implementations return the generated text, or an error that is (or wraps)
// an *AttemptError describing the failure class.
type Upstream interface {
	Attempt(ctx context.Context, strategy Strategy, prompt, credential string) (string, error)
}

// UpstreamFunc adapts a plain function to the Upstream interface.
type UpstreamFunc func(ctx context.Context, strategy Strategy, prompt, credential string) (string, error)

// Attempt implements Upstream.
func (f UpstreamFunc) Attempt(ctx context.Context, strategy Strategy, prompt, credential string) (string, error) {
	return f(ctx, strategy, prompt, credential)
}

// Generator defines the interface for producing and rewriting text.
// This interface serves as a boundary between the application core and
// the external LLM service.
type Generator interface {
	// Generate returns text for an assembled prompt.
	Generate(ctx context.Context, prompt, credential string) (string, error)

	// Refine rewrites text according to an instruction.
	Refine(ctx context.Context, text, instruction, credential string) (string, error)
}
