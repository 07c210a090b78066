package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/copyforge-api/internal/generation"
	"github.com/phrazzld/copyforge-api/internal/platform/logger"
)

// ContentService generates and rewrites marketing copy.
type ContentService interface {
	// GenerateContent writes a piece for platform about topic in tone.
	GenerateContent(ctx context.Context, topic, platform, tone string) (string, error)

	// RefineContent rewrites content according to instruction.
	RefineContent(ctx context.Context, content, instruction string) (string, error)
}

type contentServiceImpl struct {
	generator  generation.Generator
	credential string
	logger     *slog.Logger
}

// NewContentService creates a ContentService. credential is forwarded to
// the generator on every call; an empty credential is reported per request
// as generation.ErrMissingCredential.
func NewContentService(generator generation.Generator, credential string, log *slog.Logger) (ContentService, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &contentServiceImpl{
		generator:  generator,
		credential: credential,
		logger:     log.With(slog.String("component", "content_service")),
	}, nil
}

func (s *contentServiceImpl) GenerateContent(ctx context.Context, topic, platform, tone string) (string, error) {
	prompt, err := generation.BuildContentPrompt(topic, platform, tone)
	if err != nil {
		return "", err
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.DebugContext(ctx, "generating content",
		slog.String("platform", platform),
		slog.String("tone", tone),
		slog.Int("prompt_length", len(prompt)))

	return s.generator.Generate(ctx, prompt, s.credential)
}

func (s *contentServiceImpl) RefineContent(ctx context.Context, content, instruction string) (string, error) {
	if _, err := generation.BuildRefinePrompt(content, instruction); err != nil {
		return "", err
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.DebugContext(ctx, "refining content",
		slog.Int("content_length", len(content)),
		slog.Int("instruction_length", len(instruction)))

	return s.generator.Refine(ctx, content, instruction, s.credential)
}
