package gemini

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/copyforge-api/internal/config"
	"github.com/phrazzld/copyforge-api/internal/generation"
)

// NewGateway builds a generation gateway backed by a Gemini client, using
// the strategy order and refine pair from cfg.
func NewGateway(cfg config.LLMConfig, log *slog.Logger, opts ...ClientOption) (*generation.Gateway, error) {
	if log == nil {
		log = slog.Default()
	}

	client, err := NewClient(cfg, log, opts...)
	if err != nil {
		return nil, err
	}

	gw, err := generation.NewGateway(
		client,
		Strategies(cfg.Strategies),
		log,
		generation.WithRefineStrategies(Strategy(cfg.RefinePrimary), Strategy(cfg.RefineBackup)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build generation gateway: %w", err)
	}
	return gw, nil
}

// Strategy converts a configured model/version pair.
func Strategy(sc config.StrategyConfig) generation.Strategy {
	return generation.Strategy{Model: sc.Model, Version: sc.Version}
}

// Strategies converts a configured strategy list, preserving order.
func Strategies(list []config.StrategyConfig) []generation.Strategy {
	out := make([]generation.Strategy, 0, len(list))
	for _, sc := range list {
		out = append(out, Strategy(sc))
	}
	return out
}
