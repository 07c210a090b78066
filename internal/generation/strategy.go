package generation

import (
	"fmt"
	"strings"
)

// Strategy is one (model, API version) pair tried by the fallback loop.
type Strategy struct {
	Model   string `json:"model" mapstructure:"model" validate:"required"`
	Version string `json:"version" mapstructure:"version" validate:"required"`
}

// String renders the strategy as "model (version)" for logs.
func (s Strategy) String() string {
	return fmt.Sprintf("%s (%s)", s.Model, s.Version)
}

// Validate checks that both fields are set.
func (s Strategy) Validate() error {
	if strings.TrimSpace(s.Model) == "" {
		return fmt.Errorf("%w: strategy model cannot be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(s.Version) == "" {
		return fmt.Errorf("%w: strategy version cannot be empty for model %s", ErrInvalidConfig, s.Model)
	}
	return nil
}

// DefaultAPIVersion is the API version segment used by every built-in strategy.
const DefaultAPIVersion = "v1beta"

// DefaultStrategies returns the built-in generation order, fastest first.
// A fresh slice is returned on every call.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Model: "gemini-2.0-flash", Version: DefaultAPIVersion},
		{Model: "gemini-2.0-pro-exp", Version: DefaultAPIVersion},
		{Model: "gemini-2.0-flash-exp", Version: DefaultAPIVersion},
		{Model: "gemini-flash-latest", Version: DefaultAPIVersion},
	}
}

// DefaultRefineStrategies returns the primary and backup models used by Refine.
func DefaultRefineStrategies() (primary, backup Strategy) {
	return Strategy{Model: "gemini-flash-latest", Version: DefaultAPIVersion},
		Strategy{Model: "gemini-2.0-flash", Version: DefaultAPIVersion}
}

// validateStrategies rejects empty lists and incomplete entries.
func validateStrategies(strategies []Strategy) error {
	if len(strategies) == 0 {
		return fmt.Errorf("%w: at least one strategy is required", ErrInvalidConfig)
	}
	for i, s := range strategies {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("strategy %d: %w", i, err)
		}
	}
	return nil
}
