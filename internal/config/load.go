package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable Load consults.
const EnvPrefix = "COPYFORGE"

// Default values applied before any file or environment source.
const (
	DefaultPort                  = 8080
	DefaultLogLevel              = "info"
	DefaultRequestTimeoutSeconds = 60
	DefaultTokenLifetimeMinutes  = 60
	DefaultBaseURL               = "https://generativelanguage.googleapis.com"
	DefaultSafetyThreshold       = "BLOCK_ONLY_HIGH"
	DefaultLLMTimeoutSeconds     = 30
	DefaultRequestsPerMinute     = 60
)

// DefaultStrategies mirrors the gateway's built-in fallback order.
var DefaultStrategies = []StrategyConfig{
	{Model: "gemini-2.0-flash", Version: "v1beta"},
	{Model: "gemini-2.0-pro-exp", Version: "v1beta"},
	{Model: "gemini-2.0-flash-exp", Version: "v1beta"},
	{Model: "gemini-flash-latest", Version: "v1beta"},
}

var (
	defaultRefinePrimary = StrategyConfig{Model: "gemini-flash-latest", Version: "v1beta"}
	defaultRefineBackup  = StrategyConfig{Model: "gemini-2.0-flash", Version: "v1beta"}
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadLLM loads and validates only the llm section. Command-line tools that
// talk to the upstream without a database or auth use it.
func LoadLLM() (*LLMConfig, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	// Unmarshal through a wrapper rather than UnmarshalKey so that
	// environment overrides of nested keys are honoured.
	var wrapper struct {
		LLM LLMConfig `mapstructure:"llm"`
	}
	if err := v.Unmarshal(&wrapper, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("error unmarshalling llm config: %w", err)
	}

	if err := validator.New().Struct(&wrapper.LLM); err != nil {
		return nil, fmt.Errorf("llm config validation failed: %w", err)
	}

	return &wrapper.LLM, nil
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it; viper only
// consults the environment for keys it already knows about.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.request_timeout_seconds", DefaultRequestTimeoutSeconds)

	v.SetDefault("database.url", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", DefaultTokenLifetimeMinutes)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.base_url", DefaultBaseURL)
	v.SetDefault("llm.strategies", strategiesToMaps(DefaultStrategies))
	v.SetDefault("llm.refine_primary", formatStrategy(defaultRefinePrimary))
	v.SetDefault("llm.refine_backup", formatStrategy(defaultRefineBackup))
	v.SetDefault("llm.safety_threshold", DefaultSafetyThreshold)
	v.SetDefault("llm.request_timeout_seconds", DefaultLLMTimeoutSeconds)
	v.SetDefault("llm.requests_per_minute", DefaultRequestsPerMinute)
}

func strategiesToMaps(strategies []StrategyConfig) []map[string]any {
	out := make([]map[string]any, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, map[string]any{"model": s.Model, "version": s.Version})
	}
	return out
}

func formatStrategy(s StrategyConfig) string {
	return s.Model + "@" + s.Version
}

// ParseStrategy parses the "model@version" shorthand used by environment
// variables. A bare model name uses the v1beta API version.
func ParseStrategy(raw string) (StrategyConfig, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StrategyConfig{}, errors.New("empty strategy")
	}
	model, version, found := strings.Cut(raw, "@")
	model = strings.TrimSpace(model)
	version = strings.TrimSpace(version)
	if model == "" || (found && version == "") {
		return StrategyConfig{}, fmt.Errorf("invalid strategy %q: expected model@version", raw)
	}
	if !found {
		version = "v1beta"
	}
	return StrategyConfig{Model: model, Version: version}, nil
}

// ParseStrategies parses a comma separated list of "model@version" entries.
func ParseStrategies(raw string) ([]StrategyConfig, error) {
	var out []StrategyConfig
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		s, err := ParseStrategy(part)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, errors.New("no strategies configured")
	}
	return out, nil
}

var (
	strategyType      = reflect.TypeOf(StrategyConfig{})
	strategySliceType = reflect.TypeOf([]StrategyConfig{})
)

// decodeHook lets string values (typically from the environment) populate
// strategy fields, alongside viper's default duration and slice hooks.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		func(from reflect.Type, to reflect.Type, data any) (any, error) {
			if from.Kind() != reflect.String {
				return data, nil
			}
			switch to {
			case strategyType:
				return ParseStrategy(data.(string))
			case strategySliceType:
				return ParseStrategies(data.(string))
			default:
				return data, nil
			}
		},
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
