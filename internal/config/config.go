package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                  int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel              string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gte=0"`
}

// RequestTimeout returns the per-request handler timeout. Zero disables it.
func (c ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// TokenLifetime returns how long issued access tokens stay valid.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// StrategyConfig names one model/version pair in the fallback list.
type StrategyConfig struct {
	Model   string `mapstructure:"model" validate:"required"`
	Version string `mapstructure:"version" validate:"required"`
}

// LLMConfig contains all LLM integration related settings.
//
// GeminiAPIKey is deliberately optional: a missing key surfaces per request
// as an invalid-argument error rather than preventing startup.
type LLMConfig struct {
	GeminiAPIKey          string           `mapstructure:"gemini_api_key"`
	BaseURL               string           `mapstructure:"base_url" validate:"required,url"`
	Strategies            []StrategyConfig `mapstructure:"strategies" validate:"required,min=1,dive"`
	RefinePrimary         StrategyConfig   `mapstructure:"refine_primary" validate:"required"`
	RefineBackup          StrategyConfig   `mapstructure:"refine_backup" validate:"required"`
	SafetyThreshold       string           `mapstructure:"safety_threshold" validate:"omitempty,oneof=BLOCK_NONE BLOCK_ONLY_HIGH BLOCK_MEDIUM_AND_ABOVE BLOCK_LOW_AND_ABOVE OFF"`
	RequestTimeoutSeconds int              `mapstructure:"request_timeout_seconds" validate:"gt=0"`
	RequestsPerMinute     int              `mapstructure:"requests_per_minute" validate:"gte=0"`
}

// RequestTimeout returns the timeout applied to each upstream attempt.
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
