// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml, and COPYFORGE_ prefixed
// environment variables. Environment variables take precedence over file
// values.
package config
