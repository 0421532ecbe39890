// Package config loads tableopts settings from environment variables.
package config

import (
	"time"

	"github.com/reoring/tableopts"
)

// Config holds all settings of the tableopts binaries.
type Config struct {
	Server  ServerConfig
	Decode  DecodeConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// DecodeConfig holds document parsing limits and policy.
type DecodeConfig struct {
	// MaxBytes caps the size of an options document (default: 1MiB).
	MaxBytes int64 `env:"DECODE_MAX_BYTES" default:"1048576"`
	// MaxDepth caps container nesting (default: 32).
	MaxDepth int `env:"DECODE_MAX_DEPTH" default:"32"`
	// DuplicateKeys is ignore, warn or error (default: ignore, last key wins).
	DuplicateKeys string `env:"DECODE_DUPLICATE_KEYS" default:"ignore"`
	// DefaultFormat is json or yaml (default: json).
	DefaultFormat string `env:"DECODE_DEFAULT_FORMAT" default:"json"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"text"`
	// Lang selects the language of human-facing issue summaries (en, ja).
	Lang string `env:"LOG_LANG" default:"en"`
}

// ParseOpt projects the decode settings onto tableopts.ParseOpt. Validate
// must have accepted the config.
func (d DecodeConfig) ParseOpt() tableopts.ParseOpt {
	sev, _ := tableopts.ParseSeverity(d.DuplicateKeys)
	return tableopts.ParseOpt{
		Strictness: tableopts.Strictness{OnDuplicateKey: sev},
		MaxDepth:   d.MaxDepth,
		MaxBytes:   d.MaxBytes,
	}
}
