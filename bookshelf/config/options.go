package config

import (
	"os"
	"time"

	"go.uber.org/zap/zapcore"
)

type Option func(cfg *Config)

// WithLogLevel applies unless LOG_LEVEL is set.
func WithLogLevel(level zapcore.Level) Option {
	return func(cfg *Config) {
		if _, ok := os.LookupEnv("LOG_LEVEL"); !ok {
			cfg.Log.LogLevel = level
		}
	}
}

// WithWriteTimeout applies unless HTTP_WRITE is set.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		if _, ok := os.LookupEnv("HTTP_WRITE"); !ok {
			cfg.Server.WriteTimeout = timeout
		}
	}
}
