// Package cli holds setup shared by the command line tools.
package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	openai "github.com/s33g/openai-client"
	"github.com/s33g/openai-client/internal/config"
)

// LoadEnv loads a .env file if one is present. A missing file is not an
// error.
func LoadEnv() {
	_ = godotenv.Load()
}

// NewLogger builds a logger from the logging configuration.
func NewLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// NewClient builds an API client from the provider configuration. The
// key is read from the configured environment variable; an empty key is
// allowed for local servers.
func NewClient(cfg config.ProviderConfig, logger zerolog.Logger) *openai.Client {
	creds := openai.Credentials{
		APIKey:  os.Getenv(cfg.APIKeyEnv),
		BaseURL: cfg.BaseURL,
	}
	if override := os.Getenv("OPENAI_BASE_URL"); override != "" {
		creds.BaseURL = override
	}
	return openai.NewClient(creds,
		openai.WithTimeout(cfg.Timeout()),
		openai.WithLogger(logger),
	)
}
