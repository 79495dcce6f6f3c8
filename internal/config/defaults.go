package config

import openai "github.com/s33g/openai-client"

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL:        openai.DefaultBaseURL,
			APIKeyEnv:      "OPENAI_KEY",
			TimeoutSeconds: 120,
		},
		Defaults: DefaultsConfig{
			Model:            "gpt-4o-mini",
			SystemPrompt:     "You are a helpful assistant.",
			MaxContextTokens: 8192,
			ReplyTokens:      1024,
			Temperature:      0.7,
		},
		History: HistoryConfig{
			Enabled:      false,
			Address:      "localhost:6379",
			DB:           0,
			KeyPrefix:    "openai-cli:",
			TTLHours:     168, // 7 days
			MessageLimit: 200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
