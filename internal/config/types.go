package config

import "time"

// Config is the complete CLI configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Defaults DefaultsConfig `yaml:"defaults"`
	History  HistoryConfig  `yaml:"history"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ProviderConfig holds API endpoint settings. The API key itself comes
// from the environment, never from YAML.
type ProviderConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a Duration.
func (p *ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// DefaultsConfig holds defaults applied to every chat session.
type DefaultsConfig struct {
	Model            string  `yaml:"model"`
	SystemPrompt     string  `yaml:"system_prompt"`
	MaxContextTokens int     `yaml:"max_context_tokens"`
	ReplyTokens      int     `yaml:"reply_tokens"`
	Temperature      float32 `yaml:"temperature"`
}

// HistoryConfig holds Redis session storage settings.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Address      string `yaml:"address"`
	PasswordEnv  string `yaml:"password_env"`
	DB           int    `yaml:"db"`
	KeyPrefix    string `yaml:"key_prefix"`
	TTLHours     int    `yaml:"ttl_hours"`
	MessageLimit int    `yaml:"message_limit"`
}

// TTL returns the session TTL as a Duration.
func (h *HistoryConfig) TTL() time.Duration {
	return time.Duration(h.TTLHours) * time.Hour
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
