package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses the configuration file. Values not set in the
// file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Provider.TimeoutSeconds <= 0 {
		return fmt.Errorf("provider.timeout_seconds must be positive")
	}

	if c.Defaults.Model == "" {
		return fmt.Errorf("defaults.model is required")
	}
	if c.Defaults.MaxContextTokens <= 0 {
		return fmt.Errorf("defaults.max_context_tokens must be positive")
	}
	if c.Defaults.ReplyTokens <= 0 {
		return fmt.Errorf("defaults.reply_tokens must be positive")
	}
	if c.Defaults.ReplyTokens >= c.Defaults.MaxContextTokens {
		return fmt.Errorf("defaults.reply_tokens must be smaller than defaults.max_context_tokens")
	}

	if c.History.Enabled {
		if c.History.Address == "" {
			return fmt.Errorf("history.address is required when history is enabled")
		}
		if c.History.TTLHours <= 0 {
			return fmt.Errorf("history.ttl_hours must be positive")
		}
		if c.History.MessageLimit <= 0 {
			return fmt.Errorf("history.message_limit must be positive")
		}
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}
