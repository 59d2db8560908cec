package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

var knownProviders = map[string]bool{
	"openai":    true,
	"anthropic": true,
}

// Validate checks a loaded configuration for values that can never work.
// Missing credentials are not errors here: they disable the matching
// surface instead (chat, persistence, admin listing).
func Validate(cfg *Config) error {
	if !knownProviders[cfg.LLM.Provider] {
		return fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}

	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm model cannot be empty")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.Maintenance.Enabled {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(cfg.Maintenance.Schedule); err != nil {
			return fmt.Errorf("invalid maintenance schedule %q: %w", cfg.Maintenance.Schedule, err)
		}
	}

	return nil
}
