package config

// Config represents the main hearing server configuration
type Config struct {
	// Server
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Language model
	LLM LLMConfig `json:"llm" mapstructure:"llm"`

	// Persistence
	Database DatabaseConfig `json:"database" mapstructure:"database"`

	// Admin view
	Admin AdminConfig `json:"admin" mapstructure:"admin"`

	// Interview prompt
	Prompt PromptConfig `json:"prompt" mapstructure:"prompt"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Store maintenance
	Maintenance MaintenanceConfig `json:"maintenance" mapstructure:"maintenance"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`
}

// LLMConfig holds language-model provider configuration
type LLMConfig struct {
	Provider        string  `json:"provider" mapstructure:"provider"` // openai, anthropic
	OpenAIAPIKey    string  `json:"openai_api_key" mapstructure:"openai_api_key"`
	AnthropicAPIKey string  `json:"anthropic_api_key" mapstructure:"anthropic_api_key"`
	Model           string  `json:"model" mapstructure:"model"`
	Temperature     float64 `json:"temperature" mapstructure:"temperature"`
	MaxTokens       int     `json:"max_tokens" mapstructure:"max_tokens"`
}

// DatabaseConfig holds transcript store configuration
type DatabaseConfig struct {
	Path string `json:"path" mapstructure:"path"` // sqlite file path; empty disables persistence
}

// AdminConfig holds admin view configuration
type AdminConfig struct {
	Password string `json:"password" mapstructure:"password"` // shared secret; empty disables admin listing
}

// PromptConfig holds interview prompt configuration
type PromptConfig struct {
	Path string `json:"path" mapstructure:"path"` // optional override file, hot reloaded
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	File   string `json:"file" mapstructure:"file"`
	Pretty bool   `json:"pretty" mapstructure:"pretty"`
}

// MaintenanceConfig holds store maintenance configuration
type MaintenanceConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Schedule string `json:"schedule" mapstructure:"schedule"` // cron spec
}

// APIKey returns the credential for the selected provider.
func (c LLMConfig) APIKey() string {
	switch c.Provider {
	case "anthropic":
		return c.AnthropicAPIKey
	default:
		return c.OpenAIAPIKey
	}
}

// ChatEnabled reports whether the chat surface can run. Without the
// selected provider's credential the chat endpoint fails fast.
func (c *Config) ChatEnabled() bool {
	return c.LLM.APIKey() != ""
}

// PersistenceEnabled reports whether transcripts are stored. Chat still
// works without persistence; replies are just not recorded.
func (c *Config) PersistenceEnabled() bool {
	return c.Database.Path != ""
}

// AdminEnabled reports whether the admin listing can ever authorize.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Password != ""
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3000,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   1000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Maintenance: MaintenanceConfig{
			Enabled:  true,
			Schedule: "@hourly",
		},
	}
}
