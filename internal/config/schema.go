package config

// Config holds hypeproof configuration.
// Stored at: ~/.hypeproof/config.yaml
type Config struct {
	LLMProviders map[string]LLMProviderCfg `mapstructure:"llm_providers" yaml:"llm_providers"`
	Defaults     DefaultsCfg               `mapstructure:"defaults" yaml:"defaults"`
	Logging      LoggingCfg                `mapstructure:"logging" yaml:"logging"`
}

// LLMProviderCfg configures an LLM provider.
type LLMProviderCfg struct {
	Type           string  `mapstructure:"type" yaml:"type"`                       // "openrouter", "openai", "mock"
	Model          string  `mapstructure:"model" yaml:"model"`                     // Default model name
	BaseURL        string  `mapstructure:"base_url" yaml:"base_url,omitempty"`     // Optional endpoint override
	APIKey         string  `mapstructure:"api_key" yaml:"api_key"`                 // API key (supports ${ENV_VAR} syntax)
	RateLimit      float64 `mapstructure:"rate_limit" yaml:"rate_limit"`           // Requests per second
	MaxRetries     int     `mapstructure:"max_retries" yaml:"max_retries"`         // Transport-level retry attempts
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // HTTP timeout
	Enabled        bool    `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg specifies fallback settings applied to agents that omit them.
type DefaultsCfg struct {
	LLMProvider    string `mapstructure:"llm_provider" yaml:"llm_provider"`       // Default LLM provider
	Model          string `mapstructure:"model" yaml:"model"`                     // Default model for agents
	MaxRetries     int    `mapstructure:"max_retries" yaml:"max_retries"`         // Default agent retry attempts
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // Default agent timeout
}

// LoggingCfg configures the structured logger.
type LoggingCfg struct {
	Level  string `mapstructure:"level" yaml:"level"`   // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLMProviders: map[string]LLMProviderCfg{
			"openrouter": {
				Type:           "openrouter",
				Model:          "anthropic/claude-sonnet-4",
				APIKey:         "${OPENROUTER_API_KEY}",
				RateLimit:      2.0,
				MaxRetries:     3,
				TimeoutSeconds: 300,
				Enabled:        true,
			},
			"openai": {
				Type:           "openai",
				Model:          "gpt-4o",
				APIKey:         "${OPENAI_API_KEY}",
				RateLimit:      2.0,
				MaxRetries:     3,
				TimeoutSeconds: 300,
				Enabled:        false,
			},
		},
		Defaults: DefaultsCfg{
			LLMProvider:    "openrouter",
			Model:          "anthropic/claude-sonnet-4",
			MaxRetries:     3,
			TimeoutSeconds: 300,
		},
		Logging: LoggingCfg{
			Level:  "info",
			Format: "text",
		},
	}
}

// GetLLMProvider returns an LLM provider config by name.
func (c *Config) GetLLMProvider(name string) (LLMProviderCfg, bool) {
	cfg, ok := c.LLMProviders[name]
	return cfg, ok
}

// EnabledLLMProviders returns all enabled LLM providers.
func (c *Config) EnabledLLMProviders() map[string]LLMProviderCfg {
	result := make(map[string]LLMProviderCfg)
	for name, cfg := range c.LLMProviders {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}
