package config

import "time"

// Config holds tensibot configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Telegram TelegramCfg `mapstructure:"telegram" yaml:"telegram"`
	Gemini   GeminiCfg   `mapstructure:"gemini" yaml:"gemini"`
	Relay    RelayCfg    `mapstructure:"relay" yaml:"relay"`
}

// TelegramCfg configures the messaging transport.
type TelegramCfg struct {
	Token            string `mapstructure:"token" yaml:"token"`                                 // Bot token (supports ${ENV_VAR} syntax)
	AuthorizedUserID int64  `mapstructure:"authorized_user_id" yaml:"authorized_user_id"`      // The single user allowed to use the bot
	UpdateTimeout    int    `mapstructure:"update_timeout" yaml:"update_timeout"`              // Long-poll timeout in seconds
}

// GeminiCfg configures the inference provider. The client speaks the
// OpenAI-compatible chat-completions surface, so base_url can point at
// any compatible endpoint.
type GeminiCfg struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"` // API key (supports ${ENV_VAR} syntax)
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	Model   string `mapstructure:"model" yaml:"model"`
}

// RelayCfg configures the spreadsheet webhook. An empty webhook_url
// disables relaying without being an error.
type RelayCfg struct {
	WebhookURL string        `mapstructure:"webhook_url" yaml:"webhook_url"` // Apps Script endpoint (supports ${ENV_VAR} syntax)
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramCfg{
			Token:         "${TELEGRAM_BOT_TOKEN}",
			UpdateTimeout: 60,
		},
		Gemini: GeminiCfg{
			APIKey:  "${GOOGLE_API_KEY}",
			BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai",
			Model:   "gemini-1.5-flash",
		},
		Relay: RelayCfg{
			WebhookURL: "${APP_SCRIPT_URL}",
			Timeout:    20 * time.Second,
		},
	}
}

// ResolvedTelegramToken returns the bot token with env references expanded.
func (c *Config) ResolvedTelegramToken() string {
	return ResolveEnvVars(c.Telegram.Token)
}

// ResolvedGeminiAPIKey returns the provider key with env references expanded.
func (c *Config) ResolvedGeminiAPIKey() string {
	return ResolveEnvVars(c.Gemini.APIKey)
}

// ResolvedWebhookURL returns the relay endpoint with env references
// expanded. Empty means relaying is disabled.
func (c *Config) ResolvedWebhookURL() string {
	return ResolveEnvVars(c.Relay.WebhookURL)
}
