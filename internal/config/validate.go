package config

import (
	"fmt"
	"strings"
)

// ValidationError reports every missing or malformed startup setting at
// once so the operator can fix the config in a single pass. It is the
// only fatal error class: the process refuses to start on it.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Problems, "; "))
}

// Validate checks the settings required for startup. Returns a
// *ValidationError listing every problem, or nil when the config is
// usable. The relay webhook is deliberately not required.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.ResolvedTelegramToken()) == "" {
		problems = append(problems, "telegram.token is not set (TELEGRAM_BOT_TOKEN)")
	}
	if c.Telegram.AuthorizedUserID == 0 {
		problems = append(problems, "telegram.authorized_user_id is not set")
	} else if c.Telegram.AuthorizedUserID < 0 {
		problems = append(problems, fmt.Sprintf("telegram.authorized_user_id (%d) is not a valid user id", c.Telegram.AuthorizedUserID))
	}
	if strings.TrimSpace(c.ResolvedGeminiAPIKey()) == "" {
		problems = append(problems, "gemini.api_key is not set (GOOGLE_API_KEY)")
	}
	if strings.TrimSpace(c.Gemini.Model) == "" {
		problems = append(problems, "gemini.model is not set")
	}
	if c.Relay.Timeout <= 0 {
		problems = append(problems, "relay.timeout must be positive")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Redacted returns a copy of the config safe for printing: secrets that
// were resolved from the environment or set literally are masked, while
// unresolved ${ENV_VAR} placeholders are left visible.
func (c *Config) Redacted() *Config {
	out := *c
	out.Telegram.Token = redactSecret(c.Telegram.Token)
	out.Gemini.APIKey = redactSecret(c.Gemini.APIKey)
	return &out
}

func redactSecret(v string) string {
	if v == "" || strings.HasPrefix(v, "${") {
		return v
	}
	return "********"
}
