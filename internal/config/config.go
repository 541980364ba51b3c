// Package config reads process configuration from the environment. Only
// main calls Load; every other package receives explicit values.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     int
	LogLevel string
	APIToken string

	SummaryProvider string
	SummaryTimeout  time.Duration
	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	IdentityPath    string

	LexiconPath string

	NatsURL     string
	NatsToken   string
	DatabaseURL string

	SlackBotToken string
	SlackChannel  string
}

func Load() Config {
	return Config{
		Port:     envInt("JOURNALVIZ_PORT", 8760),
		LogLevel: envStr("LOG_LEVEL", "info"),
		APIToken: envStr("JOURNALVIZ_API_TOKEN", ""),

		SummaryProvider: envStr("SUMMARY_PROVIDER", "auto"),
		SummaryTimeout:  envDuration("SUMMARY_TIMEOUT", 20*time.Second),
		GeminiAPIKey:    envStr("GEMINI_API_KEY", ""),
		GeminiModel:     envStr("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		OpenAIModel:     envStr("OPENAI_MODEL", "gpt-5-mini"),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		IdentityPath:    envStr("IDENTITY_PATH", ""),

		LexiconPath: envStr("LEXICON_PATH", ""),

		NatsURL:     envStr("NATS_URL", ""),
		NatsToken:   envStr("NATS_TOKEN", ""),
		DatabaseURL: envStr("DATABASE_URL", ""),

		SlackBotToken: envStr("SLACK_BOT_TOKEN", ""),
		SlackChannel:  envStr("SLACK_CHANNEL", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// envDuration accepts Go durations ("15s") or whole seconds ("15").
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}
