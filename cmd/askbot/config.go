package main

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/askbot"
	"github.com/fwojciec/askbot/gemini"
)

// Environment variables holding the secrets.
const (
	envDiscordToken = "DISCORD_BOT_TOKEN"
	envGeminiKey    = "GEMINI_API_KEY"
)

// config holds everything run needs. Secrets come from the environment;
// the rest from an optional TOML file.
type config struct {
	DiscordToken string `toml:"-"`
	GeminiAPIKey string `toml:"-"`

	Prefix            string        `toml:"prefix"`
	SystemInstruction string        `toml:"system_instruction"`
	EditInterval      time.Duration `toml:"edit_interval"`
	MaxTokens         int           `toml:"max_tokens"`
	Temperature       *float64      `toml:"temperature"`
	LogLevel          string        `toml:"log_level"`

	Fast tierConfig `toml:"fast"`
	Deep tierConfig `toml:"deep"`
}

// tierConfig overrides parts of a built-in tier. Empty fields keep the
// built-in value.
type tierConfig struct {
	Model       string `toml:"model"`
	Description string `toml:"description"`
}

func defaultConfig() config {
	return config{
		Prefix:            askbot.DefaultPrefix,
		SystemInstruction: askbot.DefaultSystemInstruction,
		EditInterval:      askbot.DefaultEditInterval,
		LogLevel:          "info",
	}
}

// loadConfig builds the configuration from defaults, the TOML file at path
// (skipped when path is empty) and getenv.
func loadConfig(path string, getenv func(string) string) (config, error) {
	cfg := defaultConfig()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return config{}, fmt.Errorf("read config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return config{}, fmt.Errorf("read config: unknown keys %v", undecoded)
		}
	}
	cfg.DiscordToken = strings.TrimSpace(getenv(envDiscordToken))
	cfg.GeminiAPIKey = strings.TrimSpace(getenv(envGeminiKey))

	if strings.TrimSpace(cfg.Prefix) == "" {
		cfg.Prefix = askbot.DefaultPrefix
	}
	if cfg.EditInterval <= 0 {
		return config{}, fmt.Errorf("read config: edit_interval must be positive, got %s", cfg.EditInterval)
	}
	if cfg.MaxTokens < 0 {
		return config{}, fmt.Errorf("read config: max_tokens must not be negative, got %d", cfg.MaxTokens)
	}
	if cfg.MaxTokens > math.MaxInt32 {
		return config{}, fmt.Errorf("read config: max_tokens must be at most %d, got %d", math.MaxInt32, cfg.MaxTokens)
	}
	if t := cfg.Temperature; t != nil && (*t < 0 || *t > 2) {
		return config{}, fmt.Errorf("read config: temperature must be between 0 and 2, got %g", *t)
	}
	return cfg, nil
}

// validate reports the first missing secret. The console needs no Discord
// token.
func (c config) validate(console bool) error {
	if !console && c.DiscordToken == "" {
		return fmt.Errorf("%w: %s is not set", askbot.ErrMissingConfig, envDiscordToken)
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%w: %s is not set", askbot.ErrMissingConfig, envGeminiKey)
	}
	return nil
}

// geminiOptions returns the client options derived from the configuration.
func (c config) geminiOptions() []gemini.Option {
	opts := []gemini.Option{
		gemini.WithSystemInstruction(c.SystemInstruction),
		gemini.WithMaxTokens(c.MaxTokens),
	}
	if c.Temperature != nil {
		opts = append(opts, gemini.WithTemperature(*c.Temperature))
	}
	return opts
}

// tiers returns the fast and deep tiers with the configured overrides.
func (c config) tiers() (fast, deep askbot.Tier) {
	return c.Fast.apply(askbot.FastTier), c.Deep.apply(askbot.DeepTier)
}

func (tc tierConfig) apply(t askbot.Tier) askbot.Tier {
	if tc.Model != "" {
		t.Model = tc.Model
	}
	if tc.Description != "" {
		t.Description = tc.Description
	}
	return t
}

// parseLevel accepts the slog level names (debug, info, warn, error),
// case-insensitively.
func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
