package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MemoryPrefix selects the in-memory store; the rest of the DSN is the seed file.
const MemoryPrefix = "memory:"

type Config struct {
	ChannelToken     string        `mapstructure:"line_channel_token"`
	StoreDSN         string        `mapstructure:"store_dsn"`
	LineAPIBase      string        `mapstructure:"line_api_base"`
	Port             string        `mapstructure:"port"`
	OutboundTimeout  time.Duration `mapstructure:"outbound_timeout"`
	OutboundAttempts int           `mapstructure:"outbound_attempts"`
	WelcomeFAQID     string        `mapstructure:"welcome_faq_id"`
	FAQCacheTTL      time.Duration `mapstructure:"faq_cache_ttl"`
	RedisURL         string        `mapstructure:"redis_url"`
	EventDedupeTTL   time.Duration `mapstructure:"event_dedupe_ttl"`
	SubscriberStream string        `mapstructure:"subscriber_stream"`
	AdminJWTSecret   string        `mapstructure:"admin_jwt_secret"`
	AdminOrigins     []string      `mapstructure:"admin_origins"`
	DiscordToken     string        `mapstructure:"discord_token"`
	DiscordChannelID string        `mapstructure:"discord_channel_id"`
}

var defaults = map[string]interface{}{
	"line_api_base":     "https://api.line.me/v2/bot",
	"port":              "8080",
	"outbound_timeout":  "30s",
	"outbound_attempts": 1,
	"welcome_faq_id":    "1",
	"faq_cache_ttl":     "0s",
	"event_dedupe_ttl":  "10m",
	"subscriber_stream": "faqbot.subscribers",
	"admin_origins":     []string{},
}

// Read loads configuration from the optional file at path and the
// environment, without checking required keys.
func Read(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	// Every key maps to its upper-cased environment variable.
	for k := range defaults {
		_ = v.BindEnv(k, strings.ToUpper(k))
	}
	for _, k := range []string{"line_channel_token", "store_dsn", "redis_url", "admin_jwt_secret", "discord_token", "discord_channel_id"} {
		_ = v.BindEnv(k, strings.ToUpper(k))
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.AdminOrigins = splitList(cfg.AdminOrigins)
	return &cfg, nil
}

// Load reads configuration and validates the required keys.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ChannelToken) == "" {
		errs = append(errs, errors.New("LINE_CHANNEL_TOKEN is required"))
	}
	if strings.TrimSpace(c.StoreDSN) == "" {
		errs = append(errs, errors.New("STORE_DSN is required"))
	}
	if c.OutboundAttempts < 1 {
		errs = append(errs, errors.New("OUTBOUND_ATTEMPTS must be at least 1"))
	}
	if (c.DiscordToken == "") != (c.DiscordChannelID == "") {
		errs = append(errs, errors.New("DISCORD_TOKEN and DISCORD_CHANNEL_ID must be set together"))
	}
	return errors.Join(errs...)
}

// MemorySeedPath returns the seed file of a memory: DSN.
func (c *Config) MemorySeedPath() (string, bool) {
	if !strings.HasPrefix(c.StoreDSN, MemoryPrefix) {
		return "", false
	}
	return strings.TrimPrefix(c.StoreDSN, MemoryPrefix), true
}

// splitList accepts both list values and a single comma separated string.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
