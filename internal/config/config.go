package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	UpstreamBaseURL  string        `yaml:"upstream_base_url"`
	UpstreamTimeout  time.Duration `yaml:"upstream_timeout"`
	RefreshInterval  time.Duration `yaml:"refresh_interval"`
	DefaultTimeRange string        `yaml:"default_time_range"`
	StaleAfter       time.Duration `yaml:"stale_after"`
	Locale           string        `yaml:"locale"`
	LogLevel         string        `yaml:"log_level"`

	API      APIConfig      `yaml:"api"`
	Telegram TelegramConfig `yaml:"telegram"`
	Venue    VenueConfig    `yaml:"venue"`
}

type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

type VenueConfig struct {
	Enabled      bool          `yaml:"enabled"`
	SyncInterval time.Duration `yaml:"sync_interval"`
}

func Default() Config {
	return Config{
		UpstreamBaseURL:  "https://builder-analytics.polymarket.com",
		UpstreamTimeout:  15 * time.Second,
		RefreshInterval:  5 * time.Minute,
		DefaultTimeRange: "7d",
		StaleAfter:       30 * time.Minute,
		Locale:           "en",
		LogLevel:         "info",
		API: APIConfig{
			Enabled: true,
			Addr:    ":8080",
		},
		Venue: VenueConfig{
			SyncInterval: 10 * time.Minute,
		},
	}
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("DASHBOARD_UPSTREAM_URL")); v != "" {
		c.UpstreamBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DASHBOARD_TIME_RANGE")); v != "" {
		c.DefaultTimeRange = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("DASHBOARD_LOCALE")); v != "" {
		c.Locale = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("DASHBOARD_TELEGRAM_ENABLED"); v != "" {
		c.Telegram.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("DASHBOARD_VENUE_ENABLED"); v != "" {
		c.Venue.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
}
