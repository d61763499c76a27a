package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/GoPolymarket/aura-dashboard/internal/upstream"
)

// Validate checks high-impact runtime configuration constraints.
func (c Config) Validate() error {
	base := strings.TrimSpace(c.UpstreamBaseURL)
	if base == "" {
		return fmt.Errorf("upstream_base_url is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("upstream_base_url must be an absolute URL, got %q", c.UpstreamBaseURL)
	}

	if _, err := upstream.NormalizeTimeRange(c.DefaultTimeRange); err != nil {
		return err
	}

	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh_interval must be >= 0, got %v", c.RefreshInterval)
	}
	if c.StaleAfter < 0 {
		return fmt.Errorf("stale_after must be >= 0, got %v", c.StaleAfter)
	}

	if c.Telegram.Enabled && (c.Telegram.BotToken == "" || c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id are required when telegram is enabled")
	}
	if c.API.Enabled && strings.TrimSpace(c.API.Addr) == "" {
		return fmt.Errorf("api.addr is required when the api is enabled")
	}

	return nil
}
