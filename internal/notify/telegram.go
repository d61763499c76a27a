package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Notifier sends dashboard alerts to a Telegram chat via the Bot API.
type Notifier struct {
	botToken   string
	chatID     string
	httpClient *http.Client
	enabled    bool
	baseURL    string // overridable for testing; defaults to Telegram API
}

// NewNotifier creates a Notifier. Notifications are enabled only when both
// botToken and chatID are non-empty.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken:   botToken,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		enabled:    botToken != "" && chatID != "",
	}
}

// Enabled reports whether the notifier is active.
func (n *Notifier) Enabled() bool { return n.enabled }

// Send posts a message to the configured Telegram chat.
func (n *Notifier) Send(ctx context.Context, msg string) error {
	if !n.enabled {
		return nil
	}

	endpoint := n.baseURL
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.botToken)
	}
	vals := url.Values{
		"chat_id":    {n.chatID},
		"text":       {msg},
		"parse_mode": {"HTML"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.URL.RawQuery = vals.Encode()

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Description string `json:"description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return fmt.Errorf("notify: telegram %d: %s", resp.StatusCode, body.Description)
	}
	return nil
}

// NotifyRefreshFailure sends an alert when a combined dashboard load fails.
func (n *Notifier) NotifyRefreshFailure(ctx context.Context, timeRange string, consecutive int, cause error) error {
	msg := fmt.Sprintf(
		"<b>Dashboard Refresh Failed</b>\nWindow: <code>%s</code>\nConsecutive Failures: %d\nError: %v",
		timeRange,
		consecutive,
		cause,
	)
	return n.Send(ctx, msg)
}

// NotifyRefreshRecovered sends an alert when refreshes recover after a
// failure streak.
func (n *Notifier) NotifyRefreshRecovered(ctx context.Context, timeRange string) error {
	msg := fmt.Sprintf("<b>Dashboard Refresh Recovered</b>\nWindow: <code>%s</code>", timeRange)
	return n.Send(ctx, msg)
}

// NotifyDailyDigest sends a pre-rendered daily leaderboard digest.
func (n *Notifier) NotifyDailyDigest(ctx context.Context, textHTML string) error {
	return n.Send(ctx, textHTML)
}
