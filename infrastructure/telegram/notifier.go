// Package telegram sends operational alerts to a Telegram chat.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Manasess896/X-bot/config"
	"github.com/Manasess896/X-bot/domain/ports"
)

// Notifier - Telegram implementation of ports.Notifier
type Notifier struct {
	cfg        config.AlertConfig
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewNotifier(cfg config.AlertConfig) *Notifier {
	return &Notifier{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://api.telegram.org",
		logger:  slog.Default().With("component", "telegram_notifier"),
	}
}

// WithBaseURL overrides the Telegram API host, useful for testing.
func (n *Notifier) WithBaseURL(baseURL string) *Notifier {
	n.baseURL = baseURL
	return n
}

func (n *Notifier) IsEnabled() bool {
	return n.cfg.Enabled && n.cfg.BotToken != "" && n.cfg.ChatID != ""
}

// NotifyFailure alerts that a scheduled action failed.
func (n *Notifier) NotifyFailure(ctx context.Context, action string, actionErr error) error {
	message := fmt.Sprintf(`🚨 <b>Bot action failed</b>

⚙️ Action: <code>%s</code>

❌ <b>Error:</b>
<pre>%s</pre>

⏰ Failed at: %s`,
		action,
		escapeHTML(truncateString(actionErr.Error(), 500)),
		time.Now().UTC().Format(time.RFC3339),
	)

	return n.sendMessage(ctx, message)
}

func (n *Notifier) sendMessage(ctx context.Context, message string) error {
	if !n.IsEnabled() {
		n.logger.DebugContext(ctx, "Telegram notification disabled, skipping")
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.cfg.BotToken)

	payload := map[string]interface{}{
		"chat_id":    n.cfg.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to send Telegram message", "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.logger.ErrorContext(ctx, "Telegram API error", "status", resp.StatusCode)
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	n.logger.InfoContext(ctx, "Telegram notification sent")
	return nil
}

func escapeHTML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Verify interface implementation
var _ ports.Notifier = (*Notifier)(nil)
