// Package telegram delivers tracker notifications to a Telegram chat via
// the Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/striketrack/backend/internal/config"
	"github.com/striketrack/backend/internal/domain"
)

// Client posts messages to a single configured chat. When no token is
// configured the client is disabled: sends succeed without network calls so
// the rest of the app never has to care whether notifications are on.
type Client struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Telegram client from configuration.
func NewClient(cfg config.TelegramConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		chatID:     cfg.ChatID,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "telegram"),
	}
}

// sendMessageRequest is the Bot API sendMessage payload.
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Send posts text to the configured chat with HTML parse mode.
func (c *Client) Send(ctx context.Context, text string) error {
	if c.token == "" || c.chatID == "" {
		c.log.InfoContext(ctx, "telegram disabled, dropping message",
			slog.Int("length", len(text)))
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("telegram: marshal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 64 KiB cap: Telegram error bodies are tiny, this guards misrouted URLs.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return fmt.Errorf("telegram: sendMessage returned %d: %s", resp.StatusCode, detail)
	}

	c.log.DebugContext(ctx, "telegram message sent", slog.Int("length", len(text)))
	return nil
}

// SendStrikeNotice formats and delivers the single-strike notification.
func (c *Client) SendStrikeNotice(ctx context.Context, n domain.StrikeNotice) error {
	return c.Send(ctx, FormatStrikeNotice(n))
}
