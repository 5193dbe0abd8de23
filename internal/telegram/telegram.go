package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/deusflow/clipping/internal/logger"
)

const (
	defaultAPI = "https://api.telegram.org"
	// maxMessage stays under the Bot API's 4096 character limit.
	maxMessage = 4000
)

// Client posts HTML messages to one chat.
type Client struct {
	Token   string
	ChatID  string
	BaseURL string
	HTTP    *http.Client
}

func New(token, chatID string, timeout time.Duration) *Client {
	return &Client{
		Token:   token,
		ChatID:  chatID,
		BaseURL: defaultAPI,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// SendMessage sends text, split on blank lines into chunks the API accepts.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	chunks := Split(text, maxMessage)
	for i, chunk := range chunks {
		if err := c.sendOnce(ctx, chunk); err != nil {
			return fmt.Errorf("send part %d/%d: %w", i+1, len(chunks), err)
		}
	}
	logger.Info("clipping sent to Telegram", "parts", len(chunks))
	return nil
}

func (c *Client) sendOnce(ctx context.Context, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.BaseURL, c.Token)

	payload := map[string]interface{}{
		"chat_id":                  c.ChatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error make JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("error HTTP request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logger.Warn("failed to close response body", "err", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
	}
	return nil
}

// Split cuts text into pieces of at most limit bytes, preferring blank-line
// boundaries, then line boundaries. A single rune wider than limit becomes
// its own piece.
func Split(text string, limit int) []string {
	if limit < 1 {
		limit = 1
	}
	if len(text) <= limit {
		return []string{text}
	}
	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n\n")
		if cut <= 0 {
			cut = strings.LastIndex(text[:limit], "\n")
		}
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		if cut == 0 {
			_, cut = utf8.DecodeRuneInString(text)
		}
		if part := strings.TrimRight(text[:cut], "\n"); part != "" {
			parts = append(parts, part)
		}
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}
