package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
)

const defaultTelegramBaseURL = "https://api.telegram.org"

var ErrNotConfigured = errors.New("telegram is not configured")

// Telegram delivers plain-text messages to a single chat through the
// Bot API sendMessage call.
type Telegram struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
	logger  apt.Logger
}

type TelegramOption func(*Telegram)

// WithBaseURL overrides the Bot API endpoint. Used in tests.
func WithBaseURL(url string) TelegramOption {
	return func(t *Telegram) {
		t.baseURL = url
	}
}

func WithHTTPClient(client *http.Client) TelegramOption {
	return func(t *Telegram) {
		t.client = client
	}
}

func NewTelegram(token, chatID string, logger apt.Logger, opts ...TelegramOption) *Telegram {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	t := &Telegram{
		token:   token,
		chatID:  chatID,
		baseURL: defaultTelegramBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Deliver posts the text to the configured chat. A missing token or
// chat id is a configuration error, not a silent no-op.
func (t *Telegram) Deliver(ctx context.Context, text string) error {
	if t.token == "" || t.chatID == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(sendMessageRequest{ChatID: t.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("cannot marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("cannot build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("telegram responded %d: %s", resp.StatusCode, string(body))
	}

	t.logger.Debug("telegram message delivered", "chat_id", t.chatID)
	return nil
}
