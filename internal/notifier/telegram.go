package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"StockSentinel/internal/common"
)

// DefaultAPIBase is the Telegram Bot API host.
const DefaultAPIBase = "https://api.telegram.org"

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	Client   *http.Client

	apiBase    string
	pollClient *http.Client
	backoff    time.Duration
	logger     *common.Logger
}

// Option configures a TelegramNotifier.
type Option func(*TelegramNotifier)

// WithAPIBase points the notifier at another Bot API host.
func WithAPIBase(apiBase string) Option {
	return func(t *TelegramNotifier) {
		t.apiBase = strings.TrimRight(apiBase, "/")
	}
}

// WithProxy routes Bot API traffic through proxyURL.
func WithProxy(proxyURL string) Option {
	return func(t *TelegramNotifier) {
		if proxyURL == "" {
			return
		}
		if u, err := url.Parse(proxyURL); err == nil {
			transport := &http.Transport{Proxy: http.ProxyURL(u)}
			t.Client.Transport = transport
			t.pollClient.Transport = transport
		}
	}
}

// WithRetryBackoff sets the first retry delay; it doubles on each attempt.
func WithRetryBackoff(d time.Duration) Option {
	return func(t *TelegramNotifier) { t.backoff = d }
}

func WithLogger(logger *common.Logger) Option {
	return func(t *TelegramNotifier) { t.logger = logger }
}

// NewTelegramNotifier creates a notifier for one chat.
func NewTelegramNotifier(botToken, chatID string, opts ...Option) *TelegramNotifier {
	t := &TelegramNotifier{
		BotToken:   botToken,
		ChatID:     chatID,
		Client:     &http.Client{Timeout: 30 * time.Second},
		apiBase:    DefaultAPIBase,
		pollClient: &http.Client{Timeout: 35 * time.Second},
		backoff:    time.Second,
		logger:     common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *TelegramNotifier) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.apiBase, t.BotToken, method)
}

// Send sends an HTML message to the configured chat.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	payload := map[string]string{
		"chat_id":    t.ChatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.methodURL("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := t.Send(ctx, text)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == maxRetries {
			break
		}
		backoff := t.backoff << uint(i)
		t.logger.Warn().Err(err).Int("attempt", i+1).Dur("backoff", backoff).Msg("telegram send failed")
		if !sleepCtx(ctx, backoff) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
