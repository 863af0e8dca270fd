package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// DiscordNotifier sends messages via a Discord webhook. Webhooks are
// one-way: there is no inbound command channel.
type DiscordNotifier struct {
	WebhookURL string
	Username   string
	Client     *http.Client
}

// NewDiscordNotifier creates a notifier with optional proxy support.
func NewDiscordNotifier(webhookURL, username, proxyURL string) *DiscordNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if username == "" {
		username = "SignalSentry"
	}
	return &DiscordNotifier{
		WebhookURL: webhookURL,
		Username:   username,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// Send posts a single embed to the webhook.
func (d *DiscordNotifier) Send(title, description string, color int) error {
	payload := map[string]interface{}{
		"username": d.Username,
		"embeds": []discordEmbed{{
			Title:       title,
			Description: description,
			Color:       color,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := d.Client.Post(d.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()
	// Discord answers 204 No Content on success
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("discord webhook error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendWithRetry sends an embed with exponential backoff retry.
func (d *DiscordNotifier) SendWithRetry(ctx context.Context, title, description string, color int, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := d.Send(title, description, color); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] Discord send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// SendError posts a red error embed, best effort.
func (d *DiscordNotifier) SendError(ctx context.Context, errType, message string) {
	desc := fmt.Sprintf("**%s**\n%s", errType, message)
	if err := d.SendWithRetry(ctx, "⚠️ SignalSentry error", desc, colorError, 2); err != nil {
		log.Printf("[ERROR] send error notification: %v", err)
	}
}
