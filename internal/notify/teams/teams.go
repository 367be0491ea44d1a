// Package teams delivers chat messages to Microsoft Teams incoming webhooks.
package teams

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config captures the subset of Teams webhook behaviour we need. WebhookURLs
// maps channel identifiers to their incoming webhook; DefaultWebhookURL
// receives messages for channels with no explicit mapping.
type Config struct {
	WebhookURLs       map[string]string
	DefaultWebhookURL string
	Timeout           time.Duration
	RetryLimit        int
	Client            *http.Client
}

// Client posts messages to Teams incoming webhooks.
type Client struct {
	webhookURLs       map[string]string
	defaultWebhookURL string
	retryLimit        int
	client            *http.Client
}

// NewClient builds a Teams webhook client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	defaultURL := strings.TrimSpace(cfg.DefaultWebhookURL)

	urls := make(map[string]string, len(cfg.WebhookURLs))
	for channel, u := range cfg.WebhookURLs {
		channel = strings.TrimSpace(channel)
		u = strings.TrimSpace(u)
		if channel == "" || u == "" {
			continue
		}
		urls[channel] = u
	}

	if defaultURL == "" && len(urls) == 0 {
		return nil, errors.New("at least one teams webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		webhookURLs:       urls,
		defaultWebhookURL: defaultURL,
		retryLimit:        retries,
		client:            hc,
	}, nil
}

// Send posts a message to the webhook mapped to the channel, falling back to
// the default webhook for unmapped channels.
func (c *Client) Send(ctx context.Context, channel, message string) error {
	webhookURL := c.resolveWebhook(channel)
	if webhookURL == "" {
		return fmt.Errorf("no teams webhook configured for channel %q", channel)
	}

	body, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return fmt.Errorf("encode teams payload: %w", err)
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		err = c.post(ctx, webhookURL, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < attempts-1 {
			// Simple linear backoff to avoid thundering retries.
			delay := time.Duration(attempt+1) * 200 * time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	return lastErr
}

func (c *Client) resolveWebhook(channel string) string {
	if u, ok := c.webhookURLs[strings.TrimSpace(channel)]; ok {
		return u
	}
	return c.defaultWebhookURL
}

func (c *Client) post(ctx context.Context, webhookURL string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create teams request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("teams request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(resp)
	}

	return drainSuccess(resp)
}

func drainSuccess(resp *http.Response) error {
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("drain teams response body: %w", err),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("drain teams response body: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}
	return nil
}

func (c *Client) handleErrorResponse(resp *http.Response) error {
	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("read teams error response: %w", readErr),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("read teams error response: %w", readErr)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return fmt.Errorf("teams webhook %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
}
