// Package notify delivers best-effort push notifications to an ntfy-style
// topic endpoint. Delivery is fire-and-forget: callers bound it with a short
// context timeout and drop failures.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Notifier pushes one notification with a title and a body.
type Notifier interface {
	Push(ctx context.Context, title, body string) error
}

// Client publishes to <endpoint>/<topic> with the message text as the body,
// the sender name as the title, and an optional click-through URL.
type Client struct {
	endpoint string
	topic    string
	clickURL string
	client   *http.Client
}

func NewClient(endpoint, topic, clickURL string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		topic:    topic,
		clickURL: clickURL,
		client:   &http.Client{},
	}
}

func (c *Client) Push(ctx context.Context, title, body string) error {

	url := c.endpoint + "/" + c.topic

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}

	req.Header.Set("Title", title)
	if c.clickURL != "" {
		req.Header.Set("X-Click", c.clickURL)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error delivering notification: %w", err)
	}
	defer resp.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return nil
}
