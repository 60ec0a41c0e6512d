// ABOUTME: Discord webhook client posting embeds as JSON
// ABOUTME: Handles 429 responses with a single retry after the server-suggested wait

package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"
)

// Outcome reports how a delivery attempt ended.
type Outcome int

const (
	// Posted means the webhook accepted the embed on the first attempt.
	Posted Outcome = iota
	// RateLimitedThenPosted means the first attempt hit a rate limit and
	// the single retry succeeded.
	RateLimitedThenPosted
	// Failed means the webhook did not accept the embed; the caller rolls
	// back the reservation.
	Failed
)

// defaultRetryAfter backs off 5 seconds when the 429 body is unreadable.
const defaultRetryAfter = 5 * time.Second

// Client posts embeds to a single webhook URL. Stateless between calls.
type Client struct {
	url    string
	client *http.Client
	sleep  func(time.Duration)
}

// NewClient returns a Client for webhookURL with a 10 second post timeout.
func NewClient(webhookURL string) *Client {
	return &Client{
		url:    webhookURL,
		client: &http.Client{Timeout: 10 * time.Second},
		sleep:  time.Sleep,
	}
}

type webhookPayload struct {
	Embeds []Embed `json:"embeds"`
}

// Send posts one embed. On a 429 it waits the server-suggested duration and
// retries exactly once; any non-2xx after that is Failed with the reason.
func (c *Client) Send(ctx context.Context, embed Embed) (Outcome, error) {
	body, err := json.Marshal(webhookPayload{Embeds: []Embed{embed}})
	if err != nil {
		return Failed, fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := c.post(ctx, body)
	if err != nil {
		return Failed, err
	}

	retried := false
	if resp.StatusCode == http.StatusTooManyRequests {
		wait := retryAfter(resp.Body)
		resp.Body.Close()
		log.Printf("[WARN] rate limited, sleeping %s", wait)
		c.sleep(wait)

		retried = true
		resp, err = c.post(ctx, body)
		if err != nil {
			return Failed, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Failed, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	if retried {
		return RateLimitedThenPosted, nil
	}
	return Posted, nil
}

func (c *Client) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post webhook: %w", err)
	}
	return resp, nil
}

// retryAfter reads the retry_after hint (seconds) from a 429 body.
func retryAfter(body io.Reader) time.Duration {
	var hint struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if err := json.NewDecoder(body).Decode(&hint); err != nil || hint.RetryAfter <= 0 {
		return defaultRetryAfter
	}
	return time.Duration(hint.RetryAfter * float64(time.Second))
}
