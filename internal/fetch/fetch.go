// ABOUTME: HTTP fetcher for feed documents with timeout and response size cap
// ABOUTME: Returns the raw body; status handling and parsing happen upstream

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxResponseSize caps feed downloads at 10MB.
const MaxResponseSize = 10 * 1024 * 1024

const userAgent = "discord-rss-bot/1.0 (+https://github.com/KS1019/my-discord-bot)"

// Fetcher downloads feed documents over HTTP.
type Fetcher struct {
	client *http.Client
}

// New returns a Fetcher with a 10 second request timeout.
func New() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: 10 * time.Second}}
}

// Fetch retrieves urlStr and returns the response body. Non-200 statuses
// and oversized responses are errors.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize)
	}

	return body, nil
}
