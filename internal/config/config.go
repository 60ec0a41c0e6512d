// ABOUTME: Run configuration: operating mode, entry budget, webhook target, feed list
// ABOUTME: Everything is validated once, before any feed is touched

package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Mode selects diagnostic vs live behavior. Values match the original
// MODE environment contract: 1=development, 2=production.
type Mode int

const (
	// Development logs would-be embeds instead of posting and dumps the
	// store at the end of the run.
	Development Mode = 1
	// Production posts to the webhook and emits the CI summary.
	Production Mode = 2
)

// DefaultMaxEntries bounds the per-feed sample when MAX_ENTRIES_PER_RSS is
// not set.
const DefaultMaxEntries = 5

const webhookPrefix = "https://discord.com/api/webhooks/"

// Config is the full, explicit configuration for one run.
type Config struct {
	Mode       Mode
	MaxEntries int
	LinksFile  string
	WebhookURL string
	DBPath     string
	FeedURLs   []string
}

// ParseMode parses a MODE value. Empty input defaults to production.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return Production, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("mode must be an integer (1=development, 2=production), got: %s", s)
	}
	m := Mode(v)
	if m != Development && m != Production {
		return 0, fmt.Errorf("mode must be 1 (development) or 2 (production), got: %d", v)
	}
	return m, nil
}

// Validate checks every option and the loaded feed list. It must pass
// before the store opens or any feed is processed.
func (c *Config) Validate() error {
	if c.Mode != Development && c.Mode != Production {
		return fmt.Errorf("invalid mode: %d", c.Mode)
	}
	if c.MaxEntries <= 0 {
		return fmt.Errorf("max entries per feed must be greater than 0, got: %d", c.MaxEntries)
	}
	if len(c.FeedURLs) == 0 {
		return fmt.Errorf("no RSS links found in %s", c.LinksFile)
	}
	if c.Mode == Production && !strings.HasPrefix(c.WebhookURL, webhookPrefix) {
		return fmt.Errorf("webhook url must start with %s", webhookPrefix)
	}
	return nil
}

// ReadLinks reads a newline-delimited feed list, skipping blank lines and
// lines starting with '#'.
func ReadLinks(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open links file: %w", err)
	}
	defer f.Close()

	var links []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		links = append(links, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read links file: %w", err)
	}
	return links, nil
}
