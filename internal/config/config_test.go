// ABOUTME: Tests for run configuration parsing and validation
// ABOUTME: Table-driven checks for mode values, entry bounds, webhook urls and link files

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Mode
		wantErr bool
	}{
		{name: "empty defaults to production", input: "", want: Production},
		{name: "development", input: "1", want: Development},
		{name: "production", input: "2", want: Production},
		{name: "out of range", input: "3", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "not a number", input: "prod", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func validConfig() Config {
	return Config{
		Mode:       Production,
		MaxEntries: 5,
		LinksFile:  "rss_links.txt",
		WebhookURL: "https://discord.com/api/webhooks/123/abc",
		DBPath:     "sent_entries.db",
		FeedURLs:   []string{"https://example.com/feed.xml"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid production", mutate: func(c *Config) {}},
		{name: "valid development with arbitrary webhook", mutate: func(c *Config) {
			c.Mode = Development
			c.WebhookURL = "https://localhost:8080/hook"
		}},
		{name: "zero max entries", mutate: func(c *Config) { c.MaxEntries = 0 }, wantErr: true},
		{name: "negative max entries", mutate: func(c *Config) { c.MaxEntries = -3 }, wantErr: true},
		{name: "empty feed list", mutate: func(c *Config) { c.FeedURLs = nil }, wantErr: true},
		{name: "bad webhook in production", mutate: func(c *Config) {
			c.WebhookURL = "https://example.com/not-a-webhook"
		}, wantErr: true},
		{name: "invalid mode", mutate: func(c *Config) { c.Mode = 9 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadLinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rss_links.txt")
	content := "https://a.example.com/feed.xml\n" +
		"\n" +
		"# a comment\n" +
		"  https://b.example.com/feed.xml  \n" +
		"   \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	links, err := ReadLinks(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://a.example.com/feed.xml",
		"https://b.example.com/feed.xml",
	}, links)
}

func TestReadLinksMissingFile(t *testing.T) {
	_, err := ReadLinks(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestReadLinksOnlyComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rss_links.txt")
	require.NoError(t, os.WriteFile(path, []byte("# one\n# two\n"), 0o644))

	links, err := ReadLinks(path)
	require.NoError(t, err)
	assert.Empty(t, links)
}
