// ABOUTME: Discord embed construction from feed entries
// ABOUTME: Strips HTML, bounds field lengths per Discord limits, derives a per-feed color

package discord

import (
	"hash/fnv"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/KS1019/my-discord-bot/internal/parse"
)

// Discord embed field limits.
const (
	maxTitleLen       = 256
	maxDescriptionLen = 300
	maxAuthorLen      = 256
	maxFooterLen      = 2048
)

const fallbackTitle = "Untitled"

var stripPolicy = bluemonday.StrictPolicy()

// Embed is the Discord embed object posted for one feed entry.
type Embed struct {
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
}

// EmbedFooter carries the feed title under the entry.
type EmbedFooter struct {
	Text string `json:"text"`
}

// EmbedAuthor names the entry author when the feed provides one.
type EmbedAuthor struct {
	Name string `json:"name"`
}

// BuildEmbed converts a feed entry into an embed. Pure function of its
// inputs; unparseable or absent optional fields are omitted silently.
func BuildEmbed(entry parse.Entry, feedTitle string, color int) Embed {
	title := entry.Title
	if title == "" {
		title = fallbackTitle
	}

	embed := Embed{
		Title:       truncate(title, maxTitleLen),
		URL:         entry.Link,
		Description: truncate(stripHTML(entry.Summary), maxDescriptionLen),
		Color:       color,
		Footer:      &EmbedFooter{Text: truncate(feedTitle, maxFooterLen)},
	}

	if entry.PublishedAt != nil {
		embed.Timestamp = entry.PublishedAt.UTC().Format(time.RFC3339)
	}

	if entry.Author != "" {
		embed.Author = &EmbedAuthor{Name: truncate(entry.Author, maxAuthorLen)}
	}

	return embed
}

// TitleColor derives a stable 24-bit color from a feed title, so all
// entries of one feed share a color within a run.
func TitleColor(feedTitle string) int {
	h := fnv.New32a()
	h.Write([]byte(feedTitle))
	return int(h.Sum32() & 0xFFFFFF)
}

// stripHTML removes markup tags and unescapes HTML entities.
func stripHTML(text string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(text)))
}

// truncate bounds s to max runes without splitting a rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
