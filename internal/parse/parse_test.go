// ABOUTME: Test suite for RSS/Atom feed parsing functionality
// ABOUTME: Validates field normalization for RSS 2.0 and Atom feeds using inline XML

package parse

import (
	"testing"
	"time"
)

const rss20XML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test RSS Feed</title>
    <link>https://example.com</link>
    <description>A test RSS feed</description>
    <item>
      <title>First Post</title>
      <link>https://example.com/post/1</link>
      <author>john@example.com (John Doe)</author>
      <pubDate>Mon, 02 Jan 2006 15:04:05 UTC</pubDate>
      <description>First post &lt;b&gt;description&lt;/b&gt;</description>
    </item>
    <item>
      <title>Second Post</title>
      <link>https://example.com/post/2</link>
    </item>
  </channel>
</rss>`

const atomXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <link href="https://example.com"/>
  <updated>2006-01-02T15:04:05Z</updated>
  <entry>
    <id>https://example.com/entry/1</id>
    <title>First Entry</title>
    <link href="https://example.com/entry/1"/>
    <author>
      <name>Jane Smith</name>
    </author>
    <published>2006-01-02T15:04:05Z</published>
    <summary>First entry summary</summary>
  </entry>
</feed>`

func TestParseRSS20(t *testing.T) {
	feed, err := Parse([]byte(rss20XML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if feed.Title != "Test RSS Feed" {
		t.Errorf("feed title: got %q", feed.Title)
	}
	if len(feed.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(feed.Entries))
	}

	first := feed.Entries[0]
	if first.Title != "First Post" {
		t.Errorf("entry title: got %q", first.Title)
	}
	if first.Link != "https://example.com/post/1" {
		t.Errorf("entry link: got %q", first.Link)
	}
	if first.Summary == "" {
		t.Error("entry summary should be populated from description")
	}
	if first.PublishedAt == nil {
		t.Fatal("entry published date should be set")
	}
	want := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("published: got %v, want %v", first.PublishedAt, want)
	}

	second := feed.Entries[1]
	if second.PublishedAt != nil {
		t.Errorf("entry without pubDate should have nil published, got %v", second.PublishedAt)
	}
	if second.Author != "" {
		t.Errorf("entry without author should have empty author, got %q", second.Author)
	}
}

func TestParseAtom(t *testing.T) {
	feed, err := Parse([]byte(atomXML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if feed.Title != "Test Atom Feed" {
		t.Errorf("feed title: got %q", feed.Title)
	}
	if len(feed.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(feed.Entries))
	}

	entry := feed.Entries[0]
	if entry.Author != "Jane Smith" {
		t.Errorf("author: got %q", entry.Author)
	}
	if entry.Summary != "First entry summary" {
		t.Errorf("summary: got %q", entry.Summary)
	}
	if entry.PublishedAt == nil {
		t.Error("published date should be set")
	}
}

func TestParseInvalidData(t *testing.T) {
	if _, err := Parse([]byte("definitely not a feed")); err == nil {
		t.Error("expected error for non-feed data")
	}
}
