// ABOUTME: RSS/Atom feed parsing using gofeed library
// ABOUTME: Converts gofeed.Feed to a simplified Feed structure with the fields the pipeline delivers

package parse

import (
	"time"

	"github.com/mmcdole/gofeed"
)

// Feed is a normalized feed: a title and the entries the pipeline may
// deliver.
type Feed struct {
	Title   string
	Entries []Entry
}

// Entry is one feed item. Link is the entry's identity; everything else is
// optional payload material.
type Entry struct {
	Title       string
	Link        string
	Summary     string
	Author      string
	PublishedAt *time.Time
}

// Parse parses RSS or Atom feed data into a normalized Feed. A parse error
// means no usable entries; partial feeds are not surfaced.
func Parse(data []byte) (*Feed, error) {
	parsed, err := gofeed.NewParser().ParseString(string(data))
	if err != nil {
		return nil, err
	}

	feed := &Feed{
		Title:   parsed.Title,
		Entries: make([]Entry, 0, len(parsed.Items)),
	}

	for _, item := range parsed.Items {
		entry := Entry{
			Title: item.Title,
			Link:  item.Link,
		}

		// Description carries the item summary; Content is the fallback
		if item.Description != "" {
			entry.Summary = item.Description
		} else {
			entry.Summary = item.Content
		}

		if item.Author != nil {
			entry.Author = item.Author.Name
		}

		if item.PublishedParsed != nil {
			entry.PublishedAt = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			entry.PublishedAt = item.UpdatedParsed
		}

		feed.Entries = append(feed.Entries, entry)
	}

	return feed, nil
}
