// ABOUTME: Per-feed delivery pipeline: fetch, sample, reserve, build, deliver
// ABOUTME: Reservations are compensated (released) when delivery fails so entries retry next run

package pipeline

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/KS1019/my-discord-bot/internal/discord"
	"github.com/KS1019/my-discord-bot/internal/models"
	"github.com/KS1019/my-discord-bot/internal/parse"
	"github.com/KS1019/my-discord-bot/internal/sample"
)

// cooldown is the fixed pause after every delivery attempt, to stay ahead
// of destination-side rate limits.
const cooldown = time.Second

// DedupStore is the persistence contract the pipeline needs: claim a url
// before delivery, release the claim when delivery fails.
type DedupStore interface {
	TryReserve(url string, now time.Time) (bool, error)
	Release(url string) error
}

// Fetcher downloads a feed document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Deliverer posts one embed to the destination.
type Deliverer interface {
	Send(ctx context.Context, embed discord.Embed) (discord.Outcome, error)
}

// Pipeline processes feeds strictly sequentially: one feed at a time, one
// entry at a time. Each entry's reserve/deliver/commit-or-release sequence
// completes before the next entry starts, so interrupting the process never
// leaves a reservation without a delivery attempt.
type Pipeline struct {
	store   DedupStore
	fetcher Fetcher
	sampler *sample.Sampler
	webhook Deliverer

	dryRun     bool
	maxEntries int

	sleep func(time.Duration)
	now   func() time.Time
}

// New assembles a Pipeline. dryRun skips the webhook call and logs the
// would-be embed instead; maxEntries bounds the per-feed sample and must be
// validated as positive by the caller.
func New(store DedupStore, fetcher Fetcher, sampler *sample.Sampler, webhook Deliverer, dryRun bool, maxEntries int) *Pipeline {
	return &Pipeline{
		store:      store,
		fetcher:    fetcher,
		sampler:    sampler,
		webhook:    webhook,
		dryRun:     dryRun,
		maxEntries: maxEntries,
		sleep:      time.Sleep,
		now:        time.Now,
	}
}

// Run processes every feed url in order and returns per-feed stats. Feed
// and entry failures are absorbed into the stats; they never abort the run.
// onFeed, when non-nil, is called after each feed completes.
func (p *Pipeline) Run(ctx context.Context, feedURLs []string, onFeed func(models.FeedStats)) []models.FeedStats {
	all := make([]models.FeedStats, 0, len(feedURLs))
	for _, feedURL := range feedURLs {
		stats := p.ProcessFeed(ctx, feedURL)
		all = append(all, stats)
		if onFeed != nil {
			onFeed(stats)
		}
	}
	return all
}

// ProcessFeed runs the full pipeline for one feed.
func (p *Pipeline) ProcessFeed(ctx context.Context, feedURL string) models.FeedStats {
	stats := models.FeedStats{FeedName: feedURL}

	feed, err := p.fetchAndParse(ctx, feedURL)
	if err != nil {
		log.Printf("[WARN] failed to parse feed %s: %v", feedURL, err)
		return stats
	}
	if feed.Title != "" {
		stats.FeedName = feed.Title
	}

	stats.Available = len(feed.Entries)
	if stats.Available == 0 {
		log.Printf("[INFO] no entries in feed: %s", feedURL)
		return stats
	}

	selected := p.sampler.Pick(feed.Entries, p.maxEntries)
	stats.Selected = len(selected)

	color := discord.TitleColor(stats.FeedName)
	for _, entry := range selected {
		p.processEntry(ctx, entry, &stats, color)
	}

	return stats
}

func (p *Pipeline) fetchAndParse(ctx context.Context, feedURL string) (*parse.Feed, error) {
	body, err := p.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	return parse.Parse(body)
}

// processEntry runs the reserve -> deliver -> commit-or-release sequence
// for one entry.
func (p *Pipeline) processEntry(ctx context.Context, entry parse.Entry, stats *models.FeedStats, color int) {
	if entry.Link == "" {
		log.Printf("[WARN] skipping entry with no link in feed: %s", stats.FeedName)
		return
	}

	now := p.now()
	inserted, err := p.store.TryReserve(entry.Link, now)
	if err != nil {
		log.Printf("[ERROR] failed to reserve %s: %v", entry.Link, err)
		stats.Failed++
		if relErr := p.store.Release(entry.Link); relErr != nil {
			log.Printf("[ERROR] failed to release %s: %v", entry.Link, relErr)
		}
		return
	}

	if !inserted {
		stats.Duplicate++
		stats.Duplicates = append(stats.Duplicates, models.DuplicateEntry{
			URL:       entry.Link,
			Delivered: now,
			Cause:     "duplicate",
		})
		log.Printf("[DEBUG] duplicate entry: %s", entry.Link)
		return
	}

	stats.New++
	embed := discord.BuildEmbed(entry, stats.FeedName, color)

	if p.dryRun {
		data, _ := json.Marshal(embed)
		log.Printf("[INFO] would post embed: %s", data)
		return
	}

	outcome, err := p.webhook.Send(ctx, embed)
	switch outcome {
	case discord.Posted, discord.RateLimitedThenPosted:
		stats.Posted++
	case discord.Failed:
		log.Printf("[ERROR] failed to post entry %s: %v", entry.Link, err)
		stats.Failed++
		// compensate: drop the reservation so the entry retries next run
		if relErr := p.store.Release(entry.Link); relErr != nil {
			log.Printf("[ERROR] failed to release %s: %v", entry.Link, relErr)
		}
	}

	p.sleep(cooldown)
}
