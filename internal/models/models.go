// ABOUTME: Domain models for the delivery pipeline: per-feed run counters and
// ABOUTME: persisted delivery records used by the dedup store

package models

import "time"

// DeliveryRecord is one row of the dedup ledger: a URL that has been
// delivered (or reserved for delivery) and when.
type DeliveryRecord struct {
	URL       string
	Delivered time.Time
}

// DuplicateEntry captures one skipped-as-duplicate entry observed during a
// run, for the summary detail table.
type DuplicateEntry struct {
	URL       string
	Delivered time.Time
	Cause     string
}

// FeedStats accumulates per-feed counters over a single run.
type FeedStats struct {
	FeedName   string
	Available  int
	Selected   int
	New        int
	Duplicate  int
	Posted     int
	Failed     int
	Duplicates []DuplicateEntry
}
