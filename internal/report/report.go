// ABOUTME: Run summary output: markdown tables for CI and a diagnostic store dump
// ABOUTME: Tables cover per-feed counters and the duplicate-entry detail across feeds

package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"

	"github.com/KS1019/my-discord-bot/internal/models"
)

// WriteSummary renders the per-feed counters and duplicate detail as
// markdown tables. Intended for CI step summaries in production runs.
func WriteSummary(w io.Writer, runID string, stats []models.FeedStats) error {
	if _, err := fmt.Fprintf(w, "## RSS Feed Summary\n\nRun `%s`\n\n", runID); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.FeedName,
			strconv.Itoa(s.Available),
			strconv.Itoa(s.Selected),
			strconv.Itoa(s.New),
			strconv.Itoa(s.Duplicate),
			strconv.Itoa(s.Posted),
			strconv.Itoa(s.Failed),
		})
	}

	feeds := tablewriter.NewTable(w, tablewriter.WithRenderer(renderer.NewMarkdown()))
	feeds.Header([]string{"Feed", "Available", "Selected", "New", "Duplicate", "Posted", "Failed"})
	feeds.Bulk(rows)
	if err := feeds.Render(); err != nil {
		return fmt.Errorf("render feed table: %w", err)
	}

	var duplicates []models.DuplicateEntry
	for _, s := range stats {
		duplicates = append(duplicates, s.Duplicates...)
	}
	if len(duplicates) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\n## Duplicate Entries\n\n"); err != nil {
		return fmt.Errorf("write duplicates header: %w", err)
	}

	dupRows := make([][]string, 0, len(duplicates))
	for _, d := range duplicates {
		dupRows = append(dupRows, []string{d.URL, d.Delivered.UTC().Format(time.RFC3339)})
	}

	detail := tablewriter.NewTable(w, tablewriter.WithRenderer(renderer.NewMarkdown()))
	detail.Header([]string{"URL", "Delivered"})
	detail.Bulk(dupRows)
	if err := detail.Render(); err != nil {
		return fmt.Errorf("render duplicates table: %w", err)
	}
	return nil
}

// RecordLister is the store surface the diagnostic dump needs.
type RecordLister interface {
	ListAll() ([]models.DeliveryRecord, error)
}

// DumpStore logs every delivery record, for development-mode inspection.
func DumpStore(st RecordLister) error {
	records, err := st.ListAll()
	if err != nil {
		return fmt.Errorf("dump store: %w", err)
	}

	log.Printf("[INFO] === database contents (%d rows) ===", len(records))
	for _, rec := range records {
		log.Printf("[INFO]   %s %s", rec.URL, rec.Delivered.UTC().Format(time.RFC3339))
	}
	return nil
}
