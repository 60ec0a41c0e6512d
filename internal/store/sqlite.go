// ABOUTME: SQLite dedup store using modernc.org/sqlite (pure Go)
// ABOUTME: Tracks delivered entry URLs with an insert-time uniqueness guarantee

package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/KS1019/my-discord-bot/internal/models"
)

// Store is the persistent ledger of delivered entries. The url primary key
// makes TryReserve atomic: uniqueness is enforced by the insert itself, not
// by a separate existence check.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the dedup database at dbPath and ensures the
// schema exists. Opening an existing database never wipes records.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sent_entries (
			url TEXT PRIMARY KEY,
			delivered TIMESTAMP NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// TryReserve inserts (url, now) if the url is absent. It returns true when
// the row was inserted (the entry is new) and false when the url already
// exists. Each insert is committed as it happens, so a crash mid-run never
// loses completed reservations.
func (s *Store) TryReserve(url string, now time.Time) (bool, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO sent_entries (url, delivered) VALUES (?, ?)`,
		url, now.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("reserve %s: %w", url, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reserve %s: %w", url, err)
	}
	return n == 1, nil
}

// Release deletes the record for url so the entry can be delivered on a
// later run. Releasing an absent url is a no-op.
func (s *Store) Release(url string) error {
	if _, err := s.db.Exec(`DELETE FROM sent_entries WHERE url = ?`, url); err != nil {
		return fmt.Errorf("release %s: %w", url, err)
	}
	return nil
}

// ListAll returns every delivery record, ordered by url.
func (s *Store) ListAll() ([]models.DeliveryRecord, error) {
	rows, err := s.db.Query(`SELECT url, delivered FROM sent_entries ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []models.DeliveryRecord
	for rows.Next() {
		var rec models.DeliveryRecord
		if err := rows.Scan(&rec.URL, &rec.Delivered); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
