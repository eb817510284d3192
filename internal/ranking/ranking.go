// Package ranking keeps the high score table in a SQLite file.
package ranking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrInvalidEntry is returned for entries that cannot be ranked.
var ErrInvalidEntry = errors.New("invalid ranking entry")

const schema = `
CREATE TABLE IF NOT EXISTS ranking (
	id        TEXT PRIMARY KEY,
	player    TEXT NOT NULL,
	score     INTEGER NOT NULL,
	lines     INTEGER NOT NULL,
	level     INTEGER NOT NULL,
	played_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS ranking_score ON ranking (score DESC, played_at ASC);
`

// Entry is one finished game.
type Entry struct {
	ID       string
	Player   string
	Score    int
	Lines    int
	Level    int
	PlayedAt time.Time
}

// Store is a ranking table backed by SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the ranking database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open ranking %s: %w", path, err)
	}
	// one writer; sqlite serialises anyway
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create ranking schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert records entry, assigning its id and play time.
func (s *Store) Insert(ctx context.Context, entry Entry) (Entry, error) {
	if entry.Score < 0 || entry.Lines < 0 || entry.Level < 0 {
		return Entry{}, fmt.Errorf("%w: score %d lines %d level %d", ErrInvalidEntry, entry.Score, entry.Lines, entry.Level)
	}
	entry.ID = uuid.NewString()
	entry.PlayedAt = s.now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ranking (id, player, score, lines, level, played_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Player, entry.Score, entry.Lines, entry.Level, entry.PlayedAt.Unix())
	if err != nil {
		return Entry{}, fmt.Errorf("could not insert ranking entry: %w", err)
	}
	return entry, nil
}

// Top returns the n best entries, highest score first. Ties go to the
// earlier game.
func (s *Store) Top(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, score, lines, level, played_at FROM ranking ORDER BY score DESC, played_at ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("could not query ranking: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var entry Entry
		var playedAt int64
		if err := rows.Scan(&entry.ID, &entry.Player, &entry.Score, &entry.Lines, &entry.Level, &playedAt); err != nil {
			return nil, fmt.Errorf("could not read ranking row: %w", err)
		}
		entry.PlayedAt = time.Unix(playedAt, 0).UTC()
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Scores returns just the scores of Top.
func (s *Store) Scores(ctx context.Context, n int) ([]uint64, error) {
	entries, err := s.Top(ctx, n)
	if err != nil {
		return nil, err
	}
	scores := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		scores = append(scores, uint64(entry.Score))
	}
	return scores, nil
}

// Clear deletes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM ranking`); err != nil {
		return fmt.Errorf("could not clear ranking: %w", err)
	}
	return nil
}
