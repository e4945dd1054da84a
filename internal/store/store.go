// Package store keeps local mstctl state in a SQLite database: snapshots of
// fetched collections (for offline inspection and diffing) and an audit log
// of every row command dispatched to the exchange.
package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/moltstreet/mstctl/internal/util"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps the local SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the database location, honoring MSTCTL_DB.
func DefaultPath() (string, error) {
	if p := os.Getenv("MSTCTL_DB"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "mstctl", "mstctl.db"), nil
}

// Open opens (creating if necessary) the database at path and initializes
// the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Snapshot is one saved collection. Body is canonical indented JSON so two
// snapshots of the same screen diff line by line.
type Snapshot struct {
	ID       string
	Screen   string
	TakenAt  time.Time
	RowCount int
	Body     []byte
}

// SaveSnapshot serializes rows and stores them under a fresh ULID.
func (s *Store) SaveSnapshot(screen string, rowCount int, rows any) (*Snapshot, error) {
	body, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	snap := &Snapshot{
		ID:       util.NewULID(),
		Screen:   screen,
		TakenAt:  time.Now().UTC(),
		RowCount: rowCount,
		Body:     body,
	}

	_, err = s.db.Exec(
		"INSERT INTO snapshots (snapshot_id, screen, taken_at, row_count, body) VALUES (?, ?, ?, ?, ?)",
		snap.ID, snap.Screen, snap.TakenAt.Format(time.RFC3339), snap.RowCount, string(snap.Body),
	)
	if err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	return snap, nil
}

// ListSnapshots returns snapshot metadata (no bodies), newest first.
func (s *Store) ListSnapshots() ([]Snapshot, error) {
	rows, err := s.db.Query(
		"SELECT snapshot_id, screen, taken_at, row_count FROM snapshots ORDER BY taken_at DESC, snapshot_id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var taken string
		if err := rows.Scan(&snap.ID, &snap.Screen, &taken, &snap.RowCount); err != nil {
			return nil, err
		}
		snap.TakenAt, _ = time.Parse(time.RFC3339, taken)
		out = append(out, snap)
	}
	return out, rows.Err()
}

// GetSnapshot loads one snapshot, including its body. The id may be a full
// ULID or a suffix of one (the short form listings display); suffix matches
// resolve to the newest snapshot.
func (s *Store) GetSnapshot(id string) (*Snapshot, error) {
	var row *sql.Row
	if util.ValidateULID(id) {
		row = s.db.QueryRow(
			"SELECT snapshot_id, screen, taken_at, row_count, body FROM snapshots WHERE snapshot_id = ?",
			strings.ToUpper(id),
		)
	} else {
		row = s.db.QueryRow(
			"SELECT snapshot_id, screen, taken_at, row_count, body FROM snapshots WHERE snapshot_id LIKE '%' || ? ORDER BY taken_at DESC LIMIT 1",
			strings.ToUpper(id),
		)
	}

	var snap Snapshot
	var taken, body string
	if err := row.Scan(&snap.ID, &snap.Screen, &taken, &snap.RowCount, &body); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("snapshot %s: %w", id, util.ErrSnapshotMissing)
		}
		return nil, err
	}
	snap.TakenAt, _ = time.Parse(time.RFC3339, taken)
	snap.Body = []byte(body)
	return &snap, nil
}

// CommandEntry is one audited row command.
type CommandEntry struct {
	ID        string
	Kind      string
	RowID     string
	Outcome   string // "ok" or the error message
	CreatedAt time.Time
}

// LogCommand appends a row command outcome to the audit log.
func (s *Store) LogCommand(kind, rowID, outcome string) error {
	_, err := s.db.Exec(
		"INSERT INTO command_log (entry_id, kind, row_id, outcome, created_at) VALUES (?, ?, ?, ?, ?)",
		util.NewULID(), kind, rowID, outcome, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	return nil
}

// ListCommands returns the most recent audit entries, newest first.
func (s *Store) ListCommands(limit int) ([]CommandEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		"SELECT entry_id, kind, row_id, outcome, created_at FROM command_log ORDER BY entry_id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var out []CommandEntry
	for rows.Next() {
		var e CommandEntry
		var created string
		if err := rows.Scan(&e.ID, &e.Kind, &e.RowID, &e.Outcome, &created); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, e)
	}
	return out, rows.Err()
}
