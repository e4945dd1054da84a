package store

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moltstreet/mstctl/internal/util"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "mstctl.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshots_SaveListGet(t *testing.T) {
	s := openTestStore(t)

	rows := []map[string]any{
		{"id": "m1", "question": "Will BTC hit $100k?"},
		{"id": "m2", "question": "Fed rate cut"},
	}
	snap, err := s.SaveSnapshot("markets", len(rows), rows)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if snap.RowCount != 2 || snap.Screen != "markets" {
		t.Fatalf("snapshot = %+v", snap)
	}

	list, err := s.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(list) != 1 || list[0].ID != snap.ID {
		t.Fatalf("list = %+v", list)
	}
	if len(list[0].Body) != 0 {
		t.Fatal("list should not carry bodies")
	}

	got, err := s.GetSnapshot(snap.ID)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if !strings.Contains(string(got.Body), "Will BTC hit $100k?") {
		t.Fatalf("body = %s", got.Body)
	}

	// Short-suffix lookup, as shown in listings.
	short := util.ShortID(snap.ID)
	bySuffix, err := s.GetSnapshot(short)
	if err != nil {
		t.Fatalf("GetSnapshot(%q): %v", short, err)
	}
	if bySuffix.ID != snap.ID {
		t.Fatalf("suffix lookup found %s, want %s", bySuffix.ID, snap.ID)
	}
}

func TestGetSnapshot_Missing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetSnapshot("nope")
	if !errors.Is(err, util.ErrSnapshotMissing) {
		t.Fatalf("err = %v, want ErrSnapshotMissing", err)
	}
}

func TestCommandLog(t *testing.T) {
	s := openTestStore(t)

	if err := s.LogCommand("cancel-order", "o1", "ok"); err != nil {
		t.Fatalf("LogCommand: %v", err)
	}
	if err := s.LogCommand("approve-action", "a1", "API error 409: already reviewed"); err != nil {
		t.Fatalf("LogCommand: %v", err)
	}

	entries, err := s.ListCommands(10)
	if err != nil {
		t.Fatalf("ListCommands: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	// Newest first: ULIDs order by issue time.
	if entries[0].Kind != "approve-action" || entries[1].Kind != "cancel-order" {
		t.Fatalf("order = %s, %s", entries[0].Kind, entries[1].Kind)
	}
	if entries[0].Outcome != "API error 409: already reviewed" {
		t.Fatalf("outcome = %q", entries[0].Outcome)
	}
}
