package explore

import (
	"context"
	"errors"
	"testing"
)

func TestFetcher_SettleStoresRows(t *testing.T) {
	f := NewFetcher(func(ctx context.Context) ([]testRow, error) {
		return []testRow{orderRow("o1", "btc", "YES", "open", 0.5)}, nil
	})

	tok := f.Begin()
	if !f.Loading() {
		t.Fatal("loading flag not raised")
	}

	rows, err := f.Run(context.Background())
	if !f.Settle(tok, rows, err) {
		t.Fatal("fresh token was discarded")
	}
	if f.Loading() {
		t.Fatal("loading flag not cleared")
	}
	if len(f.Rows()) != 1 || f.Err() != "" {
		t.Fatalf("rows=%v err=%q", f.Rows(), f.Err())
	}
}

func TestFetcher_StaleResponseDiscarded(t *testing.T) {
	f := NewFetcher(func(ctx context.Context) ([]testRow, error) { return nil, nil })

	old := f.Begin()
	newer := f.Begin()

	stale := []testRow{orderRow("stale", "x", "YES", "open", 0.1)}
	if f.Settle(old, stale, nil) {
		t.Fatal("stale token was honored")
	}
	if !f.Loading() {
		t.Fatal("loading flag dropped while the newer fetch is still pending")
	}
	if len(f.Rows()) != 0 {
		t.Fatalf("stale rows leaked in: %v", f.Rows())
	}

	fresh := []testRow{orderRow("fresh", "x", "YES", "open", 0.2)}
	if !f.Settle(newer, fresh, nil) {
		t.Fatal("latest token was discarded")
	}
	if len(f.Rows()) != 1 || f.Rows()[0].id != "fresh" {
		t.Fatalf("rows = %v", f.Rows())
	}
}

func TestFetcher_FailureClearsCollection(t *testing.T) {
	f := NewFetcher(func(ctx context.Context) ([]testRow, error) { return nil, nil })

	tok := f.Begin()
	f.Settle(tok, []testRow{orderRow("o1", "x", "YES", "open", 0.5)}, nil)

	tok = f.Begin()
	f.Settle(tok, nil, errors.New("502 bad gateway"))

	if len(f.Rows()) != 0 {
		t.Fatalf("previous collection kept after failure: %v", f.Rows())
	}
	if f.Err() != "502 bad gateway" {
		t.Fatalf("err = %q", f.Err())
	}

	// A later successful fetch clears the banner.
	tok = f.Begin()
	f.Settle(tok, nil, nil)
	if f.Err() != "" {
		t.Fatalf("error survived a successful refresh: %q", f.Err())
	}
}

func TestFetcher_TokensIncrease(t *testing.T) {
	f := NewFetcher(func(ctx context.Context) ([]testRow, error) { return nil, nil })
	a := f.Begin()
	b := f.Begin()
	if !(a < b) {
		t.Fatalf("tokens not increasing: %q then %q", a, b)
	}
}
