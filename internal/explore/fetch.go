package explore

import (
	"context"

	"github.com/moltstreet/mstctl/internal/util"
)

// FetchFunc retrieves a bounded collection from the exchange, applying only
// the coarse server-side filter baked into the closure (typically one status
// enum and a generous limit). Everything finer is refined client-side.
type FetchFunc[E Entity] func(ctx context.Context) ([]E, error)

// Token identifies one issued fetch. Tokens are ULIDs, so later tokens
// compare greater than earlier ones from the same fetcher.
type Token string

// Fetcher owns loading/error state for one screen's collection and discards
// stale responses: when a new fetch is begun before a prior one settles, only
// the most recently issued token's result is honored.
//
// Begin and Settle must run on the UI event loop; Run may run anywhere (it is
// the body of a bubbletea command).
type Fetcher[E Entity] struct {
	fn FetchFunc[E]

	latest  Token
	loading bool
	errMsg  string
	rows    []E
}

// NewFetcher wraps a fetch function.
func NewFetcher[E Entity](fn FetchFunc[E]) *Fetcher[E] {
	return &Fetcher[E]{fn: fn}
}

// Begin issues a new fetch token and raises the loading flag. Any
// previously issued token becomes stale immediately.
func (f *Fetcher[E]) Begin() Token {
	tok := Token(util.NewULID())
	f.latest = tok
	f.loading = true
	return tok
}

// Run performs the fetch. It does not touch fetcher state; pair the outcome
// with its token and pass both to Settle on the event loop.
func (f *Fetcher[E]) Run(ctx context.Context) ([]E, error) {
	return f.fn(ctx)
}

// Settle records a fetch outcome. Stale tokens are discarded and reported
// false; the loading flag stays up because a newer fetch is still pending.
// On failure the collection is cleared and the error message kept for the
// screen banner.
func (f *Fetcher[E]) Settle(tok Token, rows []E, err error) bool {
	if tok != f.latest {
		return false
	}
	f.loading = false
	if err != nil {
		f.errMsg = err.Error()
		f.rows = nil
		return true
	}
	f.errMsg = ""
	f.rows = rows
	return true
}

// Loading reports whether a fetch is in flight.
func (f *Fetcher[E]) Loading() bool { return f.loading }

// Err returns the human-readable message of the last failed fetch, or ""
// after a success.
func (f *Fetcher[E]) Err() string { return f.errMsg }

// Rows returns the last successfully fetched collection.
func (f *Fetcher[E]) Rows() []E { return f.rows }
