package explore

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Sort names the active sort column and direction. Exactly one column is
// active at a time; the zero Sort means "leave input order alone".
type Sort struct {
	Key       string
	Direction Direction
}

// SortBy stable-sorts items by the named field. Ties keep their prior
// relative order, so repeated sorts are reproducible. An empty or unknown
// key leaves the order unchanged (unknown fields read as null on every
// entity, which compares equal everywhere).
//
// The sort key is extracted once per element before sorting, so synthetic
// fields are computed once per entity rather than at every comparison.
func SortBy[E Entity](items []E, s Sort) {
	if s.Key == "" || len(items) < 2 {
		return
	}

	keys := make([]Value, len(items))
	for i, it := range items {
		keys[i] = it.Field(s.Key)
	}

	cl := collate.New(language.Und)
	sign := 1
	if s.Direction == Descending {
		sign = -1
	}

	// Sort a permutation rather than items directly: keys is indexed by the
	// original positions, so swapping items under the comparator would
	// desynchronize the two slices.
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return sign*compareValues(keys[idx[i]], keys[idx[j]], cl) < 0
	})

	sorted := make([]E, len(items))
	for i, from := range idx {
		sorted[i] = items[from]
	}
	copy(items, sorted)
}

// compareValues orders two field values: numbers by difference, RFC 3339
// strings by epoch, other strings by locale-aware collation. Nulls sort
// before everything. Mixed kinds fall back to comparing display forms.
func compareValues(a, b Value, cl *collate.Collator) int {
	switch {
	case a.IsNull() && b.IsNull():
		return 0
	case a.IsNull():
		return -1
	case b.IsNull():
		return 1
	}

	if a.Kind() == KindNumber && b.Kind() == KindNumber {
		switch {
		case a.Num() < b.Num():
			return -1
		case a.Num() > b.Num():
			return 1
		default:
			return 0
		}
	}

	if a.Kind() == KindBool && b.Kind() == KindBool {
		switch {
		case !a.Truth() && b.Truth():
			return -1
		case a.Truth() && !b.Truth():
			return 1
		default:
			return 0
		}
	}

	if a.Kind() == KindString && b.Kind() == KindString {
		ta, errA := time.Parse(time.RFC3339, a.Str())
		tb, errB := time.Parse(time.RFC3339, b.Str())
		if errA == nil && errB == nil {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			default:
				return 0
			}
		}
		return cl.CompareString(a.Str(), b.Str())
	}

	return cl.CompareString(a.Display(), b.Display())
}

// SortableKeys reports the sortable column keys in declaration order. The
// interactive view cycles through these.
func (s Schema) SortableKeys() []string {
	var keys []string
	for _, c := range s.Columns {
		if c.Sortable {
			keys = append(keys, c.Key)
		}
	}
	return keys
}
