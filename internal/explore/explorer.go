package explore

const defaultPageSize = 10

// Explorer is the view state machine over one screen's collection: search
// term, facet values, sort state, and page state. Every transition is
// synchronous; View re-derives the filter → sort → paginate pipeline from the
// raw collection on every call, so there is no cached intermediate state to
// invalidate.
type Explorer[E Entity] struct {
	schema Schema
	rows   []E
	search string
	facets map[string]string
	sort   Sort
	page   Page
}

// New creates an explorer for a screen schema. Sort and page size come from
// the schema's defaults.
func New[E Entity](schema Schema) *Explorer[E] {
	size := schema.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	return &Explorer[E]{
		schema: schema,
		facets: make(map[string]string),
		sort:   schema.DefaultSort,
		page:   Page{Number: 1, Size: size},
	}
}

// Schema returns the screen configuration the explorer was built with.
func (x *Explorer[E]) Schema() Schema { return x.schema }

// SetRows replaces the raw collection wholesale (full refresh, not an
// incremental patch). The page number is clamped so it never dangles past the
// new last page.
func (x *Explorer[E]) SetRows(rows []E) {
	x.rows = rows
	x.page.Number = ClampPage(x.page.Number, x.filteredCount(), x.page.Size)
}

// Rows returns the raw, unfiltered collection.
func (x *Explorer[E]) Rows() []E { return x.rows }

// SetSearch updates the free-text search term and resets to page 1.
func (x *Explorer[E]) SetSearch(term string) {
	x.search = term
	x.page.Number = 1
}

// Search returns the current search term.
func (x *Explorer[E]) Search() string { return x.search }

// SetFacet activates a facet value (empty value clears the facet) and resets
// to page 1. An unknown facet key is a silent no-op so a partially
// misconfigured screen stays interactive.
func (x *Explorer[E]) SetFacet(key, value string) {
	if _, ok := x.schema.Facet(key); !ok {
		return
	}
	if value == "" {
		delete(x.facets, key)
	} else {
		x.facets[key] = value
	}
	x.page.Number = 1
}

// FacetValue returns the active value of a facet, if any.
func (x *Explorer[E]) FacetValue(key string) (string, bool) {
	v, ok := x.facets[key]
	return v, ok
}

// ClearFilters drops the search term and every facet, and resets to page 1.
func (x *Explorer[E]) ClearFilters() {
	x.search = ""
	x.facets = make(map[string]string)
	x.page.Number = 1
}

// SetSort updates the sort state. The page number is intentionally preserved:
// sorting reorders the set but does not change membership.
func (x *Explorer[E]) SetSort(key string, dir Direction) {
	x.sort = Sort{Key: key, Direction: dir}
}

// Sort returns the active sort state.
func (x *Explorer[E]) Sort() Sort { return x.sort }

// ToggleSort sorts by the column, flipping direction when it is already the
// active sort column. Non-sortable and unknown columns are ignored.
func (x *Explorer[E]) ToggleSort(key string) {
	col, ok := x.schema.Column(key)
	if !ok || !col.Sortable {
		return
	}
	if x.sort.Key == key {
		x.sort.Direction = x.sort.Direction.Toggle()
		return
	}
	x.sort = Sort{Key: key, Direction: Ascending}
}

// SetPageSize updates the page size and resets to page 1. Non-positive sizes
// are ignored.
func (x *Explorer[E]) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	x.page.Size = size
	x.page.Number = 1
}

// SetPage moves to the given page, clamped to [1, totalPages]. Filters,
// search, and sort are untouched.
func (x *Explorer[E]) SetPage(number int) {
	x.page.Number = ClampPage(number, x.filteredCount(), x.page.Size)
}

// Page returns the current page state.
func (x *Explorer[E]) Page() Page { return x.page }

func (x *Explorer[E]) filteredCount() int {
	n := 0
	for _, r := range x.rows {
		if Matches(r, x.search, x.facets, x.schema.SearchKeys) {
			n++
		}
	}
	return n
}

// View holds one derived, renderable page plus its metadata.
type View[E Entity] struct {
	Rows       []E // the visible page, ≤ PageSize entries
	TotalItems int // size of the filtered set
	TotalPages int // ≥ 1 even when empty
	PageNumber int
	PageSize   int
}

// View runs the full pipeline — filter, stable sort, paginate — against the
// current raw collection and returns the visible page.
func (x *Explorer[E]) View() View[E] {
	filtered := Filter(x.rows, x.search, x.facets, x.schema.SearchKeys)
	SortBy(filtered, x.sort)

	x.page.Number = ClampPage(x.page.Number, len(filtered), x.page.Size)

	return View[E]{
		Rows:       Paginate(filtered, x.page.Number, x.page.Size),
		TotalItems: len(filtered),
		TotalPages: TotalPages(len(filtered), x.page.Size),
		PageNumber: x.page.Number,
		PageSize:   x.page.Size,
	}
}

// Filtered runs filter and sort but skips pagination. The plain and JSON
// printers use this to show the whole refined set at once.
func (x *Explorer[E]) Filtered() []E {
	filtered := Filter(x.rows, x.search, x.facets, x.schema.SearchKeys)
	SortBy(filtered, x.sort)
	return filtered
}
