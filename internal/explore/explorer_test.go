package explore

import (
	"fmt"
	"testing"
)

// thirtyOrders builds 30 orders of which 12 have side=YES.
func thirtyOrders() []testRow {
	rows := make([]testRow, 0, 30)
	for i := 0; i < 30; i++ {
		side := "NO"
		if i < 12 {
			side = "YES"
		}
		rows = append(rows, orderRow(fmt.Sprintf("o%02d", i), "btc-100k", side, "open", 0.5))
	}
	return rows
}

func TestExplorer_FacetPagination(t *testing.T) {
	// 30 orders, pageSize 10, side=YES matches 12: page 1 has 10 rows,
	// page 2 has 2, page 3 is unreachable (clamped back to 2).
	x := New[testRow](orderSchema())
	x.SetSort("", Ascending) // keep insertion order
	x.SetRows(thirtyOrders())
	x.SetPageSize(10)
	x.SetFacet("side", "YES")

	v := x.View()
	if v.TotalItems != 12 || v.TotalPages != 2 {
		t.Fatalf("TotalItems=%d TotalPages=%d, want 12 and 2", v.TotalItems, v.TotalPages)
	}
	if len(v.Rows) != 10 || v.PageNumber != 1 {
		t.Fatalf("page 1: %d rows, number %d", len(v.Rows), v.PageNumber)
	}

	x.SetPage(2)
	v = x.View()
	if len(v.Rows) != 2 || v.PageNumber != 2 {
		t.Fatalf("page 2: %d rows, number %d", len(v.Rows), v.PageNumber)
	}

	x.SetPage(3)
	v = x.View()
	if v.PageNumber != 2 {
		t.Fatalf("page 3 should clamp to 2, got %d", v.PageNumber)
	}
	if len(v.Rows) != 2 {
		t.Fatalf("clamped page has %d rows, want 2", len(v.Rows))
	}
}

func TestExplorer_SearchResetsPage(t *testing.T) {
	x := New[testRow](orderSchema())
	x.SetRows(thirtyOrders())
	x.SetPage(3)

	x.SetSearch("btc")
	if x.Page().Number != 1 {
		t.Fatalf("search did not reset page: %d", x.Page().Number)
	}
}

func TestExplorer_FacetResetsPage(t *testing.T) {
	x := New[testRow](orderSchema())
	x.SetRows(thirtyOrders())
	x.SetPage(2)

	x.SetFacet("side", "NO")
	if x.Page().Number != 1 {
		t.Fatalf("facet change did not reset page: %d", x.Page().Number)
	}

	x.SetPage(2)
	x.SetFacet("side", "") // clearing is also a filter change
	if x.Page().Number != 1 {
		t.Fatalf("facet clear did not reset page: %d", x.Page().Number)
	}
}

func TestExplorer_PageSizeResetsPage(t *testing.T) {
	x := New[testRow](orderSchema())
	x.SetRows(thirtyOrders())
	x.SetPage(3)

	x.SetPageSize(5)
	if x.Page().Number != 1 || x.Page().Size != 5 {
		t.Fatalf("page state after SetPageSize: %+v", x.Page())
	}

	x.SetPage(2)
	x.SetPageSize(0) // ignored
	if x.Page().Size != 5 || x.Page().Number != 2 {
		t.Fatalf("non-positive size should be a no-op: %+v", x.Page())
	}
}

func TestExplorer_SortPreservesPageAndFilters(t *testing.T) {
	x := New[testRow](orderSchema())
	x.SetRows(thirtyOrders())
	x.SetSearch("btc")
	x.SetFacet("side", "NO")
	x.SetPage(2)

	x.SetSort("price", Descending)

	if x.Page().Number != 2 {
		t.Fatalf("sort reset the page to %d", x.Page().Number)
	}
	if x.Search() != "btc" {
		t.Fatalf("sort touched the search term: %q", x.Search())
	}
	if v, ok := x.FacetValue("side"); !ok || v != "NO" {
		t.Fatalf("sort touched the facet: %q %v", v, ok)
	}
}

func TestExplorer_PageChangeLeavesFiltersAlone(t *testing.T) {
	x := New[testRow](orderSchema())
	x.SetRows(thirtyOrders())
	x.SetSearch("btc")
	x.SetFacet("side", "NO")
	x.SetSort("price", Ascending)

	x.SetPage(2)

	if x.Search() != "btc" {
		t.Fatalf("page change touched search: %q", x.Search())
	}
	if v, _ := x.FacetValue("side"); v != "NO" {
		t.Fatalf("page change touched facet: %q", v)
	}
	if x.Sort() != (Sort{Key: "price", Direction: Ascending}) {
		t.Fatalf("page change touched sort: %+v", x.Sort())
	}
}

func TestExplorer_UnknownFacetKeyIsSilentNoOp(t *testing.T) {
	x := New[testRow](orderSchema())
	x.SetRows(thirtyOrders())
	x.SetPage(2)

	x.SetFacet("nonsense", "whatever")

	if _, ok := x.FacetValue("nonsense"); ok {
		t.Fatal("unknown facet was stored")
	}
	if x.Page().Number != 2 {
		t.Fatal("unknown facet reset the page")
	}
	if got := x.View().TotalItems; got != 30 {
		t.Fatalf("unknown facet filtered rows: %d", got)
	}
}

func TestExplorer_RefetchShrinkClampsPage(t *testing.T) {
	x := New[testRow](orderSchema())
	x.SetRows(thirtyOrders())
	x.SetPage(3)

	// A refresh returns a smaller collection; the page may not dangle.
	x.SetRows(thirtyOrders()[:7])

	if x.Page().Number != 1 {
		t.Fatalf("page after shrink = %d, want 1", x.Page().Number)
	}
	v := x.View()
	if v.TotalItems != 7 || v.TotalPages != 1 {
		t.Fatalf("view after shrink: %+v", v)
	}
}

func TestExplorer_PageNumberAlwaysInRange(t *testing.T) {
	x := New[testRow](orderSchema())
	x.SetRows(thirtyOrders())

	transitions := []func(){
		func() { x.SetPage(99) },
		func() { x.SetSearch("no-such-market") },
		func() { x.SetFacet("status", "filled") },
		func() { x.SetPageSize(7) },
		func() { x.SetRows(nil) },
		func() { x.ClearFilters() },
	}
	for i, tr := range transitions {
		tr()
		v := x.View()
		if v.PageNumber < 1 || v.PageNumber > v.TotalPages {
			t.Fatalf("transition %d left page %d of %d", i, v.PageNumber, v.TotalPages)
		}
		if len(v.Rows) > v.PageSize {
			t.Fatalf("transition %d: visible %d > page size %d", i, len(v.Rows), v.PageSize)
		}
	}
}

func TestExplorer_ToggleSort(t *testing.T) {
	x := New[testRow](orderSchema())
	x.SetRows(priceRows())

	x.ToggleSort("price")
	if x.Sort() != (Sort{Key: "price", Direction: Ascending}) {
		t.Fatalf("first toggle: %+v", x.Sort())
	}
	x.ToggleSort("price")
	if x.Sort().Direction != Descending {
		t.Fatalf("second toggle: %+v", x.Sort())
	}

	before := x.Sort()
	x.ToggleSort("total") // display-only column
	x.ToggleSort("bogus")
	if x.Sort() != before {
		t.Fatalf("unsortable column changed sort: %+v", x.Sort())
	}
}

func TestExplorer_ViewIsSubsetOfRaw(t *testing.T) {
	raw := thirtyOrders()
	x := New[testRow](orderSchema())
	x.SetRows(raw)
	x.SetSearch("btc")
	x.SetFacet("side", "YES")

	known := make(map[string]bool, len(raw))
	for _, r := range raw {
		known[r.id] = true
	}
	for _, r := range x.View().Rows {
		if !known[r.id] {
			t.Fatalf("visible row %s not in the raw collection", r.id)
		}
	}
}

func TestExplorer_DefaultSortFromSchema(t *testing.T) {
	x := New[testRow](orderSchema())
	want := Sort{Key: "created_at", Direction: Descending}
	if x.Sort() != want {
		t.Fatalf("default sort = %+v, want %+v", x.Sort(), want)
	}
}
