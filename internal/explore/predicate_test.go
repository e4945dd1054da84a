package explore

import "testing"

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	keys := []string{"question"}
	hit := row("m1", map[string]Value{"question": String("Will BTC hit $100k?")})
	miss := row("m2", map[string]Value{"question": String("Fed rate cut")})

	if !Matches(hit, "btc", nil, keys) {
		t.Error("expected \"btc\" to match \"Will BTC hit $100k?\"")
	}
	if Matches(miss, "btc", nil, keys) {
		t.Error("expected \"btc\" not to match \"Fed rate cut\"")
	}
}

func TestSearch_EmptyTermMatchesEverything(t *testing.T) {
	keys := []string{"question"}
	r := row("m1", map[string]Value{"question": String("anything")})

	for _, term := range []string{"", "   "} {
		if !Matches(r, term, nil, keys) {
			t.Errorf("term %q should match every entity", term)
		}
	}
}

func TestSearch_NumericFieldsNeverSubstringMatched(t *testing.T) {
	// Even if a numeric field ends up in the allowlist, its digits must not
	// be searched as text.
	r := row("o1", map[string]Value{"price": Number(0.42)})
	if Matches(r, "42", nil, []string{"price"}) {
		t.Error("numeric field matched a substring search")
	}
}

func TestFacets_ExactMatchANDAcrossKeys(t *testing.T) {
	r := orderRow("o1", "btc-100k", "YES", "open", 0.42)

	tests := []struct {
		name   string
		facets map[string]string
		want   bool
	}{
		{"no facets", nil, true},
		{"one matching", map[string]string{"side": "YES"}, true},
		{"both matching", map[string]string{"side": "YES", "status": "open"}, true},
		{"one mismatched", map[string]string{"side": "YES", "status": "filled"}, false},
		{"partial value is not a match", map[string]string{"side": "YE"}, false},
		{"empty value is inactive", map[string]string{"side": ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(r, "", tt.facets, nil); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_SubsetSatisfiesAllPredicates(t *testing.T) {
	rows := []testRow{
		orderRow("o1", "btc-100k", "YES", "open", 0.42),
		orderRow("o2", "btc-100k", "NO", "open", 0.58),
		orderRow("o3", "eth-flip", "YES", "filled", 0.30),
		orderRow("o4", "btc-100k", "YES", "filled", 0.44),
	}
	facets := map[string]string{"side": "YES"}

	got := Filter(rows, "btc", facets, []string{"market"})

	if !sameIDs(ids(got), "o1", "o4") {
		t.Fatalf("filtered ids = %v, want [o1 o4]", ids(got))
	}
	for _, r := range got {
		if r.Field("side").Str() != "YES" {
			t.Errorf("row %s violates the side facet", r.id)
		}
	}
}

func TestFilter_PreservesInputOrder(t *testing.T) {
	rows := []testRow{
		orderRow("b", "x", "YES", "open", 1),
		orderRow("a", "x", "YES", "open", 2),
		orderRow("c", "x", "YES", "open", 3),
	}
	got := Filter(rows, "", nil, nil)
	if !sameIDs(ids(got), "b", "a", "c") {
		t.Fatalf("filter reordered rows: %v", ids(got))
	}
}
