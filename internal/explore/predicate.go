package explore

import "strings"

// Matches reports whether an entity passes the active search term and facet
// values. An entity is included iff the lowercased search term is a substring
// of at least one search field's lowercased string form (or the term is
// empty), AND for every active facet the entity's field equals the facet
// value exactly. Facets combine with AND; there is no OR or negation.
func Matches(e Entity, search string, facets map[string]string, searchKeys []string) bool {
	if !matchesSearch(e, search, searchKeys) {
		return false
	}
	for key, want := range facets {
		if want == "" {
			continue
		}
		if e.Field(key).Display() != want {
			return false
		}
	}
	return true
}

func matchesSearch(e Entity, search string, searchKeys []string) bool {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return true
	}
	for _, key := range searchKeys {
		v := e.Field(key)
		if v.Kind() != KindString {
			// Only string fields are substring-matched.
			continue
		}
		if strings.Contains(strings.ToLower(v.Str()), term) {
			return true
		}
	}
	return false
}

// Filter returns the subset of items matching the search term and facets,
// preserving input order.
func Filter[E Entity](items []E, search string, facets map[string]string, searchKeys []string) []E {
	out := make([]E, 0, len(items))
	for _, it := range items {
		if Matches(it, search, facets, searchKeys) {
			out = append(out, it)
		}
	}
	return out
}
