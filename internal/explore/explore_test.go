package explore

// testRow is a minimal entity for engine tests: an id plus named fields.
type testRow struct {
	id     string
	fields map[string]Value
}

func (r testRow) EntityID() string { return r.id }

func (r testRow) Field(key string) Value {
	v, ok := r.fields[key]
	if !ok {
		return Null()
	}
	return v
}

func row(id string, kv map[string]Value) testRow {
	return testRow{id: id, fields: kv}
}

func ids(rows []testRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.id
	}
	return out
}

func sameIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func orderSchema() Schema {
	return Schema{
		Title: "orders",
		Columns: []Column{
			{Key: "id", Title: "ID", Sortable: false},
			{Key: "market", Title: "Market", Sortable: true},
			{Key: "side", Title: "Side", Sortable: true},
			{Key: "price", Title: "Price", Sortable: true},
			{Key: "size", Title: "Size", Sortable: true},
			{Key: "status", Title: "Status", Sortable: true},
			{Key: "created_at", Title: "Created", Sortable: true},
			{Key: "total", Title: "Total", Sortable: false},
		},
		Facets: []Facet{
			{Key: "side", Title: "Side", Options: []Option{{Value: "YES", Label: "Yes"}, {Value: "NO", Label: "No"}}},
			{Key: "status", Title: "Status", Options: []Option{
				{Value: "open", Label: "Open"}, {Value: "filled", Label: "Filled"},
			}},
		},
		SearchKeys:  []string{"market", "id"},
		DefaultSort: Sort{Key: "created_at", Direction: Descending},
		PageSize:    10,
	}
}

func orderRow(id, market, side, status string, price float64) testRow {
	return row(id, map[string]Value{
		"id":     String(id),
		"market": String(market),
		"side":   String(side),
		"status": String(status),
		"price":  Number(price),
	})
}
