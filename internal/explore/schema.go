package explore

// Option is one selectable value of a facet.
type Option struct {
	Value string
	Label string
}

// Facet describes a single-select categorical filter with a fixed option set.
// At most one option is active at a time.
type Facet struct {
	Key     string
	Title   string
	Options []Option
}

// Column describes one table column. Key names the entity field a sort on
// this column reads; display-only columns set Sortable to false. Format, when
// set, overrides the value's Display form for rendering (the raw value still
// drives sorting).
type Column struct {
	Key      string
	Title    string
	Sortable bool
	Width    int // layout hint in characters; 0 = derive from content
	Format   func(Value) string
}

// Schema is the static per-screen configuration the engine consumes. The
// engine never mutates it.
type Schema struct {
	Title       string
	Columns     []Column
	Facets      []Facet
	SearchKeys  []string // fields the free-text search matches; string fields only
	DefaultSort Sort
	PageSize    int
}

// Column returns the column with the given key.
func (s Schema) Column(key string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Facet returns the facet with the given key.
func (s Schema) Facet(key string) (Facet, bool) {
	for _, f := range s.Facets {
		if f.Key == key {
			return f, true
		}
	}
	return Facet{}, false
}

// OptionLabel resolves a facet value to its display label, falling back to
// the raw value for options not listed in the schema.
func (f Facet) OptionLabel(value string) string {
	for _, o := range f.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// CellText renders one cell: the column's formatter if present, else the
// value's canonical string form.
func (c Column) CellText(e Entity) string {
	v := e.Field(c.Key)
	if c.Format != nil {
		return c.Format(v)
	}
	return v.Display()
}
