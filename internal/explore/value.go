// Package explore implements the client-side data exploration engine behind
// every mstctl listing screen. It composes free-text search, single-select
// facet filters, stable type-aware sorting, and fixed-size pagination over an
// in-memory collection fetched from the exchange API, and dispatches row-level
// mutation commands (cancel order, approve/reject/delete pending actions)
// without ever letting the view drift out of range.
//
// The engine knows nothing about markets or orders beyond "has an id" and
// "has named, typed fields"; each screen supplies a Schema describing its
// columns, facets, and searchable fields.
package explore

import (
	"strconv"
	"time"
)

// Kind identifies the type of a field value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a field value: null, string, number, or bool. Timestamps are
// carried as RFC 3339 strings so the sort engine can compare them by epoch.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Int returns a numeric value from an int.
func Int(n int) Value {
	return Number(float64(n))
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Time returns a string value in RFC 3339 form. The zero time maps to null.
func Time(t time.Time) Value {
	if t.IsZero() {
		return Null()
	}
	return String(t.UTC().Format(time.RFC3339))
}

// Kind reports the value's type.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload (empty for non-strings).
func (v Value) Str() string { return v.str }

// Num returns the numeric payload (0 for non-numbers).
func (v Value) Num() float64 { return v.num }

// Truth returns the boolean payload (false for non-bools).
func (v Value) Truth() bool { return v.b }

// Display returns the canonical string form of the value. This is what the
// search predicate matches against and what a column without a formatter
// renders.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Entity is the engine's view of a domain record: a stable unique id plus
// named, typed fields. Unknown field keys must return Null, not panic.
type Entity interface {
	EntityID() string
	Field(key string) Value
}
