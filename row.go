package tabler

import (
	"reflect"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row is one record of a data source, keyed by field name.
type Row interface {
	// Fields returns the field names in display order.
	Fields() []string
	// Field returns the value of the named field and whether it exists.
	Field(name string) (any, bool)
}

// IsEmpty reports whether row is nil or has no fields.
func IsEmpty(row Row) bool {
	return row == nil || len(row.Fields()) == 0
}

// Record is an insertion-ordered row. The zero value is an empty row.
type Record struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewRecord builds a record from alternating name/value arguments:
//
//	tabler.NewRecord("id", 1, "name", "John Doe")
func NewRecord(kv ...any) Record {
	r := Record{m: orderedmap.New[string, any]()}
	for i := 0; i+1 < len(kv); i += 2 {
		name, _ := kv[i].(string)
		r.m.Set(name, kv[i+1])
	}
	return r
}

// RecordOf builds a record from parallel name and value slices.
func RecordOf(names []string, values []any) Record {
	r := Record{m: orderedmap.New[string, any]()}
	for i, name := range names {
		var v any
		if i < len(values) {
			v = values[i]
		}
		r.m.Set(name, v)
	}
	return r
}

// Fields returns the field names in insertion order.
func (r Record) Fields() []string {
	if r.m == nil {
		return nil
	}
	names := make([]string, 0, r.m.Len())
	for pair := r.m.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Field returns the named value.
func (r Record) Field(name string) (any, bool) {
	if r.m == nil {
		return nil, false
	}
	return r.m.Get(name)
}

// With returns a copy of r with name set to value.
func (r Record) With(name string, value any) Record {
	out := Record{m: orderedmap.New[string, any]()}
	if r.m != nil {
		for pair := r.m.Oldest(); pair != nil; pair = pair.Next() {
			out.m.Set(pair.Key, pair.Value)
		}
	}
	out.m.Set(name, value)
	return out
}

// MapRow adapts a plain map. Fields are reported in sorted order.
type MapRow map[string]any

// Fields returns the map keys, sorted.
func (m MapRow) Fields() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Field returns the named value.
func (m MapRow) Field(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

type structField struct {
	name  string
	index []int
}

type structRow struct {
	v      reflect.Value
	fields []structField
}

// Struct adapts a struct (or pointer to struct) for attribute-style access.
// Exported fields are exposed in declaration order under the name from the
// `table` tag, then the `json` tag, then the Go field name. A tag of "-"
// hides the field. Anything that is not a struct yields an empty row.
func Struct(v any) Row {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return structRow{}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return structRow{}
	}
	row := structRow{v: rv}
	for _, f := range reflect.VisibleFields(rv.Type()) {
		if !f.IsExported() || f.Anonymous || !reachable(rv.Type(), f.Index) {
			continue
		}
		name := tagName(f, "table")
		if name == "" {
			name = tagName(f, "json")
		}
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		row.fields = append(row.fields, structField{name: name, index: f.Index})
	}
	return row
}

// reachable reports whether every embedded struct on the path to a promoted
// field is exported. Values behind unexported embeddings cannot be read.
func reachable(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if !f.IsExported() {
			return false
		}
		t = f.Type
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
	}
	return true
}

func tagName(f reflect.StructField, key string) string {
	tag, ok := f.Tag.Lookup(key)
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func (s structRow) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

func (s structRow) Field(name string) (any, bool) {
	for _, f := range s.fields {
		if f.name != name {
			continue
		}
		fv, err := s.v.FieldByIndexErr(f.index)
		if err != nil {
			return nil, false
		}
		return fv.Interface(), true
	}
	return nil, false
}

// rowMap flattens a row into a map, for template execution.
func rowMap(row Row) map[string]any {
	if row == nil {
		return map[string]any{}
	}
	fields := row.Fields()
	m := make(map[string]any, len(fields))
	for _, name := range fields {
		m[name], _ = row.Field(name)
	}
	return m
}
