// Package markup builds HTML tags from content and ordered attribute sets.
package markup

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// priority lists the attributes rendered first, in this order. Everything
// else follows in insertion order.
var priority = []string{
	"type", "id", "class", "name", "value", "href", "src", "alt", "action", "method",
	"selected", "checked", "readonly", "disabled", "multiple", "size", "maxlength",
	"minlength", "width", "height", "rows", "cols", "colspan", "rowspan", "title",
	"rel", "media", "role",
}

// Attributes is an immutable, insertion-ordered set of tag attributes. The zero
// value is an empty set. Every modifying method returns a new set.
type Attributes struct {
	m *orderedmap.OrderedMap[string, any]
}

// Of builds attributes from alternating name/value arguments.
func Of(kv ...any) Attributes {
	a := Attributes{m: orderedmap.New[string, any]()}
	for i := 0; i+1 < len(kv); i += 2 {
		a.m.Set(cast.ToString(kv[i]), kv[i+1])
	}
	return a
}

// FromMap builds attributes from a plain map. Keys are inserted in sorted
// order because Go maps carry none.
func FromMap(values map[string]any) Attributes {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	a := Attributes{m: orderedmap.New[string, any]()}
	for _, k := range keys {
		a.m.Set(k, values[k])
	}
	return a
}

func (a Attributes) clone() Attributes {
	out := Attributes{m: orderedmap.New[string, any]()}
	if a.m == nil {
		return out
	}
	for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
		out.m.Set(pair.Key, pair.Value)
	}
	return out
}

// Len returns the number of attributes.
func (a Attributes) Len() int {
	if a.m == nil {
		return 0
	}
	return a.m.Len()
}

// Get returns the value stored under name.
func (a Attributes) Get(name string) (any, bool) {
	if a.m == nil {
		return nil, false
	}
	return a.m.Get(name)
}

// Has reports whether name is set.
func (a Attributes) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Keys returns attribute names in insertion order.
func (a Attributes) Keys() []string {
	if a.m == nil {
		return nil
	}
	keys := make([]string, 0, a.m.Len())
	for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// With returns a copy with name set to value. An existing name keeps its
// position.
func (a Attributes) With(name string, value any) Attributes {
	out := a.clone()
	out.m.Set(name, value)
	return out
}

// Without returns a copy with name removed.
func (a Attributes) Without(name string) Attributes {
	out := a.clone()
	out.m.Delete(name)
	return out
}

// Merge returns a copy of a with every attribute of b set on top of it.
func (a Attributes) Merge(b Attributes) Attributes {
	out := a.clone()
	if b.m == nil {
		return out
	}
	for pair := b.m.Oldest(); pair != nil; pair = pair.Next() {
		out.m.Set(pair.Key, pair.Value)
	}
	return out
}

// Map returns a copy of a where every value has been passed through fn.
func (a Attributes) Map(fn func(name string, value any) any) Attributes {
	out := Attributes{m: orderedmap.New[string, any]()}
	if a.m == nil {
		return out
	}
	for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
		out.m.Set(pair.Key, fn(pair.Key, pair.Value))
	}
	return out
}

// WithClass returns a copy with the given CSS classes appended to the class
// attribute. Classes already present and empty values are skipped.
func (a Attributes) WithClass(value string) Attributes {
	added := strings.Fields(value)
	if len(added) == 0 {
		return a.clone()
	}
	var current []string
	if v, ok := a.Get("class"); ok {
		current = strings.Fields(cast.ToString(v))
	}
	for _, c := range added {
		if !slices.Contains(current, c) {
			current = append(current, c)
		}
	}
	return a.With("class", strings.Join(current, " "))
}

// String renders the attributes with a leading space before each one, ready
// to be placed inside an opening tag. Nil and false values are omitted; true
// renders the bare attribute name.
func (a Attributes) String() string {
	if a.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	seen := make(map[string]bool, a.m.Len())
	for _, name := range priority {
		if v, ok := a.m.Get(name); ok {
			writeAttribute(&sb, name, v)
			seen[name] = true
		}
	}
	for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
		if !seen[pair.Key] {
			writeAttribute(&sb, pair.Key, pair.Value)
		}
	}
	return sb.String()
}

func writeAttribute(sb *strings.Builder, name string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case bool:
		if v {
			sb.WriteString(" " + name)
		}
		return
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		s = fmt.Sprint(value)
	}
	fmt.Fprintf(sb, ` %s="%s"`, name, html.EscapeString(s))
}
