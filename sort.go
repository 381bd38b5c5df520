package tabler

import (
	"net/url"
	"slices"
	"strings"
)

// Order is one sort key.
type Order struct {
	Field      string
	Descending bool
}

// String returns the query token for o: the field, prefixed with "-" when
// descending.
func (o Order) String() string {
	if o.Descending {
		return "-" + o.Field
	}
	return o.Field
}

// SortState maps query parameter names to values, e.g. {"sort": "-id"}.
type SortState map[string]string

// Sort reads the active ordering from a request and computes, for each
// sortable field, the state a sort link for that field should request.
//
//	s := tabler.NewSort("id", "name").Params(r.URL.Query())
//	src = src.Sorted(s.Orders()...)
//	cfg = cfg.SortParams(s.SortParams()).QueryParams(r.URL.Query())
type Sort struct {
	fields    []string
	multisort bool
	param     string
	separator string
	current   []Order
}

// NewSort returns a sort over the given sortable fields, read from the
// "sort" parameter.
func NewSort(fields ...string) Sort {
	return Sort{
		fields:    slices.Clone(fields),
		param:     "sort",
		separator: ",",
	}
}

// Multisort returns a copy that keeps previous sort keys behind the clicked
// one instead of replacing them.
func (s Sort) Multisort(value bool) Sort {
	s.multisort = value
	return s
}

// Param returns a copy reading and writing the named query parameter.
func (s Sort) Param(name string) Sort {
	s.param = name
	return s
}

// Separator returns a copy joining sort tokens with sep.
func (s Sort) Separator(sep string) Sort {
	s.separator = sep
	return s
}

// Params returns a copy with the active ordering parsed from query. Unknown
// fields are ignored; without multisort only the first key is kept.
func (s Sort) Params(query url.Values) Sort {
	s.current = nil
	raw := query.Get(s.param)
	if raw == "" {
		return s
	}
	for _, token := range strings.Split(raw, s.separator) {
		token = strings.TrimSpace(token)
		o := Order{Field: strings.TrimPrefix(token, "-"), Descending: strings.HasPrefix(token, "-")}
		if o.Field == "" || !slices.Contains(s.fields, o.Field) {
			continue
		}
		if slices.ContainsFunc(s.current, func(c Order) bool { return c.Field == o.Field }) {
			continue
		}
		s.current = append(s.current, o)
		if !s.multisort {
			break
		}
	}
	return s
}

// Orders returns the active ordering.
func (s Sort) Orders() []Order {
	return slices.Clone(s.current)
}

// SortParams returns, for every sortable field, the state that toggles its
// direction: an ascending field flips to descending and anything else sorts
// ascending.
func (s Sort) SortParams() map[string]SortState {
	out := make(map[string]SortState, len(s.fields))
	for _, field := range s.fields {
		out[field] = SortState{s.param: s.next(field)}
	}
	return out
}

func (s Sort) next(field string) string {
	next := Order{Field: field}
	rest := make([]Order, 0, len(s.current))
	for _, o := range s.current {
		if o.Field == field {
			next.Descending = !o.Descending
			continue
		}
		rest = append(rest, o)
	}
	orders := []Order{next}
	if s.multisort {
		orders = append(orders, rest...)
	}
	tokens := make([]string, len(orders))
	for i, o := range orders {
		tokens[i] = o.String()
	}
	return strings.Join(tokens, s.separator)
}
