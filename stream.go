package tabler

import (
	"cmp"
	"iter"
	"slices"

	"github.com/spf13/cast"
)

// Source produces the rows of a table.
//
// A source is walked once to infer columns and once more to render the body,
// so it must support repeated iteration. Sources that can fail while
// iterating also implement Err, which reports the error of the last walk.
type Source interface {
	Iterate() iter.Seq2[int, Row]
}

// sourceErr returns the iteration error of src, if it reports one.
func sourceErr(src any) error {
	if e, ok := src.(interface{ Err() error }); ok {
		return e.Err()
	}
	return nil
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq2[int, Row]) []Row {
	var rows []Row
	for _, row := range seq {
		rows = append(rows, row)
	}
	return rows
}

// SliceSource is an in-memory [Source].
type SliceSource struct {
	rows []Row
}

// NewSliceSource returns a source over rows.
func NewSliceSource(rows ...Row) SliceSource {
	return SliceSource{rows: slices.Clone(rows)}
}

// Maps returns a source over plain maps.
func Maps(items ...map[string]any) SliceSource {
	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = MapRow(item)
	}
	return SliceSource{rows: rows}
}

// Structs returns a source over structs, see [Struct].
func Structs[T any](items ...T) SliceSource {
	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = Struct(item)
	}
	return SliceSource{rows: rows}
}

// Iterate yields each row with its index.
func (s SliceSource) Iterate() iter.Seq2[int, Row] {
	return slices.All(s.rows)
}

// Len returns the number of rows.
func (s SliceSource) Len() int { return len(s.rows) }

// Sorted returns a copy of s ordered by orders. The sort is stable. Values
// that both parse as numbers compare numerically, everything else compares
// as text; missing and nil values sort first.
func (s SliceSource) Sorted(orders ...Order) SliceSource {
	rows := slices.Clone(s.rows)
	slices.SortStableFunc(rows, func(a, b Row) int {
		for _, o := range orders {
			c := compareValues(fieldOf(a, o.Field), fieldOf(b, o.Field))
			if o.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return SliceSource{rows: rows}
}

func fieldOf(row Row, name string) any {
	if row == nil {
		return nil
	}
	v, _ := row.Field(name)
	return v
}

func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	fa, errA := cast.ToFloat64E(a)
	fb, errB := cast.ToFloat64E(b)
	if errA == nil && errB == nil {
		return cmp.Compare(fa, fb)
	}
	return cmp.Compare(cast.ToString(a), cast.ToString(b))
}
