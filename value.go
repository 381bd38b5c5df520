package tabler

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// Func computes a value for a row at render time. key is the key the column
// is registered under and col is the column being rendered.
type Func[T any] func(row Row, key string, col Column) T

// Value is either a literal or a [Func] evaluated per row. The zero value is
// unset.
type Value[T any] struct {
	literal T
	fn      Func[T]
	set     bool
}

// Literal returns a fixed value.
func Literal[T any](v T) Value[T] {
	return Value[T]{literal: v, set: true}
}

// Computed returns a value produced by fn for each row. A nil fn yields an
// unset value.
func Computed[T any](fn Func[T]) Value[T] {
	return Value[T]{fn: fn, set: fn != nil}
}

// IsSet reports whether v holds a literal or a function.
func (v Value[T]) IsSet() bool { return v.set }

// IsComputed reports whether v is evaluated per row.
func (v Value[T]) IsComputed() bool { return v.fn != nil }

// Resolve returns the literal, or the result of calling the function.
func (v Value[T]) Resolve(row Row, key string, col Column) T {
	if v.fn != nil {
		return v.fn(row, key, col)
	}
	return v.literal
}

// resolveAttributes evaluates every attribute value that is computed per row.
func resolveAttributes(attrs Attributes, row Row, key string, col Column) Attributes {
	return attrs.Map(func(_ string, value any) any {
		switch v := value.(type) {
		case Func[string]:
			return v(row, key, col)
		case func(Row, string, Column) string:
			return v(row, key, col)
		case Func[any]:
			return v(row, key, col)
		case func(Row, string, Column) any:
			return v(row, key, col)
		case Value[string]:
			return v.Resolve(row, key, col)
		case Value[any]:
			return v.Resolve(row, key, col)
		default:
			return value
		}
	})
}

// toText coerces a scalar to its display text. nil, including a nil
// pointer, is "".
func toText(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	case error:
		return x.Error(), nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", nil
		}
		return toText(rv.Elem().Interface())
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("%w: cannot render %T as text", ErrInvalidValue, v)
	}
	return s, nil
}
