package tabler

import (
	"errors"

	"github.com/bjaus/tabler/internal/markup"
)

// Sentinel errors for programmatic error handling.
var (
	ErrMissingField       = errors.New("missing field")
	ErrInvalidValue       = errors.New("invalid value")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUnsupportedCommand = errors.New("unsupported command")
	ErrInvalidSpec        = errors.New("invalid column spec")
	ErrInvalidTemplate    = errors.New("invalid template")
	ErrUnsupportedSource  = errors.New("unsupported source")
)

// Column renders one cell per row plus its header and footer cells.
//
// Implementations in this package are immutable values: every configuration
// method returns a new column and leaves the receiver untouched.
type Column interface {
	// IsVisible reports whether the column takes part in row rendering.
	IsVisible() bool
	// RenderDataCell renders the cell for row. key is the name the column is
	// registered under in the table. An empty row renders as "".
	RenderDataCell(row Row, key string) (string, error)
	// RenderHeaderCell renders the <th> cell.
	RenderHeaderCell() string
	// RenderFooterCell renders the footer <td> cell, or "" when the column has
	// no footer content.
	RenderFooterCell() string
}

// KeyedColumn pairs a column with the key it is registered under.
type KeyedColumn struct {
	Key    string
	Column Column
}

// Attributes is an immutable, insertion-ordered set of tag attributes.
// Attribute values may be strings, numbers, booleans (true renders the bare
// name, false omits it) or a [Func] computed per row.
type Attributes = markup.Attributes

// Attrs builds [Attributes] from alternating name/value arguments:
//
//	tabler.Attrs("id", "users", "class", "table")
func Attrs(kv ...any) Attributes { return markup.Of(kv...) }

// AttrsFromMap builds [Attributes] from a map. Names are ordered
// alphabetically.
func AttrsFromMap(values map[string]any) Attributes { return markup.FromMap(values) }
