package tabler

import (
	"fmt"
	"iter"
	"maps"
	"net/url"
	"slices"

	"github.com/huandu/xstrings"

	"github.com/bjaus/tabler/internal/markup"
)

const defaultSortLinkClass = "text-blue-500 hover:underline"

// Configurator supplies a [Table] with its columns and rows.
type Configurator interface {
	// Columns returns the columns to render, in order.
	Columns() ([]KeyedColumn, error)
	// Iterate walks the rows to render.
	Iterate() iter.Seq2[int, Row]
	// PageSize is the number of rows a full page holds.
	PageSize() int
	// PaginationHTML is pre-rendered pagination markup.
	PaginationHTML() string
	// Err reports the error of the last row walk.
	Err() error
}

// Configuration infers a table's columns from its rows and combines them
// with explicitly registered columns and per-field overrides.
type Configuration struct {
	src      Source
	page     int
	pageSize int

	columns                []KeyedColumn
	columnsAttributes      Attributes
	columnsLabel           map[string]string
	columnsLabelAttributes Attributes
	columnsLabelClass      string
	columnsValue           map[string]Value[any]
	except                 []string
	pagination             string
	queryParams            url.Values
	sortParams             map[string]SortState
	sortLinkClass          string
	urlPath                string
}

// NewConfiguration returns a configuration over src for the given page.
func NewConfiguration(src Source, page, pageSize int) Configuration {
	return Configuration{
		src:           src,
		page:          page,
		pageSize:      pageSize,
		sortLinkClass: defaultSortLinkClass,
	}
}

func withEntry[K comparable, V any](m map[K]V, k K, v V) map[K]V {
	out := maps.Clone(m)
	if out == nil {
		out = make(map[K]V, 1)
	}
	out[k] = v
	return out
}

// AddColumn returns a copy with col registered under name. A registered
// column replaces the inferred one for the same field. Columns of this
// package without a name take name as their field name.
func (c Configuration) AddColumn(name string, col Column) Configuration {
	if m, ok := col.(baseMapper); ok {
		col = m.mapBase(func(b columnBase) columnBase {
			if b.name == "" {
				b.name = name
			}
			return b
		})
	}
	columns := slices.Clone(c.columns)
	i := slices.IndexFunc(columns, func(k KeyedColumn) bool { return k.Key == name })
	if i >= 0 {
		columns[i].Column = col
	} else {
		columns = append(columns, KeyedColumn{Key: name, Column: col})
	}
	c.columns = columns
	return c
}

// AddColumnLabel returns a copy labelling the inferred column for name.
func (c Configuration) AddColumnLabel(name, label string) Configuration {
	c.columnsLabel = withEntry(c.columnsLabel, name, label)
	return c
}

// AddColumnValue returns a copy showing value in the inferred column for
// name.
func (c Configuration) AddColumnValue(name string, value any) Configuration {
	c.columnsValue = withEntry(c.columnsValue, name, Literal(value))
	return c
}

// AddColumnValueFunc returns a copy computing the inferred column for name.
func (c Configuration) AddColumnValueFunc(name string, fn Func[any]) Configuration {
	c.columnsValue = withEntry(c.columnsValue, name, Computed(fn))
	return c
}

// ColumnsAttributes returns a copy with the data cell attributes of inferred
// columns replaced.
func (c Configuration) ColumnsAttributes(values Attributes) Configuration {
	c.columnsAttributes = values
	return c
}

// ColumnsClass returns a copy adding value to the data cell class of
// inferred columns.
func (c Configuration) ColumnsClass(value string) Configuration {
	c.columnsAttributes = c.columnsAttributes.WithClass(value)
	return c
}

// ColumnsLabelAttributes returns a copy with the header cell attributes of
// inferred columns replaced.
func (c Configuration) ColumnsLabelAttributes(values Attributes) Configuration {
	c.columnsLabelAttributes = values
	return c
}

// ColumnsLabelClass returns a copy adding value to the header cell class of
// inferred columns.
func (c Configuration) ColumnsLabelClass(value string) Configuration {
	c.columnsLabelClass = value
	return c
}

// ExceptColumns returns a copy that infers no column for names.
func (c Configuration) ExceptColumns(names ...string) Configuration {
	c.except = slices.Clone(names)
	return c
}

// Pagination returns a copy with pre-rendered pagination markup.
func (c Configuration) Pagination(html string) Configuration {
	c.pagination = html
	return c
}

// QueryParams returns a copy with the current request's query. Sort links
// only show direction classes when it is non-empty.
func (c Configuration) QueryParams(values url.Values) Configuration {
	c.queryParams = values
	return c
}

// SortParams returns a copy with the sort state requested by each sortable
// field's header link. Fields without an entry get a plain label.
func (c Configuration) SortParams(values map[string]SortState) Configuration {
	c.sortParams = maps.Clone(values)
	return c
}

// SortLinkClass returns a copy with the class of header sort links.
func (c Configuration) SortLinkClass(value string) Configuration {
	c.sortLinkClass = value
	return c
}

// URLPath returns a copy with the path sort links point to.
func (c Configuration) URLPath(value string) Configuration {
	c.urlPath = value
	return c
}

// Iterate walks the source.
func (c Configuration) Iterate() iter.Seq2[int, Row] {
	if c.src == nil {
		return func(func(int, Row) bool) {}
	}
	return c.src.Iterate()
}

// PageSize returns the page size.
func (c Configuration) PageSize() int { return c.pageSize }

// PaginationHTML returns the pagination markup.
func (c Configuration) PaginationHTML() string { return c.pagination }

// Err reports the error of the last source walk.
func (c Configuration) Err() error { return sourceErr(c.src) }

// Columns walks the source once and returns a column per field, in the
// order fields are first seen, minus excluded fields. Registered columns
// take the place of the inferred column for their field; the rest are
// appended in registration order.
func (c Configuration) Columns() ([]KeyedColumn, error) {
	labelAttrs := c.columnsLabelAttributes.WithClass(c.columnsLabelClass)

	var (
		columns []KeyedColumn
		seen    = make(map[string]bool)
	)
	for _, row := range c.Iterate() {
		if row == nil {
			continue
		}
		for _, name := range row.Fields() {
			if seen[name] || slices.Contains(c.except, name) {
				continue
			}
			seen[name] = true
			columns = append(columns, KeyedColumn{Key: name, Column: c.inferColumn(name, labelAttrs)})
		}
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("failed to infer columns: %w", err)
	}

	for _, explicit := range c.columns {
		i := slices.IndexFunc(columns, func(k KeyedColumn) bool { return k.Key == explicit.Key })
		if i >= 0 {
			columns[i] = explicit
			continue
		}
		columns = append(columns, explicit)
	}
	return columns, nil
}

func (c Configuration) inferColumn(name string, labelAttrs Attributes) Column {
	text, ok := c.columnsLabel[name]
	label := text
	if !ok {
		text = xstrings.FirstRuneToUpper(name)
		label = markup.Escape(text)
	}
	if params, ok := c.sortParams[name]; ok {
		label = c.sortLink(name, params)
	}
	col := NewDataColumn().
		Attributes(c.columnsAttributes).
		LabelAttributes(labelAttrs).
		Name(name).
		labelMarkup(label, text)
	if v, ok := c.columnsValue[name]; ok {
		col.value = v
	}
	return col
}

func (c Configuration) sortLink(name string, params SortState) string {
	return NewSorter().
		Column(name).
		CurrentPage(c.page).
		LinkClass(c.sortLinkClass).
		PageSize(c.pageSize).
		SortParams(params).
		URLPath(c.urlPath).
		URLQueryParameters(c.queryParams).
		Render()
}
