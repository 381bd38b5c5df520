// Package tabler renders server-side HTML tables from rows and column
// definitions.
//
// A [Configuration] wraps a [Source] of rows and infers one [DataColumn] per
// field. A [Table] walks the configuration and renders the header, body and
// footer sections as a single HTML fragment:
//
//	src := tabler.Maps(
//		map[string]any{"id": 1, "name": "John Doe"},
//	)
//	cfg := tabler.NewConfiguration(src, 1, 10).ExceptColumns("password")
//	html, err := tabler.NewTable(cfg).Class("table").Render()
//
// # Columns
//
// Every column implements [Column]. Three variants are provided:
//
//   - [DataColumn]: the value of one field, or a literal or computed value
//   - [ButtonColumn]: one link or button per row
//   - [CrudColumn]: delete, update and view links keyed by a primary key
//
// Columns are immutable values. Every configuration method returns a new
// column and leaves the receiver unchanged, so a column can be shared as a
// template:
//
//	base := tabler.NewDataColumn().Class("text-right")
//	id := base.Name("id").Label("ID")
//
// # Deferred Values
//
// Cell values, button content, hrefs and attribute values can be computed per
// row with a [Func]:
//
//	tabler.NewButtonColumn().HrefFunc(func(row tabler.Row, _ string, _ tabler.Column) string {
//		id, _ := row.Field("id")
//		return fmt.Sprintf("/users/%v/edit", id)
//	})
//
// # Declarative Columns
//
// Column configuration can be expressed as data. [Command] values are a
// closed set of configuration steps folded over a column by [Apply], and
// [LoadColumnSpecs] builds columns from a YAML document of "method()" calls:
//
//	- key: name
//	  calls:
//	    label(): [Full name]
//	    truncate(): [20]
//
// # Sorting
//
// [Sort] reads the active ordering from a request's query and computes the
// state each header link should request. Pass it to
// [Configuration.SortParams] to turn headers into [Sorter] links, and to
// [SliceSource.Sorted] to order in-memory rows.
//
// # Sources
//
// [SliceSource] holds rows in memory and is built with [NewSliceSource],
// [Maps], [Structs], [ReadCSV] or [ReadYAML]. [SQLSource] runs a query on
// every walk.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrMissingField]: a CRUD row lacks its primary key
//   - [ErrInvalidValue]: a value cannot be rendered as text
//   - [ErrUnknownCommand]: a column spec names an unknown method
//   - [ErrUnsupportedCommand]: a command does not apply to the column
//   - [ErrInvalidSpec]: a malformed column spec
//   - [ErrInvalidTemplate]: invalid value template syntax
//   - [ErrUnsupportedSource]: input that cannot be read as rows
package tabler
