package tabler_test

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tabler"
)

func render(t *testing.T, table tabler.Table) string {
	t.Helper()
	out, err := table.Render()
	require.NoError(t, err)
	return out
}

func TestTableRender(t *testing.T) {
	t.Parallel()
	src := tabler.NewSliceSource(tabler.NewRecord("id", 1, "name", "John Doe", "blocked_at", nil))
	cfg := tabler.NewConfiguration(src, 1, 0)

	want := strings.Join([]string{
		"<table>",
		"<thead>",
		"<tr>",
		"<th>Id</th>",
		"<th>Name</th>",
		"<th>Blocked_at</th>",
		"</tr>",
		"</thead>",
		"<tbody>",
		"<tr>",
		`<td data-label="id">1</td>`,
		`<td data-label="name">John Doe</td>`,
		`<td data-label="blocked_at">empty cell</td>`,
		"</tr>",
		"</tbody>",
		"</table>",
	}, "\n")
	assert.Equal(t, want, render(t, tabler.NewTable(cfg)))
}

func TestTableRenderStructs(t *testing.T) {
	t.Parallel()
	blocked := "2024-01-02"
	src := tabler.Structs(
		user{ID: 1, Name: "Ann", Password: "secret"},
		user{ID: 2, Name: "Bob", BlockedAt: &blocked},
	)
	out := render(t, tabler.NewTable(tabler.NewConfiguration(src, 1, 0)))
	assert.Contains(t, out, "<th>Blocked_at</th>")
	assert.Contains(t, out, `<td data-label="blocked_at">empty cell</td>`)
	assert.Contains(t, out, `<td data-label="blocked_at">2024-01-02</td>`)
	assert.NotContains(t, out, "secret")
	assert.NotContains(t, out, "Password")
}

func TestTablePadding(t *testing.T) {
	t.Parallel()
	src := tabler.NewSliceSource(tabler.NewRecord("id", 1), tabler.NewRecord("id", 2))
	out := render(t, tabler.NewTable(tabler.NewConfiguration(src, 1, 5)))

	assert.Equal(t, 2, strings.Count(out, `<td data-label="id">`))
	assert.Equal(t, 3, strings.Count(out, "<tr>\n<td></td>\n</tr>"))
	assert.Equal(t, 1+2+3, strings.Count(out, "<tr>"))
}

func TestTableFullPageHasNoPadding(t *testing.T) {
	t.Parallel()
	src := tabler.NewSliceSource(tabler.NewRecord("id", 1), tabler.NewRecord("id", 2), tabler.NewRecord("id", 3))
	out := render(t, tabler.NewTable(tabler.NewConfiguration(src, 1, 2)))
	assert.Equal(t, 3, strings.Count(out, `<td data-label="id">`))
	assert.NotContains(t, out, "<td></td>")
}

func TestTableEmpty(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		table tabler.Table
		want  string
	}{
		"no columns": {
			table: tabler.NewTable(tabler.NewConfiguration(tabler.NewSliceSource(), 1, 10)),
			want: strings.Join([]string{
				"<table>",
				"<thead>",
				"<tr>",
				"</tr>",
				"</thead>",
				"<tbody>",
				"<tr>",
				`<td colspan="1">empty table</td>`,
				"</tr>",
				"</tbody>",
				"</table>",
			}, "\n"),
		},
		"spans visible columns": {
			table: tabler.NewTable(tabler.NewConfiguration(tabler.NewSliceSource(), 1, 10).
				AddColumn("id", tabler.NewDataColumn().Name("id")).
				AddColumn("name", tabler.NewDataColumn().Name("name")).
				AddColumn("hidden", tabler.NewDataColumn().Visible(false))).
				EmptyText("No users").
				RowAttributes(tabler.Attrs("class", "row")),
			want: strings.Join([]string{
				"<table>",
				"<thead>",
				"<tr>",
				"<th>Id</th>",
				"<th>Name</th>",
				"</tr>",
				"</thead>",
				"<tbody>",
				`<tr class="row">`,
				`<td colspan="2">No users</td>`,
				"</tr>",
				"</tbody>",
				"</table>",
			}, "\n"),
		},
		"no empty text pads": {
			table: tabler.NewTable(tabler.NewConfiguration(tabler.NewSliceSource(), 1, 2).
				AddColumn("id", tabler.NewDataColumn().Name("id"))).
				EmptyText(""),
			want: strings.Join([]string{
				"<table>",
				"<thead>",
				"<tr>",
				"<th>Id</th>",
				"</tr>",
				"</thead>",
				"<tbody>",
				"<tr>",
				"<td></td>",
				"</tr>",
				"<tr>",
				"<td></td>",
				"</tr>",
				"</tbody>",
				"</table>",
			}, "\n"),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render(t, tt.table))
		})
	}
}

func TestTableEscapesFieldNames(t *testing.T) {
	t.Parallel()
	src := tabler.NewSliceSource(tabler.NewRecord("<b>x</b>", 1))
	tests := map[string]struct {
		cfg  tabler.Configuration
		want string
	}{
		"inferred label": {
			cfg:  tabler.NewConfiguration(src, 1, 0),
			want: "<th>&lt;b&gt;x&lt;/b&gt;</th>",
		},
		"unlabelled column": {
			cfg:  tabler.NewConfiguration(src, 1, 0).AddColumn("<b>x</b>", tabler.NewDataColumn()),
			want: "<th>&lt;b&gt;x&lt;/b&gt;</th>",
		},
		"explicit label stays markup": {
			cfg:  tabler.NewConfiguration(src, 1, 0).AddColumnLabel("<b>x</b>", "<i>X</i>"),
			want: "<th><i>X</i></th>",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out := render(t, tabler.NewTable(tt.cfg))
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "<th><b>")
		})
	}
}

func TestTableFooter(t *testing.T) {
	t.Parallel()
	cfg := tabler.NewConfiguration(tabler.NewSliceSource(tabler.NewRecord("id", 1, "amount", 5)), 1, 0).
		AddColumn("id", tabler.NewDataColumn().Name("id").EmptyCell("")).
		AddColumn("amount", tabler.NewDataColumn().Name("amount").Footer("5").FooterAttributes(tabler.Attrs("class", "sum")))
	table := tabler.NewTable(cfg)

	assert.NotContains(t, render(t, table), "<tfoot>", "footer is off by default")

	out := render(t, table.ShowFooter(true).RowFooterAttributes(tabler.Attrs("class", "totals")))
	assert.Contains(t, out, "<tfoot>\n<tr class=\"totals\">\n<td class=\"sum\">5</td>\n</tr>\n</tfoot>\n</table>")
}

func TestTableFooterWithoutContent(t *testing.T) {
	t.Parallel()
	cfg := tabler.NewConfiguration(tabler.NewSliceSource(tabler.NewRecord("id", 1)), 1, 0).
		AddColumn("id", tabler.NewDataColumn().Name("id").EmptyCell(""))
	out := render(t, tabler.NewTable(cfg).ShowFooter(true))
	assert.NotContains(t, out, "<tfoot>")
}

func TestTableSectionOrder(t *testing.T) {
	t.Parallel()
	cfg := tabler.NewConfiguration(tabler.NewSliceSource(tabler.NewRecord("id", 1)), 1, 0).
		AddColumn("id", tabler.NewDataColumn().Name("id").Footer("total"))
	out := render(t, tabler.NewTable(cfg).ShowFooter(true).Toolbar("<caption>Users</caption>"))

	caption := strings.Index(out, "<caption>")
	thead := strings.Index(out, "<thead>")
	tbody := strings.Index(out, "<tbody>")
	tfoot := strings.Index(out, "<tfoot>")
	assert.True(t, strings.HasPrefix(out, "<table>\n<caption>Users</caption>\n<thead>"))
	assert.Less(t, caption, thead)
	assert.Less(t, thead, tbody)
	assert.Less(t, tbody, tfoot)
}

func TestTableAttributes(t *testing.T) {
	t.Parallel()
	cfg := tabler.NewConfiguration(tabler.NewSliceSource(tabler.NewRecord("id", 1)), 1, 0)
	out := render(t, tabler.NewTable(cfg).
		Attributes(tabler.Attrs("id", "users")).
		Class("table table-striped").
		HeaderAttributes(tabler.Attrs("class", "head")).
		RowHeaderAttributes(tabler.Attrs("class", "head-row")).
		RowAttributes(tabler.Attrs("class", "body-row")))

	assert.True(t, strings.HasPrefix(out, `<table id="users" class="table table-striped">`))
	assert.Contains(t, out, "<thead class=\"head\">\n<tr class=\"head-row\">")
	assert.Contains(t, out, "<tbody>\n<tr class=\"body-row\">")
}

func TestTableLayout(t *testing.T) {
	t.Parallel()
	cfg := tabler.NewConfiguration(tabler.NewSliceSource(tabler.NewRecord("id", 1)), 1, 0).
		Pagination(`<nav class="pagination"></nav>`)

	out := render(t, tabler.NewTable(cfg))
	assert.True(t, strings.HasSuffix(out, "</table>\n<nav class=\"pagination\"></nav>"))

	out = render(t, tabler.NewTable(cfg).Layout("  {pagination}\n<div>{table}</div>\n"))
	assert.True(t, strings.HasPrefix(out, "<nav class=\"pagination\"></nav>\n<div><table>"))
	assert.True(t, strings.HasSuffix(out, "</table></div>"))
}

func TestTableVisibility(t *testing.T) {
	t.Parallel()
	cfg := tabler.NewConfiguration(tabler.NewSliceSource(tabler.NewRecord("id", 1, "secret", "x")), 1, 3).
		AddColumn("secret", tabler.NewDataColumn().Name("secret").Visible(false).Footer("hidden"))
	out := render(t, tabler.NewTable(cfg).ShowFooter(true))

	assert.NotContains(t, out, "Secret")
	assert.NotContains(t, out, ">x<")
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 2, strings.Count(out, "<tr>\n<td></td>\n</tr>"), "padding rows span visible columns only")
}

func TestTableButtonsAndCrud(t *testing.T) {
	t.Parallel()
	cfg := tabler.NewConfiguration(tabler.NewSliceSource(tabler.NewRecord("id", 4, "name", "Ann")), 1, 0).
		AddColumn("edit", tabler.NewButtonColumn().Content("Edit").HrefFunc(func(r tabler.Row, _ string, _ tabler.Column) string {
			id, _ := r.Field("id")
			return fmt.Sprintf("/users/%v/edit", id)
		})).
		AddColumn("actions", tabler.NewCrudColumn().URLPath("/users").ActionNames("delete"))
	out := render(t, tabler.NewTable(cfg))

	assert.Contains(t, out, `<td><a href="/users/4/edit" role="button">Edit</a></td>`)
	assert.Contains(t, out, `<td><a href="/users/delete/4" role="button"><span>🗑</span></a></td>`)
}

func TestTableErrors(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	tests := map[string]struct {
		cfg  tabler.Configuration
		want string
	}{
		"source": {
			cfg:  tabler.NewConfiguration(failingSource{err: boom}, 1, 0),
			want: "failed to infer columns",
		},
		"cell": {
			cfg: tabler.NewConfiguration(tabler.NewSliceSource(tabler.NewRecord("id", 1)), 1, 0).
				AddColumnValueFunc("id", func(tabler.Row, string, tabler.Column) any { return boom }),
			want: `row 0: column "id"`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, err := tabler.NewTable(tt.cfg).Render()
			require.ErrorIs(t, err, boom)
			assert.ErrorContains(t, err, tt.want)
			assert.Empty(t, out)
		})
	}
}

func TestTableReadError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	_, err := tabler.NewTable(lateFailure{err: boom}).Render()
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failed to read rows")
}

// lateFailure supplies columns but fails while reading rows.
type lateFailure struct {
	err error
}

func (l lateFailure) Iterate() iter.Seq2[int, tabler.Row] {
	return func(func(int, tabler.Row) bool) {}
}

func (l lateFailure) Columns() ([]tabler.KeyedColumn, error) {
	return []tabler.KeyedColumn{{Key: "id", Column: tabler.NewDataColumn().Name("id")}}, nil
}
func (l lateFailure) PageSize() int          { return 0 }
func (l lateFailure) PaginationHTML() string { return "" }
func (l lateFailure) Err() error             { return l.err }

func TestTableLeavesReceiverUnchanged(t *testing.T) {
	t.Parallel()
	table := tabler.NewTable(tabler.NewConfiguration(tabler.NewSliceSource(tabler.NewRecord("id", 1)), 1, 0))
	before := render(t, table)

	_ = table.Class("x")
	_ = table.Attributes(tabler.Attrs("id", "t"))
	_ = table.EmptyText("none")
	_ = table.ShowFooter(true)
	_ = table.Layout("{pagination}")
	_ = table.Toolbar("<caption>x</caption>")
	_ = table.RowAttributes(tabler.Attrs("class", "r"))

	assert.Equal(t, before, render(t, table))
}
