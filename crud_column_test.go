package tabler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tabler"
)

const (
	deleteLink = `<a href="/users/delete/7" role="button"><span>🗑</span></a>`
	updateLink = `<a href="/users/update/7" role="button"><span>✎</span></a>`
	viewLink   = `<a href="/users/view/7" role="button"><span>🔎</span></a>`
)

func TestCrudColumnRenderDataCell(t *testing.T) {
	t.Parallel()
	base := tabler.NewCrudColumn().URLPath("/users")
	tests := map[string]struct {
		col  tabler.CrudColumn
		want string
	}{
		"default actions": {
			col:  base,
			want: "<td>" + deleteLink + updateLink + viewLink + "</td>",
		},
		"action order": {
			col:  base.ActionNames("view", "delete"),
			want: "<td>" + viewLink + deleteLink + "</td>",
		},
		"route differs from name": {
			col:  base.Actions(tabler.Action{Name: "update", Route: "edit"}),
			want: `<td><a href="/users/edit/7" role="button"><span>✎</span></a></td>`,
		},
		"trailing slash": {
			col:  tabler.NewCrudColumn().URLPath("/users/").ActionNames("view"),
			want: "<td>" + viewLink + "</td>",
		},
		"action class": {
			col:  base.ActionNames("delete").AddActionClass("delete", "text-red"),
			want: `<td><a class="text-red" href="/users/delete/7" role="button"><span>🗑</span></a></td>`,
		},
		"action data attribute": {
			col:  base.ActionNames("delete").AddDataAttribute("delete", tabler.DataConfirmText, "Sure?"),
			want: `<td><a href="/users/delete/7" role="button" data-confirm-text="Sure?"><span>🗑</span></a></td>`,
		},
		"actions attributes": {
			col: base.ActionNames("view").ActionsAttributes(map[string]tabler.Attributes{
				"view": tabler.Attrs("title", "View"),
			}),
			want: `<td><a href="/users/view/7" title="View" role="button"><span>🔎</span></a></td>`,
		},
		"custom button gets href": {
			col:  base.ActionNames("view").AddButtonColumn("view", tabler.NewButtonColumn().Content("Open")),
			want: `<td><a href="/users/view/7" role="button">Open</a></td>`,
		},
		"custom button keeps href": {
			col:  base.ActionNames("view").AddButtonColumn("view", tabler.NewButtonColumn().Content("Open").Href("/custom")),
			want: `<td><a href="/custom" role="button">Open</a></td>`,
		},
		"custom non-link button": {
			col:  base.ActionNames("view").AddButtonColumn("view", tabler.NewButtonColumn().Content("Go").Type("submit")),
			want: `<td><button type="submit">Go</button></td>`,
		},
		"custom action": {
			col: base.ActionNames("view", "export").Buttons(map[string]tabler.ButtonColumn{
				"export": tabler.NewButtonColumn().Content("CSV"),
			}),
			want: "<td>" + viewLink + `<a href="/users/export/7" role="button">CSV</a></td>`,
		},
		"button outside actions": {
			col:  base.ActionNames("view").AddButtonColumn("export", tabler.NewButtonColumn().Content("CSV")),
			want: "<td>" + viewLink + "</td>",
		},
		"no matching action": {
			col:  base.ActionNames("archive"),
			want: "",
		},
		"cell class": {
			col:  base.ActionNames("view").Class("actions"),
			want: `<td class="actions">` + viewLink + "</td>",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.col.RenderDataCell(tabler.NewRecord("id", 7, "name", "Ann"), "actions")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCrudColumnPrimaryKey(t *testing.T) {
	t.Parallel()
	col := tabler.NewCrudColumn().URLPath("/files").PrimaryKey("path").ActionNames("view")
	got, err := col.RenderDataCell(tabler.NewRecord("path", "a b/c"), "k")
	require.NoError(t, err)
	assert.Equal(t, `<td><a href="/files/view/a%20b%2Fc" role="button"><span>🔎</span></a></td>`, got)
}

func TestCrudColumnMissingPrimaryKey(t *testing.T) {
	t.Parallel()
	_, err := tabler.NewCrudColumn().RenderDataCell(tabler.NewRecord("name", "Ann"), "k")
	assert.ErrorIs(t, err, tabler.ErrMissingField)
}

func TestCrudColumnExplicitHrefsSkipPrimaryKey(t *testing.T) {
	t.Parallel()
	col := tabler.NewCrudColumn().ActionNames("view").AddButtonColumn("view", tabler.NewButtonColumn().Href("/x").Content("x"))
	got, err := col.RenderDataCell(tabler.NewRecord("name", "Ann"), "k")
	require.NoError(t, err)
	assert.Equal(t, `<td><a href="/x" role="button">x</a></td>`, got)
}

func TestCrudColumnEmptyRow(t *testing.T) {
	t.Parallel()
	got, err := tabler.NewCrudColumn().RenderDataCell(tabler.MapRow{}, "k")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCrudColumnDefaultActions(t *testing.T) {
	t.Parallel()
	names := make([]string, len(tabler.DefaultActions))
	for i, a := range tabler.DefaultActions {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"delete", "update", "view"}, names)
}
