package tabler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tabler"
)

func TestApply(t *testing.T) {
	t.Parallel()
	row := tabler.NewRecord("id", 3, "name", "Ann")
	tests := map[string]struct {
		col    tabler.Column
		cmds   []tabler.Command
		header string
		cell   string
	}{
		"data column": {
			col: tabler.NewDataColumn(),
			cmds: []tabler.Command{
				tabler.SetName("name"),
				tabler.SetLabel("Who"),
				tabler.AddClass("a"),
				tabler.AddLabelClass("b"),
				tabler.SetDataLabel("person"),
			},
			header: `<th class="b">Who</th>`,
			cell:   `<td class="a" data-label="person">Ann</td>`,
		},
		"value template": {
			col: tabler.NewDataColumn(),
			cmds: []tabler.Command{
				tabler.SetName("name"),
				tabler.SetValueTemplate("{{.name}}#{{.id}}"),
				tabler.SetTruncate(5),
			},
			header: "<th>Name</th>",
			cell:   "<td>Ann#3</td>",
		},
		"literal value without encoding": {
			col: tabler.NewDataColumn(),
			cmds: []tabler.Command{
				tabler.SetValue{Value: "<b>x</b>"},
				tabler.SetEncode(false),
				tabler.SetAttributes{Attributes: tabler.Attrs("id", "c")},
			},
			header: "<th></th>",
			cell:   `<td id="c"><b>x</b></td>`,
		},
		"button": {
			col: tabler.NewButtonColumn(),
			cmds: []tabler.Command{
				tabler.SetContent("Go"),
				tabler.SetHref("/go"),
				tabler.SetContentClass("btn"),
				tabler.SetContentAttributes{Attributes: tabler.Attrs("title", "t")},
				tabler.SetLabelAttributes{Attributes: tabler.Attrs("scope", "col")},
			},
			header: `<th scope="col"></th>`,
			cell:   `<td><a class="btn" href="/go" title="t" role="button">Go</a></td>`,
		},
		"submit button": {
			col:    tabler.NewButtonColumn(),
			cmds:   []tabler.Command{tabler.SetType("submit"), tabler.SetDisabled(true), tabler.SetContent("Save")},
			header: "<th></th>",
			cell:   `<td><button type="submit" disabled>Save</button></td>`,
		},
		"crud": {
			col: tabler.NewCrudColumn(),
			cmds: []tabler.Command{
				tabler.SetName("actions"),
				tabler.SetURLPath("/u"),
				tabler.SetActions{{Name: "view"}},
				tabler.SetPrimaryKey("id"),
			},
			header: "<th>Actions</th>",
			cell:   `<td><a href="/u/view/3" role="button"><span>🔎</span></a></td>`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			col, err := tabler.Apply(tt.col, tt.cmds...)
			require.NoError(t, err)
			assert.Equal(t, tt.header, col.RenderHeaderCell())
			cell, err := col.RenderDataCell(row, "k")
			require.NoError(t, err)
			assert.Equal(t, tt.cell, cell)
		})
	}
}

func TestApplySharedCommands(t *testing.T) {
	t.Parallel()
	cmds := []tabler.Command{
		tabler.SetVisible(false),
		tabler.SetEmptyCell(""),
		tabler.SetFooter("sum"),
		tabler.SetFooterAttributes{Attributes: tabler.Attrs("class", "f")},
	}
	for name, col := range map[string]tabler.Column{
		"data":   tabler.NewDataColumn(),
		"button": tabler.NewButtonColumn(),
		"crud":   tabler.NewCrudColumn(),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := tabler.Apply(col, cmds...)
			require.NoError(t, err)
			assert.False(t, got.IsVisible())
			assert.True(t, col.IsVisible(), "input column unchanged")
			assert.Equal(t, `<td class="f">sum</td>`, got.RenderFooterCell())
		})
	}
}

func TestApplyUnsupported(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		col tabler.Column
		cmd tabler.Command
	}{
		"href on data column":     {col: tabler.NewDataColumn(), cmd: tabler.SetHref("/x")},
		"value on button":         {col: tabler.NewButtonColumn(), cmd: tabler.SetValue{Value: 1}},
		"truncate on crud":        {col: tabler.NewCrudColumn(), cmd: tabler.SetTruncate(3)},
		"primary key on button":   {col: tabler.NewButtonColumn(), cmd: tabler.SetPrimaryKey("id")},
		"encode on crud":          {col: tabler.NewCrudColumn(), cmd: tabler.SetEncode(true)},
		"label on foreign column": {col: foreignColumn{}, cmd: tabler.SetLabel("x")},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := tabler.Apply(tt.col, tt.cmd)
			require.ErrorIs(t, err, tabler.ErrUnsupportedCommand)
			assert.True(t, strings.HasPrefix(err.Error(), tt.cmd.Method()))
			assert.Equal(t, tt.col, got)
		})
	}
}

func TestApplyInvalidTemplate(t *testing.T) {
	t.Parallel()
	_, err := tabler.Apply(tabler.NewDataColumn(), tabler.SetValueTemplate("{{.name"))
	assert.ErrorIs(t, err, tabler.ErrInvalidTemplate)
}

// foreignColumn is a Column implemented outside the package.
type foreignColumn struct{}

func (foreignColumn) IsVisible() bool                                 { return true }
func (foreignColumn) RenderDataCell(tabler.Row, string) (string, error) { return "", nil }
func (foreignColumn) RenderHeaderCell() string                        { return "" }
func (foreignColumn) RenderFooterCell() string                        { return "" }
