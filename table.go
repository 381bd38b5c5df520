package tabler

import (
	"fmt"
	"strings"

	"github.com/bjaus/tabler/internal/markup"
)

const (
	defaultEmptyText = "empty table"
	defaultLayout    = "{table}\n{pagination}"
)

// Table renders the rows and columns of a [Configurator] as an HTML table.
type Table struct {
	cfg                 Configurator
	attributes          Attributes
	showFooter          bool
	emptyText           string
	headerAttributes    Attributes
	layout              string
	rowAttributes       Attributes
	rowHeaderAttributes Attributes
	rowFooterAttributes Attributes
	toolbar             string
}

// NewTable returns a table over cfg.
func NewTable(cfg Configurator) Table {
	return Table{
		cfg:       cfg,
		emptyText: defaultEmptyText,
		layout:    defaultLayout,
	}
}

// Attributes returns a copy with the <table> attributes replaced.
func (t Table) Attributes(values Attributes) Table {
	t.attributes = values
	return t
}

// Class returns a copy with value added to the <table> class.
func (t Table) Class(value string) Table {
	t.attributes = t.attributes.WithClass(value)
	return t
}

// ShowFooter returns a copy that does or does not render <tfoot>.
func (t Table) ShowFooter(value bool) Table {
	t.showFooter = value
	return t
}

// EmptyText returns a copy with the message shown when there are no rows.
// An empty message renders padding rows instead.
func (t Table) EmptyText(value string) Table {
	t.emptyText = value
	return t
}

// HeaderAttributes returns a copy with the <thead> attributes replaced.
func (t Table) HeaderAttributes(values Attributes) Table {
	t.headerAttributes = values
	return t
}

// Layout returns a copy with the output template. "{table}" and
// "{pagination}" are replaced with the rendered table and the pagination
// markup.
func (t Table) Layout(value string) Table {
	t.layout = value
	return t
}

// RowAttributes returns a copy with the body <tr> attributes replaced.
func (t Table) RowAttributes(values Attributes) Table {
	t.rowAttributes = values
	return t
}

// RowHeaderAttributes returns a copy with the header <tr> attributes
// replaced.
func (t Table) RowHeaderAttributes(values Attributes) Table {
	t.rowHeaderAttributes = values
	return t
}

// RowFooterAttributes returns a copy with the footer <tr> attributes
// replaced.
func (t Table) RowFooterAttributes(values Attributes) Table {
	t.rowFooterAttributes = values
	return t
}

// Toolbar returns a copy with markup placed first inside <table>.
func (t Table) Toolbar(value string) Table {
	t.toolbar = value
	return t
}

// Render returns the table with the layout applied, trimmed.
func (t Table) Render() (string, error) {
	items, err := t.renderItems()
	if err != nil {
		return "", err
	}
	out := strings.NewReplacer(
		"{table}", items,
		"{pagination}", t.cfg.PaginationHTML(),
	).Replace(t.layout)
	return strings.TrimSpace(out), nil
}

func (t Table) renderItems() (string, error) {
	columns, err := t.cfg.Columns()
	if err != nil {
		return "", err
	}
	visible := visibleColumns(columns)

	body, err := t.renderBody(visible)
	if err != nil {
		return "", err
	}
	content := markup.Lines(
		t.toolbar,
		t.renderHeader(visible),
		body,
		t.renderFooter(visible),
	)
	return markup.Tag("table", content, t.attributes), nil
}

func visibleColumns(columns []KeyedColumn) []KeyedColumn {
	out := make([]KeyedColumn, 0, len(columns))
	for _, c := range columns {
		if c.Column != nil && c.Column.IsVisible() {
			out = append(out, c)
		}
	}
	return out
}

func (t Table) renderHeader(columns []KeyedColumn) string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		cells[i] = c.Column.RenderHeaderCell()
	}
	row := markup.Tag("tr", markup.Lines(cells...), t.rowHeaderAttributes)
	return markup.Tag("thead", row, t.headerAttributes)
}

// renderBody renders one <tr> per row, then pads the body to a full page
// with empty rows. Without rows it renders the empty text, if any, in a
// single cell spanning every column.
func (t Table) renderBody(columns []KeyedColumn) (string, error) {
	rows := Collect(t.cfg.Iterate())
	if err := t.cfg.Err(); err != nil {
		return "", fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 && t.emptyText != "" {
		cell := markup.Tag("td", t.emptyText, Attrs("colspan", max(len(columns), 1)))
		return markup.Tag("tbody", markup.Tag("tr", cell, t.rowAttributes), Attributes{}), nil
	}

	out := make([]string, 0, max(len(rows), t.cfg.PageSize()))
	for i, row := range rows {
		tr, err := t.renderRow(columns, row)
		if err != nil {
			return "", fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, tr)
	}
	for range t.cfg.PageSize() - len(rows) {
		out = append(out, t.emptyRow(columns))
	}
	return markup.Tag("tbody", strings.Join(out, "\n"), Attributes{}), nil
}

func (t Table) renderRow(columns []KeyedColumn, row Row) (string, error) {
	cells := make([]string, 0, len(columns))
	for _, c := range columns {
		cell, err := c.Column.RenderDataCell(row, c.Key)
		if err != nil {
			return "", err
		}
		cells = append(cells, cell)
	}
	return markup.Tag("tr", markup.Lines(cells...), t.rowAttributes), nil
}

func (t Table) emptyRow(columns []KeyedColumn) string {
	cells := make([]string, len(columns))
	for i := range columns {
		cells[i] = markup.Tag("td", "", Attributes{})
	}
	return markup.Tag("tr", strings.Join(cells, "\n"), t.rowAttributes)
}

// renderFooter returns "" unless the footer is enabled and at least one
// column has footer content.
func (t Table) renderFooter(columns []KeyedColumn) string {
	if !t.showFooter {
		return ""
	}
	var cells []string
	for _, c := range columns {
		if cell := c.Column.RenderFooterCell(); cell != "" {
			cells = append(cells, cell)
		}
	}
	if len(cells) == 0 {
		return ""
	}
	row := markup.Tag("tr", strings.Join(cells, "\n"), t.rowFooterAttributes)
	return markup.Tag("tfoot", row, Attributes{})
}
