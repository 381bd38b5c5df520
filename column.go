package tabler

import (
	"fmt"
	"strings"

	"github.com/huandu/xstrings"
	"github.com/mattn/go-runewidth"

	"github.com/bjaus/tabler/internal/markup"
)

const defaultEmptyCell = "empty cell"

// columnBase holds the configuration every column variant shares.
type columnBase struct {
	attributes       Attributes
	emptyCell        string
	label            string
	labelText        string
	name             string
	labelAttributes  Attributes
	footer           string
	footerAttributes Attributes
	visible          bool
}

func newColumnBase() columnBase {
	return columnBase{emptyCell: defaultEmptyCell, visible: true}
}

// headerCell renders the label verbatim, or the escaped name with its first
// rune upper-cased when no label is set.
func (b columnBase) headerCell() string {
	content := b.label
	if content == "" {
		content = markup.Escape(xstrings.FirstRuneToUpper(b.name))
	}
	return markup.Tag("th", content, b.labelAttributes)
}

func (b columnBase) footerCell() string {
	content := b.footer
	if content == "" {
		content = b.emptyCell
	}
	if content == "" {
		return ""
	}
	return markup.Tag("td", content, b.footerAttributes)
}

// baseMapper is implemented by the column variants of this package so that
// commands can change shared configuration without knowing the variant.
type baseMapper interface {
	Column
	mapBase(fn func(columnBase) columnBase) Column
}

// DataColumn renders the value of one field of each row.
type DataColumn struct {
	base     columnBase
	value    Value[any]
	encode   bool
	truncate int
}

// NewDataColumn returns a column with the default empty-cell placeholder.
func NewDataColumn() DataColumn {
	return DataColumn{base: newColumnBase(), encode: true}
}

func (c DataColumn) mapBase(fn func(columnBase) columnBase) Column {
	c.base = fn(c.base)
	return c
}

// Attributes returns a copy with the data cell attributes replaced.
func (c DataColumn) Attributes(values Attributes) DataColumn {
	c.base.attributes = values
	return c
}

// Class returns a copy with value added to the data cell class attribute.
func (c DataColumn) Class(value string) DataColumn {
	c.base.attributes = c.base.attributes.WithClass(value)
	return c
}

// DataLabel returns a copy with an explicit data-label attribute.
func (c DataColumn) DataLabel(value string) DataColumn {
	c.base.attributes = c.base.attributes.With("data-label", value)
	return c
}

// EmptyCell returns a copy with the placeholder shown for empty values.
func (c DataColumn) EmptyCell(value string) DataColumn {
	c.base.emptyCell = value
	return c
}

// Encode returns a copy that does (the default) or does not HTML-escape cell
// text.
func (c DataColumn) Encode(value bool) DataColumn {
	c.encode = value
	return c
}

// Footer returns a copy with the footer content.
func (c DataColumn) Footer(value string) DataColumn {
	c.base.footer = value
	return c
}

// FooterAttributes returns a copy with the footer cell attributes replaced.
func (c DataColumn) FooterAttributes(values Attributes) DataColumn {
	c.base.footerAttributes = values
	return c
}

// Label returns a copy with the header label. Labels are markup and are not
// escaped.
func (c DataColumn) Label(value string) DataColumn {
	c.base.label = value
	c.base.labelText = ""
	return c
}

// labelMarkup sets a markup label together with its plain-text form.
func (c DataColumn) labelMarkup(label, text string) DataColumn {
	c.base.label = label
	c.base.labelText = text
	return c
}

// LabelAttributes returns a copy with the header cell attributes replaced.
func (c DataColumn) LabelAttributes(values Attributes) DataColumn {
	c.base.labelAttributes = values
	return c
}

// LabelClass returns a copy with value added to the header cell class.
func (c DataColumn) LabelClass(value string) DataColumn {
	c.base.labelAttributes = c.base.labelAttributes.WithClass(value)
	return c
}

// Name returns a copy reading the named field.
func (c DataColumn) Name(value string) DataColumn {
	c.base.name = value
	return c
}

// Truncate returns a copy that cuts cell text wider than width display
// columns, ending it with "...". Zero disables truncation.
func (c DataColumn) Truncate(width int) DataColumn {
	c.truncate = width
	return c
}

// Value returns a copy showing value instead of the field. nil clears it.
func (c DataColumn) Value(value any) DataColumn {
	if value == nil {
		c.value = Value[any]{}
		return c
	}
	c.value = Literal(value)
	return c
}

// ValueFunc returns a copy showing the result of fn instead of the field. If
// fn returns an error value, RenderDataCell fails with it.
func (c DataColumn) ValueFunc(fn Func[any]) DataColumn {
	c.value = Computed(fn)
	return c
}

// Visible returns a copy with the visibility flag set.
func (c DataColumn) Visible(value bool) DataColumn {
	c.base.visible = value
	return c
}

// IsVisible reports whether the column is rendered in rows.
func (c DataColumn) IsVisible() bool { return c.base.visible }

// RenderHeaderCell renders the <th> cell.
func (c DataColumn) RenderHeaderCell() string { return c.base.headerCell() }

// RenderFooterCell renders the footer cell, or "" without footer content.
func (c DataColumn) RenderFooterCell() string { return c.base.footerCell() }

// RenderDataCell renders the <td> cell for row. A missing field renders as
// an empty value.
func (c DataColumn) RenderDataCell(row Row, key string) (string, error) {
	if IsEmpty(row) {
		return "", nil
	}
	attrs := resolveAttributes(c.base.attributes, row, key, c)
	if !attrs.Has("data-label") && c.base.label != "" {
		attrs = attrs.With("data-label", strings.ToLower(c.base.name))
	}
	text, err := c.cellText(row, key)
	if err != nil {
		return "", fmt.Errorf("column %q: %w", key, err)
	}
	return markup.Tag("td", text, attrs), nil
}

// HeaderText returns the header label as plain text. Inferred labels and
// sort links report the text they were built from.
func (c DataColumn) HeaderText() string {
	switch {
	case c.base.labelText != "":
		return c.base.labelText
	case c.base.label == "":
		return xstrings.FirstRuneToUpper(c.base.name)
	}
	return c.base.label
}

// FooterText returns the footer content.
func (c DataColumn) FooterText() string { return c.base.footer }

// Text returns the cell text for row without HTML escaping.
func (c DataColumn) Text(row Row, key string) (string, error) {
	c.encode = false
	return c.cellText(row, key)
}

func (c DataColumn) cellText(row Row, key string) (string, error) {
	var raw any
	switch {
	case c.value.IsComputed():
		raw = c.value.Resolve(row, key, c)
		if err, ok := raw.(error); ok {
			return "", err
		}
	case c.value.IsSet():
		raw = c.value.Resolve(row, key, c)
	default:
		raw, _ = row.Field(c.base.name)
	}
	text, err := toText(raw)
	if err != nil {
		return "", err
	}
	if text == "" {
		text = c.base.emptyCell
	}
	if c.truncate > 0 && runewidth.StringWidth(text) > c.truncate {
		text = runewidth.Truncate(text, c.truncate, "...")
	}
	if c.encode {
		text = markup.Escape(text)
	}
	return text, nil
}
