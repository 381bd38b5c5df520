package tabler

import "github.com/bjaus/tabler/internal/markup"

// DataAttribute names a data-* attribute understood by client-side action
// handlers.
type DataAttribute string

const (
	DataAction      DataAttribute = "data-action"
	DataCancelText  DataAttribute = "data-cancel-text"
	DataConfirmText DataAttribute = "data-confirm-text"
	DataIcon        DataAttribute = "data-icon"
	DataMessage     DataAttribute = "data-message"
	DataMethod      DataAttribute = "data-method"
	DataModalToggle DataAttribute = "data-modal-toggle"
	DataTitle       DataAttribute = "data-title"
)

// ButtonTypeLink renders a button column as an anchor.
const ButtonTypeLink = "link"

// ButtonColumn renders a single action control per row: an anchor styled as
// a button (the default) or a <button> element.
type ButtonColumn struct {
	base              columnBase
	content           Value[string]
	encode            bool
	contentAttributes Attributes
	contentClass      Value[string]
	href              Value[string]
}

// NewButtonColumn returns a link-type button column.
func NewButtonColumn() ButtonColumn {
	return ButtonColumn{base: newColumnBase(), encode: true}
}

func (c ButtonColumn) mapBase(fn func(columnBase) columnBase) Column {
	c.base = fn(c.base)
	return c
}

// AddDataAttribute returns a copy with a data attribute on the control.
func (c ButtonColumn) AddDataAttribute(attr DataAttribute, value any) ButtonColumn {
	c.contentAttributes = c.contentAttributes.With(string(attr), value)
	return c
}

// Attributes returns a copy with the <td> attributes replaced.
func (c ButtonColumn) Attributes(values Attributes) ButtonColumn {
	c.base.attributes = values
	return c
}

// Class returns a copy with value added to the <td> class attribute.
func (c ButtonColumn) Class(value string) ButtonColumn {
	c.base.attributes = c.base.attributes.WithClass(value)
	return c
}

// Content returns a copy with literal control content. Empty content falls
// back to the empty-cell placeholder.
func (c ButtonColumn) Content(value string) ButtonColumn {
	c.content = Literal(value)
	return c
}

// ContentFunc returns a copy whose control content is computed per row.
func (c ButtonColumn) ContentFunc(fn Func[string]) ButtonColumn {
	c.content = Computed(fn)
	return c
}

// ContentAttributes returns a copy with the control attributes replaced.
func (c ButtonColumn) ContentAttributes(values Attributes) ButtonColumn {
	c.contentAttributes = values
	return c
}

// ContentClass returns a copy with a CSS class added to the control.
func (c ButtonColumn) ContentClass(value string) ButtonColumn {
	c.contentClass = Literal(value)
	return c
}

// ContentClassFunc returns a copy whose control class is computed per row.
func (c ButtonColumn) ContentClassFunc(fn Func[string]) ButtonColumn {
	c.contentClass = Computed(fn)
	return c
}

// DataAttributes returns a copy with values added to the control attributes.
// Attributes already set on the control win.
func (c ButtonColumn) DataAttributes(values map[string]any) ButtonColumn {
	c.contentAttributes = markup.FromMap(values).Merge(c.contentAttributes)
	return c
}

// Disabled returns a copy with the disabled flag. Links render it as
// aria-disabled plus a "disabled" class.
func (c ButtonColumn) Disabled(value bool) ButtonColumn {
	c.contentAttributes = c.contentAttributes.With("disabled", value)
	return c
}

// Encode returns a copy that does (the default) or does not HTML-escape the
// control content. Disable it to pass pre-rendered markup.
func (c ButtonColumn) Encode(value bool) ButtonColumn {
	c.encode = value
	return c
}

// EmptyCell returns a copy with the placeholder used for empty content.
func (c ButtonColumn) EmptyCell(value string) ButtonColumn {
	c.base.emptyCell = value
	return c
}

// Footer returns a copy with the footer content.
func (c ButtonColumn) Footer(value string) ButtonColumn {
	c.base.footer = value
	return c
}

// FooterAttributes returns a copy with the footer cell attributes replaced.
func (c ButtonColumn) FooterAttributes(values Attributes) ButtonColumn {
	c.base.footerAttributes = values
	return c
}

// Href returns a copy linking to value. An empty value clears the link.
func (c ButtonColumn) Href(value string) ButtonColumn {
	if value == "" {
		c.href = Value[string]{}
		return c
	}
	c.href = Literal(value)
	return c
}

// HrefFunc returns a copy whose link target is computed per row.
func (c ButtonColumn) HrefFunc(fn Func[string]) ButtonColumn {
	c.href = Computed(fn)
	return c
}

// ID returns a copy with the id attribute of the <td> cell set.
func (c ButtonColumn) ID(value string) ButtonColumn {
	c.base.attributes = c.base.attributes.With("id", value)
	return c
}

// Label returns a copy with the header label.
func (c ButtonColumn) Label(value string) ButtonColumn {
	c.base.label = value
	return c
}

// LabelAttributes returns a copy with the header cell attributes replaced.
func (c ButtonColumn) LabelAttributes(values Attributes) ButtonColumn {
	c.base.labelAttributes = values
	return c
}

// LabelClass returns a copy with value added to the header cell class.
func (c ButtonColumn) LabelClass(value string) ButtonColumn {
	c.base.labelAttributes = c.base.labelAttributes.WithClass(value)
	return c
}

// Name returns a copy with the column name.
func (c ButtonColumn) Name(value string) ButtonColumn {
	c.base.name = value
	return c
}

// Type returns a copy with the control type: "link" renders an anchor, any
// other value a <button> of that type.
func (c ButtonColumn) Type(value string) ButtonColumn {
	c.contentAttributes = c.contentAttributes.With("type", value)
	return c
}

// Visible returns a copy with the visibility flag set.
func (c ButtonColumn) Visible(value bool) ButtonColumn {
	c.base.visible = value
	return c
}

// ButtonType returns the configured control type, "link" by default.
func (c ButtonColumn) ButtonType() string {
	if v, ok := c.contentAttributes.Get("type"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ButtonTypeLink
}

// HrefValue returns the configured link target.
func (c ButtonColumn) HrefValue() Value[string] { return c.href }

// HasHref reports whether a link target is configured.
func (c ButtonColumn) HasHref() bool { return c.href.IsSet() }

// IsVisible reports whether the column is rendered in rows.
func (c ButtonColumn) IsVisible() bool { return c.base.visible }

// RenderHeaderCell renders the <th> cell.
func (c ButtonColumn) RenderHeaderCell() string { return c.base.headerCell() }

// RenderFooterCell renders the footer cell, or "" without footer content.
func (c ButtonColumn) RenderFooterCell() string { return c.base.footerCell() }

// RenderDataCell renders the control wrapped in a <td>.
func (c ButtonColumn) RenderDataCell(row Row, key string) (string, error) {
	if IsEmpty(row) {
		return "", nil
	}
	return markup.Tag("td", c.renderControl(row, key), resolveAttributes(c.base.attributes, row, key, c)), nil
}

// renderControl renders the anchor or button without a surrounding cell.
func (c ButtonColumn) renderControl(row Row, key string) string {
	typ := c.ButtonType()
	attrs := c.contentAttributes.With("type", typ)

	content := c.content.Resolve(row, key, c)
	if content == "" {
		content = c.base.emptyCell
	}
	if c.encode {
		content = markup.Escape(content)
	}
	if c.href.IsSet() {
		attrs = attrs.With("href", c.href.Resolve(row, key, c))
	}
	attrs = resolveAttributes(attrs, row, key, c)
	attrs = attrs.WithClass(c.contentClass.Resolve(row, key, c))

	if typ != ButtonTypeLink {
		return markup.Tag("button", content, attrs)
	}

	attrs = attrs.Without("type").With("role", "button")
	if disabled, ok := attrs.Get("disabled"); ok {
		if b, isBool := disabled.(bool); isBool && b {
			attrs = attrs.WithClass("disabled").With("aria-disabled", "true").Without("disabled")
		}
	}
	return markup.Tag("a", content, attrs)
}
