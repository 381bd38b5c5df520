package tabler

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/bjaus/tabler/internal/markup"
)

// Action binds a CRUD button name to the route segment used in its href.
// An empty Route uses Name.
type Action struct {
	Name  string
	Route string
}

func (a Action) route() string {
	if a.Route == "" {
		return a.Name
	}
	return a.Route
}

// DefaultActions are the actions a new [CrudColumn] renders.
var DefaultActions = []Action{
	{Name: "delete"},
	{Name: "update"},
	{Name: "view"},
}

var defaultGlyphs = map[string]string{
	"delete": "<span>🗑</span>",
	"update": "<span>✎</span>",
	"view":   "<span>🔎</span>",
}

// CrudColumn renders one cell holding a link per configured action, each
// pointing at urlPath/route/primaryKey.
type CrudColumn struct {
	base              columnBase
	actions           []Action
	actionsAttributes map[string]Attributes
	buttons           map[string]ButtonColumn
	primaryKey        string
	urlPath           string
}

// NewCrudColumn returns a column with the delete, update and view actions
// keyed by the "id" field.
func NewCrudColumn() CrudColumn {
	return CrudColumn{
		base:       newColumnBase(),
		actions:    slices.Clone(DefaultActions),
		primaryKey: "id",
	}
}

func (c CrudColumn) mapBase(fn func(columnBase) columnBase) Column {
	c.base = fn(c.base)
	return c
}

// Actions returns a copy rendering actions in the given order.
func (c CrudColumn) Actions(actions ...Action) CrudColumn {
	c.actions = slices.Clone(actions)
	return c
}

// ActionNames is Actions for actions whose route equals their name.
func (c CrudColumn) ActionNames(names ...string) CrudColumn {
	actions := make([]Action, len(names))
	for i, name := range names {
		actions[i] = Action{Name: name}
	}
	c.actions = actions
	return c
}

// ActionsAttributes returns a copy with the per-action control attributes
// replaced. They apply to the default buttons only.
func (c CrudColumn) ActionsAttributes(values map[string]Attributes) CrudColumn {
	c.actionsAttributes = maps.Clone(values)
	return c
}

// AddActionClass returns a copy with the class attribute of action's default
// button set to value.
func (c CrudColumn) AddActionClass(action, value string) CrudColumn {
	return c.withActionAttribute(action, "class", value)
}

// AddDataAttribute returns a copy with a data attribute on action's default
// button.
func (c CrudColumn) AddDataAttribute(action string, attr DataAttribute, value string) CrudColumn {
	return c.withActionAttribute(action, string(attr), value)
}

func (c CrudColumn) withActionAttribute(action, name string, value any) CrudColumn {
	attrs := maps.Clone(c.actionsAttributes)
	if attrs == nil {
		attrs = make(map[string]Attributes)
	}
	attrs[action] = attrs[action].With(name, value)
	c.actionsAttributes = attrs
	return c
}

// AddButtonColumn returns a copy rendering button for the named action
// instead of the default one.
func (c CrudColumn) AddButtonColumn(name string, button ButtonColumn) CrudColumn {
	buttons := maps.Clone(c.buttons)
	if buttons == nil {
		buttons = make(map[string]ButtonColumn)
	}
	buttons[name] = button
	c.buttons = buttons
	return c
}

// Attributes returns a copy with the <td> attributes replaced.
func (c CrudColumn) Attributes(values Attributes) CrudColumn {
	c.base.attributes = values
	return c
}

// Buttons returns a copy with the custom buttons replaced.
func (c CrudColumn) Buttons(values map[string]ButtonColumn) CrudColumn {
	c.buttons = maps.Clone(values)
	return c
}

// Class returns a copy with value added to the <td> class attribute.
func (c CrudColumn) Class(value string) CrudColumn {
	c.base.attributes = c.base.attributes.WithClass(value)
	return c
}

// EmptyCell returns a copy with the placeholder for the footer cell.
func (c CrudColumn) EmptyCell(value string) CrudColumn {
	c.base.emptyCell = value
	return c
}

// Footer returns a copy with the footer content.
func (c CrudColumn) Footer(value string) CrudColumn {
	c.base.footer = value
	return c
}

// FooterAttributes returns a copy with the footer cell attributes replaced.
func (c CrudColumn) FooterAttributes(values Attributes) CrudColumn {
	c.base.footerAttributes = values
	return c
}

// Label returns a copy with the header label.
func (c CrudColumn) Label(value string) CrudColumn {
	c.base.label = value
	return c
}

// LabelAttributes returns a copy with the header cell attributes replaced.
func (c CrudColumn) LabelAttributes(values Attributes) CrudColumn {
	c.base.labelAttributes = values
	return c
}

// LabelClass returns a copy with value added to the header cell class.
func (c CrudColumn) LabelClass(value string) CrudColumn {
	c.base.labelAttributes = c.base.labelAttributes.WithClass(value)
	return c
}

// Name returns a copy with the column name.
func (c CrudColumn) Name(value string) CrudColumn {
	c.base.name = value
	return c
}

// PrimaryKey returns a copy reading the href identifier from field.
func (c CrudColumn) PrimaryKey(field string) CrudColumn {
	c.primaryKey = field
	return c
}

// URLPath returns a copy prefixing generated hrefs with path.
func (c CrudColumn) URLPath(path string) CrudColumn {
	c.urlPath = strings.TrimSuffix(path, "/")
	return c
}

// Visible returns a copy with the visibility flag set.
func (c CrudColumn) Visible(value bool) CrudColumn {
	c.base.visible = value
	return c
}

// IsVisible reports whether the column is rendered in rows.
func (c CrudColumn) IsVisible() bool { return c.base.visible }

// RenderHeaderCell renders the <th> cell.
func (c CrudColumn) RenderHeaderCell() string { return c.base.headerCell() }

// RenderFooterCell renders the footer cell, or "" without footer content.
func (c CrudColumn) RenderFooterCell() string { return c.base.footerCell() }

// RenderDataCell renders every configured action that has a button, in
// action order, inside a single <td>. It returns "" for the empty row or
// when no action has a button.
func (c CrudColumn) RenderDataCell(row Row, key string) (string, error) {
	if IsEmpty(row) {
		return "", nil
	}
	buttons := c.buttonsFor()

	var (
		sb strings.Builder
		pk string
	)
	for _, action := range c.actions {
		button, ok := buttons[action.Name]
		if !ok {
			continue
		}
		if button.ButtonType() == ButtonTypeLink && !button.HasHref() {
			if pk == "" {
				var err error
				if pk, err = c.primaryKeyOf(row); err != nil {
					return "", err
				}
			}
			button = button.Href(c.urlPath + "/" + action.route() + "/" + url.PathEscape(pk))
		}
		sb.WriteString(button.renderControl(row, key))
	}
	if sb.Len() == 0 {
		return "", nil
	}
	return markup.Tag("td", sb.String(), resolveAttributes(c.base.attributes, row, key, c)), nil
}

func (c CrudColumn) primaryKeyOf(row Row) (string, error) {
	v, ok := row.Field(c.primaryKey)
	if !ok {
		return "", fmt.Errorf("%w: primary key %q", ErrMissingField, c.primaryKey)
	}
	s, err := toText(v)
	if err != nil {
		return "", fmt.Errorf("primary key %q: %w", c.primaryKey, err)
	}
	return s, nil
}

// buttonsFor returns the custom buttons plus a default button for every
// known action without one.
func (c CrudColumn) buttonsFor() map[string]ButtonColumn {
	buttons := make(map[string]ButtonColumn, len(c.actions))
	maps.Copy(buttons, c.buttons)
	for _, action := range c.actions {
		if _, ok := buttons[action.Name]; ok {
			continue
		}
		glyph, ok := defaultGlyphs[action.Name]
		if !ok {
			continue
		}
		buttons[action.Name] = NewButtonColumn().
			Content(glyph).
			Encode(false).
			ContentAttributes(c.actionsAttributes[action.Name]).
			Label(action.Name).
			Type(ButtonTypeLink)
	}
	return buttons
}
