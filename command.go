package tabler

import (
	"fmt"
)

// Command is one configuration step for a column. The set of commands is
// closed; [Apply] folds them over a column value.
type Command interface {
	apply(col Column) (Column, error)
	// Method is the declarative name of the command, e.g. "label()".
	Method() string
}

// Apply returns col with every command applied in order. col itself is left
// unchanged. A command that does not fit the column variant fails with
// [ErrUnsupportedCommand].
func Apply(col Column, cmds ...Command) (Column, error) {
	for _, cmd := range cmds {
		next, err := cmd.apply(col)
		if err != nil {
			return col, fmt.Errorf("%s: %w", cmd.Method(), err)
		}
		col = next
	}
	return col, nil
}

func unsupported(col Column) error {
	return fmt.Errorf("%w for %T", ErrUnsupportedCommand, col)
}

func mapBase(col Column, fn func(columnBase) columnBase) (Column, error) {
	m, ok := col.(baseMapper)
	if !ok {
		return nil, unsupported(col)
	}
	return m.mapBase(fn), nil
}

// SetLabel sets the header label.
type SetLabel string

func (SetLabel) Method() string { return "label()" }

func (c SetLabel) apply(col Column) (Column, error) {
	return mapBase(col, func(b columnBase) columnBase { b.label, b.labelText = string(c), ""; return b })
}

// SetName sets the column name.
type SetName string

func (SetName) Method() string { return "name()" }

func (c SetName) apply(col Column) (Column, error) {
	return mapBase(col, func(b columnBase) columnBase { b.name = string(c); return b })
}

// SetVisible sets the visibility flag.
type SetVisible bool

func (SetVisible) Method() string { return "visible()" }

func (c SetVisible) apply(col Column) (Column, error) {
	return mapBase(col, func(b columnBase) columnBase { b.visible = bool(c); return b })
}

// SetEmptyCell sets the empty-cell placeholder.
type SetEmptyCell string

func (SetEmptyCell) Method() string { return "emptyCell()" }

func (c SetEmptyCell) apply(col Column) (Column, error) {
	return mapBase(col, func(b columnBase) columnBase { b.emptyCell = string(c); return b })
}

// SetFooter sets the footer content.
type SetFooter string

func (SetFooter) Method() string { return "footer()" }

func (c SetFooter) apply(col Column) (Column, error) {
	return mapBase(col, func(b columnBase) columnBase { b.footer = string(c); return b })
}

// SetFooterAttributes replaces the footer cell attributes.
type SetFooterAttributes struct{ Attributes Attributes }

func (SetFooterAttributes) Method() string { return "footerAttributes()" }

func (c SetFooterAttributes) apply(col Column) (Column, error) {
	return mapBase(col, func(b columnBase) columnBase { b.footerAttributes = c.Attributes; return b })
}

// SetLabelAttributes replaces the header cell attributes.
type SetLabelAttributes struct{ Attributes Attributes }

func (SetLabelAttributes) Method() string { return "labelAttributes()" }

func (c SetLabelAttributes) apply(col Column) (Column, error) {
	return mapBase(col, func(b columnBase) columnBase { b.labelAttributes = c.Attributes; return b })
}

// SetAttributes replaces the data cell attributes.
type SetAttributes struct{ Attributes Attributes }

func (SetAttributes) Method() string { return "attributes()" }

func (c SetAttributes) apply(col Column) (Column, error) {
	return mapBase(col, func(b columnBase) columnBase { b.attributes = c.Attributes; return b })
}

// AddClass adds CSS classes to the data cell.
type AddClass string

func (AddClass) Method() string { return "class()" }

func (c AddClass) apply(col Column) (Column, error) {
	return mapBase(col, func(b columnBase) columnBase { b.attributes = b.attributes.WithClass(string(c)); return b })
}

// AddLabelClass adds CSS classes to the header cell.
type AddLabelClass string

func (AddLabelClass) Method() string { return "labelClass()" }

func (c AddLabelClass) apply(col Column) (Column, error) {
	return mapBase(col, func(b columnBase) columnBase {
		b.labelAttributes = b.labelAttributes.WithClass(string(c))
		return b
	})
}

// SetValue sets a literal cell value on a [DataColumn].
type SetValue struct{ Value any }

func (SetValue) Method() string { return "value()" }

func (c SetValue) apply(col Column) (Column, error) {
	d, ok := col.(DataColumn)
	if !ok {
		return nil, unsupported(col)
	}
	return d.Value(c.Value), nil
}

// SetValueTemplate computes a [DataColumn] value from a text/template
// executed against each row.
type SetValueTemplate string

func (SetValueTemplate) Method() string { return "valueTemplate()" }

func (c SetValueTemplate) apply(col Column) (Column, error) {
	d, ok := col.(DataColumn)
	if !ok {
		return nil, unsupported(col)
	}
	fn, err := TemplateValue(string(c))
	if err != nil {
		return nil, err
	}
	return d.ValueFunc(fn), nil
}

// SetDataLabel sets the data-label attribute of a [DataColumn].
type SetDataLabel string

func (SetDataLabel) Method() string { return "dataLabel()" }

func (c SetDataLabel) apply(col Column) (Column, error) {
	d, ok := col.(DataColumn)
	if !ok {
		return nil, unsupported(col)
	}
	return d.DataLabel(string(c)), nil
}

// SetEncode toggles escaping on a [DataColumn] or [ButtonColumn].
type SetEncode bool

func (SetEncode) Method() string { return "encode()" }

func (c SetEncode) apply(col Column) (Column, error) {
	switch v := col.(type) {
	case DataColumn:
		return v.Encode(bool(c)), nil
	case ButtonColumn:
		return v.Encode(bool(c)), nil
	}
	return nil, unsupported(col)
}

// SetTruncate sets the truncation width of a [DataColumn].
type SetTruncate int

func (SetTruncate) Method() string { return "truncate()" }

func (c SetTruncate) apply(col Column) (Column, error) {
	d, ok := col.(DataColumn)
	if !ok {
		return nil, unsupported(col)
	}
	return d.Truncate(int(c)), nil
}

// SetContent sets the content of a [ButtonColumn].
type SetContent string

func (SetContent) Method() string { return "content()" }

func (c SetContent) apply(col Column) (Column, error) {
	b, ok := col.(ButtonColumn)
	if !ok {
		return nil, unsupported(col)
	}
	return b.Content(string(c)), nil
}

// SetContentClass sets the control class of a [ButtonColumn].
type SetContentClass string

func (SetContentClass) Method() string { return "contentClass()" }

func (c SetContentClass) apply(col Column) (Column, error) {
	b, ok := col.(ButtonColumn)
	if !ok {
		return nil, unsupported(col)
	}
	return b.ContentClass(string(c)), nil
}

// SetContentAttributes replaces the control attributes of a [ButtonColumn].
type SetContentAttributes struct{ Attributes Attributes }

func (SetContentAttributes) Method() string { return "contentAttributes()" }

func (c SetContentAttributes) apply(col Column) (Column, error) {
	b, ok := col.(ButtonColumn)
	if !ok {
		return nil, unsupported(col)
	}
	return b.ContentAttributes(c.Attributes), nil
}

// SetHref sets the link target of a [ButtonColumn].
type SetHref string

func (SetHref) Method() string { return "href()" }

func (c SetHref) apply(col Column) (Column, error) {
	b, ok := col.(ButtonColumn)
	if !ok {
		return nil, unsupported(col)
	}
	return b.Href(string(c)), nil
}

// SetType sets the control type of a [ButtonColumn].
type SetType string

func (SetType) Method() string { return "type()" }

func (c SetType) apply(col Column) (Column, error) {
	b, ok := col.(ButtonColumn)
	if !ok {
		return nil, unsupported(col)
	}
	return b.Type(string(c)), nil
}

// SetDisabled sets the disabled flag of a [ButtonColumn].
type SetDisabled bool

func (SetDisabled) Method() string { return "disabled()" }

func (c SetDisabled) apply(col Column) (Column, error) {
	b, ok := col.(ButtonColumn)
	if !ok {
		return nil, unsupported(col)
	}
	return b.Disabled(bool(c)), nil
}

// SetActions sets the actions of a [CrudColumn].
type SetActions []Action

func (SetActions) Method() string { return "actions()" }

func (c SetActions) apply(col Column) (Column, error) {
	v, ok := col.(CrudColumn)
	if !ok {
		return nil, unsupported(col)
	}
	return v.Actions(c...), nil
}

// SetPrimaryKey sets the primary key field of a [CrudColumn].
type SetPrimaryKey string

func (SetPrimaryKey) Method() string { return "primaryKey()" }

func (c SetPrimaryKey) apply(col Column) (Column, error) {
	v, ok := col.(CrudColumn)
	if !ok {
		return nil, unsupported(col)
	}
	return v.PrimaryKey(string(c)), nil
}

// SetURLPath sets the href prefix of a [CrudColumn].
type SetURLPath string

func (SetURLPath) Method() string { return "urlPath()" }

func (c SetURLPath) apply(col Column) (Column, error) {
	v, ok := col.(CrudColumn)
	if !ok {
		return nil, unsupported(col)
	}
	return v.URLPath(string(c)), nil
}
