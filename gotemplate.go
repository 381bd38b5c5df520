package tabler

import (
	"fmt"
	"strings"
	"text/template"
)

// TemplateValue compiles tmpl into a [Func] that executes it against each row,
// with the row's fields as a map:
//
//	fn, err := tabler.TemplateValue("{{.first}} {{.last}}")
//	col := tabler.NewDataColumn().Name("full_name").ValueFunc(fn)
//
// Execution failures are returned as the computed value; [DataColumn]
// reports them from RenderDataCell.
func TemplateValue(tmpl string) (Func[any], error) {
	t, err := template.New("").Option("missingkey=zero").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	return func(row Row, _ string, _ Column) any {
		var sb strings.Builder
		if err := t.Execute(&sb, rowMap(row)); err != nil {
			return fmt.Errorf("execute template: %w", err)
		}
		return sb.String()
	}, nil
}
