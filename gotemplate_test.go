package tabler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tabler"
)

func TestTemplateValue(t *testing.T) {
	t.Parallel()
	row := tabler.NewRecord("first", "Ada", "last", "Lovelace", "year", 1815)
	tests := map[string]struct {
		tmpl string
		want string
	}{
		"fields":    {tmpl: "{{.first}} {{.last}}", want: "Ada Lovelace"},
		"printf":    {tmpl: `{{printf "%05d" .year}}`, want: "01815"},
		"condition": {tmpl: `{{if .first}}yes{{else}}no{{end}}`, want: "yes"},
		"literal":   {tmpl: "static", want: "static"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			fn, err := tabler.TemplateValue(tt.tmpl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fn(row, "k", nil))
		})
	}
}

func TestTemplateValueParseError(t *testing.T) {
	t.Parallel()
	_, err := tabler.TemplateValue("{{.first")
	assert.ErrorIs(t, err, tabler.ErrInvalidTemplate)
}

func TestTemplateValueExecuteError(t *testing.T) {
	t.Parallel()
	fn, err := tabler.TemplateValue("{{.first.nope}}")
	require.NoError(t, err)

	col := tabler.NewDataColumn().Name("first").ValueFunc(fn)
	_, err = col.RenderDataCell(tabler.NewRecord("first", "Ada"), "first")
	assert.ErrorContains(t, err, "execute template")
}
