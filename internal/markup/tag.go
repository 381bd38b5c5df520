package markup

import (
	"html"
	"strings"
)

// block tags place their content on its own lines.
var block = map[string]bool{
	"table": true, "thead": true, "tbody": true, "tfoot": true, "tr": true,
}

// Tag renders a complete element. Content is written as is; callers escape
// untrusted text with [Escape] first.
func Tag(name, content string, attrs Attributes) string {
	var sb strings.Builder
	sb.WriteString("<" + name + attrs.String() + ">")
	if block[name] {
		sb.WriteString("\n")
		if content != "" {
			sb.WriteString(content + "\n")
		}
	} else {
		sb.WriteString(content)
	}
	sb.WriteString("</" + name + ">")
	return sb.String()
}

// Lines joins rendered fragments with newlines, skipping empty ones.
func Lines(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}

// Escape escapes text for use as element content.
func Escape(s string) string { return html.EscapeString(s) }
