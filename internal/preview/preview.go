// Package preview renders note content as HTML for display surfaces.
// The store itself never interprets content; rendering is strictly a
// presentation concern layered on top.
package preview

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
)

// HTML converts Markdown note content to HTML. Content that fails to
// convert is returned escaped rather than erroring, since a preview
// should degrade, not break the page.
func HTML(content string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return "<pre>" + html.EscapeString(content) + "</pre>"
	}
	return buf.String()
}
