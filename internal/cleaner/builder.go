package cleaner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/itchyny/gojq"
)

// widgetQuery lists the builder widgets that carry markup, with the HTML
// fragments found in their settings.
const widgetQuery = `[
  .. | objects | select(.elType? == "widget")
  | {
      id: (.id // "" | tostring),
      type: (.widgetType // "" | tostring),
      parts: [
        .settings? | objects
        | (.title?, .editor?, .html?, .description_text?, (.tabs[]? | objects | .tab_title?, .tab_content?))
        | strings | select(length > 0)
      ]
    }
  | select(.parts | length > 0)
]`

var widgetCode = mustCompile(widgetQuery)

func mustCompile(src string) *gojq.Code {
	q, err := gojq.Parse(src)
	if err != nil {
		panic(fmt.Sprintf("builder query: %v", err))
	}
	code, err := gojq.Compile(q)
	if err != nil {
		panic(fmt.Sprintf("builder query: %v", err))
	}
	return code
}

// BuilderHTML turns the builder raw payload into searchable HTML. The
// payload is either Elementor JSON (possibly wrapped in a JSON string) or
// plain HTML. Each widget becomes a div carrying the builder classes and
// data-id, so that builder selectors keep working. Heading widgets render
// their title as an h2, like the builder front end does, and the widgets
// share one section.
func BuilderHTML(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return BuilderHTML([]byte(s))
	case '[', '{':
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return ""
		}
		return widgetsHTML(v)
	default:
		return string(raw)
	}
}

func widgetsHTML(v any) string {
	iter := widgetCode.Run(v)
	out, ok := iter.Next()
	if !ok {
		return ""
	}
	if _, isErr := out.(error); isErr {
		return ""
	}
	widgets, _ := out.([]any)
	if len(widgets) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<section class="elementor-section">` + "\n")
	for _, w := range widgets {
		m, _ := w.(map[string]any)
		id, _ := m["id"].(string)
		typ, _ := m["type"].(string)
		parts, _ := m["parts"].([]any)
		fmt.Fprintf(&b, `<div class="elementor-element elementor-widget elementor-widget-%s" data-id="%s" data-widget_type="%s">`,
			html.EscapeString(typ), html.EscapeString(id), html.EscapeString(typ))
		for _, p := range parts {
			s, _ := p.(string)
			if typ == "heading" {
				s = `<h2 class="elementor-heading-title">` + s + "</h2>"
			}
			b.WriteString(s)
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</section>")
	return b.String()
}
