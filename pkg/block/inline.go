package block

import (
	"fmt"
	"strings"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape replaces the characters that are significant in HTML text and
// attribute values.
func Escape(s string) string {
	return escaper.Replace(s)
}

// RichTextToHTML renders spans in order without separators. Text is escaped
// before any markup is wrapped around it.
func RichTextToHTML(spans []RichText) string {
	var builder strings.Builder
	for _, s := range spans {
		spanToHTML(s, &builder)
	}
	return builder.String()
}

func spanToHTML(s RichText, builder *strings.Builder) {
	if s.Kind == KindEquation {
		fmt.Fprintf(builder, `<span class="notion-equation">%s</span>`, Escape(s.Expression))
		return
	}

	text := strings.ReplaceAll(Escape(s.PlainText), "\n", "<br>")

	if s.Href != "" {
		text = fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer" class="notion-link">%s</a>`, Escape(s.Href), text)
	}

	a := s.Annotations
	if a.Code {
		text = `<code class="notion-inline-code">` + text + `</code>`
	}
	if a.Bold {
		text = "<strong>" + text + "</strong>"
	}
	if a.Italic {
		text = "<em>" + text + "</em>"
	}
	if a.Underline {
		text = "<u>" + text + "</u>"
	}
	if a.Strikethrough {
		text = "<s>" + text + "</s>"
	}
	if a.Color != "" && a.Color != ColorDefault {
		text = fmt.Sprintf(`<span class="notion-color-%s">%s</span>`, Escape(a.Color), text)
	}

	builder.WriteString(text)
}
