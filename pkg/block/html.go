package block

import (
	"fmt"
	"strings"
)

// maxDepth is the nesting ceiling below which subtrees are dropped.
const maxDepth = 64

// Render converts the given sibling blocks into an HTML fragment. Rendering
// holds no state across calls and never modifies its input.
func Render(blocks Blocks) string {
	return blocks.ToHTML()
}

func (b Blocks) ToHTML() string {
	var builder strings.Builder
	blocksToHTML(b, 0, &builder)
	return builder.String()
}

func (b Block) ToHTML() string {
	return Blocks{b}.ToHTML()
}

func blocksToHTML(blocks Blocks, depth int, builder *strings.Builder) {
	if depth > maxDepth {
		return
	}

	for i := 0; i < len(blocks); {
		t := blocks[i].Type

		// Upstream delivers list items as flat siblings, so contiguous runs
		// of the same kind are collected into one list container.
		if t == TypeBulletedListItem || t == TypeNumberedListItem {
			j := i
			for j < len(blocks) && blocks[j].Type == t {
				j++
			}

			listToHTML(t, blocks[i:j], depth, builder)

			i = j
			continue
		}

		blockToHTML(blocks[i], depth, builder)
		i++
	}
}

func blockToHTML(b Block, depth int, builder *strings.Builder) {
	switch p := b.Payload.(type) {
	case Paragraph:
		paragraphToHTML(p, b, depth, builder)
	case Heading:
		headingToHTML(p, b, depth, builder)
	case ListItem:
		listToHTML(b.Type, Blocks{b}, depth, builder)
	case Code:
		codeToHTML(p, builder)
	case Quote:
		quoteToHTML(p, b, depth, builder)
	case Callout:
		calloutToHTML(p, b, depth, builder)
	case Image:
		imageToHTML(p, builder)
	case Video:
		videoToHTML(p, builder)
	case Embed:
		embedToHTML(p, builder)
	case Divider:
		builder.WriteString(`<hr class="notion-divider">`)
	case Toggle:
		toggleToHTML(p, b, depth, builder)
	case ToDo:
		toDoToHTML(p, b, depth, builder)
	case Bookmark:
		bookmarkToHTML(p, builder)
	case Table:
		tableToHTML(p, b, builder)
	case TableRow:
		// Rows are only meaningful inside their table.
	case ColumnList:
		columnListToHTML(b, depth, builder)
	case Column:
		columnToHTML(b, depth, builder)
	case Equation:
		fmt.Fprintf(builder, `<div class="notion-equation-block">%s</div>`, Escape(p.Expression))
	case TableOfContents:
		// No index is generated.
	case Unknown, nil:
	}
}

func childrenToHTML(b Block, depth int) string {
	if len(b.Children) == 0 {
		return ""
	}

	var builder strings.Builder
	blocksToHTML(b.Children, depth+1, &builder)
	return builder.String()
}

func paragraphToHTML(p Paragraph, b Block, depth int, builder *strings.Builder) {
	text := RichTextToHTML(p.RichText)
	children := childrenToHTML(b, depth)

	if text == "" && children == "" {
		builder.WriteString(`<p class="notion-paragraph">&nbsp;</p>`)
		return
	}

	fmt.Fprintf(builder, `<p class="notion-paragraph%s">%s</p>%s`, colorClass(p.Color), text, children)
}

func headingToHTML(p Heading, b Block, depth int, builder *strings.Builder) {
	level := p.Level
	if level < 1 || level > 3 {
		level = headingLevel(b.Type)
	}

	var id string
	{
		s := Slugify(PlainText(p.RichText))
		if s != "" {
			id = fmt.Sprintf(` id="%s"`, s)
		}
	}

	heading := fmt.Sprintf(`<h%d%s class="notion-h%d%s">%s</h%d>`, level, id, level, colorClass(p.Color), RichTextToHTML(p.RichText), level)

	if p.IsToggleable && len(b.Children) != 0 {
		fmt.Fprintf(builder, `<details class="notion-toggle-heading"><summary>%s</summary><div class="notion-toggle-content">%s</div></details>`, heading, childrenToHTML(b, depth))
		return
	}

	builder.WriteString(heading)
}

func listToHTML(t Type, items Blocks, depth int, builder *strings.Builder) {
	tag, class := "ul", "notion-bulleted-list"
	if t == TypeNumberedListItem {
		tag, class = "ol", "notion-numbered-list"
	}

	fmt.Fprintf(builder, `<%s class="%s">`, tag, class)

	for _, item := range items {
		p, _ := item.Payload.(ListItem)

		fmt.Fprintf(builder, `<li class="notion-list-item%s">%s%s</li>`, colorClass(p.Color), RichTextToHTML(p.RichText), childrenToHTML(item, depth))
	}

	fmt.Fprintf(builder, `</%s>`, tag)
}

func codeToHTML(p Code, builder *strings.Builder) {
	language := p.Language
	if language == "" {
		language = "plain text"
	}

	// Code is rendered from plain text so that it is escaped exactly once.
	fmt.Fprintf(builder,
		`<div class="notion-code-block"><div class="notion-code-header"><span class="notion-code-language">%s</span></div><pre><code class="language-%s">%s</code></pre>%s</div>`,
		Escape(language),
		Escape(strings.ReplaceAll(language, " ", "-")),
		Escape(PlainText(p.RichText)),
		captionToHTML(p.Caption),
	)
}

func quoteToHTML(p Quote, b Block, depth int, builder *strings.Builder) {
	fmt.Fprintf(builder, `<blockquote class="notion-quote%s"><p>%s</p>%s</blockquote>`, colorClass(p.Color), RichTextToHTML(p.RichText), childrenToHTML(b, depth))
}

func calloutToHTML(p Callout, b Block, depth int, builder *strings.Builder) {
	bg := " notion-bg-default"
	if p.Color != "" && p.Color != ColorDefault {
		bg = " notion-bg-" + Escape(p.Color)
	}

	var icon string
	if p.Icon != nil {
		switch {
		case p.Icon.Type == "emoji" && p.Icon.Emoji != "":
			icon = fmt.Sprintf(`<span class="notion-callout-icon">%s</span>`, Escape(p.Icon.Emoji))
		case p.Icon.URL() != "":
			icon = fmt.Sprintf(`<img src="%s" class="notion-callout-icon-img" alt="">`, Escape(p.Icon.URL()))
		}
	}

	fmt.Fprintf(builder, `<div class="notion-callout%s">%s<div class="notion-callout-content"><p>%s</p>%s</div></div>`, bg, icon, RichTextToHTML(p.RichText), childrenToHTML(b, depth))
}

func imageToHTML(p Image, builder *strings.Builder) {
	fmt.Fprintf(builder, `<figure class="notion-image"><img src="%s" alt="%s" loading="lazy">%s</figure>`, Escape(p.URL()), Escape(PlainText(p.Caption)), captionToHTML(p.Caption))
}

func videoToHTML(p Video, builder *strings.Builder) {
	u := p.URL()

	if id := YouTubeID(u); id != "" {
		fmt.Fprintf(builder, `<figure class="notion-video"><div class="notion-video-embed"><iframe src="https://www.youtube.com/embed/%s" frameborder="0" allowfullscreen loading="lazy"></iframe></div>%s</figure>`, id, captionToHTML(p.Caption))
		return
	}

	fmt.Fprintf(builder, `<figure class="notion-video"><video src="%s" controls preload="metadata"></video>%s</figure>`, Escape(u), captionToHTML(p.Caption))
}

func embedToHTML(p Embed, builder *strings.Builder) {
	fmt.Fprintf(builder, `<figure class="notion-embed"><iframe src="%s" frameborder="0" loading="lazy" class="notion-embed-iframe"></iframe>%s</figure>`, Escape(p.URL), captionToHTML(p.Caption))
}

func toggleToHTML(p Toggle, b Block, depth int, builder *strings.Builder) {
	fmt.Fprintf(builder, `<details class="notion-toggle"><summary class="notion-toggle-summary%s">%s</summary><div class="notion-toggle-content">%s</div></details>`, colorClass(p.Color), RichTextToHTML(p.RichText), childrenToHTML(b, depth))
}

func toDoToHTML(p ToDo, b Block, depth int, builder *strings.Builder) {
	checkbox := `<input type="checkbox" class="notion-todo-checkbox" disabled>`
	span := "<span>"
	if p.Checked {
		checkbox = `<input type="checkbox" class="notion-todo-checkbox" checked disabled>`
		span = `<span class="notion-todo-checked">`
	}

	fmt.Fprintf(builder, `<div class="notion-todo%s">%s%s%s</span>%s</div>`, colorClass(p.Color), checkbox, span, RichTextToHTML(p.RichText), childrenToHTML(b, depth))
}

func bookmarkToHTML(p Bookmark, builder *strings.Builder) {
	var caption string
	if c := RichTextToHTML(p.Caption); c != "" {
		caption = fmt.Sprintf(`<span class="notion-bookmark-caption">%s</span>`, c)
	}

	u := Escape(p.URL)
	fmt.Fprintf(builder, `<a href="%s" target="_blank" rel="noopener noreferrer" class="notion-bookmark"><span class="notion-bookmark-url">%s</span>%s</a>`, u, u, caption)
}

func tableToHTML(p Table, b Block, builder *strings.Builder) {
	if len(b.Children) == 0 {
		return
	}

	builder.WriteString(`<div class="notion-table-wrapper"><table class="notion-table">`)

	for r, row := range b.Children {
		cells, ok := row.Payload.(TableRow)
		if !ok {
			continue
		}

		builder.WriteString("<tr>")
		for c, cell := range cells.Cells {
			tag := "td"
			if (r == 0 && p.HasColumnHeader) || (c == 0 && p.HasRowHeader) {
				tag = "th"
			}

			fmt.Fprintf(builder, `<%s class="notion-table-cell">%s</%s>`, tag, RichTextToHTML(cell), tag)
		}
		builder.WriteString("</tr>")
	}

	builder.WriteString(`</table></div>`)
}

func columnListToHTML(b Block, depth int, builder *strings.Builder) {
	if len(b.Children) == 0 {
		return
	}

	builder.WriteString(`<div class="notion-columns">`)
	for _, c := range b.Children {
		if c.Type != TypeColumn {
			continue
		}

		columnToHTML(c, depth+1, builder)
	}
	builder.WriteString(`</div>`)
}

func columnToHTML(b Block, depth int, builder *strings.Builder) {
	fmt.Fprintf(builder, `<div class="notion-column">%s</div>`, childrenToHTML(b, depth))
}

func captionToHTML(caption []RichText) string {
	c := RichTextToHTML(caption)
	if c == "" {
		return ""
	}

	return fmt.Sprintf(`<figcaption class="notion-caption">%s</figcaption>`, c)
}

func colorClass(color string) string {
	if color == "" || color == ColorDefault {
		return ""
	}

	return " notion-color-" + Escape(color)
}
