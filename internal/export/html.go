package export

import (
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-storefront/internal/blocks"
)

// FragmentSeparator joins serialised blocks in both output formats.
const FragmentSeparator = "\n\n"

// HTML serialises a document into standalone HTML for pasting into an
// external CMS. Each block maps to exactly one fragment; unknown blocks are
// dropped. The output is identical for identical input.
func HTML(doc blocks.Document) string {
	fragments := make([]string, 0, len(doc))
	for _, block := range doc {
		if fragment := HTMLBlock(block); fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	return strings.Join(fragments, FragmentSeparator)
}

// HTMLBlock serialises a single block, returning "" for unknown kinds.
func HTMLBlock(block blocks.Block) string {
	var b strings.Builder
	switch v := block.(type) {
	case blocks.Paragraph:
		b.WriteString("<p>" + v.Content + "</p>")
	case blocks.Heading:
		tag := "h" + strconv.Itoa(v.Rank())
		b.WriteString("<" + tag)
		if v.ID != "" {
			b.WriteString(` id="` + attr(v.ID) + `"`)
		}
		b.WriteString(">" + v.Content + "</" + tag + ">")
	case blocks.Image:
		class := ""
		if v.FullWidth {
			class = ` class="full-width"`
		}
		b.WriteString("<figure" + class + `><img src="` + attr(v.Src) + `" alt="` + attr(v.Alt) + `" loading="lazy">`)
		if v.Caption != "" {
			b.WriteString("<figcaption>" + v.Caption + "</figcaption>")
		}
		b.WriteString("</figure>")
	case blocks.Video:
		b.WriteString(`<video src="` + attr(v.URL) + `" data-aspect-ratio="` + attr(string(v.Ratio())) + `"`)
		if v.Title != "" {
			b.WriteString(` title="` + attr(v.Title) + `"`)
		}
		b.WriteString(` controls preload="none"></video>`)
	case blocks.YouTube:
		title := v.Title
		if title == "" {
			title = "YouTube video"
		}
		b.WriteString(`<iframe src="https://www.youtube.com/embed/` + attr(v.VideoID) + `" title="` + attr(title) + `" loading="lazy" allowfullscreen></iframe>`)
	case blocks.GIF:
		b.WriteString(`<figure><img src="` + attr(v.Src) + `" alt="` + attr(v.Alt) + `" loading="lazy">`)
		if v.Caption != "" {
			b.WriteString("<figcaption>" + v.Caption + "</figcaption>")
		}
		b.WriteString("</figure>")
	case blocks.List:
		tag := "ul"
		if v.Ordered {
			tag = "ol"
		}
		b.WriteString("<" + tag + ">")
		for _, item := range v.Items {
			b.WriteString("<li>" + item + "</li>")
		}
		b.WriteString("</" + tag + ">")
	case blocks.LinkBlock:
		b.WriteString(`<p class="link-block"><a href="` + attr(v.Href) + `"`)
		if v.External {
			b.WriteString(` target="_blank" rel="noopener noreferrer"`)
		}
		b.WriteString(">" + html.EscapeString(v.Text) + "</a>")
		if v.Description != "" {
			b.WriteString("<br>" + v.Description)
		}
		b.WriteString("</p>")
	case blocks.Blockquote:
		b.WriteString("<blockquote><p>" + v.Content + "</p>")
		if v.Author != "" {
			b.WriteString("<footer>— <cite>" + html.EscapeString(v.Author) + "</cite>")
			if v.Source != "" {
				b.WriteString(", " + html.EscapeString(v.Source))
			}
			b.WriteString("</footer>")
		}
		b.WriteString("</blockquote>")
	case blocks.Callout:
		b.WriteString(`<div class="callout callout-` + attr(string(v.Tone())) + `">`)
		if v.Title != "" {
			b.WriteString("<strong>" + html.EscapeString(v.Title) + "</strong>")
		}
		b.WriteString("<p>" + v.Content + "</p></div>")
	case blocks.Code:
		b.WriteString("<pre><code")
		if v.Language != "" {
			b.WriteString(` class="language-` + attr(v.Language) + `"`)
		}
		b.WriteString(">" + html.EscapeString(v.Content) + "</code></pre>")
	case blocks.Highlight:
		b.WriteString(`<p><mark class="highlight-` + attr(string(v.Tone())) + `">` + v.Content + "</mark></p>")
	case blocks.Divider:
		b.WriteString(`<hr class="divider-` + attr(string(v.Line())) + `">`)
	case blocks.FeatureGrid:
		b.WriteString(`<div class="feature-grid">`)
		for _, item := range v.Items {
			b.WriteString(`<div class="feature">`)
			if item.Icon != "" {
				b.WriteString(`<span class="feature-icon" data-icon="` + attr(item.Icon) + `"></span>`)
			}
			b.WriteString("<h4>" + html.EscapeString(item.Title) + "</h4><p>" + item.Description + "</p></div>")
		}
		b.WriteString("</div>")
	case blocks.ComparisonTable:
		b.WriteString("<table><thead><tr>")
		for _, header := range v.Headers {
			b.WriteString("<th>" + header + "</th>")
		}
		b.WriteString("</tr></thead><tbody>")
		for _, row := range v.Rows {
			b.WriteString("<tr>")
			for _, cell := range row {
				b.WriteString("<td>" + cell + "</td>")
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")
	case blocks.StyledText:
		classes := []string{"styled-text"}
		for _, token := range []string{
			prefixed("font-", string(v.Font)),
			prefixed("text-", string(v.Size)),
			prefixed("color-", string(v.Color)),
			prefixed("weight-", string(v.Weight)),
		} {
			if token != "" {
				classes = append(classes, token)
			}
		}
		b.WriteString(`<p class="` + attr(strings.Join(classes, " ")) + `">` + v.Content + "</p>")
	default:
		return ""
	}
	return b.String()
}

func attr(value string) string {
	return html.EscapeString(value)
}

func prefixed(prefix, value string) string {
	if value == "" {
		return ""
	}
	return prefix + value
}
