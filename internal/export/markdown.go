package export

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-storefront/internal/blocks"
)

var calloutEmoji = map[blocks.CalloutVariant]string{
	blocks.CalloutInfo:    "ℹ️",
	blocks.CalloutWarning: "⚠️",
	blocks.CalloutSuccess: "✅",
	blocks.CalloutTip:     "💡",
}

// CalloutEmoji returns the emoji used for a callout variant in Markdown.
func CalloutEmoji(variant blocks.CalloutVariant) string {
	if emoji, ok := calloutEmoji[variant]; ok {
		return emoji
	}
	return calloutEmoji[blocks.CalloutInfo]
}

// Markdown serialises a document into Markdown. Unknown blocks are dropped
// and an empty document yields "".
func Markdown(doc blocks.Document) string {
	fragments := make([]string, 0, len(doc))
	for _, block := range doc {
		if fragment := MarkdownBlock(block); fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	return strings.Join(fragments, FragmentSeparator)
}

// MarkdownBlock serialises a single block, returning "" for unknown kinds
// and for lists without items.
func MarkdownBlock(block blocks.Block) string {
	switch v := block.(type) {
	case blocks.Paragraph:
		return v.Content
	case blocks.Heading:
		return strings.Repeat("#", v.Rank()) + " " + v.Content
	case blocks.Image:
		return image(v.Alt, v.Src, v.Caption)
	case blocks.GIF:
		return image(v.Alt, v.Src, v.Caption)
	case blocks.Video:
		title := v.Title
		if title == "" {
			title = "Video"
		}
		return "[" + title + "](" + v.URL + ")"
	case blocks.YouTube:
		title := v.Title
		if title == "" {
			title = "YouTube video"
		}
		return "[" + title + "](https://www.youtube.com/watch?v=" + v.VideoID + ")"
	case blocks.List:
		lines := make([]string, 0, len(v.Items))
		for i, item := range v.Items {
			marker := "-"
			if v.Ordered {
				marker = strconv.Itoa(i+1) + "."
			}
			lines = append(lines, marker+" "+item)
		}
		return strings.Join(lines, "\n")
	case blocks.LinkBlock:
		out := "[" + v.Text + "](" + v.Href + ")"
		if v.Description != "" {
			out += " - " + v.Description
		}
		return out
	case blocks.Blockquote:
		out := "> " + v.Content
		if v.Author != "" {
			out += "\n> — *" + v.Author + "*"
			if v.Source != "" {
				out += ", " + v.Source
			}
		}
		return out
	case blocks.Callout:
		tone := v.Tone()
		return "> " + CalloutEmoji(tone) + " **" + strings.ToUpper(string(tone)) + ":** " + v.Content
	case blocks.Code:
		return "```" + v.Language + "\n" + v.Content + "\n```"
	case blocks.Highlight:
		return "==" + v.Content + "=="
	case blocks.Divider:
		return "---"
	case blocks.FeatureGrid:
		lines := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			lines = append(lines, "- **"+item.Title+"**: "+item.Description)
		}
		return strings.Join(lines, "\n")
	case blocks.ComparisonTable:
		return table(v.Headers, v.Rows)
	case blocks.StyledText:
		switch v.Weight {
		case blocks.WeightBold, blocks.WeightSemibold:
			return "**" + v.Content + "**"
		default:
			return v.Content
		}
	default:
		return ""
	}
}

func image(alt, src, caption string) string {
	out := "![" + alt + "](" + src + ")"
	if caption != "" {
		out += "\n*" + caption + "*"
	}
	return out
}

func table(headers []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, tableRow(headers))
	separators := make([]string, len(headers))
	for i := range separators {
		separators[i] = "---"
	}
	lines = append(lines, tableRow(separators))
	for _, row := range rows {
		lines = append(lines, tableRow(row))
	}
	return strings.Join(lines, "\n")
}

func tableRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = strings.ReplaceAll(cell, "|", `\|`)
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}
