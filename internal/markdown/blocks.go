package markdown

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var (
	alertPattern       = regexp.MustCompile(`^\s*\[!([A-Za-z]+)\]\s*`)
	attributionPattern = regexp.MustCompile(`^\s*(?:—|--)\s*`)
)

var alertVariants = map[string]blocks.CalloutVariant{
	"NOTE":      blocks.CalloutInfo,
	"IMPORTANT": blocks.CalloutInfo,
	"TIP":       blocks.CalloutTip,
	"SUCCESS":   blocks.CalloutSuccess,
	"WARNING":   blocks.CalloutWarning,
	"CAUTION":   blocks.CalloutWarning,
}

// Converter turns Markdown into a block document.
type Converter struct {
	engine goldmark.Markdown
}

// NewConverter builds a converter over a goldmark engine configured by opts.
// Tables only become comparison-table blocks when the table (or gfm)
// extension is enabled.
func NewConverter(opts ParseOptions) *Converter {
	return &Converter{engine: newGoldmarkEngine(opts)}
}

var defaultConverter = NewConverter(ParseOptions{})

// ToBlocks converts source with the default GFM converter.
func ToBlocks(source []byte) (blocks.Document, error) {
	return defaultConverter.Convert(source)
}

// Convert maps top level Markdown nodes onto blocks. Headings are clamped to
// levels 2..4, thematic breaks become dividers, GFM tables become comparison
// tables, paragraphs holding a single image, video or YouTube link become
// media blocks, and "> [!NOTE]" style quotes become callouts.
func (c *Converter) Convert(source []byte) (blocks.Document, error) {
	root := c.engine.Parser().Parse(text.NewReader(source))
	doc := blocks.Document{}
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		block, err := c.convertNode(node, source)
		if err != nil {
			return nil, err
		}
		if block != nil {
			doc = append(doc, block)
		}
	}
	return doc, nil
}

func (c *Converter) convertNode(node ast.Node, source []byte) (blocks.Block, error) {
	switch n := node.(type) {
	case *ast.Heading:
		content, err := c.inline(n, source)
		if err != nil {
			return nil, err
		}
		heading := blocks.Heading{Level: clampHeading(n.Level), Content: content}
		if id, ok := n.AttributeString("id"); ok {
			if raw, ok := id.([]byte); ok {
				heading.ID = string(raw)
			}
		}
		return heading, nil

	case *ast.Paragraph:
		if media := mediaBlock(n, source); media != nil {
			return media, nil
		}
		content, err := c.inline(n, source)
		if err != nil {
			return nil, err
		}
		return blocks.Paragraph{Content: content}, nil

	case *ast.List:
		items := []string{}
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			content, err := c.itemContent(item, source)
			if err != nil {
				return nil, err
			}
			items = append(items, content)
		}
		return blocks.List{Items: items, Ordered: n.IsOrdered()}, nil

	case *ast.FencedCodeBlock:
		return blocks.Code{
			Language: string(n.Language(source)),
			Content:  strings.TrimSuffix(linesOf(n, source), "\n"),
		}, nil

	case *ast.CodeBlock:
		return blocks.Code{Content: strings.TrimSuffix(linesOf(n, source), "\n")}, nil

	case *ast.Blockquote:
		return c.quote(n, source)

	case *ast.ThematicBreak:
		return blocks.Divider{Style: blocks.DividerSolid}, nil

	case *ast.HTMLBlock:
		content := strings.TrimSpace(linesOf(n, source))
		if content == "" {
			return nil, nil
		}
		return blocks.Paragraph{Content: content}, nil

	case *east.Table:
		return c.table(n, source)
	}
	return nil, nil
}

func (c *Converter) quote(node *ast.Blockquote, source []byte) (blocks.Block, error) {
	var parts []string
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		content, err := c.inline(child, source)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(content) != "" {
			parts = append(parts, content)
		}
	}
	if len(parts) == 0 {
		return blocks.Blockquote{}, nil
	}

	if match := alertPattern.FindStringSubmatch(parts[0]); match != nil {
		if variant, ok := alertVariants[strings.ToUpper(match[1])]; ok {
			parts[0] = strings.TrimSpace(parts[0][len(match[0]):])
			if parts[0] == "" {
				parts = parts[1:]
			}
			return blocks.Callout{Variant: variant, Content: strings.Join(parts, " ")}, nil
		}
	}

	quote := blocks.Blockquote{}
	if last := parts[len(parts)-1]; len(parts) > 1 && attributionPattern.MatchString(last) {
		attribution := attributionPattern.ReplaceAllString(last, "")
		author, src, _ := strings.Cut(attribution, ",")
		quote.Author = strings.TrimSpace(author)
		quote.Source = strings.TrimSpace(src)
		parts = parts[:len(parts)-1]
	}
	quote.Content = strings.Join(parts, " ")
	return quote, nil
}

func (c *Converter) table(node *east.Table, source []byte) (blocks.Block, error) {
	table := blocks.ComparisonTable{Headers: []string{}, Rows: [][]string{}}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		cells, err := c.cells(child, source)
		if err != nil {
			return nil, err
		}
		switch child.(type) {
		case *east.TableHeader:
			table.Headers = cells
		case *east.TableRow:
			table.Rows = append(table.Rows, cells)
		}
	}
	return table, nil
}

func (c *Converter) cells(row ast.Node, source []byte) ([]string, error) {
	cells := []string{}
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*east.TableCell); !ok {
			continue
		}
		content, err := c.inline(cell, source)
		if err != nil {
			return nil, err
		}
		cells = append(cells, strings.TrimSpace(content))
	}
	return cells, nil
}

// itemContent joins the text blocks of a list item; nested lists are flattened
// into the parent item.
func (c *Converter) itemContent(item ast.Node, source []byte) (string, error) {
	var parts []string
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		var (
			content string
			err     error
		)
		if nested, ok := child.(*ast.List); ok {
			var items []string
			for sub := nested.FirstChild(); sub != nil; sub = sub.NextSibling() {
				value, subErr := c.itemContent(sub, source)
				if subErr != nil {
					return "", subErr
				}
				items = append(items, value)
			}
			content = strings.Join(items, ", ")
		} else {
			content, err = c.inline(child, source)
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(content) != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, " "), nil
}

// inline renders the children of node as HTML.
func (c *Converter) inline(node ast.Node, source []byte) (string, error) {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if err := c.engine.Renderer().Render(&buf, source, child); err != nil {
			return "", fmt.Errorf("markdown render inline: %w", err)
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func mediaBlock(paragraph *ast.Paragraph, source []byte) blocks.Block {
	if paragraph.ChildCount() != 1 {
		return nil
	}
	switch n := paragraph.FirstChild().(type) {
	case *ast.Image:
		src := string(n.Destination)
		alt := plainText(n, source)
		if strings.EqualFold(path.Ext(stripQuery(src)), ".gif") {
			return blocks.GIF{Src: src, Alt: alt, Caption: string(n.Title)}
		}
		return blocks.Image{Src: src, Alt: alt, Caption: string(n.Title)}
	case *ast.Link:
		return linkMedia(string(n.Destination), plainText(n, source))
	case *ast.AutoLink:
		return linkMedia(string(n.URL(source)), "")
	}
	return nil
}

func linkMedia(href, title string) blocks.Block {
	if id := youTubeID(href); id != "" {
		return blocks.YouTube{VideoID: id, Title: title}
	}
	switch strings.ToLower(path.Ext(stripQuery(href))) {
	case ".mp4", ".webm", ".mov":
		return blocks.Video{URL: href, Title: title}
	}
	return nil
}

func youTubeID(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if parsed.Path == "/watch" {
			return parsed.Query().Get("v")
		}
		if rest, ok := strings.CutPrefix(parsed.Path, "/embed/"); ok {
			return strings.Trim(rest, "/")
		}
	case "youtu.be":
		return strings.Trim(parsed.Path, "/")
	}
	return ""
}

func stripQuery(value string) string {
	if index := strings.IndexAny(value, "?#"); index >= 0 {
		return value[:index]
	}
	return value
}

func plainText(node ast.Node, source []byte) string {
	var buf strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

func linesOf(node ast.Node, source []byte) string {
	var buf strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.String()
}

func clampHeading(level int) int {
	switch {
	case level < 2:
		return 2
	case level > 4:
		return 4
	default:
		return level
	}
}
