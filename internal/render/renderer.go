package render

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Unit is the rendered form of one block. Key is derived from the block's
// position and stays stable while the document order is unchanged.
type Unit struct {
	Key   string
	Index int
	Kind  blocks.Kind
	HTML  template.HTML
}

// Empty reports whether the unit produced no visible output.
func (u Unit) Empty() bool {
	return strings.TrimSpace(string(u.HTML)) == ""
}

// Renderer maps content blocks to HTML fragments.
type Renderer struct {
	templates *template.Template
	logger    interfaces.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger records template failures.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// New constructs a renderer using the built-in fragment templates.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		templates: fragments,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.logger = logging.Ensure(r.logger)
	return r
}

// Key returns the unit key for a block position.
func Key(index int) string {
	return "block-" + strconv.Itoa(index)
}

// Render returns exactly one unit per block, in document order.
func (r *Renderer) Render(doc blocks.Document) []Unit {
	units := make([]Unit, 0, len(doc))
	for index, block := range doc {
		units = append(units, r.RenderBlock(index, block))
	}
	return units
}

// RenderHTML concatenates the rendered units, skipping empty ones.
func (r *Renderer) RenderHTML(doc blocks.Document) template.HTML {
	var buf strings.Builder
	for _, unit := range r.Render(doc) {
		if unit.Empty() {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(string(unit.HTML))
	}
	return template.HTML(buf.String())
}

// RenderBlock renders a single block. Unknown kinds and template failures
// produce an empty unit.
func (r *Renderer) RenderBlock(index int, block blocks.Block) Unit {
	unit := Unit{Key: Key(index), Index: index}
	if block == nil {
		return unit
	}
	unit.Kind = block.Kind()

	name, data, ok := view(block)
	if !ok {
		r.logger.Debug("render.block.skipped", "index", index, "kind", unit.Kind)
		return unit
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Warn("render.block.failed", "index", index, "kind", unit.Kind, "error", err)
		return unit
	}
	unit.HTML = template.HTML(buf.String())
	return unit
}

func view(block blocks.Block) (string, any, bool) {
	switch b := block.(type) {
	case blocks.Paragraph:
		return "paragraph", map[string]any{"Content": trusted(b.Content)}, true
	case blocks.Heading:
		return "heading-" + strconv.Itoa(b.Rank()), map[string]any{
			"Content": trusted(b.Content),
			"ID":      b.ID,
		}, true
	case blocks.Image:
		return "image", map[string]any{
			"Src":       b.Src,
			"Alt":       b.Alt,
			"Caption":   trusted(b.Caption),
			"FullWidth": b.FullWidth,
		}, true
	case blocks.Video:
		return "video", map[string]any{
			"URL":   b.URL,
			"Title": b.Title,
			"Ratio": ratioClass(b.Ratio()),
		}, true
	case blocks.YouTube:
		title := b.Title
		if strings.TrimSpace(title) == "" {
			title = "YouTube video"
		}
		return "youtube", map[string]any{"VideoID": b.VideoID, "Title": title}, true
	case blocks.GIF:
		return "gif", map[string]any{
			"Src":     b.Src,
			"Alt":     b.Alt,
			"Caption": trusted(b.Caption),
		}, true
	case blocks.List:
		return "list", map[string]any{"Ordered": b.Ordered, "Items": trustedAll(b.Items)}, true
	case blocks.LinkBlock:
		return "link-block", map[string]any{
			"Href":        b.Href,
			"Text":        b.Text,
			"Description": trusted(b.Description),
			"External":    b.External,
		}, true
	case blocks.Blockquote:
		return "blockquote", map[string]any{
			"Content": trusted(b.Content),
			"Author":  b.Author,
			"Source":  b.Source,
		}, true
	case blocks.Callout:
		return "callout", map[string]any{
			"Variant": string(b.Tone()),
			"Title":   b.Title,
			"Content": trusted(b.Content),
		}, true
	case blocks.Code:
		return "code", map[string]any{"Language": b.Language, "Content": b.Content}, true
	case blocks.Highlight:
		return "highlight", map[string]any{"Content": trusted(b.Content), "Color": string(b.Tone())}, true
	case blocks.Divider:
		return "divider", map[string]any{"Style": string(b.Line())}, true
	case blocks.FeatureGrid:
		items := make([]map[string]any, 0, len(b.Items))
		for _, item := range b.Items {
			items = append(items, map[string]any{
				"Title":       item.Title,
				"Description": trusted(item.Description),
				"Icon":        item.Icon,
			})
		}
		return "feature-grid", map[string]any{"Items": items}, true
	case blocks.ComparisonTable:
		rows := make([][]template.HTML, 0, len(b.Rows))
		for _, row := range b.Rows {
			rows = append(rows, trustedAll(row))
		}
		return "comparison-table", map[string]any{"Headers": trustedAll(b.Headers), "Rows": rows}, true
	case blocks.StyledText:
		return "styled-text", map[string]any{
			"Content": trusted(b.Content),
			"Font":    valueOr(string(b.Font), string(blocks.FontSans)),
			"Size":    valueOr(string(b.Size), string(blocks.TextBase)),
			"Color":   valueOr(string(b.Color), string(blocks.TextDefault)),
			"Weight":  valueOr(string(b.Weight), string(blocks.WeightNormal)),
		}, true
	default:
		return "", nil, false
	}
}

// Content strings carry pre-sanitised markup authored in the CMS.
func trusted(value string) template.HTML {
	return template.HTML(value)
}

func trustedAll(values []string) []template.HTML {
	out := make([]template.HTML, len(values))
	for i, value := range values {
		out[i] = trusted(value)
	}
	return out
}

func ratioClass(ratio blocks.AspectRatio) string {
	return strings.ReplaceAll(string(ratio), ":", "-")
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
