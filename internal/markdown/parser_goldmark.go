// Package markdown converts Markdown into storefront block documents, renders
// Markdown previews, and imports patch notes written as Markdown files.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/export"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ParseOptions tunes the goldmark engine.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	// SafeMode drops raw HTML from the output.
	SafeMode bool
}

// GoldmarkParser renders Markdown into HTML with an engine fixed at
// construction. Safe for concurrent use.
type GoldmarkParser struct {
	engine goldmark.Markdown
}

// NewGoldmarkParser constructs a parser. With no extensions configured GFM,
// linkify and task lists are enabled.
func NewGoldmarkParser(opts ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{engine: newGoldmarkEngine(opts)}
}

// Parse renders source to HTML.
func (p *GoldmarkParser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown: render: %w", err)
	}
	return buf.Bytes(), nil
}

// Preview renders the Markdown export of doc, showing an operator what a
// pasted copy will look like on a Markdown host.
func (p *GoldmarkParser) Preview(doc blocks.Document) (template.HTML, error) {
	rendered, err := p.Parse([]byte(export.Markdown(doc)))
	if err != nil {
		return "", err
	}
	return template.HTML(rendered), nil
}

func newGoldmarkEngine(opts ParseOptions) goldmark.Markdown {
	options := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithExtensions(extensionsFor(opts.Extensions)...),
	}
	var rendering []goldmark.Option
	if opts.HardWraps {
		rendering = append(rendering, goldmark.WithRendererOptions(html.WithHardWraps()))
	}
	if !opts.SafeMode {
		rendering = append(rendering, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	return goldmark.New(append(options, rendering...)...)
}

func extensionsFor(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.Linkify, extension.TaskList}
	}
	seen := make(map[string]bool, len(names))
	out := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if seen[key] {
			continue
		}
		seen[key] = true
		if ext := extensionNamed(key); ext != nil {
			out = append(out, ext)
		}
	}
	return out
}

func extensionNamed(name string) goldmark.Extender {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gfm":
		return extension.GFM
	case "table", "tables":
		return extension.Table
	case "strikethrough":
		return extension.Strikethrough
	case "linkify":
		return extension.Linkify
	case "tasklist":
		return extension.TaskList
	case "definition":
		return extension.DefinitionList
	case "footnote":
		return extension.Footnote
	default:
		return nil
	}
}
