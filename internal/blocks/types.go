package blocks

import "encoding/json"

// Kind is the discriminator carried by every block in its `type` field.
type Kind string

const (
	KindParagraph       Kind = "paragraph"
	KindHeading         Kind = "heading"
	KindImage           Kind = "image"
	KindVideo           Kind = "video"
	KindYouTube         Kind = "youtube"
	KindGIF             Kind = "gif"
	KindList            Kind = "list"
	KindLinkBlock       Kind = "link-block"
	KindBlockquote      Kind = "blockquote"
	KindCallout         Kind = "callout"
	KindCode            Kind = "code"
	KindHighlight       Kind = "highlight"
	KindDivider         Kind = "divider"
	KindFeatureGrid     Kind = "feature-grid"
	KindComparisonTable Kind = "comparison-table"
	KindStyledText      Kind = "styled-text"
)

// Kinds lists the closed set of block kinds in declaration order.
var Kinds = []Kind{
	KindParagraph,
	KindHeading,
	KindImage,
	KindVideo,
	KindYouTube,
	KindGIF,
	KindList,
	KindLinkBlock,
	KindBlockquote,
	KindCallout,
	KindCode,
	KindHighlight,
	KindDivider,
	KindFeatureGrid,
	KindComparisonTable,
	KindStyledText,
}

// Known reports whether k belongs to the closed set.
func (k Kind) Known() bool {
	for _, candidate := range Kinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// Block is one unit of a document. Blocks are immutable values identified
// only by their position.
type Block interface {
	Kind() Kind
}

// Document is an ordered block sequence. Order is rendering order.
type Document []Block

type AspectRatio string

const (
	AspectRatio16x9 AspectRatio = "16:9"
	AspectRatio4x3  AspectRatio = "4:3"
	AspectRatio1x1  AspectRatio = "1:1"
)

type CalloutVariant string

const (
	CalloutInfo    CalloutVariant = "info"
	CalloutWarning CalloutVariant = "warning"
	CalloutSuccess CalloutVariant = "success"
	CalloutTip     CalloutVariant = "tip"
)

type HighlightColor string

const (
	HighlightPrimary HighlightColor = "primary"
	HighlightAccent  HighlightColor = "accent"
	HighlightWarning HighlightColor = "warning"
)

type DividerStyle string

const (
	DividerSolid    DividerStyle = "solid"
	DividerDashed   DividerStyle = "dashed"
	DividerGradient DividerStyle = "gradient"
)

type FontFamily string

const (
	FontSans    FontFamily = "sans"
	FontSerif   FontFamily = "serif"
	FontMono    FontFamily = "mono"
	FontDisplay FontFamily = "display"
)

type TextSize string

const (
	TextSmall  TextSize = "sm"
	TextBase   TextSize = "base"
	TextLarge  TextSize = "lg"
	TextXLarge TextSize = "xl"
	Text2XL    TextSize = "2xl"
)

type TextColor string

const (
	TextDefault TextColor = "default"
	TextPrimary TextColor = "primary"
	TextAccent  TextColor = "accent"
	TextMuted   TextColor = "muted"
	TextWarning TextColor = "warning"
)

type FontWeight string

const (
	WeightNormal   FontWeight = "normal"
	WeightMedium   FontWeight = "medium"
	WeightSemibold FontWeight = "semibold"
	WeightBold     FontWeight = "bold"
)

// Paragraph holds trusted inline markup.
type Paragraph struct {
	Content string `json:"content"`
}

// Heading levels are limited to 2, 3 and 4; level 1 belongs to the page title.
type Heading struct {
	Level   int    `json:"level"`
	Content string `json:"content"`
	ID      string `json:"id,omitempty"`
}

// Rank returns the heading level clamped to 2..4.
func (h Heading) Rank() int {
	switch {
	case h.Level < 2:
		return 2
	case h.Level > 4:
		return 4
	default:
		return h.Level
	}
}

type Image struct {
	Src       string `json:"src"`
	Alt       string `json:"alt"`
	Caption   string `json:"caption,omitempty"`
	FullWidth bool   `json:"fullWidth,omitempty"`
}

type Video struct {
	URL         string      `json:"url"`
	Title       string      `json:"title,omitempty"`
	AspectRatio AspectRatio `json:"aspectRatio,omitempty"`
}

// Ratio returns the aspect ratio, defaulting to 16:9.
func (v Video) Ratio() AspectRatio {
	if v.AspectRatio == "" {
		return AspectRatio16x9
	}
	return v.AspectRatio
}

type YouTube struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title,omitempty"`
}

type GIF struct {
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

type List struct {
	Items   []string `json:"items"`
	Ordered bool     `json:"ordered,omitempty"`
}

type LinkBlock struct {
	Href        string `json:"href"`
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
	External    bool   `json:"external,omitempty"`
}

type Blockquote struct {
	Content string `json:"content"`
	Author  string `json:"author,omitempty"`
	Source  string `json:"source,omitempty"`
}

type Callout struct {
	Variant CalloutVariant `json:"variant,omitempty"`
	Title   string         `json:"title,omitempty"`
	Content string         `json:"content"`
}

// Tone returns the callout variant, defaulting to info.
func (c Callout) Tone() CalloutVariant {
	if c.Variant == "" {
		return CalloutInfo
	}
	return c.Variant
}

// Code content is raw text and is always escaped on output.
type Code struct {
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}

type Highlight struct {
	Content string         `json:"content"`
	Color   HighlightColor `json:"color,omitempty"`
}

// Tone returns the highlight colour, defaulting to primary.
func (h Highlight) Tone() HighlightColor {
	if h.Color == "" {
		return HighlightPrimary
	}
	return h.Color
}

type Divider struct {
	Style DividerStyle `json:"style,omitempty"`
}

// Line returns the divider style, defaulting to solid.
func (d Divider) Line() DividerStyle {
	if d.Style == "" {
		return DividerSolid
	}
	return d.Style
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type FeatureGrid struct {
	Items []Feature `json:"items"`
}

type ComparisonTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type StyledText struct {
	Content string     `json:"content"`
	Font    FontFamily `json:"font,omitempty"`
	Size    TextSize   `json:"size,omitempty"`
	Color   TextColor  `json:"color,omitempty"`
	Weight  FontWeight `json:"weight,omitempty"`
}

// Unknown keeps a block whose type is outside the closed set so it survives a
// decode/encode cycle. Consumers render and serialise it as nothing.
type Unknown struct {
	Type string
	Raw  json.RawMessage
}

func (Paragraph) Kind() Kind       { return KindParagraph }
func (Heading) Kind() Kind         { return KindHeading }
func (Image) Kind() Kind           { return KindImage }
func (Video) Kind() Kind           { return KindVideo }
func (YouTube) Kind() Kind         { return KindYouTube }
func (GIF) Kind() Kind             { return KindGIF }
func (List) Kind() Kind            { return KindList }
func (LinkBlock) Kind() Kind       { return KindLinkBlock }
func (Blockquote) Kind() Kind      { return KindBlockquote }
func (Callout) Kind() Kind         { return KindCallout }
func (Code) Kind() Kind            { return KindCode }
func (Highlight) Kind() Kind       { return KindHighlight }
func (Divider) Kind() Kind         { return KindDivider }
func (FeatureGrid) Kind() Kind     { return KindFeatureGrid }
func (ComparisonTable) Kind() Kind { return KindComparisonTable }
func (StyledText) Kind() Kind      { return KindStyledText }
func (u Unknown) Kind() Kind       { return Kind(u.Type) }
