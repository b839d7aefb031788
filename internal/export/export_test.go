package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

func productDescription() blocks.Document {
	return blocks.Document{
		blocks.Heading{Level: 2, Content: "Overview"},
		blocks.Paragraph{Content: "A <strong>study-level</strong> airliner."},
		blocks.Image{Src: "/img/cockpit.png", Alt: "Cockpit", Caption: "Night lighting"},
		blocks.List{Items: []string{"Custom FMS", "EFB"}},
		blocks.Blockquote{Content: "Best add-on this year.", Author: "Flight Review", Source: "Issue 42"},
		blocks.Callout{Variant: blocks.CalloutWarning, Content: "Requires 8 GB VRAM."},
		blocks.Code{Language: "ini", Content: "[fms]\nunits=kg"},
		blocks.Highlight{Content: "Launch discount"},
		blocks.Divider{Style: blocks.DividerGradient},
		blocks.ComparisonTable{
			Headers: []string{"Feature", "Lite", "Pro"},
			Rows:    [][]string{{"FMS", "no", "yes"}, {"EFB", "yes", "yes"}},
		},
		blocks.Unknown{Type: "hologram"},
	}
}

func TestHTMLEmitsOneFragmentPerKnownBlock(t *testing.T) {
	doc := productDescription()
	out := HTML(doc)
	fragments := strings.Split(out, FragmentSeparator)
	if len(fragments) != len(doc)-1 {
		t.Fatalf("expected %d fragments, got %d:\n%s", len(doc)-1, len(fragments), out)
	}
	if fragments[0] != "<h2>Overview</h2>" {
		t.Fatalf("unexpected heading fragment %q", fragments[0])
	}
	if fragments[1] != "<p>A <strong>study-level</strong> airliner.</p>" {
		t.Fatalf("unexpected paragraph fragment %q", fragments[1])
	}
	if out != HTML(doc) {
		t.Fatal("expected HTML to be deterministic")
	}
}

func TestHTMLHeadingLevels(t *testing.T) {
	for _, level := range []int{2, 3, 4} {
		got := HTML(blocks.Document{blocks.Heading{Level: level, Content: "Fuel"}})
		want := "<h" + string(rune('0'+level)) + ">Fuel</h" + string(rune('0'+level)) + ">"
		if got != want {
			t.Fatalf("level %d: expected %q, got %q", level, want, got)
		}
	}
}

func TestSerializersClampHeadingLevels(t *testing.T) {
	cases := []struct {
		level    int
		html, md string
	}{
		{-1, "<h2>Fuel</h2>", "## Fuel"},
		{0, "<h2>Fuel</h2>", "## Fuel"},
		{1, "<h2>Fuel</h2>", "## Fuel"},
		{7, "<h4>Fuel</h4>", "#### Fuel"},
	}
	for _, tc := range cases {
		doc := blocks.Document{blocks.Heading{Level: tc.level, Content: "Fuel"}}
		if got := HTML(doc); got != tc.html {
			t.Fatalf("level %d: expected HTML %q, got %q", tc.level, tc.html, got)
		}
		if got := Markdown(doc); got != tc.md {
			t.Fatalf("level %d: expected Markdown %q, got %q", tc.level, tc.md, got)
		}

		clipboard := &MemoryClipboard{}
		if err := NewCopier(clipboard).CopyMarkdown(context.Background(), doc); err != nil {
			t.Fatalf("level %d: copy: %v", tc.level, err)
		}
		if clipboard.Text() != tc.md {
			t.Fatalf("level %d: expected clipboard %q, got %q", tc.level, tc.md, clipboard.Text())
		}
	}
}

func TestHTMLStructure(t *testing.T) {
	page, err := goquery.NewDocumentFromReader(strings.NewReader(HTML(productDescription())))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if page.Find("ul > li").Length() != 2 {
		t.Fatal("expected two list items")
	}
	if page.Find("div.callout.callout-warning").Length() != 1 {
		t.Fatal("expected callout tagged with its variant")
	}
	if page.Find("table > thead > tr > th").Length() != 3 {
		t.Fatal("expected header row with three cells")
	}
	if page.Find("table > tbody > tr").Length() != 2 {
		t.Fatal("expected one body row per table row")
	}
	if got := page.Find("code.language-ini").Text(); got != "[fms]\nunits=kg" {
		t.Fatalf("unexpected code text %q", got)
	}
	if got := page.Find("blockquote footer cite").Text(); got != "Flight Review" {
		t.Fatalf("unexpected quote author %q", got)
	}
}

func TestHTMLEdgeCases(t *testing.T) {
	if got := HTML(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := HTML(blocks.Document{blocks.Unknown{Type: "x"}}); got != "" {
		t.Fatalf("expected unknown block to serialise to nothing, got %q", got)
	}
	if got := HTML(blocks.Document{blocks.List{}}); got != "<ul></ul>" {
		t.Fatalf("unexpected empty unordered list %q", got)
	}
	if got := HTML(blocks.Document{blocks.List{Ordered: true}}); got != "<ol></ol>" {
		t.Fatalf("unexpected empty ordered list %q", got)
	}
}

func TestMarkdownEncodings(t *testing.T) {
	cases := []struct {
		name  string
		block blocks.Block
		want  string
	}{
		{"heading", blocks.Heading{Level: 3, Content: "Fuel"}, "### Fuel"},
		{"unordered", blocks.List{Items: []string{"a", "b"}}, "- a\n- b"},
		{"ordered", blocks.List{Items: []string{"a", "b"}, Ordered: true}, "1. a\n2. b"},
		{"quote", blocks.Blockquote{Content: "Great", Author: "Pilot"}, "> Great\n> — *Pilot*"},
		{"quote source", blocks.Blockquote{Content: "Great", Author: "Pilot", Source: "Forum"}, "> Great\n> — *Pilot*, Forum"},
		{"code", blocks.Code{Language: "lua", Content: "print(1)"}, "```lua\nprint(1)\n```"},
		{"code untagged", blocks.Code{Content: "x"}, "```\nx\n```"},
		{"callout info", blocks.Callout{Content: "Note"}, "> ℹ️ **INFO:** Note"},
		{"callout warning", blocks.Callout{Variant: blocks.CalloutWarning, Content: "Hot"}, "> ⚠️ **WARNING:** Hot"},
		{"callout success", blocks.Callout{Variant: blocks.CalloutSuccess, Content: "Done"}, "> ✅ **SUCCESS:** Done"},
		{"callout tip", blocks.Callout{Variant: blocks.CalloutTip, Title: "Pro", Content: "Trim"}, "> 💡 **TIP:** Trim"},
		{"highlight", blocks.Highlight{Content: "New"}, "==New=="},
		{"divider", blocks.Divider{}, "---"},
		{"image", blocks.Image{Src: "/a.png", Alt: "A", Caption: "Cap"}, "![A](/a.png)\n*Cap*"},
		{"youtube", blocks.YouTube{VideoID: "abc"}, "[YouTube video](https://www.youtube.com/watch?v=abc)"},
		{"unknown", blocks.Unknown{Type: "x"}, ""},
	}
	for _, tc := range cases {
		if got := MarkdownBlock(tc.block); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestMarkdownTableLineCount(t *testing.T) {
	table := blocks.ComparisonTable{
		Headers: []string{"Feature", "Lite", "Pro"},
		Rows:    [][]string{{"FMS", "no", "yes"}, {"EFB", "yes", "yes"}, {"VR", "no", "yes"}},
	}
	out := Markdown(blocks.Document{table})
	lines := strings.Split(out, "\n")
	if len(lines) != 2+len(table.Rows) {
		t.Fatalf("expected %d lines, got %d:\n%s", 2+len(table.Rows), len(lines), out)
	}
	if lines[1] != "| --- | --- | --- |" {
		t.Fatalf("unexpected separator row %q", lines[1])
	}
	if lines[2] != "| FMS | no | yes |" {
		t.Fatalf("unexpected data row %q", lines[2])
	}
}

func TestMarkdownDocument(t *testing.T) {
	if Markdown(nil) != "" {
		t.Fatal("expected empty output for empty document")
	}
	out := Markdown(blocks.Document{
		blocks.Heading{Level: 2, Content: "A"},
		blocks.Unknown{Type: "x"},
		blocks.Paragraph{Content: "B"},
	})
	if out != "## A\n\nB" {
		t.Fatalf("unexpected markdown %q", out)
	}
}

type recordingNotifier struct {
	levels   []interfaces.NotificationLevel
	messages []string
}

func (n *recordingNotifier) Notify(level interfaces.NotificationLevel, title, message string) string {
	n.levels = append(n.levels, level)
	n.messages = append(n.messages, message)
	return title
}

type panickingClipboard struct{}

func (panickingClipboard) WriteText(context.Context, string) error {
	panic("permission denied")
}

func TestCopierWritesAndNotifies(t *testing.T) {
	clipboard := &MemoryClipboard{}
	notifier := &recordingNotifier{}
	copier := NewCopier(clipboard, WithNotifier(notifier))

	doc := blocks.Document{blocks.Heading{Level: 2, Content: "A"}}
	if err := copier.CopyMarkdown(context.Background(), doc); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if clipboard.Text() != "## A" {
		t.Fatalf("unexpected clipboard text %q", clipboard.Text())
	}
	if len(notifier.levels) != 1 || notifier.levels[0] != interfaces.NotificationSuccess {
		t.Fatalf("expected success notification, got %v", notifier.levels)
	}
}

func TestCopierReportsClipboardFailure(t *testing.T) {
	denied := errors.New("permission denied")
	clipboard := &MemoryClipboard{Err: denied}
	notifier := &recordingNotifier{}
	copier := NewCopier(clipboard, WithNotifier(notifier))

	err := copier.CopyHTML(context.Background(), blocks.Document{blocks.Paragraph{Content: "x"}})
	if err == nil {
		t.Fatal("expected copy to fail")
	}
	if !errors.Is(err, denied) {
		t.Fatalf("expected wrapped clipboard error, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("expected external category, got %v", err)
	}
	if len(notifier.levels) != 1 || notifier.levels[0] != interfaces.NotificationError {
		t.Fatalf("expected error notification, got %v", notifier.levels)
	}
	if !strings.Contains(notifier.messages[0], "permission denied") {
		t.Fatalf("expected readable message, got %q", notifier.messages[0])
	}
	if clipboard.Text() != "" {
		t.Fatal("expected clipboard to stay empty")
	}
}

func TestCopierRecoversFromPanickingClipboard(t *testing.T) {
	notifier := &recordingNotifier{}
	err := NewCopier(panickingClipboard{}, WithNotifier(notifier)).
		CopyHTML(context.Background(), blocks.Document{blocks.Divider{}})
	if !errors.Is(err, ErrClipboardWrite) {
		t.Fatalf("expected ErrClipboardWrite, got %v", err)
	}
	if len(notifier.levels) != 1 {
		t.Fatal("expected failure notification")
	}
}

func TestCopierWithoutClipboard(t *testing.T) {
	err := NewCopier(nil).CopyHTML(context.Background(), nil)
	if !errors.Is(err, ErrClipboardUnavailable) {
		t.Fatalf("expected ErrClipboardUnavailable, got %v", err)
	}
}

func TestWriterClipboardAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriterClipboard(&buf).WriteText(context.Background(), "<p>x</p>"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "<p>x</p>\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestSerializeRejectsUnknownFormat(t *testing.T) {
	if _, err := Serialize("pdf", nil); err == nil {
		t.Fatal("expected unknown format error")
	}
}
