package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-storefront"
)

func useMemoryModule(t *testing.T, markdownDir string) {
	t.Helper()
	original := moduleBuilder
	moduleBuilder = func(ctx context.Context, cfg storefront.Config) (*storefront.Module, error) {
		cfg.Storage.Provider = "memory"
		cfg.Features.Seed = true
		if markdownDir != "" {
			cfg.Markdown.BasePath = markdownDir
		}
		return storefront.New(ctx, cfg)
	}
	t.Cleanup(func() { moduleBuilder = original })
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := run(context.Background(), args, &out); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return out.String()
}

func TestListPrintsPublishedProducts(t *testing.T) {
	useMemoryModule(t, "")
	output := runCommand(t, "list")
	if !strings.Contains(output, "cessna-172-classic\tCessna 172 Classic\t24.99 USD") {
		t.Fatalf("expected product line, got:\n%s", output)
	}
	if strings.Contains(output, "dc-3-legacy") {
		t.Fatalf("expected draft hidden, got:\n%s", output)
	}
	if !strings.Contains(output, "page 1 of 1 (2 products)") {
		t.Fatalf("expected page summary, got:\n%s", output)
	}
}

func TestDispatchFiltersByTag(t *testing.T) {
	useMemoryModule(t, "")
	output := runCommand(t, "dispatch", "-tag", "hotfix")
	if !strings.Contains(output, "A320 Neo 2.1.3") || strings.Contains(output, "Cessna") {
		t.Fatalf("expected only hotfix note, got:\n%s", output)
	}
	if !strings.Contains(output, "showing 1 of 1") {
		t.Fatalf("expected window summary, got:\n%s", output)
	}
}

func TestExportFormats(t *testing.T) {
	useMemoryModule(t, "")

	md := runCommand(t, "export", "-product", "cessna-172-classic", "-format", "markdown")
	if !strings.Contains(md, "## Overview") || !strings.Contains(md, "💡 **TIP:**") {
		t.Fatalf("unexpected markdown export:\n%s", md)
	}

	html := runCommand(t, "export", "-note", "a320-2-1-3", "-format", "html")
	if !strings.Contains(html, "<ol") {
		t.Fatalf("expected ordered list in html export:\n%s", html)
	}

	preview := runCommand(t, "export", "-note", "c172-1-3-0", "-format", "preview")
	if !strings.Contains(preview, "<h2") {
		t.Fatalf("expected goldmark heading in preview:\n%s", preview)
	}

	var out bytes.Buffer
	if err := run(context.Background(), []string{"export", "-format", "html"}, &out); err == nil {
		t.Fatal("expected error when no record is selected")
	}
}

func TestImportNotesDryRun(t *testing.T) {
	dir := t.TempDir()
	note := "---\ntitle: Cessna 172 1.5.0\nversion: \"1.5.0\"\nproduct: cessna-172-classic\nstatus: published\n---\n## Avionics\n\nGNS 430 option added.\n"
	if err := os.WriteFile(filepath.Join(dir, "c172-1-5-0.md"), []byte(note), 0o600); err != nil {
		t.Fatalf("write note: %v", err)
	}
	useMemoryModule(t, dir)

	output := runCommand(t, "import-notes", "-dry-run")
	if !strings.Contains(output, "created 1, updated 0, unchanged 0, failed 0") {
		t.Fatalf("unexpected import summary:\n%s", output)
	}
}

func TestUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"fly"}, &out); err == nil {
		t.Fatal("expected unknown command error")
	}
}
