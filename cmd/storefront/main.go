package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-storefront"
	markdowncmd "github.com/goliatone/go-storefront/internal/commands/markdown"
	"github.com/goliatone/go-storefront/internal/export"
	"github.com/goliatone/go-storefront/internal/markdown"
)

const usage = `usage: storefront <command> [flags]

commands:
  seed          write the bundled sample catalog
  list          print a page of the product catalog
  dispatch      print the patch note feed
  export        serialize a product description or patch note body
  import-notes  import Markdown patch notes from a directory`

// moduleBuilder is replaced in tests.
var moduleBuilder = func(ctx context.Context, cfg storefront.Config) (*storefront.Module, error) {
	return storefront.New(ctx, cfg)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("storefront: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command\n%s", usage)
	}
	switch args[0] {
	case "seed":
		return runSeed(ctx, args[1:], out)
	case "list":
		return runList(ctx, args[1:], out)
	case "dispatch":
		return runDispatch(ctx, args[1:], out)
	case "export":
		return runExport(ctx, args[1:], out)
	case "import-notes":
		return runImportNotes(ctx, args[1:], out)
	case "help", "-h", "--help":
		fmt.Fprintln(out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

type commonFlags struct {
	config  *string
	storage *string
	seed    *bool
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		config:  fs.String("config", "", "Path to a YAML config file overlaying the defaults"),
		storage: fs.String("storage", "", "Override the storage provider (auto, memory, sqlite, postgres, badger)"),
		seed:    fs.Bool("seed", false, "Seed the sample catalog before running"),
	}
}

func (c commonFlags) open(ctx context.Context) (*storefront.Module, error) {
	cfg := storefront.DefaultConfig()
	if path := strings.TrimSpace(*c.config); path != "" {
		loaded, err := storefront.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if provider := strings.TrimSpace(*c.storage); provider != "" {
		cfg.Storage.Provider = provider
	}
	if *c.seed {
		cfg.Features.Seed = true
	}
	module, err := moduleBuilder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap module: %w", err)
	}
	return module, nil
}

func runSeed(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	module, err := common.open(ctx)
	if err != nil {
		return err
	}
	defer module.Close()

	result, err := module.Seed(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "seeded %d products, %d patch notes (%d already present)\n",
		result.Products, result.PatchNotes, result.Skipped)
	return nil
}

func runList(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	common := addCommonFlags(fs)
	search := fs.String("search", "", "Case-insensitive title or excerpt filter")
	category := fs.String("category", "", "Category filter")
	tag := fs.String("tag", "", "Tag filter")
	page := fs.Int("page", 1, "Page number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	module, err := common.open(ctx)
	if err != nil {
		return err
	}
	defer module.Close()

	view := module.CatalogView()
	if _, err := view.Filter(ctx, storefront.Criteria{Search: *search, Category: *category, Tag: *tag}); err != nil {
		return err
	}
	result, err := view.GoTo(ctx, *page)
	if err != nil {
		return err
	}
	for _, item := range result.Items {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", item.Slug, item.Title, price(item.PriceCents, item.Currency), item.URL)
	}
	fmt.Fprintf(out, "page %d of %d (%d products)\n", result.Page, result.Pages, result.Total)
	return nil
}

func runDispatch(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("dispatch", flag.ContinueOnError)
	common := addCommonFlags(fs)
	search := fs.String("search", "", "Case-insensitive title or summary filter")
	category := fs.String("category", "", "Category filter")
	tag := fs.String("tag", "", "Tag filter")
	more := fs.Int("more", 0, "Number of load-more steps to apply")
	if err := fs.Parse(args); err != nil {
		return err
	}
	module, err := common.open(ctx)
	if err != nil {
		return err
	}
	defer module.Close()

	feed := module.Dispatch()
	result, err := feed.Filter(ctx, storefront.Criteria{Search: *search, Category: *category, Tag: *tag})
	if err != nil {
		return err
	}
	for i := 0; i < *more; i++ {
		if result, err = feed.LoadMore(ctx); err != nil {
			return err
		}
	}
	for _, item := range result.Items {
		released := ""
		if item.ReleasedAt != nil {
			released = item.ReleasedAt.Format("2006-01-02")
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", released, item.Version, item.Title, item.URL)
	}
	fmt.Fprintf(out, "showing %d of %d\n", result.Loaded, result.Total)
	return nil
}

func runExport(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	common := addCommonFlags(fs)
	product := fs.String("product", "", "Product slug whose description is exported")
	note := fs.String("note", "", "Patch note slug whose body is exported")
	format := fs.String("format", "markdown", "Output format: html, markdown or preview")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*product == "") == (*note == "") {
		return fmt.Errorf("exactly one of -product or -note is required")
	}
	module, err := common.open(ctx)
	if err != nil {
		return err
	}
	defer module.Close()

	var doc storefront.Document
	if *product != "" {
		record, err := module.Catalog().GetProductBySlug(ctx, *product)
		if err != nil {
			return err
		}
		if record == nil {
			return fmt.Errorf("product %q not found", *product)
		}
		doc = record.Description
	} else {
		record, err := module.Catalog().GetPatchNoteBySlug(ctx, *note)
		if err != nil {
			return err
		}
		if record == nil {
			return fmt.Errorf("patch note %q not found", *note)
		}
		doc = record.Body
	}

	switch strings.ToLower(strings.TrimSpace(*format)) {
	case "preview":
		rendered, err := module.Preview(doc)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, string(rendered))
		return err
	case string(export.FormatHTML):
		return module.Copier(export.NewWriterClipboard(out)).CopyHTML(ctx, doc)
	case string(export.FormatMarkdown):
		return module.Copier(export.NewWriterClipboard(out)).CopyMarkdown(ctx, doc)
	default:
		return fmt.Errorf("unsupported format %q", *format)
	}
}

func runImportNotes(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("import-notes", flag.ContinueOnError)
	common := addCommonFlags(fs)
	directory := fs.String("directory", ".", "Directory to import, relative to markdown.base_path")
	dryRun := fs.Bool("dry-run", false, "Report changes without persisting them")
	if err := fs.Parse(args); err != nil {
		return err
	}
	module, err := common.open(ctx)
	if err != nil {
		return err
	}
	defer module.Close()

	service, err := module.Markdown()
	if err != nil {
		return err
	}

	var result markdown.ImportResult
	handler := markdowncmd.NewImportNotesHandler(service, module.Logger("markdown"))
	cmdErr := handler.Execute(ctx, markdowncmd.ImportNotesCommand{
		Directory: *directory,
		DryRun:    *dryRun,
		Result:    &result,
	})
	fmt.Fprintf(out, "created %d, updated %d, unchanged %d, failed %d\n",
		len(result.Created), len(result.Updated), len(result.Unchanged), len(result.Failed))
	for path, failure := range result.Failed {
		fmt.Fprintf(out, "  %s: %v\n", path, failure)
	}
	if cmdErr != nil {
		return fmt.Errorf("execute import command: %w", cmdErr)
	}
	return nil
}

func price(cents int, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, currency)
}
