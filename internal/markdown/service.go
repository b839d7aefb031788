package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

var ErrBasePathRequired = errors.New("markdown: base path is required")

// Config controls discovery and parsing.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    ParseOptions
}

// Service combines directory loading, block conversion and import behind one
// value.
type Service struct {
	loader   *Loader
	importer *Importer
	logger   interfaces.Logger
}

// NewService builds a service reading from cfg.BasePath.
func NewService(cfg Config, svc catalog.Service, logger interfaces.Logger) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return newService(filesystem, cfg, svc, logger), nil
}

// NewServiceFS builds a service over an existing filesystem.
func NewServiceFS(filesystem fs.FS, cfg Config, svc catalog.Service, logger interfaces.Logger) *Service {
	return newService(filesystem, cfg, svc, logger)
}

func newService(filesystem fs.FS, cfg Config, svc catalog.Service, logger interfaces.Logger) *Service {
	logger = logging.Ensure(logger)
	return &Service{
		loader: NewLoader(filesystem, LoaderConfig{
			Pattern:   cfg.Pattern,
			Recursive: cfg.Recursive,
		}),
		importer: NewImporter(ImporterConfig{
			Catalog:   svc,
			Converter: NewConverter(cfg.Parser),
			Logger:    logger,
		}),
		logger: logger,
	}
}

// ImportDirectory loads every document under dir and imports it.
func (s *Service) ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error) {
	if dir == "" {
		dir = "."
	}
	docs, err := s.loader.LoadDirectory(ctx, filepath.ToSlash(dir))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("markdown.import.loaded", "dir", dir, "count", len(docs))
	return s.importer.Import(ctx, docs, opts)
}

func prepareFilesystem(base string) (fs.FS, error) {
	if base == "" {
		return nil, ErrBasePathRequired
	}
	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("markdown: stat base path %s: %w", base, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown: base path %s is not a directory", base)
	}
	return os.DirFS(base), nil
}
