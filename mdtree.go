// Package mdtree converts markdown documents into nested JSON trees keyed by
// heading hierarchy, validates them, and optionally persists the result to a
// relational database.
package mdtree

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	convertcmd "github.com/goliatone/go-mdtree/internal/commands/convert"
	"github.com/goliatone/go-mdtree/internal/converter"
	"github.com/goliatone/go-mdtree/internal/documents"
	"github.com/goliatone/go-mdtree/internal/logging"
	"github.com/goliatone/go-mdtree/internal/logging/console"
	"github.com/goliatone/go-mdtree/internal/logging/gologger"
	"github.com/goliatone/go-mdtree/internal/markdown"
	"github.com/goliatone/go-mdtree/internal/validation"
	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

// ConverterService exports the conversion service contract for consumers of
// the mdtree package.
type ConverterService = converter.Service

// ConversionResult exports the per-conversion result DTO.
type ConversionResult = converter.ConversionResult

// DocumentStore exports the persistence contract.
type DocumentStore = interfaces.DocumentStore

// Module is the top level mdtree runtime façade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	db       *bun.DB
	store    *documents.Store
	pipeline *validation.Pipeline
	service  *converter.Service
}

// New constructs an mdtree module from the provided configuration, wiring
// the parser, the validation pipeline and, when enabled, the JSON writer and
// the database store.
func New(cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := newLoggerProvider(cfg.Logging)
	if err != nil {
		return nil, err
	}

	m := &Module{
		cfg:      cfg,
		provider: provider,
		pipeline: validation.NewPipeline(
			validation.WithPipelineLogger(logging.ValidationLogger(provider)),
		),
	}

	renderOpts := interfaces.RenderOptions{
		HardWraps:  cfg.Markdown.Render.HardWraps,
		SafeMode:   cfg.Markdown.Render.SafeMode,
		Extensions: cfg.Markdown.Render.Extensions,
	}

	if cfg.Features.Persistence {
		sqlDB, err := sql.Open(cfg.Storage.Driver, cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("mdtree: open database: %w", err)
		}
		m.db = bun.NewDB(sqlDB, dialectFor(cfg.Storage.Driver))

		storeOpts := []documents.StoreOption{
			documents.WithStoreLogger(logging.DocumentsLogger(provider)),
		}
		if cfg.Features.RenderHTML {
			storeOpts = append(storeOpts, documents.WithHTMLRenderer(
				markdown.NewGoldmarkRenderer(renderOpts), renderOpts,
			))
		}
		m.store = documents.NewStore(m.db, storeOpts...)
	}

	loader := markdown.NewLoader(os.DirFS("."), markdown.LoaderConfig{
		Pattern:   cfg.Markdown.Pattern,
		Recursive: cfg.Markdown.Recursive,
	})

	svcOpts := []converter.ServiceOption{
		converter.WithParser(markdown.NewParser(
			markdown.WithParserLogger(logging.ParserLogger(provider)),
		)),
		converter.WithValidator(m.pipeline),
		converter.WithLoader(loader),
		converter.WithServiceLogger(logging.ConverterLogger(provider)),
	}
	if cfg.Features.WriteJSON {
		svcOpts = append(svcOpts, converter.WithJSONWriter(&converter.JSONWriter{
			Dir:    cfg.Output.Dir,
			Indent: cfg.Output.Indent,
		}))
	}
	if m.store != nil {
		svcOpts = append(svcOpts, converter.WithStore(m.store))
	}
	m.service = converter.NewService(svcOpts...)

	return m, nil
}

// Converter returns the configured conversion service.
func (m *Module) Converter() *ConverterService {
	return m.service
}

// Store returns the document store, nil when persistence is disabled.
func (m *Module) Store() *documents.Store {
	return m.store
}

// DB exposes the underlying bun handle for advanced integrations, nil when
// persistence is disabled.
func (m *Module) DB() *bun.DB {
	return m.db
}

// LoggerProvider returns the provider modules loggers are drawn from.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// ConvertFile converts a single markdown file through the configured flow.
func (m *Module) ConvertFile(ctx context.Context, path string) (*ConversionResult, error) {
	return m.service.ConvertFile(ctx, path)
}

// ConvertDirectory converts every matching file under dir, defaulting to the
// configured content directory when dir is empty.
func (m *Module) ConvertDirectory(ctx context.Context, dir string) ([]*ConversionResult, error) {
	if strings.TrimSpace(dir) == "" {
		dir = m.cfg.Markdown.ContentDir
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return m.service.ConvertDirectory(ctx, dir, interfaces.LoadOptions{
		Pattern:   m.cfg.Markdown.Pattern,
		Recursive: m.cfg.Markdown.Recursive,
	})
}

// EnsureSchema creates the database tables when persistence is enabled. The
// embedded SQL migrations remain the canonical schema for managed
// deployments; this covers ad-hoc sqlite usage.
func (m *Module) EnsureSchema(ctx context.Context) error {
	if m.db == nil {
		return nil
	}
	return documents.CreateTables(ctx, m.db)
}

// RegisterCommands wires the conversion command handlers into the provided
// registry and returns them for further integration.
func (m *Module) RegisterCommands(reg convertcmd.CommandRegistry) (*convertcmd.HandlerSet, error) {
	return convertcmd.RegisterConvertCommands(reg, m.service, m.provider)
}

// Close releases the database handle when one was opened.
func (m *Module) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

func dialectFor(driver string) schema.Dialect {
	if strings.EqualFold(strings.TrimSpace(driver), "postgres") {
		return pgdialect.New()
	}
	return sqlitedialect.New()
}

func newLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "", "console":
		return console.NewProvider(console.Options{}), nil
	case "noop":
		return noopProvider{}, nil
	default:
		return nil, ErrLoggingProviderUnknown
	}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
