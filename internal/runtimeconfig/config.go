package runtimeconfig

import (
	"errors"
	"strings"
)

var ErrStorageDriverRequired = errors.New("mdtree config: storage driver is required when persistence is enabled")
var ErrStorageDriverUnknown = errors.New("mdtree config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("mdtree config: storage dsn is required when persistence is enabled")
var ErrRenderRequiresFeature = errors.New("mdtree config: render options require the render feature to be enabled")
var ErrLoggingProviderUnknown = errors.New("mdtree config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("mdtree config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("mdtree config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the mdtree module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Markdown MarkdownConfig
	Storage  StorageConfig
	Output   OutputConfig
	Logging  LoggingConfig
	Features Features
}

// MarkdownConfig captures how markdown sources are discovered and parsed.
type MarkdownConfig struct {
	// ContentDir is the base directory markdown paths are resolved against.
	ContentDir string
	// Pattern limits discovered files to those matching the glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether directory conversion walks sub-directories.
	Recursive bool
	// Render tunes the optional goldmark rendering of section content.
	Render RenderConfig
}

// RenderConfig mirrors the goldmark options exposed per conversion.
type RenderConfig struct {
	HardWraps  bool
	SafeMode   bool
	Extensions []string
}

// StorageConfig describes the database target used when persistence is enabled.
type StorageConfig struct {
	// Driver selects the sql driver ("sqlite3" or "postgres").
	Driver string
	// DSN is the connection string handed to sql.Open.
	DSN string
}

// OutputConfig controls the JSON file written next to each converted source.
type OutputConfig struct {
	// Dir overrides the output directory; empty writes next to the source file.
	Dir string
	// Indent is the indentation unit for the JSON payload (defaults to two spaces).
	Indent string
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	// Provider picks the logging backend: "gologger", "console", or "noop".
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// Features toggles module functionality.
type Features struct {
	// Persistence enables the database adapter; conversions still run without it.
	Persistence bool
	// RenderHTML stores a goldmark rendering of each section's content.
	RenderHTML bool
	// WriteJSON writes the serialized tree to a .json file after conversion.
	WriteJSON bool
}

// DefaultConfig returns the configuration used when the host supplies nothing:
// file output enabled, persistence off, console logging at info level.
func DefaultConfig() Config {
	return Config{
		Markdown: MarkdownConfig{
			Pattern:   "*.md",
			Recursive: true,
		},
		Output: OutputConfig{
			Indent: "  ",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "console",
		},
		Features: Features{
			WriteJSON: true,
		},
	}
}

// Validate checks cross-field consistency and returns the first violation.
func (cfg Config) Validate() error {
	if cfg.Features.Persistence {
		driver := strings.TrimSpace(cfg.Storage.Driver)
		if driver == "" {
			return ErrStorageDriverRequired
		}
		switch driver {
		case "sqlite3", "postgres":
		default:
			return ErrStorageDriverUnknown
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}

	if !cfg.Features.RenderHTML {
		if cfg.Markdown.Render.HardWraps || cfg.Markdown.Render.SafeMode || len(cfg.Markdown.Render.Extensions) > 0 {
			return ErrRenderRequiresFeature
		}
	}

	if provider := strings.TrimSpace(cfg.Logging.Provider); provider != "" {
		switch strings.ToLower(provider) {
		case "gologger", "console", "noop":
		default:
			return ErrLoggingProviderUnknown
		}
	}

	if level := strings.TrimSpace(cfg.Logging.Level); level != "" {
		switch strings.ToLower(level) {
		case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		default:
			return ErrLoggingLevelInvalid
		}
	}

	if format := strings.TrimSpace(cfg.Logging.Format); format != "" {
		switch strings.ToLower(format) {
		case "json", "console", "pretty":
		default:
			return ErrLoggingFormatInvalid
		}
	}

	return nil
}
