package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	mdtree "github.com/goliatone/go-mdtree"
	"github.com/goliatone/go-mdtree/internal/commands"
	convertcmd "github.com/goliatone/go-mdtree/internal/commands/convert"
)

func main() {
	if err := runConvert(os.Args[1:]); err != nil {
		log.Fatalf("mdtree: %v", err)
	}
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("mdtree", flag.ExitOnError)
	file := fs.String("file", "", "Markdown file to convert")
	dir := fs.String("dir", "", "Directory of markdown files to convert")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	recursive := fs.Bool("recursive", true, "Walk subdirectories when converting a directory")
	output := fs.String("output", "", "Directory for JSON output (defaults to writing next to each source)")
	dbDSN := fs.String("db", "", "Database DSN; enables persistence when set")
	driver := fs.String("driver", "sqlite3", "Database driver: sqlite3 or postgres")
	renderHTML := fs.Bool("render-html", false, "Store a rendered HTML variant of each section")
	dryRun := fs.Bool("dry-run", false, "Parse and validate only, without writing files or rows")
	logLevel := fs.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	logFormat := fs.String("log-format", "console", "Log format: json, console, or pretty")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *file == "" && *dir == "" {
		return fmt.Errorf("either -file or -dir is required")
	}
	if *file != "" && *dir != "" {
		return fmt.Errorf("-file and -dir are mutually exclusive")
	}

	cfg := mdtree.DefaultConfig()
	cfg.Markdown.Pattern = *pattern
	cfg.Markdown.Recursive = *recursive
	cfg.Output.Dir = *output
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat
	cfg.Features.RenderHTML = *renderHTML

	if *dryRun {
		cfg.Features.WriteJSON = false
	}
	if *dbDSN != "" && !*dryRun {
		cfg.Features.Persistence = true
		cfg.Storage = mdtree.StorageConfig{
			Driver: strings.TrimSpace(*driver),
			DSN:    *dbDSN,
		}
	}

	module, err := mdtree.New(cfg)
	if err != nil {
		return fmt.Errorf("configure module: %w", err)
	}
	defer module.Close()

	ctx := context.Background()

	if cfg.Features.Persistence && cfg.Storage.Driver == "sqlite3" {
		if err := module.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	logger := commands.CommandLogger(module.LoggerProvider(), "convert")

	if *file != "" {
		handler := convertcmd.NewConvertFileHandler(module.Converter(), logger)
		if err := handler.Execute(ctx, convertcmd.ConvertFileCommand{Path: *file}); err != nil {
			return fmt.Errorf("convert file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "converted %s\n", *file)
		return nil
	}

	handler := convertcmd.NewConvertDirectoryHandler(module.Converter(), logger)
	cmd := convertcmd.ConvertDirectoryCommand{
		Directory: *dir,
		Pattern:   *pattern,
		Recursive: *recursive,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("convert directory: %w", err)
	}
	fmt.Fprintf(os.Stdout, "converted directory %s\n", *dir)
	return nil
}
