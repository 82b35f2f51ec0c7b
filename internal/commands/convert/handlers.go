package convertcmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdtree/internal/commands"
	"github.com/goliatone/go-mdtree/internal/converter"
	"github.com/goliatone/go-mdtree/internal/logging"
	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

const (
	convertFileOperation      = "convert.file"
	convertDirectoryOperation = "convert.directory"
)

// Converter is the conversion surface command handlers depend on.
type Converter interface {
	ConvertFile(ctx context.Context, path string) (*converter.ConversionResult, error)
	ConvertDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*converter.ConversionResult, error)
}

var (
	_ command.Commander[ConvertFileCommand]      = (*ConvertFileHandler)(nil)
	_ command.Commander[ConvertDirectoryCommand] = (*ConvertDirectoryHandler)(nil)
)

// ConvertFileHandler runs single-file conversions through the shared command
// handler foundation.
type ConvertFileHandler struct {
	inner *commands.Handler[ConvertFileCommand]
}

// NewConvertFileHandler creates a handler bound to the supplied conversion
// service.
func NewConvertFileHandler(service Converter, logger interfaces.Logger, opts ...commands.HandlerOption[ConvertFileCommand]) *ConvertFileHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ConvertFileCommand) error {
		result, err := service.ConvertFile(ctx, msg.Path)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"document": result.Document.Filename,
			"is_valid": result.Outcome.IsValid,
			"output":   result.OutputPath,
		}).Info("convert.command.file.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConvertFileCommand]{
		commands.WithLogger[ConvertFileCommand](baseLogger),
		commands.WithOperation[ConvertFileCommand](convertFileOperation),
		commands.WithMessageFields(func(msg ConvertFileCommand) map[string]any {
			return map[string]any{"path": msg.Path}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertFileHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ConvertFileCommand].
func (h *ConvertFileHandler) Execute(ctx context.Context, msg ConvertFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ConvertDirectoryHandler runs batch conversions through the shared command
// handler foundation.
type ConvertDirectoryHandler struct {
	inner *commands.Handler[ConvertDirectoryCommand]
}

// NewConvertDirectoryHandler creates a handler bound to the supplied
// conversion service.
func NewConvertDirectoryHandler(service Converter, logger interfaces.Logger, opts ...commands.HandlerOption[ConvertDirectoryCommand]) *ConvertDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ConvertDirectoryCommand) error {
		results, err := service.ConvertDirectory(ctx, msg.Directory, interfaces.LoadOptions{
			Pattern:   msg.Pattern,
			Recursive: msg.Recursive,
		})
		if err != nil {
			return err
		}

		invalid := 0
		for _, result := range results {
			if !result.Outcome.IsValid {
				invalid++
			}
		}
		logging.WithFields(baseLogger, map[string]any{
			"directory": msg.Directory,
			"converted": len(results),
			"invalid":   invalid,
		}).Info("convert.command.directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConvertDirectoryCommand]{
		commands.WithLogger[ConvertDirectoryCommand](baseLogger),
		commands.WithOperation[ConvertDirectoryCommand](convertDirectoryOperation),
		commands.WithMessageFields(func(msg ConvertDirectoryCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive {
				fields["recursive"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ConvertDirectoryCommand].
func (h *ConvertDirectoryHandler) Execute(ctx context.Context, msg ConvertDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
