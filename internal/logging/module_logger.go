package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

const (
	rootModule      = "mdtree"
	parserModule    = "mdtree.parser"
	validatorModule = "mdtree.validation"
	documentsModule = "mdtree.documents"
	converterModule = "mdtree.converter"
)

const (
	fieldDocumentFile   = "document"
	fieldDocumentAction = "action"
	fieldSectionPath    = "section_path"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ParserLogger returns the logger namespace reserved for the heading parser.
func ParserLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, parserModule)
}

// ValidationLogger returns the logger namespace reserved for the validation pipeline.
func ValidationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, validatorModule)
}

// DocumentsLogger returns the logger namespace reserved for the persistence layer.
func DocumentsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, documentsModule)
}

// ConverterLogger returns the logger namespace reserved for conversion workflows.
func ConverterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, converterModule)
}

// WithDocumentContext enriches the provided logger with common conversion
// fields such as the source filename and the current action. Empty values
// are ignored.
func WithDocumentContext(logger interfaces.Logger, filename, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(filename); trimmed != "" {
		fields[fieldDocumentFile] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldDocumentAction] = trimmed
	}
	return WithFields(logger, fields)
}

// WithSectionPath annotates a logger with the dotted ancestor path of the
// section currently being processed.
func WithSectionPath(logger interfaces.Logger, path string) interfaces.Logger {
	if strings.TrimSpace(path) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldSectionPath: path})
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
