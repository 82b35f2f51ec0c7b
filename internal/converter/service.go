package converter

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-mdtree/internal/logging"
	"github.com/goliatone/go-mdtree/internal/markdown"
	"github.com/goliatone/go-mdtree/internal/validation"
	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

var ErrNoLoader = errors.New("converter: no source loader configured")

// Validator runs a document through a validation chain.
type Validator interface {
	Validate(doc *interfaces.Document) interfaces.ValidationOutcome
}

// ConversionResult carries everything one conversion produced. OutputPath is
// empty when no JSON file was written, Saved is nil when nothing was
// persisted.
type ConversionResult struct {
	Document   *interfaces.Document
	Outcome    interfaces.ValidationOutcome
	OutputPath string
	Saved      *interfaces.SavedConversion
}

// Service wires the parser, validation pipeline and the optional writer and
// store into one conversion flow.
type Service struct {
	parser    interfaces.HeadingParser
	validator Validator
	loader    interfaces.SourceLoader
	writer    *JSONWriter
	store     interfaces.DocumentStore
	logger    interfaces.Logger
}

type ServiceOption func(*Service)

func WithParser(parser interfaces.HeadingParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

func WithValidator(validator Validator) ServiceOption {
	return func(s *Service) {
		if validator != nil {
			s.validator = validator
		}
	}
}

func WithLoader(loader interfaces.SourceLoader) ServiceOption {
	return func(s *Service) {
		s.loader = loader
	}
}

// WithJSONWriter enables writing the serialized tree to disk.
func WithJSONWriter(writer *JSONWriter) ServiceOption {
	return func(s *Service) {
		s.writer = writer
	}
}

// WithStore enables persistence of conversion results.
func WithStore(store interfaces.DocumentStore) ServiceOption {
	return func(s *Service) {
		s.store = store
	}
}

func WithServiceLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds a conversion service. Without options it parses and
// validates only: no loader, no file output, no persistence.
func NewService(opts ...ServiceOption) *Service {
	svc := &Service{
		parser:    markdown.NewParser(),
		validator: validation.NewPipeline(),
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ConvertLines converts already-loaded markdown lines. This is the core
// flow every other entry point funnels into.
func (s *Service) ConvertLines(ctx context.Context, filename string, lines []string, meta interfaces.FrontMatter) (*ConversionResult, error) {
	doc := s.parser.Parse(filename, lines)
	doc.Meta = meta

	outcome := s.validator.Validate(doc)
	result := &ConversionResult{
		Document: doc,
		Outcome:  outcome,
	}

	if s.writer != nil {
		path, err := s.writer.Write(doc, filename)
		if err != nil {
			return nil, fmt.Errorf("convert %q: %w", filename, err)
		}
		result.OutputPath = path
	}

	if s.store != nil {
		saved, err := s.store.SaveConversion(ctx, doc, outcome)
		if err != nil {
			return nil, fmt.Errorf("convert %q: %w", filename, err)
		}
		result.Saved = saved
	}

	s.logger.Info("conversion completed",
		"document", filename,
		"is_valid", outcome.IsValid,
		"output", result.OutputPath,
	)
	return result, nil
}

// ConvertFile loads one markdown file and converts it.
func (s *Service) ConvertFile(ctx context.Context, path string) (*ConversionResult, error) {
	if s.loader == nil {
		return nil, ErrNoLoader
	}
	file, err := s.loader.LoadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("convert %q: %w", path, err)
	}
	return s.ConvertLines(ctx, file.Path, file.Lines, file.Meta)
}

// ConvertDirectory converts every matching file under dir. A validation
// failure in one file does not stop the batch; a load or write failure does.
func (s *Service) ConvertDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*ConversionResult, error) {
	if s.loader == nil {
		return nil, ErrNoLoader
	}
	files, err := s.loader.LoadDirectory(ctx, dir, opts)
	if err != nil {
		return nil, fmt.Errorf("convert directory %q: %w", dir, err)
	}

	results := make([]*ConversionResult, 0, len(files))
	for _, file := range files {
		result, err := s.ConvertLines(ctx, file.Path, file.Lines, file.Meta)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}
