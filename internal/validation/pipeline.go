package validation

import (
	"github.com/goliatone/go-mdtree/internal/logging"
	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

// Pipeline runs a document tree through an ordered list of validators and
// stops at the first failure. The default order is schema, content,
// structure: cheap shape checks first, relational checks last, so later
// validators can rely on what the earlier ones already proved.
type Pipeline struct {
	validators []interfaces.DocumentValidator
	logger     interfaces.Logger
}

type PipelineOption func(*Pipeline)

// WithValidators replaces the default validator chain.
func WithValidators(validators ...interfaces.DocumentValidator) PipelineOption {
	return func(p *Pipeline) {
		if len(validators) > 0 {
			p.validators = validators
		}
	}
}

func WithPipelineLogger(logger interfaces.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewPipeline(opts ...PipelineOption) *Pipeline {
	pipeline := &Pipeline{
		validators: []interfaces.DocumentValidator{
			NewSchemaValidator(),
			NewContentValidator(),
			NewStructureValidator(),
		},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(pipeline)
	}
	return pipeline
}

// Validate runs the chain. Validators never mutate the document, so calling
// Validate repeatedly on the same tree yields the same outcome.
func (p *Pipeline) Validate(doc *interfaces.Document) interfaces.ValidationOutcome {
	filename := ""
	if doc != nil {
		filename = doc.Filename
	}

	for _, validator := range p.validators {
		outcome := validator.Validate(doc)
		if !outcome.IsValid {
			p.logger.Debug("document failed validation",
				"document", filename,
				"validator", validator.Name(),
				"errors", outcome.Errors,
			)
			return outcome
		}
	}

	p.logger.Debug("document passed validation", "document", filename)
	return pass()
}
