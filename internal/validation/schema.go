package validation

import (
	"fmt"

	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

// SchemaValidator checks that every node in the tree has the expected shape:
// a title, a heading level between 1 and 6, and a children list. Trees built
// by the heading parser always satisfy these checks; the validator exists to
// guard payloads that arrive from other producers.
type SchemaValidator struct{}

func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{}
}

var _ interfaces.DocumentValidator = (*SchemaValidator)(nil)

func (v *SchemaValidator) Name() string {
	return "schema"
}

func (v *SchemaValidator) Validate(doc *interfaces.Document) interfaces.ValidationOutcome {
	if doc == nil {
		return fail("document is missing")
	}
	for i, section := range doc.Sections {
		if msg := checkShape(section, doc.Filename, i); msg != "" {
			return fail(msg)
		}
	}
	return pass()
}

func checkShape(section *interfaces.Section, ctx string, index int) string {
	if section == nil {
		return fmt.Sprintf("%s: section %d is missing", ctx, index)
	}
	if section.Title == "" {
		return fmt.Sprintf("%s: section %d has no title", ctx, index)
	}

	here := childContext(ctx, section.Title)
	if section.Level < 1 || section.Level > 6 {
		return fmt.Sprintf("%s: level %d is outside the range 1-6", here, section.Level)
	}
	if section.Children == nil {
		return fmt.Sprintf("%s: children list is missing", here)
	}

	for i, child := range section.Children {
		if msg := checkShape(child, here, i); msg != "" {
			return msg
		}
	}
	return ""
}
