package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

// ContentValidator rejects sections whose title is blank once surrounding
// whitespace is stripped. It runs after the schema validator, so it can
// assume every node already has a title field and a children list.
type ContentValidator struct{}

func NewContentValidator() *ContentValidator {
	return &ContentValidator{}
}

var _ interfaces.DocumentValidator = (*ContentValidator)(nil)

func (v *ContentValidator) Name() string {
	return "content"
}

func (v *ContentValidator) Validate(doc *interfaces.Document) interfaces.ValidationOutcome {
	if doc == nil {
		return fail("document is missing")
	}
	for i, section := range doc.Sections {
		if msg := checkContent(section, doc.Filename, i); msg != "" {
			return fail(msg)
		}
	}
	return pass()
}

func checkContent(section *interfaces.Section, ctx string, index int) string {
	if section == nil {
		return ""
	}
	if strings.TrimSpace(section.Title) == "" {
		return fmt.Sprintf("%s: section %d title is blank", ctx, index)
	}

	here := childContext(ctx, section.Title)
	for i, child := range section.Children {
		if msg := checkContent(child, here, i); msg != "" {
			return msg
		}
	}
	return ""
}
