package validation

import (
	"fmt"

	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

// StructureValidator enforces the nesting rule: every child must carry a
// strictly greater heading level than its parent. Level gaps are allowed, a
// level-4 section may sit directly under a level-1 section, but a child can
// never be at or above its parent's level.
type StructureValidator struct{}

func NewStructureValidator() *StructureValidator {
	return &StructureValidator{}
}

var _ interfaces.DocumentValidator = (*StructureValidator)(nil)

func (v *StructureValidator) Name() string {
	return "structure"
}

func (v *StructureValidator) Validate(doc *interfaces.Document) interfaces.ValidationOutcome {
	if doc == nil {
		return fail("document is missing")
	}
	for _, section := range doc.Sections {
		if msg := checkNesting(section, doc.Filename); msg != "" {
			return fail(msg)
		}
	}
	return pass()
}

func checkNesting(section *interfaces.Section, ctx string) string {
	if section == nil {
		return ""
	}
	here := childContext(ctx, section.Title)
	for _, child := range section.Children {
		if child == nil {
			continue
		}
		if child.Level <= section.Level {
			return fmt.Sprintf("%s: %q (level %d) must nest deeper than %q (level %d)",
				here, child.Title, child.Level, section.Title, section.Level)
		}
		if msg := checkNesting(child, here); msg != "" {
			return msg
		}
	}
	return ""
}
