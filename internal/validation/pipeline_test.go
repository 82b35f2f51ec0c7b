package validation

import (
	"strings"
	"testing"

	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

func section(title, content string, level int, children ...*interfaces.Section) *interfaces.Section {
	if children == nil {
		children = []*interfaces.Section{}
	}
	return &interfaces.Section{
		Title:    title,
		Content:  content,
		Level:    level,
		Children: children,
	}
}

func document(filename string, sections ...*interfaces.Section) *interfaces.Document {
	if sections == nil {
		sections = []*interfaces.Section{}
	}
	return &interfaces.Document{Filename: filename, Sections: sections}
}

func TestPipeline_ValidDocumentPasses(t *testing.T) {
	doc := document("guide.md",
		section("Guide", "intro", 1,
			section("Install", "steps", 2,
				section("Requirements", "a computer", 3),
			),
			section("Usage", "run it", 2),
		),
	)

	outcome := NewPipeline().Validate(doc)
	if !outcome.IsValid {
		t.Fatalf("expected valid outcome, got errors: %s", outcome.Errors)
	}
	if outcome.Errors != "" {
		t.Fatalf("expected empty errors on valid outcome, got %q", outcome.Errors)
	}
}

func TestPipeline_EmptyForestPasses(t *testing.T) {
	outcome := NewPipeline().Validate(document("empty.md"))
	if !outcome.IsValid {
		t.Fatalf("expected empty forest to be valid, got: %s", outcome.Errors)
	}
}

func TestPipeline_StructureViolationNamesBothSections(t *testing.T) {
	doc := document("bad.md",
		section("Parent", "", 2,
			section("Child", "", 2),
		),
	)

	outcome := NewPipeline().Validate(doc)
	if outcome.IsValid {
		t.Fatal("expected structure violation")
	}
	for _, want := range []string{"bad.md.Parent", `"Child" (level 2)`, `"Parent" (level 2)`} {
		if !strings.Contains(outcome.Errors, want) {
			t.Fatalf("expected errors to mention %q, got %q", want, outcome.Errors)
		}
	}
}

func TestPipeline_BlankTitleFailsContentValidation(t *testing.T) {
	doc := document("blank.md",
		section("Root", "", 1,
			section("   ", "", 2),
		),
	)

	outcome := NewPipeline().Validate(doc)
	if outcome.IsValid {
		t.Fatal("expected blank title to fail")
	}
	if !strings.Contains(outcome.Errors, "blank.md.Root") {
		t.Fatalf("expected parent context in error, got %q", outcome.Errors)
	}
	if !strings.Contains(outcome.Errors, "title is blank") {
		t.Fatalf("expected blank title message, got %q", outcome.Errors)
	}
}

func TestPipeline_SchemaFailureShortCircuits(t *testing.T) {
	// The root breaks both the schema rule (level 0) and the nesting rule.
	// Only the schema message may surface.
	doc := document("short.md",
		section("Root", "", 0,
			section("Child", "", 0),
		),
	)

	outcome := NewPipeline().Validate(doc)
	if outcome.IsValid {
		t.Fatal("expected schema violation")
	}
	if !strings.Contains(outcome.Errors, "level 0 is outside the range 1-6") {
		t.Fatalf("expected schema message, got %q", outcome.Errors)
	}
	if strings.Contains(outcome.Errors, "must nest deeper") {
		t.Fatalf("expected pipeline to stop before structure validation, got %q", outcome.Errors)
	}
}

func TestPipeline_MissingChildrenListFailsSchema(t *testing.T) {
	doc := document("nochildren.md", &interfaces.Section{
		Title: "Root",
		Level: 1,
	})

	outcome := NewPipeline().Validate(doc)
	if outcome.IsValid {
		t.Fatal("expected missing children list to fail")
	}
	if !strings.Contains(outcome.Errors, "children list is missing") {
		t.Fatalf("unexpected errors: %q", outcome.Errors)
	}
}

func TestPipeline_ValidationIsIdempotent(t *testing.T) {
	doc := document("repeat.md",
		section("Root", "body", 1,
			section("Bad", "", 1),
		),
	)

	pipeline := NewPipeline()
	first := pipeline.Validate(doc)
	second := pipeline.Validate(doc)

	if first.IsValid != second.IsValid || first.Errors != second.Errors {
		t.Fatalf("expected identical outcomes, got %+v then %+v", first, second)
	}
}

func TestPipeline_CustomValidatorOrder(t *testing.T) {
	doc := document("custom.md",
		section("Root", "", 1,
			section("  ", "", 2),
		),
	)

	pipeline := NewPipeline(WithValidators(NewStructureValidator()))
	outcome := pipeline.Validate(doc)
	if !outcome.IsValid {
		t.Fatalf("structure-only pipeline should accept blank titles, got %q", outcome.Errors)
	}
}

func TestPipeline_NilDocumentFails(t *testing.T) {
	outcome := NewPipeline().Validate(nil)
	if outcome.IsValid {
		t.Fatal("expected nil document to fail validation")
	}
}

func TestValidators_ReportTheirNames(t *testing.T) {
	cases := map[string]interfaces.DocumentValidator{
		"schema":    NewSchemaValidator(),
		"content":   NewContentValidator(),
		"structure": NewStructureValidator(),
	}
	for want, validator := range cases {
		if got := validator.Name(); got != want {
			t.Fatalf("expected validator name %q, got %q", want, got)
		}
	}
}
