package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrPayloadValidation = errors.New("payload validation failed")

// DocumentJSONSchema describes the serialized document payload: a single
// filename key mapping to a list of section nodes. It mirrors the checks the
// in-memory validators perform, so a payload that round-trips through JSON
// can be re-verified without rebuilding the tree.
const DocumentJSONSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"title": "document-tree",
	"type": "object",
	"minProperties": 1,
	"maxProperties": 1,
	"additionalProperties": {
		"type": "array",
		"items": {"$ref": "#/$defs/section"}
	},
	"$defs": {
		"section": {
			"type": "object",
			"required": ["title", "content", "level", "children"],
			"properties": {
				"title": {"type": "string", "minLength": 1},
				"content": {"type": "string"},
				"level": {"type": "integer", "minimum": 1, "maximum": 6},
				"children": {
					"type": "array",
					"items": {"$ref": "#/$defs/section"}
				}
			},
			"additionalProperties": true
		}
	}
}`

var (
	documentSchemaOnce sync.Once
	documentSchema     *jsonschema.Schema
	documentSchemaErr  error
)

func compiledDocumentSchema() (*jsonschema.Schema, error) {
	documentSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("document.schema.json", strings.NewReader(DocumentJSONSchema)); err != nil {
			documentSchemaErr = err
			return
		}
		documentSchema, documentSchemaErr = compiler.Compile("document.schema.json")
	})
	return documentSchema, documentSchemaErr
}

// ValidationIssue captures a single payload validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces payload issues with their JSON locations.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrPayloadValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrPayloadValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// ValidatePayload checks serialized document JSON against DocumentJSONSchema.
// A schema violation comes back as a *PayloadValidationError; malformed JSON
// is reported as a plain error.
func ValidatePayload(data []byte) error {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	schema, err := compiledDocumentSchema()
	if err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}

	if err := schema.Validate(decoded); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
