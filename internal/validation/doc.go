// Package validation checks parsed document trees before they are written
// out or persisted. Three validators run in a fixed order (schema, content,
// structure) and the pipeline stops at the first failure. Validators treat
// an invalid document as a normal outcome rather than an error, so callers
// can record the result and keep going.
package validation
