package interfaces

// ValidationOutcome is the result of running a document tree through the
// validation pipeline. Invalidity is an expected outcome, not an error:
// Errors holds the first failing validator's messages joined by newlines and
// is empty exactly when IsValid is true.
type ValidationOutcome struct {
	IsValid bool   `json:"is_valid"`
	Errors  string `json:"errors"`
}

// DocumentValidator checks one aspect of a parsed document tree. Validators
// only read the tree; they never mutate it, so the same document can be
// validated repeatedly with identical outcomes.
type DocumentValidator interface {
	Name() string
	Validate(doc *Document) ValidationOutcome
}
