package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// SavedConversion reports what a DocumentStore wrote for one document.
type SavedConversion struct {
	DocumentID   uuid.UUID
	SectionCount int
}

// DocumentStore persists the outcome of one conversion: a document row, one
// section row per tree node, the full JSON serialization, and the validation
// result. Implementations must treat all rows for a document as a single
// atomic unit so a mid-write failure leaves no partial document behind.
// Invalid documents are still persisted; validity is recorded, not gated on.
type DocumentStore interface {
	SaveConversion(ctx context.Context, doc *Document, outcome ValidationOutcome) (*SavedConversion, error)
}
