package documents

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Document is one converted markdown source file.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID        uuid.UUID `bun:",pk,type:uuid"            json:"id"`
	Filename  string    `bun:"filename,notnull,unique"  json:"filename"`
	Title     *string   `bun:"title"                    json:"title,omitempty"`
	Author    *string   `bun:"author"                   json:"author,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Sections   []*Section        `bun:"rel:has-many,join:id=document_id" json:"sections,omitempty"`
	JSONOutput *JSONOutput       `bun:"rel:has-one,join:id=document_id"  json:"json_output,omitempty"`
	Validation *ValidationResult `bun:"rel:has-one,join:id=document_id"  json:"validation,omitempty"`
}

// Section is one heading node of a document tree. Position keeps sibling
// order, Path is the dot-joined materialized path of slugged ancestor
// titles.
type Section struct {
	bun.BaseModel `bun:"table:sections,alias:s"`

	ID          uuid.UUID  `bun:",pk,type:uuid"                  json:"id"`
	DocumentID  uuid.UUID  `bun:"document_id,notnull,type:uuid"  json:"document_id"`
	ParentID    *uuid.UUID `bun:"parent_id,type:uuid"            json:"parent_id,omitempty"`
	Title       string     `bun:"title,notnull"                  json:"title"`
	Content     string     `bun:"content,notnull,default:''"     json:"content"`
	ContentHTML *string    `bun:"content_html"                   json:"content_html,omitempty"`
	Level       int        `bun:"level,notnull"                  json:"level"`
	Position    int        `bun:"position,notnull,default:0"     json:"position"`
	Path        string     `bun:"path,notnull"                   json:"path"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Children []*Section `bun:"rel:has-many,join:id=parent_id" json:"children,omitempty"`
}

// JSONOutput stores the serialized tree exactly as handed to writers.
type JSONOutput struct {
	bun.BaseModel `bun:"table:json_outputs,alias:jo"`

	ID          uuid.UUID `bun:",pk,type:uuid"                        json:"id"`
	DocumentID  uuid.UUID `bun:"document_id,notnull,type:uuid,unique" json:"document_id"`
	JSONContent string    `bun:"json_content,notnull"                 json:"json_content"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// ValidationResult records the pipeline outcome for a conversion. Invalid
// documents are stored like valid ones, only flagged.
type ValidationResult struct {
	bun.BaseModel `bun:"table:validation_results,alias:vr"`

	ID          uuid.UUID `bun:",pk,type:uuid"                        json:"id"`
	DocumentID  uuid.UUID `bun:"document_id,notnull,type:uuid,unique" json:"document_id"`
	IsValid     bool      `bun:"is_valid,notnull"                     json:"is_valid"`
	Errors      string    `bun:"errors,notnull,default:''"            json:"errors"`
	ValidatedAt time.Time `bun:"validated_at,nullzero,default:current_timestamp" json:"validated_at"`
}
