package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-mdtree/internal/logging"
	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

var (
	ErrNilDocument = errors.New("documents: document is nil")
	ErrNotFound    = errors.New("documents: not found")
)

// Store implements interfaces.DocumentStore on top of bun. It works against
// both the sqlite and postgres dialects.
type Store struct {
	db         *bun.DB
	logger     interfaces.Logger
	renderer   interfaces.MarkdownRenderer
	renderOpts interfaces.RenderOptions
	now        func() time.Time
}

type StoreOption func(*Store)

func WithStoreLogger(logger interfaces.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHTMLRenderer makes the store render each section's markdown into the
// content_html column as rows are written.
func WithHTMLRenderer(renderer interfaces.MarkdownRenderer, opts interfaces.RenderOptions) StoreOption {
	return func(s *Store) {
		s.renderer = renderer
		s.renderOpts = opts
	}
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(db *bun.DB, opts ...StoreOption) *Store {
	store := &Store{
		db:     db,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

var _ interfaces.DocumentStore = (*Store)(nil)

// SaveConversion writes the document, its section rows, the serialized JSON
// payload and the validation outcome in one transaction. A document that was
// converted before keeps its id; every dependent row is replaced.
func (s *Store) SaveConversion(ctx context.Context, doc *interfaces.Document, outcome interfaces.ValidationOutcome) (*interfaces.SavedConversion, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize document %q: %w", doc.Filename, err)
	}

	saved := &interfaces.SavedConversion{}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := s.upsertDocument(ctx, tx, doc)
		if err != nil {
			return err
		}

		if err := s.clearDependents(ctx, tx, record.ID); err != nil {
			return err
		}

		count := 0
		for i, root := range doc.Sections {
			if err := s.insertSectionTree(ctx, tx, record.ID, nil, "", i, root, &count); err != nil {
				return err
			}
		}

		output := &JSONOutput{
			ID:          uuid.New(),
			DocumentID:  record.ID,
			JSONContent: string(payload),
			CreatedAt:   s.now(),
		}
		if _, err := tx.NewInsert().Model(output).Exec(ctx); err != nil {
			return fmt.Errorf("insert json output: %w", err)
		}

		result := &ValidationResult{
			ID:          uuid.New(),
			DocumentID:  record.ID,
			IsValid:     outcome.IsValid,
			Errors:      outcome.Errors,
			ValidatedAt: s.now(),
		}
		if _, err := tx.NewInsert().Model(result).Exec(ctx); err != nil {
			return fmt.Errorf("insert validation result: %w", err)
		}

		saved.DocumentID = record.ID
		saved.SectionCount = count
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save conversion %q: %w", doc.Filename, err)
	}

	s.logger.Info("conversion saved",
		"document", doc.Filename,
		"document_id", saved.DocumentID.String(),
		"sections", saved.SectionCount,
		"is_valid", outcome.IsValid,
	)
	return saved, nil
}

func (s *Store) upsertDocument(ctx context.Context, tx bun.Tx, doc *interfaces.Document) (*Document, error) {
	existing := new(Document)
	err := tx.NewSelect().
		Model(existing).
		Where("?TableAlias.filename = ?", doc.Filename).
		Limit(1).
		Scan(ctx)
	switch {
	case err == nil:
		existing.Title = optionalString(doc.Meta.Title)
		existing.Author = optionalString(doc.Meta.Author)
		existing.UpdatedAt = s.now()
		if _, err := tx.NewUpdate().
			Model(existing).
			Column("title", "author", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return nil, fmt.Errorf("update document: %w", err)
		}
		return existing, nil
	case errors.Is(err, sql.ErrNoRows):
		record := &Document{
			ID:        uuid.New(),
			Filename:  doc.Filename,
			Title:     optionalString(doc.Meta.Title),
			Author:    optionalString(doc.Meta.Author),
			CreatedAt: s.now(),
			UpdatedAt: s.now(),
		}
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return nil, fmt.Errorf("insert document: %w", err)
		}
		return record, nil
	default:
		return nil, fmt.Errorf("lookup document: %w", err)
	}
}

func (s *Store) clearDependents(ctx context.Context, tx bun.Tx, documentID uuid.UUID) error {
	models := []any{
		(*Section)(nil),
		(*JSONOutput)(nil),
		(*ValidationResult)(nil),
	}
	for _, model := range models {
		if _, err := tx.NewDelete().
			Model(model).
			Where("?TableAlias.document_id = ?", documentID).
			Exec(ctx); err != nil {
			return fmt.Errorf("clear previous rows: %w", err)
		}
	}
	return nil
}

func (s *Store) insertSectionTree(ctx context.Context, tx bun.Tx, documentID uuid.UUID, parentID *uuid.UUID, parentPath string, position int, node *interfaces.Section, count *int) error {
	if node == nil {
		return nil
	}

	row := &Section{
		ID:         uuid.New(),
		DocumentID: documentID,
		ParentID:   parentID,
		Title:      node.Title,
		Content:    node.Content,
		Level:      node.Level,
		Position:   position,
		Path:       sectionPath(parentPath, node.Title, position),
		CreatedAt:  s.now(),
	}

	if s.renderer != nil && node.Content != "" {
		html, err := s.renderer.Render([]byte(node.Content), s.renderOpts)
		if err != nil {
			return fmt.Errorf("render section %q: %w", node.Title, err)
		}
		rendered := string(html)
		row.ContentHTML = &rendered
	}

	if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert section %q: %w", node.Title, err)
	}
	*count++

	for i, child := range node.Children {
		if err := s.insertSectionTree(ctx, tx, documentID, &row.ID, row.Path, i, child, count); err != nil {
			return err
		}
	}
	return nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
