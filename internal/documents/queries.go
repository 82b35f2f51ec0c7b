package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

// GetByFilename returns the stored document with its validation outcome and
// serialized payload attached.
func (s *Store) GetByFilename(ctx context.Context, filename string) (*Document, error) {
	record := new(Document)
	err := s.db.NewSelect().
		Model(record).
		Relation("Validation").
		Relation("JSONOutput").
		Where("?TableAlias.filename = ?", filename).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %q: %w", filename, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup document %q: %w", filename, err)
	}
	return record, nil
}

// ListDocuments returns all stored documents ordered by filename.
func (s *Store) ListDocuments(ctx context.Context) ([]*Document, error) {
	var records []*Document
	err := s.db.NewSelect().
		Model(&records).
		Relation("Validation").
		Order("filename ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return records, nil
}

// SectionsUnderPath returns the section rows whose materialized path sits at
// or below the given path, ordered so parents come before their children.
func (s *Store) SectionsUnderPath(ctx context.Context, documentID uuid.UUID, path string) ([]*Section, error) {
	var rows []*Section
	err := s.db.NewSelect().
		Model(&rows).
		Where("?TableAlias.document_id = ?", documentID).
		Where("?TableAlias.path = ? OR ?TableAlias.path LIKE ?", path, path+".%").
		Order("path ASC", "position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("sections under %q: %w", path, err)
	}
	return rows, nil
}

// LoadTree rebuilds the in-memory document tree from the stored section
// rows. Sibling order follows the position column.
func (s *Store) LoadTree(ctx context.Context, filename string) (*interfaces.Document, error) {
	record, err := s.GetByFilename(ctx, filename)
	if err != nil {
		return nil, err
	}

	var rows []*Section
	err = s.db.NewSelect().
		Model(&rows).
		Where("?TableAlias.document_id = ?", record.ID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sections %q: %w", filename, err)
	}

	doc := &interfaces.Document{
		Filename: record.Filename,
		Sections: buildForest(rows),
	}
	if record.Title != nil {
		doc.Meta.Title = *record.Title
	}
	if record.Author != nil {
		doc.Meta.Author = *record.Author
	}
	return doc, nil
}

func buildForest(rows []*Section) []*interfaces.Section {
	nodes := make(map[uuid.UUID]*interfaces.Section, len(rows))
	for _, row := range rows {
		nodes[row.ID] = &interfaces.Section{
			Title:    row.Title,
			Content:  row.Content,
			Level:    row.Level,
			Children: []*interfaces.Section{},
		}
	}

	type placement struct {
		position int
		node     *interfaces.Section
	}
	children := map[uuid.UUID][]placement{}
	var roots []placement

	for _, row := range rows {
		entry := placement{position: row.Position, node: nodes[row.ID]}
		if row.ParentID == nil {
			roots = append(roots, entry)
			continue
		}
		children[*row.ParentID] = append(children[*row.ParentID], entry)
	}

	attach := func(entries []placement) []*interfaces.Section {
		sort.Slice(entries, func(i, j int) bool { return entries[i].position < entries[j].position })
		out := make([]*interfaces.Section, 0, len(entries))
		for _, entry := range entries {
			out = append(out, entry.node)
		}
		return out
	}

	for _, row := range rows {
		if kids, ok := children[row.ID]; ok {
			nodes[row.ID].Children = attach(kids)
		}
	}
	return attach(roots)
}
