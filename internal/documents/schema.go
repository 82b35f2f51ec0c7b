package documents

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Models lists every bun model the package persists, in creation order.
func Models() []any {
	return []any{
		(*Document)(nil),
		(*Section)(nil),
		(*JSONOutput)(nil),
		(*ValidationResult)(nil),
	}
}

// CreateTables creates the schema for every model. Tests and the sqlite CLI
// path use this; postgres deployments run the embedded SQL migrations
// instead.
func CreateTables(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}
