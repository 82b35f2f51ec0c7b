package documents

import (
	"fmt"

	"github.com/goliatone/go-slug"
)

// sectionPath extends a parent's materialized path with the slug of the
// section title. Titles that normalize to an empty slug fall back to a
// positional segment so the path stays unambiguous.
func sectionPath(parent, title string, position int) string {
	segment, err := slug.Normalize(title)
	if err != nil || segment == "" {
		segment = fmt.Sprintf("section-%d", position)
	}
	if parent == "" {
		return segment
	}
	return parent + "." + segment
}
