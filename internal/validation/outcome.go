package validation

import (
	"strings"

	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

func pass() interfaces.ValidationOutcome {
	return interfaces.ValidationOutcome{IsValid: true}
}

func fail(messages ...string) interfaces.ValidationOutcome {
	return interfaces.ValidationOutcome{Errors: strings.Join(messages, "\n")}
}

// childContext extends a location path with the next section title. Paths
// start at the document filename and accumulate ancestor titles, dot joined,
// so error messages read like "guide.md.Install.Requirements: ...".
func childContext(parent, title string) string {
	if title == "" {
		return parent
	}
	if parent == "" {
		return title
	}
	return parent + "." + title
}
