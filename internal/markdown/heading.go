package markdown

import (
	"regexp"
	"strings"
)

// headingPattern matches 1-6 marker characters followed by at least one
// space or tab. Seven or more markers never match, so those lines fall
// through to content.
var headingPattern = regexp.MustCompile(`^(#{1,6})[ \t]+(.*)$`)

// Heading is one recognized heading line.
type Heading struct {
	Level int
	Title string
}

// DetectHeading reports whether the line is a valid markdown heading. A
// heading needs 1-6 leading '#' characters, whitespace, and non-empty title
// text; anything else (including marker-only lines) is content.
func DetectHeading(line string) (Heading, bool) {
	match := headingPattern.FindStringSubmatch(line)
	if match == nil {
		return Heading{}, false
	}

	title := strings.TrimSpace(match[2])
	if title == "" {
		return Heading{}, false
	}

	return Heading{
		Level: len(match[1]),
		Title: title,
	}, true
}
