package markdown

import (
	"strings"

	"github.com/goliatone/go-mdtree/internal/logging"
	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

// Parser builds a forest of sections from ordered text lines. It keeps no
// state between invocations, so a single instance can be shared freely.
type Parser struct {
	logger interfaces.Logger
}

// ParserOption customises parser construction.
type ParserOption func(*Parser)

// WithParserLogger injects the logger used for parse diagnostics.
func WithParserLogger(logger interfaces.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser constructs a heading parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ interfaces.HeadingParser = (*Parser)(nil)

// Parse scans the lines in order, opening a section per heading and
// accumulating everything else as pending content for the most recently
// opened section. Parsing is total: malformed heading-like lines degrade to
// content, and content before the first heading is discarded.
//
// The ancestor stack holds the chain of currently open sections with
// strictly increasing levels. A new heading pops every ancestor whose level
// is not strictly smaller, then attaches to the remaining top (or becomes a
// new root when the stack empties). Level skips attach directly with no
// synthetic intermediates.
func (p *Parser) Parse(filename string, lines []string) *interfaces.Document {
	roots := []*interfaces.Section{}
	stack := []*interfaces.Section{}
	pending := []string{}

	flush := func() {
		if len(stack) == 0 {
			pending = pending[:0]
			return
		}
		stack[len(stack)-1].Content = joinContent(pending)
		pending = pending[:0]
	}

	for _, line := range lines {
		heading, ok := DetectHeading(line)
		if !ok {
			pending = append(pending, line)
			continue
		}

		flush()

		for len(stack) > 0 && stack[len(stack)-1].Level >= heading.Level {
			stack = stack[:len(stack)-1]
		}

		section := &interfaces.Section{
			Title:    heading.Title,
			Level:    heading.Level,
			Children: []*interfaces.Section{},
		}

		if len(stack) == 0 {
			roots = append(roots, section)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, section)
		}

		stack = append(stack, section)
	}

	flush()

	p.logger.Debug("markdown.parse.completed",
		"document", filename,
		"lines", len(lines),
		"roots", len(roots),
	)

	return &interfaces.Document{
		Filename: filename,
		Sections: roots,
	}
}

// joinContent collapses accumulated lines into one content string. Interior
// blank lines survive; trailing whitespace per line and a single leading or
// trailing blank line do not.
func joinContent(lines []string) string {
	trimmed := make([]string, len(lines))
	for i, line := range lines {
		trimmed[i] = strings.TrimRight(line, " \t")
	}

	if len(trimmed) > 0 && trimmed[0] == "" {
		trimmed = trimmed[1:]
	}
	if len(trimmed) > 0 && trimmed[len(trimmed)-1] == "" {
		trimmed = trimmed[:len(trimmed)-1]
	}

	return strings.Join(trimmed, "\n")
}
