package interfaces

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Section is a single node of a parsed document tree. A section corresponds
// to one heading line and owns the content that followed it plus every
// deeper heading nested beneath it. Children keep document order; a child's
// Level is always strictly greater than its parent's.
type Section struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Level    int        `json:"level"`
	Children []*Section `json:"children"`
}

// Walk visits the section and every descendant in document order. The walk
// stops early when fn returns false.
func (s *Section) Walk(fn func(*Section) bool) bool {
	if s == nil {
		return true
	}
	if !fn(s) {
		return false
	}
	for _, child := range s.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Document wraps the forest of top-level sections parsed from one source
// file. Most markdown files produce a single root, but zero or multiple
// top-level headings are tolerated.
type Document struct {
	Filename string
	Sections []*Section
	Meta     FrontMatter
}

// MarshalJSON serializes the document as a single-key object mapping the
// source filename to its top-level sections, matching the converter's wire
// contract: {"file.md": [{"title": ..., "children": [...]}, ...]}.
func (d *Document) MarshalJSON() ([]byte, error) {
	sections := d.Sections
	if sections == nil {
		sections = []*Section{}
	}
	return json.Marshal(map[string][]*Section{d.Filename: sections})
}

// UnmarshalJSON restores a document from the single-key wire shape. Payloads
// with more than one top-level key are rejected.
func (d *Document) UnmarshalJSON(data []byte) error {
	var wire map[string][]*Section
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if len(wire) != 1 {
		return fmt.Errorf("document payload must contain exactly one filename key, got %d", len(wire))
	}
	for filename, sections := range wire {
		d.Filename = filename
		d.Sections = sections
	}
	return nil
}

// FrontMatter carries metadata extracted from an optional YAML block at the
// top of the source file. The block is stripped before heading parsing so
// its delimiters never leak into section content.
type FrontMatter struct {
	Title  string         `yaml:"title"`
	Author string         `yaml:"author"`
	Date   time.Time      `yaml:"date"`
	Tags   []string       `yaml:"tags"`
	Custom map[string]any `yaml:",inline"`
}

// HeadingParser converts an ordered sequence of already-decoded text lines
// into a document tree. Parsing is total: malformed heading-like lines
// degrade to content and never produce an error.
type HeadingParser interface {
	Parse(filename string, lines []string) *Document
}

// RenderOptions tunes optional HTML rendering of section content.
type RenderOptions struct {
	HardWraps  bool
	SafeMode   bool
	Extensions []string
}

// MarkdownRenderer renders raw markdown into HTML. Implementations should be
// stateless so a single instance can be shared across conversions.
type MarkdownRenderer interface {
	Render(markdown []byte, opts RenderOptions) ([]byte, error)
}

// LoadOptions controls filesystem discovery of markdown sources.
type LoadOptions struct {
	// Pattern limits discovered files to those matching the glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// SourceLoader reads markdown files into decoded line sequences. Undecodable
// input (invalid UTF-8) is the only hard error the ingestion path raises.
type SourceLoader interface {
	LoadFile(ctx context.Context, path string) (*SourceFile, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*SourceFile, error)
}

// SourceFile is one markdown file split into lines, with any frontmatter
// already stripped and captured.
type SourceFile struct {
	Path     string
	Lines    []string
	Meta     FrontMatter
	Modified time.Time
}
