package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

// ErrInvalidEncoding is returned when a source file is not valid UTF-8. This
// is the only hard failure on the ingestion path; everything the parser can
// decode it will accept.
var ErrInvalidEncoding = errors.New("markdown loader: source is not valid UTF-8")

// LoaderConfig configures how markdown files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where markdown documents live.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into decoded line sequences with frontmatter
// already stripped.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

var _ interfaces.SourceLoader = (*Loader)(nil)

// LoadFile reads a single markdown document into lines.
func (l *Loader) LoadFile(ctx context.Context, path string) (*interfaces.SourceFile, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEncoding, rel)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", rel, err)
	}

	return &interfaces.SourceFile{
		Path:     rel,
		Lines:    splitLines(body),
		Meta:     meta,
		Modified: info.ModTime(),
	}, nil
}

// LoadDirectory discovers markdown files under dir and returns them in
// path order.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.SourceFile, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)
	if rel == "" {
		rel = "."
	}

	pattern := opts.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = l.pattern
	}
	recursive := l.recursive || opts.Recursive

	var paths []string
	err = fs.WalkDir(l.fs, rel, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			if path != rel && !recursive {
				return fs.SkipDir
			}
			return nil
		}
		matched, matchErr := filepath.Match(pattern, entry.Name())
		if matchErr != nil {
			return fmt.Errorf("markdown loader pattern %q: %w", pattern, matchErr)
		}
		if matched {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("markdown loader walk %s: %w", rel, err)
	}

	sort.Strings(paths)

	files := make([]*interfaces.SourceFile, 0, len(paths))
	for _, path := range paths {
		file, loadErr := l.LoadFile(ctx, path)
		if loadErr != nil {
			return nil, loadErr
		}
		files = append(files, file)
	}
	return files, nil
}

func (l *Loader) makeRelative(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if l.basePath == "." || l.basePath == "" {
		return cleaned, nil
	}
	if !filepath.IsAbs(cleaned) && !strings.HasPrefix(cleaned, l.basePath) {
		return cleaned, nil
	}
	rel, err := filepath.Rel(l.basePath, cleaned)
	if err != nil {
		return "", fmt.Errorf("markdown loader path %s: %w", path, err)
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("markdown loader path %s escapes base %s", path, l.basePath)
	}
	return rel, nil
}

// splitLines normalizes line endings before splitting so CRLF sources parse
// identically to LF sources. Empty input yields no lines, not one empty line.
func splitLines(body []byte) []string {
	text := strings.ReplaceAll(string(body), "\r\n", "\n")
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
