package converter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

// JSONWriter serializes documents to disk. The zero value writes
// pretty-printed JSON next to the source file.
type JSONWriter struct {
	// Dir redirects output into a directory instead of beside the source.
	Dir string
	// Indent is the indentation unit, two spaces when empty.
	Indent string
}

// OutputPath returns where the payload for sourcePath lands: the source
// path with its extension swapped for .json, moved under Dir when set.
func (w *JSONWriter) OutputPath(sourcePath string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath)) + ".json"
	if w.Dir != "" {
		return filepath.Join(w.Dir, base)
	}
	return filepath.Join(filepath.Dir(sourcePath), base)
}

// Write serializes the document and writes it to the output path derived
// from sourcePath, creating the output directory when needed.
func (w *JSONWriter) Write(doc *interfaces.Document, sourcePath string) (string, error) {
	indent := w.Indent
	if indent == "" {
		indent = "  "
	}

	payload, err := json.MarshalIndent(doc, "", indent)
	if err != nil {
		return "", fmt.Errorf("serialize %q: %w", doc.Filename, err)
	}

	target := w.OutputPath(sourcePath)
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir %q: %w", dir, err)
		}
	}

	if err := os.WriteFile(target, append(payload, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write %q: %w", target, err)
	}
	return target, nil
}
