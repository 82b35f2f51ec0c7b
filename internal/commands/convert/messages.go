package convertcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	convertFileMessageType      = "mdtree.convert.file"
	convertDirectoryMessageType = "mdtree.convert.directory"
)

// ConvertFileCommand converts a single markdown file into its JSON tree.
type ConvertFileCommand struct {
	// Path selects the markdown file (relative to the loader root) to convert.
	Path string `json:"path"`
}

// Type implements command.Message.
func (ConvertFileCommand) Type() string { return convertFileMessageType }

// Validate ensures a path is present before handlers execute.
func (cmd ConvertFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("mdtree.convert.file.path_required", "path is required")
			}
			return nil
		})),
	)
}

// ConvertDirectoryCommand converts every matching markdown file under the
// provided Directory.
type ConvertDirectoryCommand struct {
	// Directory selects the filesystem path to walk for markdown files.
	Directory string `json:"directory"`
	// Pattern overrides the loader's glob pattern ("*.md" by default).
	Pattern string `json:"pattern,omitempty"`
	// Recursive walks subdirectories when true.
	Recursive bool `json:"recursive,omitempty"`
}

// Type implements command.Message.
func (ConvertDirectoryCommand) Type() string { return convertDirectoryMessageType }

// Validate ensures a directory is present before handlers execute.
func (cmd ConvertDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("mdtree.convert.directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
