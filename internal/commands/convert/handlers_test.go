package convertcmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mdtree/internal/converter"
	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

type fakeConverter struct {
	filePaths []string
	dirs      []string
	loadOpts  []interfaces.LoadOptions
	err       error
}

func (f *fakeConverter) ConvertFile(ctx context.Context, path string) (*converter.ConversionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.filePaths = append(f.filePaths, path)
	return &converter.ConversionResult{
		Document: &interfaces.Document{Filename: path, Sections: []*interfaces.Section{}},
		Outcome:  interfaces.ValidationOutcome{IsValid: true},
	}, nil
}

func (f *fakeConverter) ConvertDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*converter.ConversionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.dirs = append(f.dirs, dir)
	f.loadOpts = append(f.loadOpts, opts)
	return []*converter.ConversionResult{
		{
			Document: &interfaces.Document{Filename: dir + "/a.md", Sections: []*interfaces.Section{}},
			Outcome:  interfaces.ValidationOutcome{IsValid: true},
		},
		{
			Document: &interfaces.Document{Filename: dir + "/b.md", Sections: []*interfaces.Section{}},
			Outcome:  interfaces.ValidationOutcome{Errors: "b.md: broken"},
		},
	}, nil
}

func TestConvertFileHandler_Execute(t *testing.T) {
	service := &fakeConverter{}
	handler := NewConvertFileHandler(service, nil)

	err := handler.Execute(context.Background(), ConvertFileCommand{Path: "docs/guide.md"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(service.filePaths) != 1 || service.filePaths[0] != "docs/guide.md" {
		t.Fatalf("expected service call with path, got %v", service.filePaths)
	}
}

func TestConvertFileHandler_RejectsInvalidMessage(t *testing.T) {
	service := &fakeConverter{}
	handler := NewConvertFileHandler(service, nil)

	err := handler.Execute(context.Background(), ConvertFileCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.filePaths) != 0 {
		t.Fatal("expected service not to be called")
	}
}

func TestConvertFileHandler_WrapsServiceError(t *testing.T) {
	service := &fakeConverter{err: errors.New("disk full")}
	handler := NewConvertFileHandler(service, nil)

	err := handler.Execute(context.Background(), ConvertFileCommand{Path: "docs/guide.md"})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestConvertDirectoryHandler_ForwardsLoadOptions(t *testing.T) {
	service := &fakeConverter{}
	handler := NewConvertDirectoryHandler(service, nil)

	err := handler.Execute(context.Background(), ConvertDirectoryCommand{
		Directory: "docs",
		Pattern:   "*.markdown",
		Recursive: true,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(service.dirs) != 1 || service.dirs[0] != "docs" {
		t.Fatalf("expected directory call, got %v", service.dirs)
	}
	opts := service.loadOpts[0]
	if opts.Pattern != "*.markdown" || !opts.Recursive {
		t.Fatalf("expected load options forwarded, got %+v", opts)
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterConvertCommands(t *testing.T) {
	registry := &recordingRegistry{}

	set, err := RegisterConvertCommands(registry, &fakeConverter{}, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if set.File == nil || set.Directory == nil {
		t.Fatalf("expected both handlers, got %+v", set)
	}
	if len(registry.handlers) != 2 {
		t.Fatalf("expected 2 registered handlers, got %d", len(registry.handlers))
	}
}

func TestRegisterConvertCommands_RequiresService(t *testing.T) {
	if _, err := RegisterConvertCommands(&recordingRegistry{}, nil, nil); err == nil {
		t.Fatal("expected error for nil service")
	}
}

func TestRegisterConvertCommands_PropagatesRegistryError(t *testing.T) {
	registry := &recordingRegistry{err: errors.New("registry closed")}
	if _, err := RegisterConvertCommands(registry, &fakeConverter{}, nil); err == nil {
		t.Fatal("expected registry error")
	}
}
