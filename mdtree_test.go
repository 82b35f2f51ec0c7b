package mdtree

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/goliatone/go-mdtree/pkg/interfaces"
)

const sampleMarkdown = `---
title: Guide
author: Docs Team
---

# Guide

Welcome.

## Install

Run make.

## Usage

Run it.
`

func writeSample(t *testing.T, name string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(sampleMarkdown), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
}

func TestNew_ValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Persistence = true

	_, err := New(cfg)
	if !errors.Is(err, ErrStorageDriverRequired) {
		t.Fatalf("expected ErrStorageDriverRequired, got %v", err)
	}
}

func TestModule_ConvertFileEndToEnd(t *testing.T) {
	t.Chdir(t.TempDir())
	writeSample(t, "guide.md")

	cfg := DefaultConfig()
	cfg.Logging.Provider = "noop"
	cfg.Features.Persistence = true
	cfg.Storage = StorageConfig{Driver: "sqlite3", DSN: "file::memory:?cache=shared&_fk=1"}

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() {
		_ = module.Close()
	})

	ctx := context.Background()
	if err := module.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	result, err := module.ConvertFile(ctx, "guide.md")
	if err != nil {
		t.Fatalf("convert file: %v", err)
	}
	if !result.Outcome.IsValid {
		t.Fatalf("expected valid outcome, got %q", result.Outcome.Errors)
	}
	if result.OutputPath != "guide.json" {
		t.Fatalf("expected guide.json next to source, got %q", result.OutputPath)
	}
	if result.Saved == nil || result.Saved.SectionCount != 3 {
		t.Fatalf("expected 3 persisted sections, got %+v", result.Saved)
	}

	data, err := os.ReadFile("guide.json")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var payload map[string][]*interfaces.Section
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	roots := payload["guide.md"]
	if len(roots) != 1 || roots[0].Title != "Guide" || len(roots[0].Children) != 2 {
		t.Fatalf("unexpected tree: %+v", roots)
	}

	record, err := module.Store().GetByFilename(ctx, "guide.md")
	if err != nil {
		t.Fatalf("get stored document: %v", err)
	}
	if record.Title == nil || *record.Title != "Guide" {
		t.Fatalf("expected frontmatter title stored, got %v", record.Title)
	}
}

func TestModule_ConvertDirectoryUsesContentDir(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.MkdirAll("docs/sub", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeSample(t, "docs/a.md")
	writeSample(t, "docs/sub/b.md")

	cfg := DefaultConfig()
	cfg.Logging.Provider = "noop"
	cfg.Markdown.ContentDir = "docs"

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	results, err := module.ConvertDirectory(context.Background(), "")
	if err != nil {
		t.Fatalf("convert directory: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 conversions, got %d", len(results))
	}
	if _, err := os.Stat("docs/a.json"); err != nil {
		t.Fatalf("expected docs/a.json: %v", err)
	}
	if _, err := os.Stat("docs/sub/b.json"); err != nil {
		t.Fatalf("expected docs/sub/b.json: %v", err)
	}
}

type moduleTestRegistry struct {
	handlers []any
}

func (r *moduleTestRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestModule_RegisterCommands(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Provider = "noop"

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	registry := &moduleTestRegistry{}
	set, err := module.RegisterCommands(registry)
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if set.File == nil || set.Directory == nil {
		t.Fatalf("expected both handlers, got %+v", set)
	}
	if len(registry.handlers) != 2 {
		t.Fatalf("expected 2 registered handlers, got %d", len(registry.handlers))
	}
}

func TestGetMigrationsFS(t *testing.T) {
	entries, err := GetMigrationsFS().ReadDir("data/sql/migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one migration file")
	}
}
