package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toyz/routedoc/internal/errors"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", name, err)
		}
	}
}

func TestFileProcessor_ResolvePatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"main.go":                     "package main",
		"controllers/users.go":        "package controllers",
		"controllers/users_test.go":   "package controllers",
		"controllers/admin/admin.go":  "package admin",
		"docs/README.md":              "# docs",
		"vendor/lib/lib.go":           "package lib",
		"testdata/fixture.go":         "package fixture",
		".hidden/secret.go":           "package secret",
		"_scratch/scratch.go":         "package scratch",
		"generated/autogen_module.go": "package generated",
	})

	fp := NewFileProcessor()

	dirs, err := fp.ResolvePatterns([]string{filepath.Join(tmpDir, "...")})
	if err != nil {
		t.Fatalf("ResolvePatterns failed: %v", err)
	}

	var rel []string
	for _, d := range dirs {
		r, _ := filepath.Rel(tmpDir, d)
		rel = append(rel, filepath.ToSlash(r))
	}

	expected := []string{".", "controllers", "controllers/admin"}
	if strings.Join(rel, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected directories %v, got %v", expected, rel)
	}

	dirs, err = fp.ResolvePatterns([]string{filepath.Join(tmpDir, "controllers")})
	if err != nil {
		t.Fatalf("ResolvePatterns failed: %v", err)
	}
	if len(dirs) != 1 || filepath.Base(dirs[0]) != "controllers" {
		t.Errorf("Expected only the controllers directory, got %v", dirs)
	}
}

func TestFileProcessor_ResolvePatternsErrors(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{"main.go": "package main"})

	fp := NewFileProcessor()

	_, err := fp.ResolvePatterns([]string{filepath.Join(tmpDir, "missing")})
	if errors.CodeOf(err) != errors.FileSystemErrorCode {
		t.Errorf("Expected FileSystemError for a missing directory, got %v", err)
	}

	_, err = fp.ResolvePatterns([]string{filepath.Join(tmpDir, "main.go")})
	if errors.CodeOf(err) != errors.FileSystemErrorCode {
		t.Errorf("Expected FileSystemError for a file argument, got %v", err)
	}
}

func TestFileProcessor_GoFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"b.go":              "package main",
		"a.go":              "package main",
		"a_test.go":         "package main",
		"autogen_module.go": "package main",
		"notes.txt":         "",
	})

	files, err := NewFileProcessor().GoFiles(tmpDir)
	if err != nil {
		t.Fatalf("GoFiles failed: %v", err)
	}

	if len(files) != 2 || filepath.Base(files[0]) != "a.go" || filepath.Base(files[1]) != "b.go" {
		t.Errorf("Expected [a.go b.go], got %v", files)
	}
}

func TestGoMod(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"go.mod":          "module github.com/acme/shop\n\ngo 1.25\n",
		"internal/app.go": "package internal",
	})

	goMod, err := FindGoModFile(filepath.Join(tmpDir, "internal"))
	if err != nil {
		t.Fatalf("FindGoModFile failed: %v", err)
	}

	name, err := ParseModuleName(goMod)
	if err != nil {
		t.Fatalf("ParseModuleName failed: %v", err)
	}
	if name != "github.com/acme/shop" {
		t.Errorf("Expected module github.com/acme/shop, got %s", name)
	}

	if _, err := ParseModuleName(filepath.Join(tmpDir, "internal", "app.go")); err == nil {
		t.Error("Expected an error for a non go.mod path")
	}
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	var out, errOut bytes.Buffer

	d := NewDiagnosticSystem(DiagnosticWarn)
	d.SetOutput(&out, &errOut)
	d.SetColors(false)
	d.SetShowTime(false)

	d.Error("broken %s", "thing")
	d.Warn("careful")
	d.Info("hidden")
	d.Verbose("hidden")

	if out.Len() != 0 {
		t.Errorf("Expected no regular output at warn level, got %q", out.String())
	}
	if got := errOut.String(); got != "[ERROR] broken thing\n[WARN] careful\n" {
		t.Errorf("Unexpected error output %q", got)
	}
}

func TestDiagnosticSystem_Formatting(t *testing.T) {
	var out bytes.Buffer

	d := NewDiagnosticSystem(DiagnosticDebug)
	d.SetOutput(&out, &out)
	d.SetColors(false)
	d.SetShowTime(false)

	d.Header("collecting")
	d.Indent()
	d.Debug("nested")
	d.PhaseItem("%d routes", 3)
	d.Unindent()
	d.Unindent()
	d.Summary("Done", map[string]any{"routes": 3, "entries": 4})

	expected := "routedoc: collecting\n  [DEBUG] nested\n  ✓ 3 routes\n\nDone\n   entries: 4\n   routes: 3\n"
	if out.String() != expected {
		t.Errorf("Expected %q, got %q", expected, out.String())
	}
}

func TestDiagnosticSystem_Silent(t *testing.T) {
	var out bytes.Buffer

	d := NewDiagnosticSystem(DiagnosticSilent)
	d.SetOutput(&out, &out)
	d.Error("nothing")
	d.Summary("nothing", nil)

	if out.Len() != 0 {
		t.Errorf("Expected silence, got %q", out.String())
	}
}
