package goadapter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanHandleRequiresGoMod(t *testing.T) {
	root := t.TempDir()
	a := New()
	if a.CanHandle(root) {
		t.Fatal("expected CanHandle false without go.mod")
	}
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/foo\n\ngo 1.22\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !a.CanHandle(root) {
		t.Fatal("expected CanHandle true once go.mod is present")
	}
}

func TestModulePathReadsModuleDirective(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/widgets\n\ngo 1.22\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := modulePath(root); got != "example.com/widgets" {
		t.Fatalf("got %q", got)
	}
}

func TestModulePathMissingFileReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	if got := modulePath(root); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestLanguageAndExtensions(t *testing.T) {
	a := New()
	if a.Language() != "gosrc" {
		t.Fatalf("got %q", a.Language())
	}
	exts := a.FileExtensions()
	if len(exts) != 1 || exts[0] != ".go" {
		t.Fatalf("got %+v", exts)
	}
}
