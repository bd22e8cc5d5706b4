package goadapter

import (
	"go/token"
	"os"
	"path/filepath"
	"testing"
)

func writeGoFile(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetectFileRecordsImportAsNamespace(t *testing.T) {
	src := `package main

import "github.com/sirupsen/logrus"

func main() {
	logrus.Info("hi")
}
`
	path := writeGoFile(t, src)
	fset := token.NewFileSet()
	res := detectFile(path, "main.go", fset)
	if len(res.imports) != 1 {
		t.Fatalf("got %d imports, want 1: %+v", len(res.imports), res.imports)
	}
	imp := res.imports[0]
	if imp.Source != "github.com/sirupsen/logrus" || imp.Alias != "logrus" {
		t.Fatalf("got %+v", imp)
	}
	if !res.graph.CalledFunctions["logrus.Info"] || !res.graph.CalledFunctions["Info"] {
		t.Fatalf("expected dual-recorded call, got %+v", res.graph.CalledFunctions)
	}
}

func TestDetectFileBlankImportIsSideEffect(t *testing.T) {
	src := `package main

import _ "github.com/lib/pq"

func main() {}
`
	path := writeGoFile(t, src)
	fset := token.NewFileSet()
	res := detectFile(path, "main.go", fset)
	if len(res.imports) != 1 || res.imports[0].Kind != "side-effect" {
		t.Fatalf("got %+v", res.imports)
	}
}

func TestDetectFileAliasedImport(t *testing.T) {
	src := `package main

import l "github.com/sirupsen/logrus"

func main() {
	l.Warn("careful")
}
`
	path := writeGoFile(t, src)
	fset := token.NewFileSet()
	res := detectFile(path, "main.go", fset)
	if len(res.imports) != 1 || res.imports[0].Alias != "l" {
		t.Fatalf("got %+v", res.imports)
	}
	if !res.graph.CalledFunctions["l.Warn"] {
		t.Fatalf("expected aliased call recorded, got %+v", res.graph.CalledFunctions)
	}
}

func TestDetectFileReferenceWithoutCall(t *testing.T) {
	src := `package main

import "github.com/sirupsen/logrus"

var fn = logrus.Warn

func main() {}
`
	path := writeGoFile(t, src)
	fset := token.NewFileSet()
	res := detectFile(path, "main.go", fset)
	if !res.graph.References["logrus"] {
		t.Fatalf("expected logrus referenced, got %+v", res.graph.References)
	}
}

func TestDetectFileUnparseableIsSkippedNotFatal(t *testing.T) {
	path := writeGoFile(t, "this is not valid go source {{{")
	fset := token.NewFileSet()
	res := detectFile(path, "main.go", fset)
	if len(res.imports) != 0 {
		t.Fatalf("expected no imports for unparseable file, got %+v", res.imports)
	}
	if res.graph == nil {
		t.Fatal("expected a non-nil empty graph even on parse failure")
	}
}
