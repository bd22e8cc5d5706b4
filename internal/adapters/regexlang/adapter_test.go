package regexlang

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/reachvet/engine/internal/domain"
)

type stubMapper map[string][]string

func (m stubMapper) NamespacesFor(pkg string) []string { return m[pkg] }

func phpConfig() Config {
	return Config{
		Language:     "php",
		Extensions:   []string{".php"},
		ManifestFile: "composer.json",
		ImportRegex:  regexp.MustCompile(`^\s*use\s+([A-Za-z0-9_\\]+)\s*;`),
	}
}

func TestCanHandleByManifest(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "composer.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := New(phpConfig(), nil)
	if !a.CanHandle(root) {
		t.Fatal("expected CanHandle true when manifest present")
	}
}

func TestCanHandleByFileDiscoveryFallback(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.php"), []byte("<?php\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := New(phpConfig(), nil)
	if !a.CanHandle(root) {
		t.Fatal("expected CanHandle true via source-file fallback")
	}
}

func TestCanHandleFalseWhenNeitherPresent(t *testing.T) {
	root := t.TempDir()
	a := New(phpConfig(), nil)
	if a.CanHandle(root) {
		t.Fatal("expected CanHandle false for an empty directory")
	}
}

func TestAnalyzeFindsImportedComponent(t *testing.T) {
	root := t.TempDir()
	src := "<?php\nuse GuzzleHttp\\Client;\n\n$c = new Client();\n"
	if err := os.WriteFile(filepath.Join(root, "index.php"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	mapper := stubMapper{"guzzlehttp/guzzle": {"GuzzleHttp"}}
	a := New(phpConfig(), mapper)
	components := []domain.Component{{Name: "guzzlehttp/guzzle", Version: "6.0.0"}}
	results, err := a.Analyze(context.Background(), root, components)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	// Thin adapters have no call-graph builder: status tops out at imported.
	if results[0].Status == domain.StatusNotReachable {
		t.Fatalf("expected the use-statement to be matched, got %+v", results[0])
	}
}

func TestAnalyzeComponentNotImportedIsNotReachable(t *testing.T) {
	root := t.TempDir()
	src := "<?php\nuse Totally\\Unrelated;\n"
	if err := os.WriteFile(filepath.Join(root, "index.php"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	a := New(phpConfig(), stubMapper{"guzzlehttp/guzzle": {"GuzzleHttp"}})
	components := []domain.Component{{Name: "guzzlehttp/guzzle", Version: "6.0.0"}}
	results, err := a.Analyze(context.Background(), root, components)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Status != domain.StatusNotReachable {
		t.Fatalf("got %+v", results[0])
	}
}

func TestLastSegment(t *testing.T) {
	cases := map[string]string{
		"GuzzleHttp\\Client":     "Client",
		"System.Net.Http":        "Http",
		"package:http/http.dart": "dart",
		"Foo":                    "Foo",
	}
	for in, want := range cases {
		if got := lastSegment(in); got != want {
			t.Errorf("lastSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
