package patterns

import "testing"

func TestLoadPatternsPHP(t *testing.T) {
	ps, err := LoadPatterns("php")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := ps.NamespacesFor("guzzlehttp/guzzle")
	if len(got) != 1 || got[0] != "GuzzleHttp" {
		t.Fatalf("got %+v", got)
	}
}

func TestLoadPatternsUnknownPackageReturnsNil(t *testing.T) {
	ps := MustLoadPatterns("php")
	if got := ps.NamespacesFor("totally/unknown-package"); got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

func TestLoadPatternsUnknownLanguageErrors(t *testing.T) {
	if _, err := LoadPatterns("not-a-real-language"); err == nil {
		t.Fatal("expected an error for an unembedded language file")
	}
}

func TestMustLoadPatternsPanicsOnUnknownLanguage(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustLoadPatterns to panic")
		}
	}()
	MustLoadPatterns("not-a-real-language")
}
