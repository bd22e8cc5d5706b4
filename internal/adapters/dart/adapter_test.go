package dart

import "testing"

func TestReImportCapturesPackagePrefix(t *testing.T) {
	m := reImport.FindStringSubmatch(`import 'package:http/http.dart';`)
	if m == nil || m[1] != "package:http/http.dart" {
		t.Fatalf("got %+v", m)
	}
}

func TestReImportIgnoresRelativeImport(t *testing.T) {
	if reImport.FindStringSubmatch(`import 'src/utils.dart';`) != nil {
		t.Fatal("expected no match for a relative (non-package) import")
	}
}

func TestNewReturnsAdapterForDartLanguage(t *testing.T) {
	a := New()
	if a.Language() != "dart" {
		t.Fatalf("got %q", a.Language())
	}
}
