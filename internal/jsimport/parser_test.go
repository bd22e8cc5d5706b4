package jsimport

import (
	"context"
	"testing"

	"github.com/reachvet/engine/internal/domain"
)

func parse(t *testing.T, src string) []domain.ImportRecord {
	t.Helper()
	return Parse(context.Background(), []byte(src), "test.js", false)
}

func TestParseDefaultImport(t *testing.T) {
	recs := parse(t, "import React from 'react';")
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.Kind != domain.ImportDefault || r.Source != "react" {
		t.Fatalf("got %+v", r)
	}
	if len(r.Bindings) != 1 || r.Bindings[0].Local != "React" {
		t.Fatalf("bindings = %+v", r.Bindings)
	}
}

func TestParseNamedImport(t *testing.T) {
	recs := parse(t, "import { merge, clone as c } from 'lodash';")
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.Kind != domain.ImportNamed || r.Source != "lodash" {
		t.Fatalf("got %+v", r)
	}
	if len(r.Bindings) != 2 {
		t.Fatalf("bindings = %+v", r.Bindings)
	}
	if r.Bindings[1].Imported != "clone" || r.Bindings[1].Local != "c" {
		t.Fatalf("alias binding = %+v", r.Bindings[1])
	}
}

func TestParseNamespaceImport(t *testing.T) {
	recs := parse(t, "import * as _ from 'lodash';")
	if len(recs) != 1 || recs[0].Kind != domain.ImportNamespace || recs[0].Alias != "_" {
		t.Fatalf("got %+v", recs)
	}
}

func TestParseMixedTypeAndRuntimeNamed(t *testing.T) {
	recs := parse(t, "import { type Foo, bar } from 'm';")
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(recs), recs)
	}
	var sawRuntime, sawType bool
	for _, r := range recs {
		if r.IsTypeOnly {
			sawType = true
			if len(r.Bindings) != 1 || r.Bindings[0].Local != "Foo" {
				t.Fatalf("type record = %+v", r)
			}
		} else {
			sawRuntime = true
			if len(r.Bindings) != 1 || r.Bindings[0].Local != "bar" {
				t.Fatalf("runtime record = %+v", r)
			}
		}
	}
	if !sawRuntime || !sawType {
		t.Fatalf("expected both runtime and type records, got %+v", recs)
	}
}

func TestParseTypeOnlyImport(t *testing.T) {
	recs := parse(t, "import type { Request } from 'express';")
	if len(recs) != 1 || !recs[0].IsTypeOnly || recs[0].Source != "express" {
		t.Fatalf("got %+v", recs)
	}
}

func TestParseDynamicImportWithAlias(t *testing.T) {
	recs := parse(t, "const lodash = await import('lodash');\nlodash.merge({},{});")
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(recs), recs)
	}
	r := recs[0]
	if r.Kind != domain.ImportDynamic || r.Source != "lodash" || r.Alias != "lodash" {
		t.Fatalf("got %+v", r)
	}
}

func TestParseBareDynamicImport(t *testing.T) {
	recs := parse(t, "doStuff(import('lodash'));")
	if len(recs) != 1 || recs[0].Kind != domain.ImportDynamic || recs[0].Source != "lodash" {
		t.Fatalf("got %+v", recs)
	}
}

func TestParseRequirePlain(t *testing.T) {
	recs := parse(t, "const fs = require('fs');")
	if len(recs) != 1 || recs[0].Kind != domain.ImportRequire || recs[0].Bindings[0].Local != "fs" {
		t.Fatalf("got %+v", recs)
	}
}

func TestParseRequireDestructure(t *testing.T) {
	recs := parse(t, "const { merge, clone } = require('lodash');")
	if len(recs) != 1 || recs[0].Kind != domain.ImportRequireDestructure {
		t.Fatalf("got %+v", recs)
	}
	if len(recs[0].Bindings) != 2 {
		t.Fatalf("bindings = %+v", recs[0].Bindings)
	}
}

func TestParseRequireProperty(t *testing.T) {
	recs := parse(t, "const readFile = require('fs').readFile;")
	if len(recs) != 1 || recs[0].Kind != domain.ImportRequireProperty {
		t.Fatalf("got %+v", recs)
	}
	if recs[0].Bindings[0].Imported != "readFile" {
		t.Fatalf("bindings = %+v", recs[0].Bindings)
	}
}

func TestParseSideEffectImport(t *testing.T) {
	recs := parse(t, "import 'polyfill';")
	if len(recs) != 1 || recs[0].Kind != domain.ImportSideEffect || recs[0].Source != "polyfill" {
		t.Fatalf("got %+v", recs)
	}
}

func TestParseReExport(t *testing.T) {
	recs := parse(t, "export { a, b } from 'm';")
	if len(recs) != 1 || recs[0].Kind != domain.ImportReExport || len(recs[0].Bindings) != 2 {
		t.Fatalf("got %+v", recs)
	}
}

func TestParseSkipsLineComment(t *testing.T) {
	recs := parse(t, "// import fake from 'fake';\nimport real from 'real';")
	if len(recs) != 1 || recs[0].Source != "real" {
		t.Fatalf("got %+v", recs)
	}
}

func TestParseGuardedRequire(t *testing.T) {
	recs := parse(t, "try {\nconst fs = require('fs');\n} catch (e) {}")
	if len(recs) != 1 || !recs[0].Guarded {
		t.Fatalf("got %+v", recs)
	}
}

func TestParseNoPhantomImportsOnGarbage(t *testing.T) {
	recs := parse(t, "<<< not valid js at all >>> ")
	if len(recs) != 0 {
		t.Fatalf("expected no records on unparseable input, got %+v", recs)
	}
}
