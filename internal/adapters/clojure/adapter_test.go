package clojure

import "testing"

func TestReRequireCapturesNamespace(t *testing.T) {
	m := reRequire.FindStringSubmatch("(:require [clojure.string :as str])")
	if m == nil || m[1] != "clojure.string" {
		t.Fatalf("got %+v", m)
	}
}

func TestReRequireIgnoresNonRequireForm(t *testing.T) {
	if reRequire.FindStringSubmatch("(:import [java.util Date])") != nil {
		t.Fatal("expected no match for :import form")
	}
}

func TestNewReturnsAdapterForClojureLanguage(t *testing.T) {
	a := New()
	if a.Language() != "clojure" {
		t.Fatalf("got %q", a.Language())
	}
}
