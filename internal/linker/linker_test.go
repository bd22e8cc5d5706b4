package linker

import (
	"reflect"
	"sort"
	"testing"

	"github.com/reachvet/engine/internal/domain"
)

func classify(t *testing.T, localNames []string, graph *domain.CallGraph, ns string) Classification {
	t.Helper()
	c := ClassifyImports(localNames, graph, ns)
	sort.Strings(c.Called)
	sort.Strings(c.Uncertain)
	sort.Strings(c.NotCalled)
	return c
}

func TestClassifyCalled(t *testing.T) {
	g := domain.NewCallGraph()
	g.AddCall("merge", false, domain.Location{})
	got := classify(t, []string{"merge", "clone"}, g, "")
	want := Classification{Called: []string{"merge"}, NotCalled: []string{"clone"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestClassifyUncertain(t *testing.T) {
	g := domain.NewCallGraph()
	g.AddReference("handler")
	got := classify(t, []string{"handler"}, g, "")
	if len(got.Uncertain) != 1 || got.Uncertain[0] != "handler" {
		t.Fatalf("got %+v", got)
	}
}

func TestClassifyNamespaceMember(t *testing.T) {
	g := domain.NewCallGraph()
	g.AddCall("_.template", false, domain.Location{})
	got := classify(t, []string{"template"}, g, "_")
	if len(got.Called) != 1 || got.Called[0] != "template" {
		t.Fatalf("got %+v", got)
	}
}

func TestClassifyDisjoint(t *testing.T) {
	g := domain.NewCallGraph()
	g.AddCall("a", false, domain.Location{})
	g.AddReference("b")
	c := ClassifyImports([]string{"a", "b", "c"}, g, "")
	total := len(c.Called) + len(c.Uncertain) + len(c.NotCalled)
	if total != 3 {
		t.Fatalf("expected disjoint partition of 3 names, got %+v (total %d)", c, total)
	}
}
