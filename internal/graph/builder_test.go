package graph

import (
	"testing"

	"github.com/gitai-dev/gitai-core/internal/structural"
)

func TestBuilder_Build_ContainsAndImportEdges(t *testing.T) {
	files := []FileSummary{
		{
			Path: "a.go",
			Summary: structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
				Functions: []structural.FunctionInfo{{Name: "Foo", LineStart: 1, LineEnd: 5, Visibility: "public"}},
				Imports:   []string{"fmt"},
				Exports:   []string{"Foo"},
			}),
		},
	}

	g := NewBuilder(0).Build(files)

	fileID := FileNodeID("a.go")
	funcID := FuncNodeID("a.go", "Foo")
	modID := ModuleNodeID("fmt")

	if _, ok := g.GetNode(fileID); !ok {
		t.Fatal("expected file node")
	}
	if _, ok := g.GetNode(funcID); !ok {
		t.Fatal("expected function node")
	}
	if _, ok := g.GetNode(modID); !ok {
		t.Fatal("expected lazily-created module node")
	}

	deps := g.GetDependencies(fileID)
	if !containsStr(deps, funcID) {
		t.Errorf("expected file -> Contains -> function edge, deps=%v", deps)
	}
	if !containsStr(deps, modID) {
		t.Errorf("expected file -> DependsOn -> module edge, deps=%v", deps)
	}
}

func TestBuilder_Build_InheritanceResolvesSameFileFirst(t *testing.T) {
	files := []FileSummary{
		{
			Path: "a.go",
			Summary: structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
				Classes: []structural.ClassInfo{
					{Name: "Base", LineStart: 1, LineEnd: 2},
					{Name: "Derived", LineStart: 3, LineEnd: 4, Extends: "Base"},
				},
			}),
		},
		{
			Path: "b.go",
			Summary: structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
				Classes: []structural.ClassInfo{{Name: "Base", LineStart: 1, LineEnd: 2}},
			}),
		},
	}

	g := NewBuilder(0).Build(files)

	derivedID := ClassNodeID("a.go", "Derived")
	wantBaseID := ClassNodeID("a.go", "Base")

	deps := g.GetDependencies(derivedID)
	if !containsStr(deps, wantBaseID) {
		t.Fatalf("expected Derived to inherit from same-file Base, deps=%v", deps)
	}
}

func TestBuilder_Build_CallResolution(t *testing.T) {
	files := []FileSummary{
		{
			Path: "a.go",
			Summary: structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
				Functions: []structural.FunctionInfo{
					{Name: "Caller", LineStart: 1, LineEnd: 10},
				},
				Calls: []structural.CallInfo{{Callee: "Callee", Line: 5}},
			}),
		},
		{
			Path: "b.go",
			Summary: structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
				Functions: []structural.FunctionInfo{{Name: "Callee", LineStart: 1, LineEnd: 3}},
			}),
		},
	}

	g := NewBuilder(0).Build(files)

	callerID := FuncNodeID("a.go", "Caller")
	calleeID := FuncNodeID("b.go", "Callee")

	deps := g.GetDependencies(callerID)
	if !containsStr(deps, calleeID) {
		t.Fatalf("expected cross-file call resolution, deps=%v", deps)
	}
}

func TestBuilder_Build_AmbiguousCallUnresolved(t *testing.T) {
	files := []FileSummary{
		{
			Path: "a.go",
			Summary: structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
				Functions: []structural.FunctionInfo{{Name: "Caller", LineStart: 1, LineEnd: 10}},
				Calls:     []structural.CallInfo{{Callee: "Ambiguous", Line: 5}},
			}),
		},
		{
			Path: "b.go",
			Summary: structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
				Functions: []structural.FunctionInfo{{Name: "Ambiguous", LineStart: 1, LineEnd: 3}},
			}),
		},
		{
			Path: "c.go",
			Summary: structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
				Functions: []structural.FunctionInfo{{Name: "Ambiguous", LineStart: 1, LineEnd: 3}},
			}),
		},
	}

	g := NewBuilder(0).Build(files)

	callerID := FuncNodeID("a.go", "Caller")
	deps := g.GetDependencies(callerID)
	for _, d := range deps {
		if d == FuncNodeID("b.go", "Ambiguous") || d == FuncNodeID("c.go", "Ambiguous") {
			t.Fatalf("expected ambiguous cross-file call to stay unresolved, deps=%v", deps)
		}
	}
}

func TestBuilder_Build_DropsCallOutsideAnyFunction(t *testing.T) {
	files := []FileSummary{
		{
			Path: "a.go",
			Summary: structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
				Calls: []structural.CallInfo{{Callee: "Nothing", Line: 100}},
			}),
		},
	}

	g := NewBuilder(0).Build(files)
	for _, e := range g.Edges() {
		if e.Type == EdgeCalls {
			t.Fatalf("expected no Calls edge when the call site has no enclosing function, got %+v", e)
		}
	}
}

func TestBuilder_Build_Deterministic(t *testing.T) {
	files := []FileSummary{
		{
			Path: "a.go",
			Summary: structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
				Functions: []structural.FunctionInfo{{Name: "Foo", LineStart: 1, LineEnd: 5}},
				Imports:   []string{"fmt", "os"},
			}),
		},
	}

	g1 := NewBuilder(0).Build(files)
	g2 := NewBuilder(0).Build(files)

	dot1 := g1.ToDOT(DotOptions{})
	dot2 := g2.ToDOT(DotOptions{})
	if dot1 != dot2 {
		t.Fatalf("expected identical DOT output across repeated builds,\n---first---\n%s\n---second---\n%s", dot1, dot2)
	}

	if g1.BuildID() == "" {
		t.Fatal("expected Build to stamp a non-empty build ID")
	}
	if g1.BuildID() == g2.BuildID() {
		t.Fatalf("expected independent builds to get distinct build IDs, both got %q", g1.BuildID())
	}
}

func containsStr(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
