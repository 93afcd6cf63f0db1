package graph

import (
	"testing"

	"github.com/gitai-dev/gitai-core/internal/structural"
)

func starGraph(hubCallers int) *Graph {
	files := []FileSummary{
		{
			Path: "hub.go",
			Summary: structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
				Functions: []structural.FunctionInfo{{Name: "Hub", LineStart: 1, LineEnd: 3, Visibility: "public"}},
			}),
		},
	}
	for i := 0; i < hubCallers; i++ {
		files = append(files, FileSummary{
			Path: "caller" + string(rune('A'+i)) + ".go",
			Summary: structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
				Functions: []structural.FunctionInfo{{Name: "Caller", LineStart: 1, LineEnd: 5}},
				Calls:     []structural.CallInfo{{Callee: "Hub", Line: 3}},
			}),
		})
	}
	return NewBuilder(0).Build(files)
}

func TestCalculateCentrality_MonotonicInFanIn(t *testing.T) {
	small := starGraph(1)
	large := starGraph(5)

	hubID := FuncNodeID("hub.go", "Hub")
	if large.CalculateCentrality(hubID) <= small.CalculateCentrality(hubID) {
		t.Fatalf("expected centrality to increase with fan-in: small=%f large=%f",
			small.CalculateCentrality(hubID), large.CalculateCentrality(hubID))
	}
}

func TestCalculateCentrality_UnknownNodeIsZero(t *testing.T) {
	g := starGraph(1)
	if c := g.CalculateCentrality("func:missing.go::Nope"); c != 0 {
		t.Fatalf("expected 0 for unknown node, got %f", c)
	}
}

func TestIdentifyCriticalNodes_SortedDescending(t *testing.T) {
	g := starGraph(5)
	nodes := g.IdentifyCriticalNodes(0)
	if len(nodes) == 0 {
		t.Fatal("expected at least one node at threshold 0")
	}
	for i := 1; i < len(nodes); i++ {
		if nodes[i-1].Centrality < nodes[i].Centrality {
			t.Fatalf("expected descending order, got %+v", nodes)
		}
	}
}

func TestIdentifyCriticalNodes_ThresholdFilters(t *testing.T) {
	g := starGraph(5)
	all := g.IdentifyCriticalNodes(0)
	filtered := g.IdentifyCriticalNodes(0.99)
	if len(filtered) >= len(all) {
		t.Fatalf("expected a high threshold to filter out nodes: all=%d filtered=%d", len(all), len(filtered))
	}
}

func TestGetDependencies_GetDependents_AreInverse(t *testing.T) {
	g := starGraph(2)
	hubID := FuncNodeID("hub.go", "Hub")
	dependents := g.GetDependents(hubID)
	if len(dependents) != 3 {
		t.Fatalf("expected 3 dependents of Hub (2 callers plus its file), got %d: %v", len(dependents), dependents)
	}
	for _, caller := range dependents {
		deps := g.GetDependencies(caller)
		if !containsStr(deps, hubID) {
			t.Errorf("expected %s to depend on Hub, deps=%v", caller, deps)
		}
	}
}
