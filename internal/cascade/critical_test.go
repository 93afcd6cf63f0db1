package cascade

import (
	"testing"

	"github.com/gitai-dev/gitai-core/internal/graph"
)

func TestIdentifyCriticalNodes_FanInFanOutCounts(t *testing.T) {
	g := chainGraph()

	nodes := IdentifyCriticalNodes(g, Thresholds{CriticalCentrality: 0})

	byID := make(map[string]CriticalNode, len(nodes))
	for _, n := range nodes {
		byID[n.NodeID] = n
	}

	targetID := "func:target.go::Target"
	target, ok := byID[targetID]
	if !ok {
		t.Fatalf("expected %s among critical nodes, got %+v", targetID, nodes)
	}
	if target.FanIn == 0 {
		t.Errorf("expected Target to have callers (fan-in > 0), got %d", target.FanIn)
	}
}

func TestIdentifyCriticalNodes_ThresholdExcludesLowCentrality(t *testing.T) {
	g := chainGraph()
	nodes := IdentifyCriticalNodes(g, Thresholds{CriticalCentrality: 1.1})
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes to clear an impossible threshold, got %+v", nodes)
	}
}

func TestIdentifyCriticalNodes_EmptyGraph(t *testing.T) {
	nodes := IdentifyCriticalNodes(graph.New(), Thresholds{CriticalCentrality: 0})
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes for an empty graph, got %+v", nodes)
	}
}
