package cascade

import (
	"sort"

	"github.com/gitai-dev/gitai-core/internal/graph"
)

// CriticalNode is one high-centrality node alongside its fan-in/fan-out
// counts.
type CriticalNode struct {
	NodeID     string
	Centrality float64
	FanIn      int
	FanOut     int
}

// IdentifyCriticalNodes lists every node whose centrality meets
// thresholds.CriticalCentrality, independent of any particular set of
// breaking changes, sorted by descending centrality.
func IdentifyCriticalNodes(g *graph.Graph, thresholds Thresholds) []CriticalNode {
	var out []CriticalNode
	for _, n := range g.Nodes() {
		centrality := g.CalculateCentrality(n.ID)
		if centrality < thresholds.CriticalCentrality {
			continue
		}
		out = append(out, CriticalNode{
			NodeID:     n.ID,
			Centrality: centrality,
			FanIn:      len(g.GetDependents(n.ID)),
			FanOut:     len(g.GetDependencies(n.ID)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Centrality != out[j].Centrality {
			return out[i].Centrality > out[j].Centrality
		}
		return out[i].NodeID < out[j].NodeID
	})
	return out
}
