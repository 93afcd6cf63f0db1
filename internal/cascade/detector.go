package cascade

import (
	"sort"
	"strings"

	"github.com/gitai-dev/gitai-core/internal/breaking"
	"github.com/gitai-dev/gitai-core/internal/graph"
)

// Detector enumerates cascade chains over a dependency graph.
type Detector struct {
	thresholds Thresholds
}

// NewDetector returns a Detector configured with thresholds.
func NewDetector(thresholds Thresholds) *Detector {
	return &Detector{thresholds: thresholds}
}

// FindCascades resolves each change's trigger nodes and enumerates the
// propagation chains that follow, per the six-step algorithm in spec
// §4.7. Results are sorted by descending probability and truncated to
// MaxResults.
func (d *Detector) FindCascades(g *graph.Graph, changes []breaking.BreakingChange) []CascadeEffect {
	edgeTypes := indexEdgeTypes(g)

	var results []CascadeEffect
	seen := make(map[string]bool)

	for _, change := range changes {
		triggers := resolveTriggers(g, change)
		for _, trigger := range triggers {
			chains := enumerateChains(g, trigger, d.thresholds.MaxDepth, d.thresholds.MinChainLen)
			for _, chain := range chains {
				key := strings.Join(chain, ">")
				if seen[key] {
					continue
				}

				probability := chainProbability(g, chain, edgeTypes)
				if probability < d.thresholds.MinProbability {
					continue
				}
				seen[key] = true

				results = append(results, CascadeEffect{
					Trigger:       trigger,
					AffectedChain: chain,
					Probability:   probability,
					Severity:      severityOf(g, chain, probability, d.thresholds.CriticalCentrality),
					Description:   describeChain(change, chain),
				})
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Probability > results[j].Probability
	})

	if d.thresholds.MaxResults > 0 && len(results) > d.thresholds.MaxResults {
		results = results[:d.thresholds.MaxResults]
	}
	return results
}

// resolveTriggers finds the graph node IDs a BreakingChange refers to,
// trying exact ID match, then ID-suffix match, then a name/path
// substring match, in that precedence order. The first non-empty tier
// wins.
func resolveTriggers(g *graph.Graph, change breaking.BreakingChange) []string {
	if change.Component == "" {
		return nil
	}

	var exact, suffix, substring []string
	for _, n := range g.Nodes() {
		switch {
		case n.ID == change.Component:
			exact = append(exact, n.ID)
		case strings.HasSuffix(n.ID, "::"+change.Component):
			suffix = append(suffix, n.ID)
		case strings.Contains(n.Name, change.Component) || strings.Contains(n.Metadata.FilePath, change.Component):
			substring = append(substring, n.ID)
		}
	}

	sort.Strings(exact)
	sort.Strings(suffix)
	sort.Strings(substring)

	switch {
	case len(exact) > 0:
		return exact
	case len(suffix) > 0:
		return suffix
	default:
		return substring
	}
}

// enumerateChains performs a cycle-avoiding DFS over the reverse
// adjacency (dependents) starting at trigger, up to maxDepth edges, and
// returns every visited prefix of at least minChainLen nodes.
func enumerateChains(g *graph.Graph, trigger string, maxDepth, minChainLen int) [][]string {
	var chains [][]string
	visited := map[string]bool{trigger: true}

	var walk func(path []string, depth int)
	walk = func(path []string, depth int) {
		if len(path) >= minChainLen {
			chains = append(chains, append([]string(nil), path...))
		}
		if depth >= maxDepth {
			return
		}
		for _, next := range g.GetDependents(path[len(path)-1]) {
			if visited[next] {
				continue
			}
			visited[next] = true
			walk(append(path, next), depth+1)
			delete(visited, next)
		}
	}

	walk([]string{trigger}, 0)
	return chains
}

// chainProbability computes a running product over chain: for each
// consecutive pair, (edge_impact_factor(type) * 0.85) *
// (0.5 + 0.5*importance_score(to)), clamped to [0,1].
func chainProbability(g *graph.Graph, chain []string, edgeTypes map[[2]string]string) float64 {
	probability := 1.0
	for i := 0; i < len(chain)-1; i++ {
		from, to := chain[i], chain[i+1]

		// The real edge runs to -> from (to is a dependent of from), so
		// look it up in that direction.
		edgeType, ok := edgeTypes[[2]string{to, from}]
		impact := missingEdgeImpactFactor
		if ok {
			if f, known := edgeImpactFactor[edgeType]; known {
				impact = f
			}
		}

		factor := (impact * 0.85) * (0.5 + 0.5*g.ImportanceScore(to))
		probability *= factor
	}
	if probability < 0 {
		probability = 0
	}
	if probability > 1 {
		probability = 1
	}
	return probability
}

func severityOf(g *graph.Graph, chain []string, probability float64, criticalCentrality float64) Severity {
	maxCentrality := 0.0
	for _, id := range chain {
		if c := g.CalculateCentrality(id); c > maxCentrality {
			maxCentrality = c
		}
	}

	switch {
	case probability > 0.8 || len(chain) >= 5 || maxCentrality > criticalCentrality+0.1:
		return SeverityHigh
	case probability > 0.6 || len(chain) >= 4 || maxCentrality > criticalCentrality:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func describeChain(change breaking.BreakingChange, chain []string) string {
	var b strings.Builder
	b.WriteString(string(change.ChangeType))
	b.WriteString(" in ")
	b.WriteString(change.Component)
	b.WriteString(" may propagate through: ")
	b.WriteString(strings.Join(chain, " -> "))
	return b.String()
}

// indexEdgeTypes builds a (from, to) -> edge-type lookup from the
// graph's edges for chainProbability's O(1) lookups.
func indexEdgeTypes(g *graph.Graph) map[[2]string]string {
	idx := make(map[[2]string]string, g.EdgeCount())
	for _, e := range g.Edges() {
		idx[[2]string{e.From, e.To}] = string(e.Type)
	}
	return idx
}
