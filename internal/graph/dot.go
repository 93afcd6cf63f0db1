package graph

import (
	"fmt"
	"sort"
	"strings"
)

// DotOptions controls ToDOT's rendering.
type DotOptions struct {
	// ShowWeights annotates every edge with its weight as a label.
	ShowWeights bool

	// Highlight is a set of node IDs to render with a distinct fill color.
	Highlight map[string]bool
}

// ToDOT renders the graph as Graphviz DOT text. Nodes and edges are
// emitted in sorted-ID order so that re-running Build on identical inputs
// yields byte-identical output.
func (g *Graph) ToDOT(opts DotOptions) string {
	var b strings.Builder
	b.WriteString("digraph gitai {\n")
	b.WriteString("  rankdir=LR;\n")

	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		n := g.nodes[id]
		attrs := fmt.Sprintf(`label=%q shape=%s`, n.Name, shapeFor(n.Kind))
		if opts.Highlight[id] {
			attrs += ` style=filled fillcolor="#ffcc00"`
		}
		fmt.Fprintf(&b, "  %q [%s];\n", id, attrs)
	}

	edges := append([]Edge(nil), g.edges...)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Type < edges[j].Type
	})

	for _, e := range edges {
		label := string(e.Type)
		if opts.ShowWeights {
			label = fmt.Sprintf("%s (%.2f)", label, e.Weight)
		}
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", e.From, e.To, label)
	}

	b.WriteString("}\n")
	return b.String()
}

func shapeFor(kind NodeKind) string {
	switch kind {
	case NodeFunction:
		return "ellipse"
	case NodeClass:
		return "box"
	case NodeModule:
		return "diamond"
	case NodeFile:
		return "folder"
	default:
		return "plaintext"
	}
}
