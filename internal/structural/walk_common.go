package structural

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// nodeText returns the source text spanned by n.
func nodeText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(source)
}

// startLine and endLine convert tree-sitter's 0-based row points to the
// 1-based inclusive line numbers used throughout this package.
func startLine(n *sitter.Node) int { return int(n.StartPoint().Row) + 1 }
func endLine(n *sitter.Node) int   { return int(n.EndPoint().Row) + 1 }

// walk calls visit for every node in the subtree rooted at n, including n
// itself, in a pre-order traversal.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		walk(n.Child(i), visit)
	}
}

// childrenOfType returns the direct children of n whose Type() equals
// nodeType.
func childrenOfType(n *sitter.Node, nodeType string) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c != nil && c.Type() == nodeType {
			out = append(out, c)
		}
	}
	return out
}

// splitParameterList splits a raw "(a, b int, c string)"-shaped parameter
// list node's text into individual parameter strings. It is a best-effort
// lexical split, not a parser: signatures and complexity hints are
// advisory rather than semantically authoritative.
func splitParameterList(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "(")
	raw = strings.TrimSuffix(raw, ")")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var params []string
	depth := 0
	start := 0
	for i, r := range raw {
		switch r {
		case '(', '<', '[', '{':
			depth++
		case ')', '>', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				if p := strings.TrimSpace(raw[start:i]); p != "" {
					params = append(params, p)
				}
				start = i + 1
			}
		}
	}
	if p := strings.TrimSpace(raw[start:]); p != "" {
		params = append(params, p)
	}
	return params
}

// isExportedGoName reports whether name starts with an uppercase letter, the
// Go convention for package-level visibility.
func isExportedGoName(name string) bool {
	if name == "" {
		return false
	}
	r := name[0]
	return r >= 'A' && r <= 'Z'
}
