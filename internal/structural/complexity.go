package structural

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Complexity-hint thresholds: a function is flagged when any one of them
// is exceeded. Values are chosen to be generous enough that ordinary
// functions never trip them, while deeply nested or wide-fanned ones do.
const (
	maxBodyDepth      = 8
	maxParameterCount = 5
	maxBranchNodes    = 8
)

var functionLikeNodeTypes = map[string]bool{
	"function_declaration":    true,
	"method_declaration":      true,
	"function_definition":     true,
	"function_item":           true,
	"constructor_declaration": true,
}

var branchNodeTypes = map[string]bool{
	"if_statement":          true,
	"for_statement":         true,
	"for_in_statement":      true,
	"while_statement":       true,
	"do_statement":          true,
	"switch_statement":      true,
	"switch_expression":     true,
	"case_statement":        true,
	"match_expression":      true,
	"try_statement":         true,
	"catch_clause":          true,
	"conditional_expression": true,
	"elif_clause":           true,
	"else_clause":           true,
}

// ComplexityHints runs the depth/parameter-count/branch-count heuristic
// over every extracted function, returning one free-form hint string per
// function that trips a threshold.
func ComplexityHints(root *sitter.Node, functions []FunctionInfo) []string {
	var hints []string
	for _, fn := range functions {
		node := findNodeByRange(root, fn.LineStart, fn.LineEnd)
		if node == nil {
			continue
		}
		depth := subtreeDepth(node)
		branches := countBranchNodes(node)

		switch {
		case len(fn.Parameters) > maxParameterCount:
			hints = append(hints, fmt.Sprintf("%s: wide parameter list (%d params)", fn.Name, len(fn.Parameters)))
		case depth > maxBodyDepth:
			hints = append(hints, fmt.Sprintf("%s: deep nesting (depth %d)", fn.Name, depth))
		case branches > maxBranchNodes:
			hints = append(hints, fmt.Sprintf("%s: high branching (%d branch nodes)", fn.Name, branches))
		}
	}
	return hints
}

// findNodeByRange locates the function-like node whose 1-based inclusive
// line range exactly matches [lineStart, lineEnd].
func findNodeByRange(root *sitter.Node, lineStart, lineEnd int) *sitter.Node {
	var found *sitter.Node
	walk(root, func(n *sitter.Node) {
		if found != nil {
			return
		}
		if !functionLikeNodeTypes[n.Type()] {
			return
		}
		if startLine(n) == lineStart && endLine(n) == lineEnd {
			found = n
		}
	})
	return found
}

// subtreeDepth returns the height of n's subtree (1 for a leaf).
func subtreeDepth(n *sitter.Node) int {
	count := int(n.ChildCount())
	if count == 0 {
		return 1
	}
	max := 0
	for i := 0; i < count; i++ {
		if d := subtreeDepth(n.Child(i)); d > max {
			max = d
		}
	}
	return max + 1
}

// countBranchNodes counts descendants of n (n included) whose type is a
// recognized control-flow branch construct, across every supported
// language's grammar vocabulary.
func countBranchNodes(n *sitter.Node) int {
	count := 0
	walk(n, func(c *sitter.Node) {
		if branchNodeTypes[c.Type()] {
			count++
		}
	})
	return count
}
