package structural

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// goQuerySet implements extraction for Go: function_declaration/
// method_declaration carry "name"/"parameters"/"result" fields; comments
// are a flat "comment" node type; doc comments are a contiguous run of
// comments immediately above a declaration.
var goQuerySet = QuerySet{
	Function: goFunctionQuery,
	Class:    goClassQuery,
	Comment:  goCommentQuery,
	Call:     goCallQuery,
	Import:   goImportQuery,
}

func goImportQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "import_spec" {
			return
		}
		pathNode := n.ChildByFieldName("path")
		if pathNode == nil {
			return
		}
		path := strings.Trim(nodeText(pathNode, source), `"`)
		caps = append(caps, Capture{Kind: "import", Name: path, LineStart: startLine(n)})
	})
	return caps
}

func goFunctionQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_declaration", "method_declaration":
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil {
				return
			}
			name := nodeText(nameNode, source)
			params := n.ChildByFieldName("parameters")
			result := n.ChildByFieldName("result")

			visibility := "private"
			if isExportedGoName(name) {
				visibility = "public"
			}

			caps = append(caps, Capture{
				Kind:       "function",
				Name:       name,
				LineStart:  startLine(n),
				LineEnd:    endLine(n),
				Params:     splitParameterList(nodeText(params, source)),
				ReturnType: strings.TrimSpace(nodeText(result, source)),
				Visibility: visibility,
			})
		}
	})
	return caps
}

func goClassQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "type_declaration" {
			return
		}
		for _, spec := range childrenOfType(n, "type_spec") {
			nameNode := spec.ChildByFieldName("name")
			typeNode := spec.ChildByFieldName("type")
			if nameNode == nil || typeNode == nil {
				continue
			}
			name := nodeText(nameNode, source)

			switch typeNode.Type() {
			case "struct_type":
				caps = append(caps, Capture{
					Kind:      "struct",
					Name:      name,
					LineStart: startLine(spec),
					LineEnd:   endLine(spec),
					Fields:    goStructFields(typeNode, source),
				})
			case "interface_type":
				caps = append(caps, Capture{
					Kind:       "interface",
					Name:       name,
					LineStart:  startLine(spec),
					LineEnd:    endLine(spec),
					IsAbstract: true,
					Methods:    goInterfaceMethods(typeNode, source),
				})
			}
		}
	})
	return caps
}

func goStructFields(structType *sitter.Node, source []byte) []string {
	var fields []string
	fieldList := structType.ChildByFieldName("body")
	if fieldList == nil {
		return nil
	}
	for _, decl := range childrenOfType(fieldList, "field_declaration") {
		for i := 0; i < int(decl.ChildCount()); i++ {
			c := decl.Child(i)
			if c != nil && c.Type() == "field_identifier" {
				fields = append(fields, nodeText(c, source))
			}
		}
	}
	return fields
}

func goInterfaceMethods(ifaceType *sitter.Node, source []byte) []string {
	var methods []string
	body := ifaceType.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	for _, elem := range childrenOfType(body, "method_elem") {
		nameNode := elem.ChildByFieldName("name")
		if nameNode != nil {
			methods = append(methods, nodeText(nameNode, source))
		}
	}
	return methods
}

func goCommentQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "comment" {
			return
		}
		text := nodeText(n, source)
		isDoc := isGoDocComment(n, source)
		caps = append(caps, Capture{
			Kind:      "comment",
			Text:      text,
			LineStart: startLine(n),
			IsDoc:     isDoc,
		})
	})
	return caps
}

// isGoDocComment reports whether n belongs to a run of line/block comments
// immediately preceding a declaration with no blank line anywhere in
// between — Go's convention for doc comments.
func isGoDocComment(n *sitter.Node, source []byte) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	last := n
	next := n.NextSibling()
	for next != nil && next.Type() == "comment" {
		if startLine(next) > endLine(last)+1 {
			return false
		}
		last = next
		next = next.NextSibling()
	}
	if next == nil {
		return false
	}
	switch next.Type() {
	case "function_declaration", "method_declaration", "type_declaration", "var_declaration", "const_declaration":
		return endLine(last)+1 >= startLine(next)
	default:
		return false
	}
}

func goCallQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "call_expression" {
			return
		}
		fn := n.ChildByFieldName("function")
		if fn == nil {
			return
		}
		name := calleeName(fn, source)
		if name == "" {
			return
		}
		caps = append(caps, Capture{Kind: "call", Name: name, LineStart: startLine(n)})
	})
	return caps
}

// calleeName extracts the final identifier of a (possibly qualified) callee
// expression: "pkg.Fn" and "recv.Method" both yield their last segment.
func calleeName(n *sitter.Node, source []byte) string {
	switch n.Type() {
	case "identifier", "field_identifier":
		return nodeText(n, source)
	case "selector_expression":
		field := n.ChildByFieldName("field")
		if field != nil {
			return nodeText(field, source)
		}
	}
	text := nodeText(n, source)
	if idx := strings.LastIndexAny(text, ".:"); idx >= 0 && idx < len(text)-1 {
		return text[idx+1:]
	}
	return text
}
