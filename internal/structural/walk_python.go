package structural

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

var pythonQuerySet = QuerySet{
	Function: pythonFunctionQuery,
	Class:    pythonClassQuery,
	Comment:  pythonCommentQuery,
	Call:     pythonCallQuery,
	Import:   pythonImportQuery,
}

func pythonImportQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			for i := 0; i < int(n.ChildCount()); i++ {
				c := n.Child(i)
				if c != nil && (c.Type() == "dotted_name" || c.Type() == "aliased_import") {
					caps = append(caps, Capture{Kind: "import", Name: nodeText(c, source), LineStart: startLine(n)})
				}
			}
		case "import_from_statement":
			if mod := n.ChildByFieldName("module_name"); mod != nil {
				caps = append(caps, Capture{Kind: "import", Name: nodeText(mod, source), LineStart: startLine(n)})
			}
		}
	})
	return caps
}

func pythonFunctionQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "function_definition" {
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		name := nodeText(nameNode, source)
		params := n.ChildByFieldName("parameters")
		retType := n.ChildByFieldName("return_type")

		isAsync := false
		if prev := n.PrevSibling(); prev != nil && prev.Type() == "async" {
			isAsync = true
		}
		if int(n.ChildCount()) > 0 && n.Child(0).Type() == "async" {
			isAsync = true
		}

		visibility := "public"
		if strings.HasPrefix(name, "_") {
			visibility = "private"
		}

		caps = append(caps, Capture{
			Kind:       "function",
			Name:       name,
			LineStart:  startLine(n),
			LineEnd:    endLine(n),
			Params:     splitParameterList(nodeText(params, source)),
			ReturnType: strings.TrimSpace(nodeText(retType, source)),
			IsAsync:    isAsync,
			Visibility: visibility,
		})
	})
	return caps
}

func pythonClassQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "class_definition" {
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		body := n.ChildByFieldName("body")

		var methods, fields []string
		var extends string
		var implements []string
		if bases := n.ChildByFieldName("superclasses"); bases != nil {
			for i := 0; i < int(bases.ChildCount()); i++ {
				c := bases.Child(i)
				if c != nil && (c.Type() == "identifier" || c.Type() == "attribute") {
					if extends == "" {
						extends = nodeText(c, source)
					} else {
						implements = append(implements, nodeText(c, source))
					}
				}
			}
		}

		if body != nil {
			for i := 0; i < int(body.ChildCount()); i++ {
				c := body.Child(i)
				if c == nil {
					continue
				}
				if c.Type() == "function_definition" {
					if mn := c.ChildByFieldName("name"); mn != nil {
						methods = append(methods, nodeText(mn, source))
					}
				}
				if c.Type() == "expression_statement" {
					for j := 0; j < int(c.ChildCount()); j++ {
						assign := c.Child(j)
						if assign != nil && assign.Type() == "assignment" {
							if target := assign.ChildByFieldName("left"); target != nil && target.Type() == "identifier" {
								fields = append(fields, nodeText(target, source))
							}
						}
					}
				}
			}
		}

		caps = append(caps, Capture{
			Kind:       "class",
			Name:       nodeText(nameNode, source),
			LineStart:  startLine(n),
			LineEnd:    endLine(n),
			Methods:    methods,
			Fields:     fields,
			Extends:    extends,
			Implements: implements,
		})
	})
	return caps
}

func pythonCommentQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "comment":
			caps = append(caps, Capture{Kind: "comment", Text: nodeText(n, source), LineStart: startLine(n)})
		case "string":
			if isPythonDocstring(n, source) {
				caps = append(caps, Capture{Kind: "comment", Text: nodeText(n, source), LineStart: startLine(n), IsDoc: true})
			}
		}
	})
	return caps
}

// isPythonDocstring reports whether n is a bare string literal that is the
// first statement of a module, class, or function body — Python's
// convention for docstrings (`"""..."""`).
func isPythonDocstring(n *sitter.Node, source []byte) bool {
	exprStmt := n.Parent()
	if exprStmt == nil || exprStmt.Type() != "expression_statement" {
		return false
	}
	block := exprStmt.Parent()
	if block == nil {
		return false
	}
	switch block.Type() {
	case "module", "block":
	default:
		return false
	}
	first := block.Child(0)
	return first != nil && first.Equal(exprStmt)
}

func pythonCallQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "call" {
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
