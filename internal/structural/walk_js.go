package structural

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// jsQuerySet implements extraction for both JavaScript and TypeScript —
// the two grammars share the same core declaration node kinds
// (function_declaration, class_declaration, method_definition).
var jsQuerySet = QuerySet{
	Function: jsFunctionQuery,
	Class:    jsClassQuery,
	Comment:  jsCommentQuery,
	Call:     jsCallQuery,
	Import:   jsImportQuery,
}

func jsImportQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "import_statement" {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if c != nil && c.Type() == "string" {
				caps = append(caps, Capture{Kind: "import", Name: jsStringContent(c, source), LineStart: startLine(n)})
			}
		}
	})
	return caps
}

func jsStringContent(n *sitter.Node, source []byte) string {
	text := nodeText(n, source)
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}

func jsFunctionQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_declaration", "generator_function_declaration":
			if cap, ok := jsExtractFunctionNode(n, source); ok {
				caps = append(caps, cap)
			}
		case "variable_declarator":
			value := n.ChildByFieldName("value")
			if value == nil {
				return
			}
			if value.Type() != "arrow_function" && value.Type() != "function_expression" {
				return
			}
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil {
				return
			}
			name := nodeText(nameNode, source)
			caps = append(caps, Capture{
				Kind:       "function",
				Name:       name,
				LineStart:  startLine(n),
				LineEnd:    endLine(n),
				Params:     jsParams(value, source),
				IsAsync:    jsHasAsyncChild(value),
				Visibility: jsVisibility(name),
			})
		}
	})
	return caps
}

func jsExtractFunctionNode(n *sitter.Node, source []byte) (Capture, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return Capture{}, false
	}
	name := nodeText(nameNode, source)
	return Capture{
		Kind:       "function",
		Name:       name,
		LineStart:  startLine(n),
		LineEnd:    endLine(n),
		Params:     jsParams(n, source),
		IsAsync:    jsHasAsyncChild(n),
		Visibility: jsVisibility(name),
	}, true
}

func jsParams(n *sitter.Node, source []byte) []string {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(params.ChildCount()); i++ {
		c := params.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "identifier", "rest_pattern", "object_pattern", "array_pattern":
			out = append(out, strings.TrimSpace(nodeText(c, source)))
		}
	}
	return out
}

func jsHasAsyncChild(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && c.Type() == "async" {
			return true
		}
	}
	return false
}

func jsVisibility(name string) string {
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, "#") {
		return "private"
	}
	return "public"
}

func jsClassQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "class_declaration" {
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		var extends string
		if heritage := n.ChildByFieldName("superclass"); heritage != nil {
			extends = strings.TrimSpace(nodeText(heritage, source))
		}

		var methods, fields []string
		if body := n.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.ChildCount()); i++ {
				c := body.Child(i)
				if c == nil {
					continue
				}
				switch c.Type() {
				case "method_definition":
					if mn := c.ChildByFieldName("name"); mn != nil {
						methods = append(methods, nodeText(mn, source))
					}
				case "field_definition", "public_field_definition":
					if fn := c.ChildByFieldName("property"); fn != nil {
						fields = append(fields, nodeText(fn, source))
					} else if fn := c.ChildByFieldName("name"); fn != nil {
						fields = append(fields, nodeText(fn, source))
					}
				}
			}
		}

		caps = append(caps, Capture{
			Kind:      "class",
			Name:      nodeText(nameNode, source),
			LineStart: startLine(n),
			LineEnd:   endLine(n),
			Methods:   methods,
			Fields:    fields,
			Extends:   extends,
		})
	})
	return caps
}

func jsCommentQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "comment" {
			return
		}
		text := nodeText(n, source)
		caps = append(caps, Capture{
			Kind:      "comment",
			Text:      text,
			LineStart: startLine(n),
			IsDoc:     strings.HasPrefix(text, "/**"),
		})
	})
	return caps
}

func jsCallQuery(root *sitter.Node, source []byte) []Capture {
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
