package structural

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// rustQuerySet implements extraction for Rust, grounded on the pack's
// tree-sitter rust walker: struct_item/trait_item/impl_item/function_item
// carry a "name" field; visibility is a visibility_modifier child whose
// text starts with "pub"; doc comments are comments starting with "///",
// "//!" or "/**", wherever they appear.
var rustQuerySet = QuerySet{
	Function: rustFunctionQuery,
	Class:    rustClassQuery,
	Comment:  rustCommentQuery,
	Call:     rustCallQuery,
	Import:   rustImportQuery,
}

func rustImportQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "use_declaration" {
			return
		}
		if arg := n.ChildByFieldName("argument"); arg != nil {
			caps = append(caps, Capture{Kind: "import", Name: nodeText(arg, source), LineStart: startLine(n)})
		}
	})
	return caps
}

func rustHasPub(n *sitter.Node, source []byte) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && c.Type() == "visibility_modifier" {
			return strings.HasPrefix(nodeText(c, source), "pub")
		}
	}
	return false
}

func rustVisibility(n *sitter.Node, source []byte) string {
	if rustHasPub(n, source) {
		return "public"
	}
	return "private"
}

func rustFunctionQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "function_item" {
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		params := n.ChildByFieldName("parameters")
		retType := n.ChildByFieldName("return_type")

		isAsync := false
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); c != nil && c.Type() == "async" {
				isAsync = true
			}
		}

		caps = append(caps, Capture{
			Kind:       "function",
			Name:       nodeText(nameNode, source),
			LineStart:  startLine(n),
			LineEnd:    endLine(n),
			Params:     splitParameterList(nodeText(params, source)),
			ReturnType: strings.TrimSpace(nodeText(retType, source)),
			IsAsync:    isAsync,
			Visibility: rustVisibility(n, source),
		})
	})
	return caps
}

func rustClassQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "struct_item":
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil {
				return
			}
			caps = append(caps, Capture{
				Kind:       "struct",
				Name:       nodeText(nameNode, source),
				LineStart:  startLine(n),
				LineEnd:    endLine(n),
				Fields:     rustStructFields(n, source),
				Visibility: rustVisibility(n, source),
			})
		case "trait_item":
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil {
				return
			}
			caps = append(caps, Capture{
				Kind:       "interface",
				Name:       nodeText(nameNode, source),
				LineStart:  startLine(n),
				LineEnd:    endLine(n),
				IsAbstract: true,
				Methods:    rustTraitMethods(n, source),
				Visibility: rustVisibility(n, source),
			})
		case "impl_item":
			typeNode := n.ChildByFieldName("type")
			if typeNode == nil {
				return
			}
			typeName := nodeText(typeNode, source)
			if idx := strings.Index(typeName, "<"); idx > 0 {
				typeName = typeName[:idx]
			}
			var implements []string
			if traitNode := n.ChildByFieldName("trait"); traitNode != nil {
				implements = append(implements, nodeText(traitNode, source))
			}
			caps = append(caps, Capture{
				Kind:       "impl",
				Name:       typeName,
				LineStart:  startLine(n),
				LineEnd:    endLine(n),
				Methods:    rustImplMethods(n, source),
				Implements: implements,
			})
		}
	})
	return caps
}

func rustStructFields(n *sitter.Node, source []byte) []string {
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var fields []string
	for _, decl := range childrenOfType(body, "field_declaration") {
		if fn := decl.ChildByFieldName("name"); fn != nil {
			fields = append(fields, nodeText(fn, source))
		}
	}
	return fields
}

func rustTraitMethods(n *sitter.Node, source []byte) []string {
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var methods []string
	for i := 0; i < int(body.ChildCount()); i++ {
		c := body.Child(i)
		if c == nil {
			continue
		}
		if c.Type() == "function_item" || c.Type() == "function_signature_item" {
			if nn := c.ChildByFieldName("name"); nn != nil {
				methods = append(methods, nodeText(nn, source))
			}
		}
	}
	return methods
}

func rustImplMethods(n *sitter.Node, source []byte) []string {
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var methods []string
	for _, fn := range childrenOfType(body, "function_item") {
		if nn := fn.ChildByFieldName("name"); nn != nil {
			methods = append(methods, nodeText(nn, source))
		}
	}
	return methods
}

func rustCommentQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "line_comment" && n.Type() != "block_comment" {
			return
		}
		text := nodeText(n, source)
		isDoc := strings.HasPrefix(text, "///") || strings.HasPrefix(text, "//!") || strings.HasPrefix(text, "/**")
		caps = append(caps, Capture{Kind: "comment", Text: text, LineStart: startLine(n), IsDoc: isDoc})
	})
	return caps
}

func rustCallQuery(root *sitter.Node, source []byte) []Capture {
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
