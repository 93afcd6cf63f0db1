package structural

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// javaQuerySet implements extraction for Java, generalized from the same
// tree-walk shape used for the rest of the language family: class_declaration
// and interface_declaration carry a "name" field and a "body" of members;
// method_declaration carries "name"/"parameters"/"type"; visibility comes
// from a "public"/"private"/"protected" modifier child, defaulting to
// package-private when none is present.
var javaQuerySet = QuerySet{
	Function: javaFunctionQuery,
	Class:    javaClassQuery,
	Comment:  javaCommentQuery,
	Call:     javaCallQuery,
	Import:   javaImportQuery,
}

func javaImportQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "import_declaration" {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if c != nil && (c.Type() == "scoped_identifier" || c.Type() == "identifier") {
				caps = append(caps, Capture{Kind: "import", Name: nodeText(c, source), LineStart: startLine(n)})
			}
		}
	})
	return caps
}

func javaVisibility(n *sitter.Node, source []byte) string {
	var mods *sitter.Node
	if found := childrenOfType(n, "modifiers"); len(found) > 0 {
		mods = found[0]
	}
	if mods == nil {
		return "package-private"
	}
	text := nodeText(mods, source)
	switch {
	case strings.Contains(text, "public"):
		return "public"
	case strings.Contains(text, "protected"):
		return "protected"
	case strings.Contains(text, "private"):
		return "private"
	default:
		return "package-private"
	}
}

func javaFunctionQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "method_declaration" && n.Type() != "constructor_declaration" {
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		params := n.ChildByFieldName("parameters")
		retType := n.ChildByFieldName("type")

		caps = append(caps, Capture{
			Kind:       "function",
			Name:       nodeText(nameNode, source),
			LineStart:  startLine(n),
			LineEnd:    endLine(n),
			Params:     splitParameterList(nodeText(params, source)),
			ReturnType: strings.TrimSpace(nodeText(retType, source)),
			Visibility: javaVisibility(n, source),
		})
	})
	return caps
}

func javaClassQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "class_declaration":
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil {
				return
			}
			var extends string
			if sup := n.ChildByFieldName("superclass"); sup != nil {
				extends = strings.TrimSpace(strings.TrimPrefix(nodeText(sup, source), "extends"))
				extends = strings.TrimSpace(extends)
			}
			var implements []string
			if iface := n.ChildByFieldName("interfaces"); iface != nil {
				for i := 0; i < int(iface.ChildCount()); i++ {
					c := iface.Child(i)
					if c != nil && c.Type() == "type_list" {
						for j := 0; j < int(c.ChildCount()); j++ {
							t := c.Child(j)
							if t != nil && t.Type() == "type_identifier" {
								implements = append(implements, nodeText(t, source))
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
				Methods:    javaMembers(n, source, "method_declaration"),
				Fields:     javaFields(n, source),
				Extends:    extends,
				Implements: implements,
				Visibility: javaVisibility(n, source),
			})
		case "interface_declaration":
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
				Methods:    javaMembers(n, source, "method_declaration"),
				Visibility: javaVisibility(n, source),
			})
		}
	})
	return caps
}

func javaMembers(n *sitter.Node, source []byte, memberType string) []string {
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var names []string
	for _, m := range childrenOfType(body, memberType) {
		if nn := m.ChildByFieldName("name"); nn != nil {
			names = append(names, nodeText(nn, source))
		}
	}
	return names
}

func javaFields(n *sitter.Node, source []byte) []string {
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var fields []string
	for _, decl := range childrenOfType(body, "field_declaration") {
		for i := 0; i < int(decl.ChildCount()); i++ {
			c := decl.Child(i)
			if c != nil && c.Type() == "variable_declarator" {
				if nn := c.ChildByFieldName("name"); nn != nil {
					fields = append(fields, nodeText(nn, source))
				}
			}
		}
	}
	return fields
}

func javaCommentQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "line_comment" && n.Type() != "block_comment" {
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

func javaCallQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "method_invocation" {
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		caps = append(caps, Capture{Kind: "call", Name: nodeText(nameNode, source), LineStart: startLine(n)})
	})
	return caps
}
