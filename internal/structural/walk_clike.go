package structural

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// cQuerySet and cppQuerySet extend the same C-family tree walk: both
// grammars model a function as a function_definition wrapping a chain of
// declarator nodes (pointer_declarator, function_declarator) that bottom
// out in the identifier being declared. C++ additionally contributes
// class_specifier alongside C's struct_specifier; cQuerySet's class query
// only looks at structs since C has no notion of a class.
var cQuerySet = QuerySet{
	Function: cFunctionQuery,
	Class:    cStructQuery,
	Comment:  cCommentQuery,
	Call:     cCallQuery,
	Import:   cIncludeQuery,
}

var cppQuerySet = QuerySet{
	Function: cFunctionQuery,
	Class:    cppClassQuery,
	Comment:  cCommentQuery,
	Call:     cCallQuery,
	Import:   cIncludeQuery,
}

func cIncludeQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "preproc_include" {
			return
		}
		pathNode := n.ChildByFieldName("path")
		if pathNode == nil {
			return
		}
		path := strings.Trim(nodeText(pathNode, source), `"<>`)
		caps = append(caps, Capture{Kind: "import", Name: path, LineStart: startLine(n)})
	})
	return caps
}

func cFunctionQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "function_definition" {
			return
		}
		declarator := n.ChildByFieldName("declarator")
		fnDeclarator := findFunctionDeclarator(declarator)
		if fnDeclarator == nil {
			return
		}
		nameNode := cDeclaratorName(fnDeclarator.ChildByFieldName("declarator"))
		if nameNode == nil {
			return
		}
		retType := n.ChildByFieldName("type")
		params := fnDeclarator.ChildByFieldName("parameters")

		caps = append(caps, Capture{
			Kind:       "function",
			Name:       nodeText(nameNode, source),
			LineStart:  startLine(n),
			LineEnd:    endLine(n),
			Params:     splitParameterList(nodeText(params, source)),
			ReturnType: strings.TrimSpace(nodeText(retType, source)),
			Visibility: "public",
		})
	})
	return caps
}

// findFunctionDeclarator descends through pointer/reference declarator
// wrappers to find the function_declarator node carrying the parameter
// list, matching how the C and C++ grammars nest a pointer return type
// around the declared name.
func findFunctionDeclarator(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "function_declarator":
			return n
		case "pointer_declarator", "reference_declarator":
			n = n.ChildByFieldName("declarator")
		default:
			return nil
		}
	}
	return nil
}

// cDeclaratorName unwraps pointer/reference/qualified declarators down to
// the bare identifier or field_identifier naming the declaration.
func cDeclaratorName(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "identifier", "field_identifier", "qualified_identifier", "destructor_name", "operator_name":
			return n
		case "pointer_declarator", "reference_declarator":
			n = n.ChildByFieldName("declarator")
		default:
			return nil
		}
	}
	return nil
}

func cStructQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		if n.Type() != "struct_specifier" {
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		caps = append(caps, Capture{
			Kind:      "struct",
			Name:      nodeText(nameNode, source),
			LineStart: startLine(n),
			LineEnd:   endLine(n),
			Fields:    cFieldNames(n, source),
		})
	})
	return caps
}

func cppClassQuery(root *sitter.Node, source []byte) []Capture {
	var caps []Capture
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "struct_specifier", "class_specifier":
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil {
				return
			}
			kind := "struct"
			if n.Type() == "class_specifier" {
				kind = "class"
			}
			caps = append(caps, Capture{
				Kind:       kind,
				Name:       nodeText(nameNode, source),
				LineStart:  startLine(n),
				LineEnd:    endLine(n),
				Fields:     cFieldNames(n, source),
				Methods:    cMethodNames(n, source),
				Implements: cBaseClasses(n, source),
			})
		}
	})
	return caps
}

func cFieldNames(n *sitter.Node, source []byte) []string {
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var fields []string
	for _, decl := range childrenOfType(body, "field_declaration") {
		declNode := cDeclaratorName(decl.ChildByFieldName("declarator"))
		if declNode != nil {
			fields = append(fields, nodeText(declNode, source))
		}
	}
	return fields
}

func cMethodNames(n *sitter.Node, source []byte) []string {
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var methods []string
	for _, decl := range childrenOfType(body, "function_definition") {
		fnDeclarator := findFunctionDeclarator(decl.ChildByFieldName("declarator"))
		if fnDeclarator == nil {
			continue
		}
		if nameNode := cDeclaratorName(fnDeclarator.ChildByFieldName("declarator")); nameNode != nil {
			methods = append(methods, nodeText(nameNode, source))
		}
	}
	return methods
}

func cBaseClasses(n *sitter.Node, source []byte) []string {
	clause := n.ChildByFieldName("base_class_clause")
	if clause == nil {
		return nil
	}
	var bases []string
	for i := 0; i < int(clause.ChildCount()); i++ {
		c := clause.Child(i)
		if c != nil && c.Type() == "type_identifier" {
			bases = append(bases, nodeText(c, source))
		}
	}
	return bases
}

func cCommentQuery(root *sitter.Node, source []byte) []Capture {
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
			IsDoc:     strings.HasPrefix(text, "/**") || strings.HasPrefix(text, "///"),
		})
	})
	return caps
}

func cCallQuery(root *sitter.Node, source []byte) []Capture {
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
