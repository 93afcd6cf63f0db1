package structural

import sitter "github.com/smacker/go-tree-sitter"

// Extract reduces a parse tree to a Structural Summary by running each
// category of queries over it and converting captures to the uniform
// Summary shape. Extraction never fails: a QueryFunc that finds nothing
// yields an empty slice for that category rather than an error, matching
// the infallible-analysis contract the registry's Parse already enforces
// upstream.
func Extract(tree *sitter.Tree, source []byte, lang string, queries QuerySet) Summary {
	root := tree.RootNode()
	resolved := Resolve(lang, queries)

	functions := extractFunctions(resolved.Function(root, source))
	classes := extractClasses(resolved.Class(root, source))
	comments := extractComments(resolved.Comment(root, source))
	calls := extractCalls(resolved.Call(root, source))
	imports := extractImports(resolved.Import(root, source))
	exports := deriveExports(functions, classes)
	hints := ComplexityHints(root, functions)

	return NewSingleLanguage(lang, LanguageSummary{
		Functions:       functions,
		Classes:         classes,
		Imports:         imports,
		Exports:         exports,
		Comments:        comments,
		ComplexityHints: hints,
		Calls:           calls,
	})
}

func extractFunctions(caps []Capture) []FunctionInfo {
	var out []FunctionInfo
	for _, c := range caps {
		out = append(out, FunctionInfo{
			Name:       c.Name,
			Parameters: c.Params,
			ReturnType: c.ReturnType,
			LineStart:  c.LineStart,
			LineEnd:    c.LineEnd,
			IsAsync:    c.IsAsync,
			Visibility: c.Visibility,
		})
	}
	return out
}

func extractClasses(caps []Capture) []ClassInfo {
	var out []ClassInfo
	for _, c := range caps {
		out = append(out, ClassInfo{
			Name:       c.Name,
			Methods:    c.Methods,
			Fields:     c.Fields,
			LineStart:  c.LineStart,
			LineEnd:    c.LineEnd,
			IsAbstract: c.IsAbstract,
			Extends:    c.Extends,
			Implements: c.Implements,
		})
	}
	return out
}

func extractComments(caps []Capture) []CommentInfo {
	var out []CommentInfo
	for _, c := range caps {
		out = append(out, CommentInfo{
			Text:         c.Text,
			Line:         c.LineStart,
			IsDocComment: c.IsDoc,
		})
	}
	return out
}

func extractCalls(caps []Capture) []CallInfo {
	var out []CallInfo
	for _, c := range caps {
		out = append(out, CallInfo{Callee: c.Name, Line: c.LineStart})
	}
	return out
}

func extractImports(caps []Capture) []string {
	var out []string
	for _, c := range caps {
		if c.Name != "" {
			out = append(out, c.Name)
		}
	}
	return out
}

// deriveExports treats a function with public visibility as exported, and
// every extracted type declaration as exported (ClassInfo carries no
// visibility tag of its own, and a declared type is importable by name in
// every supported language regardless of member-level access modifiers).
func deriveExports(functions []FunctionInfo, classes []ClassInfo) []string {
	var out []string
	for _, f := range functions {
		if f.Visibility == "public" {
			out = append(out, f.Name)
		}
	}
	for _, cl := range classes {
		out = append(out, cl.Name)
	}
	return out
}
