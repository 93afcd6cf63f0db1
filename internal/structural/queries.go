package structural

import sitter "github.com/smacker/go-tree-sitter"

// Category identifies one of the extraction concerns a QuerySet covers.
type Category string

const (
	CategoryFunction Category = "function_query"
	CategoryClass    Category = "class_query"
	CategoryComment  Category = "comment_query"
	CategoryCall     Category = "call_query"
	CategoryImport   Category = "import_query"
)

// QueryFunc extracts one category of information from a parse tree. Each
// built-in query is implemented as a tree walk keyed off the grammar's
// node kinds (a switch over n.Type()) rather than as compiled tree-sitter
// query syntax.
type QueryFunc func(root *sitter.Node, source []byte) []Capture

// Capture is the raw result of running one QueryFunc; the Extractor (see
// extractor.go) converts captures into FunctionInfo/ClassInfo/CommentInfo/
// CallInfo entries.
type Capture struct {
	Kind       string // "function", "class", "struct", "interface", "impl", "comment", "call", "import"
	Name       string
	LineStart  int
	LineEnd    int
	Text       string
	Params     []string
	ReturnType string
	IsAsync    bool
	Visibility string
	Extends    string
	Implements []string
	Methods    []string
	Fields     []string
	IsAbstract bool
	IsDoc      bool
}

// QuerySet bundles the extraction categories for one language.
type QuerySet struct {
	Function QueryFunc
	Class    QueryFunc
	Comment  QueryFunc
	Call     QueryFunc
	Import   QueryFunc
}

// builtinQuerySets holds the registry-default QuerySet per language tag.
var builtinQuerySets = map[string]QuerySet{
	LangGo:         goQuerySet,
	LangPython:     pythonQuerySet,
	LangJavaScript: jsQuerySet,
	LangTypeScript: jsQuerySet,
	LangRust:       rustQuerySet,
	LangC:          cQuerySet,
	LangCPP:        cppQuerySet,
	LangJava:       javaQuerySet,
}

// BuiltinQuerySet returns the registry-default QuerySet for lang, or the
// zero QuerySet if lang is unsupported.
func BuiltinQuerySet(lang string) QuerySet {
	return builtinQuerySets[lang]
}

// Resolve merges a caller-supplied QuerySet over the built-in one for lang:
// any category the caller sets overrides the built-in for that category;
// categories the caller leaves nil fall back to the built-in, and fall back
// to a no-op (empty result) query if neither defines that category (spec
// §4.3: "absence of either yields an empty list for that category").
func Resolve(lang string, custom QuerySet) QuerySet {
	base := BuiltinQuerySet(lang)
	merged := QuerySet{
		Function: firstNonNil(custom.Function, base.Function),
		Class:    firstNonNil(custom.Class, base.Class),
		Comment:  firstNonNil(custom.Comment, base.Comment),
		Call:     firstNonNil(custom.Call, base.Call),
		Import:   firstNonNil(custom.Import, base.Import),
	}
	return merged
}

func firstNonNil(a, b QueryFunc) QueryFunc {
	if a != nil {
		return a
	}
	if b != nil {
		return b
	}
	return noopQuery
}

func noopQuery(root *sitter.Node, source []byte) []Capture { return nil }
