package graph

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/gitai-dev/gitai-core/internal/structural"
)

// FileSummary pairs a file path with the Structural Summary analyzed from
// it; Builder.Build consumes an ordered slice of these.
type FileSummary struct {
	Path    string
	Summary structural.Summary
}

// Builder merges per-file Structural Summaries into a single Graph:
// Function/Class/Import/Call records become nodes and typed edges. It
// emits Contains, Exports, DependsOn, Inherits, Implements and Calls
// edges; the other edge types Graph supports are not produced here.
type Builder struct {
	createdAt int64
}

// NewBuilder returns a Builder that stamps every node's CreatedAt with
// createdAt (seconds since epoch). Callers pass a fixed value so that
// repeated builds over identical inputs produce byte-identical graphs.
func NewBuilder(createdAt int64) *Builder {
	return &Builder{createdAt: createdAt}
}

// Build runs the five-step merge algorithm over files, in order, and
// returns the resulting Graph. File order only affects the order in
// which edges are appended; class-target candidates are sorted by path,
// so the node and edge sets themselves are order-independent.
func (b *Builder) Build(files []FileSummary) *Graph {
	g := New()
	g.buildID = uuid.NewString()

	// Step 1: File/Function/Class nodes plus Contains edges. Emit every
	// file's nodes before wiring any cross-references so steps 2-4 can
	// assume the full node set already exists.
	for _, f := range files {
		b.addFileNodes(g, f)
	}

	// Step 2: DependsOn edges to lazily-created Module nodes.
	for _, f := range files {
		b.addImportEdges(g, f)
	}

	// Step 3: Inherits/Implements edges, resolved by class name.
	classesByName := indexClassesByName(files)
	for _, f := range files {
		b.addInheritanceEdges(g, f, classesByName)
	}

	// Step 4: Calls edges, resolved by enclosing function then callee name.
	functionsByName := indexFunctionsByName(files)
	for _, f := range files {
		b.addCallEdges(g, f, functionsByName)
	}

	// Step 5: rebuild adjacency indices from the final edge set.
	g.rebuildAdjacency()

	computeImportanceScores(g)

	return g
}

func (b *Builder) addFileNodes(g *Graph, f FileSummary) {
	fileID := FileNodeID(f.Path)
	g.addNode(&Node{
		ID:       fileID,
		Kind:     NodeFile,
		Name:     f.Path,
		Metadata: NodeMetadata{FilePath: f.Path, CreatedAt: b.createdAt},
	})

	exported := make(map[string]bool, len(f.Summary.Exports))
	for _, name := range f.Summary.Exports {
		exported[name] = true
	}

	for _, fn := range f.Summary.Functions {
		id := FuncNodeID(f.Path, fn.Name)
		g.addNode(&Node{
			ID:         id,
			Kind:       NodeFunction,
			Name:       fn.Name,
			Visibility: visibilityOf(fn.Visibility, exported[fn.Name]),
			Metadata: NodeMetadata{
				FilePath:   f.Path,
				StartLine:  fn.LineStart,
				EndLine:    fn.LineEnd,
				Complexity: complexityFor(fn.Name, f.Summary.ComplexityHints),
				CreatedAt:  b.createdAt,
			},
		})
		g.addEdge(fileID, id, EdgeContains, DefaultEdgeWeight, nil)
	}

	for _, cls := range f.Summary.Classes {
		id := ClassNodeID(f.Path, cls.Name)
		g.addNode(&Node{
			ID:   id,
			Kind: NodeClass,
			Name: cls.Name,
			// Every extracted class/type is treated as exported (see
			// structural.deriveExports), so class nodes are always public.
			Visibility: "public",
			Metadata: NodeMetadata{
				FilePath:  f.Path,
				StartLine: cls.LineStart,
				EndLine:   cls.LineEnd,
				CreatedAt: b.createdAt,
			},
		})
		g.addEdge(fileID, id, EdgeContains, DefaultEdgeWeight, nil)
	}

	for _, name := range f.Summary.Exports {
		var targetID string
		if hasFunction(f.Summary.Functions, name) {
			targetID = FuncNodeID(f.Path, name)
		} else if hasClass(f.Summary.Classes, name) {
			targetID = ClassNodeID(f.Path, name)
		} else {
			continue
		}
		g.addEdge(fileID, targetID, EdgeExports, DefaultEdgeWeight, nil)
	}
}

func (b *Builder) addImportEdges(g *Graph, f FileSummary) {
	fileID := FileNodeID(f.Path)
	for _, imp := range f.Summary.Imports {
		modID := ModuleNodeID(imp)
		if _, ok := g.GetNode(modID); !ok {
			g.addNode(&Node{ID: modID, Kind: NodeModule, Name: imp, Metadata: NodeMetadata{CreatedAt: b.createdAt}})
		}
		g.addEdge(fileID, modID, EdgeDependsOn, DefaultEdgeWeight, nil)
	}
}

func (b *Builder) addInheritanceEdges(g *Graph, f FileSummary, classesByName map[string][]string) {
	for _, cls := range f.Summary.Classes {
		fromID := ClassNodeID(f.Path, cls.Name)

		if cls.Extends != "" {
			if targetID, ok := resolveClassTarget(cls.Extends, f.Path, classesByName); ok {
				g.addEdge(fromID, targetID, EdgeInherits, DefaultEdgeWeight, nil)
			}
		}
		for _, iface := range cls.Implements {
			if targetID, ok := resolveClassTarget(iface, f.Path, classesByName); ok {
				g.addEdge(fromID, targetID, EdgeImplements, DefaultEdgeWeight, nil)
			}
		}
	}
}

func (b *Builder) addCallEdges(g *Graph, f FileSummary, functionsByName map[string][]string) {
	for _, call := range f.Summary.Calls {
		enclosing, ok := findEnclosingFunction(f.Summary.Functions, call.Line)
		if !ok {
			continue
		}
		fromID := FuncNodeID(f.Path, enclosing)

		targetID, ok := resolveCallTarget(call.Callee, f.Path, f.Summary.Functions, functionsByName)
		if !ok {
			continue
		}
		g.addEdge(fromID, targetID, EdgeCalls, DefaultEdgeWeight, nil)
	}
}

func visibilityOf(tag string, exported bool) string {
	if tag != "" {
		return tag
	}
	if exported {
		return "public"
	}
	return "private"
}

func complexityFor(name string, hints []string) int {
	count := 0
	prefix := name + ":"
	for _, h := range hints {
		if strings.HasPrefix(h, prefix) {
			count++
		}
	}
	return count
}

func hasFunction(functions []structural.FunctionInfo, name string) bool {
	for _, fn := range functions {
		if fn.Name == name {
			return true
		}
	}
	return false
}

func hasClass(classes []structural.ClassInfo, name string) bool {
	for _, c := range classes {
		if c.Name == name {
			return true
		}
	}
	return false
}

// indexClassesByName maps class name -> sorted list of "file-path" values
// where a class with that name is declared, used by resolveClassTarget's
// same-file-wins / lexicographically-first-otherwise tie-break.
func indexClassesByName(files []FileSummary) map[string][]string {
	idx := make(map[string][]string)
	for _, f := range files {
		for _, cls := range f.Summary.Classes {
			idx[cls.Name] = append(idx[cls.Name], f.Path)
		}
	}
	for name := range idx {
		sort.Strings(idx[name])
	}
	return idx
}

// indexFunctionsByName maps function name -> file paths, in input order,
// that declare a function with that name, used by resolveCallTarget's
// cross-file fallback: a call resolves across files only when exactly
// one function anywhere has that name.
func indexFunctionsByName(files []FileSummary) map[string][]string {
	idx := make(map[string][]string)
	for _, f := range files {
		for _, fn := range f.Summary.Functions {
			idx[fn.Name] = append(idx[fn.Name], f.Path)
		}
	}
	return idx
}

func resolveClassTarget(name, fromFile string, classesByName map[string][]string) (string, bool) {
	candidates := classesByName[name]
	if len(candidates) == 0 {
		return "", false
	}
	for _, path := range candidates {
		if path == fromFile {
			return ClassNodeID(path, name), true
		}
	}
	return ClassNodeID(candidates[0], name), true
}

func findEnclosingFunction(functions []structural.FunctionInfo, line int) (string, bool) {
	for _, fn := range functions {
		if fn.Contains(line) {
			return fn.Name, true
		}
	}
	return "", false
}

func resolveCallTarget(callee, fromFile string, localFunctions []structural.FunctionInfo, functionsByName map[string][]string) (string, bool) {
	if hasFunction(localFunctions, callee) {
		return FuncNodeID(fromFile, callee), true
	}
	candidates := functionsByName[callee]
	if len(candidates) == 1 {
		return FuncNodeID(candidates[0], callee), true
	}
	return "", false
}
