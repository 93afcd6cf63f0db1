// Command gitaicore is a thin wiring binary over the gitai-core engine.
// It owns no argument-parsing framework and no subcommand dispatch beyond
// a two-word mode switch: CLI ergonomics are an external collaborator's
// job (see spec's out-of-scope list). Two modes are supported:
//
//	gitaicore graph <file>...
//	    Parses each file, builds the dependency graph, and prints its
//	    node/edge counts plus Graphviz DOT to stdout.
//
//	gitaicore impact <before-file> <after-file>
//	    Analyzes both files as the same unit before/after a change,
//	    builds a dependency graph from the after-state, and prints the
//	    resulting ArchitecturalImpactAnalysis as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gitai-dev/gitai-core/internal/cache"
	"github.com/gitai-dev/gitai-core/internal/cascade"
	"github.com/gitai-dev/gitai-core/internal/container"
	"github.com/gitai-dev/gitai-core/internal/graph"
	"github.com/gitai-dev/gitai-core/internal/impact"
	"github.com/gitai-dev/gitai-core/internal/structural"
	"github.com/gitai-dev/gitai-core/pkg/logging"
)

func main() {
	log := logging.Default().With("cmd")

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: gitaicore graph <file>...  |  gitaicore impact <before> <after>")
		os.Exit(2)
	}

	svc := newServices()
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "graph":
		err = runGraph(ctx, svc, os.Args[2:])
	case "impact":
		if len(os.Args) != 4 {
			err = fmt.Errorf("impact mode takes exactly two files, got %d", len(os.Args)-2)
			break
		}
		err = runImpact(ctx, svc, os.Args[2], os.Args[3])
	default:
		err = fmt.Errorf("unknown mode %q", os.Args[1])
	}

	if err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// services bundles the singletons a run needs, resolved once through the
// service container rather than constructed ad hoc.
type services struct {
	registry *structural.Registry
	cache    *cache.Cache
}

func newServices() services {
	c := container.New()
	container.Register(c, func(ctx context.Context) (*structural.Registry, error) {
		return structural.NewRegistry(), nil
	})
	container.Register(c, func(ctx context.Context) (*cache.Cache, error) {
		return cache.New(), nil
	})

	registry, err := container.Resolve[*structural.Registry](context.Background(), c)
	if err != nil {
		panic(err) // both factories above are infallible; a failure here is a wiring bug
	}
	analysisCache, err := container.Resolve[*cache.Cache](context.Background(), c)
	if err != nil {
		panic(err)
	}
	return services{registry: registry, cache: analysisCache}
}

func runGraph(ctx context.Context, svc services, paths []string) error {
	var files []graph.FileSummary
	for _, path := range paths {
		summary, err := analyzeFile(ctx, svc, path)
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", path, err)
		}
		files = append(files, graph.FileSummary{Path: path, Summary: summary})
	}

	g := graph.NewBuilder(time.Now().Unix()).Build(files)

	logging.Default().With("cmd").Info("built dependency graph", "build_id", g.BuildID(), "nodes", g.NodeCount(), "edges", g.EdgeCount())
	fmt.Printf("nodes=%d edges=%d build_id=%s\n", g.NodeCount(), g.EdgeCount(), g.BuildID())
	fmt.Println(g.ToDOT(graph.DotOptions{ShowWeights: true}))
	return nil
}

func runImpact(ctx context.Context, svc services, beforePath, afterPath string) error {
	before, err := analyzeFile(ctx, svc, beforePath)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", beforePath, err)
	}
	after, err := analyzeFile(ctx, svc, afterPath)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", afterPath, err)
	}

	g := graph.NewBuilder(time.Now().Unix()).Build([]graph.FileSummary{{Path: afterPath, Summary: after}})

	analyzer := impact.NewAnalyzer(cascade.DefaultThresholds())
	result, err := analyzer.AnalyzeImpact(ctx, g, before, after, "")
	if err != nil {
		return fmt.Errorf("analyzing impact: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func analyzeFile(ctx context.Context, svc services, path string) (structural.Summary, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return structural.Summary{}, err
	}

	lang, ok := structural.LanguageForPath(path)
	if !ok {
		return structural.Summary{}, fmt.Errorf("unsupported language for %s", path)
	}

	key := cache.NewCacheKey(source, lang)
	return svc.cache.GetOrBuild(ctx, key, func(ctx context.Context) (structural.Summary, error) {
		tree, err := svc.registry.Parse(ctx, source, lang)
		if err != nil {
			return structural.Summary{}, err
		}
		return structural.Extract(tree, source, lang, structural.QuerySet{}), nil
	})
}
