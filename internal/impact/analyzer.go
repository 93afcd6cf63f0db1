package impact

import (
	"context"
	"fmt"
	"strings"
	"time"

	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/gitai-dev/gitai-core/internal/breaking"
	"github.com/gitai-dev/gitai-core/internal/cascade"
	"github.com/gitai-dev/gitai-core/internal/graph"
	"github.com/gitai-dev/gitai-core/internal/structural"
)

// Analyzer orchestrates breaking-change detection and cascade
// enumeration over a dependency graph into one ArchitecturalImpactAnalysis.
type Analyzer struct {
	thresholds cascade.Thresholds
	gitInfo    *GitInfo
}

// NewAnalyzer returns an Analyzer using the given cascade thresholds.
func NewAnalyzer(thresholds cascade.Thresholds) *Analyzer {
	return &Analyzer{thresholds: thresholds}
}

// WithGitInfo attaches repository context to every analysis this
// Analyzer produces from here on. Returns the receiver for chaining.
func (a *Analyzer) WithGitInfo(info *GitInfo) *Analyzer {
	a.gitInfo = info
	return a
}

// AnalyzeImpact compares before and after, detects breaking changes, and
// enumerates the cascade chains those changes trigger over g. diffText is
// the raw unified diff supplied by the caller (the core never invokes
// git); it is used only to populate AffectedFiles/AnalyzedFiles metadata
// and to identify the primary file path when the caller does not already
// know it.
func (a *Analyzer) AnalyzeImpact(
	ctx context.Context,
	g *graph.Graph,
	before, after structural.Summary,
	diffText string,
) (*ArchitecturalImpactAnalysis, error) {
	if ctx == nil {
		return nil, fmt.Errorf("impact: nil context")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	affectedFiles, primaryFile := parseDiffFiles(diffText)

	changes := breaking.Detect(primaryFile, before, after)
	riskLevel := breaking.OverallRisk(changes)

	var effects []cascade.CascadeEffect
	if g != nil && len(changes) > 0 {
		effects = cascade.NewDetector(a.thresholds).FindCascades(g, changes)
	}

	return &ArchitecturalImpactAnalysis{
		Changes:   changes,
		Cascades:  effects,
		RiskLevel: riskLevel,
		Summary:   breaking.Summarize(changes),
		AIContext: breaking.AIContext(changes),
		Metadata: AnalysisMetadata{
			AnalyzedFiles: len(affectedFiles),
			TotalChanges:  len(changes),
			Duration:      time.Since(start),
			AffectedFiles: affectedFiles,
			Git:           a.gitInfo,
		},
	}, nil
}

// parseDiffFiles extracts the set of file paths touched by a unified
// diff and picks the primary one (the first encountered) for single-file
// breaking-change analysis. An unparseable or empty diffText yields no
// affected files and an empty primary path.
func parseDiffFiles(diffText string) (affected []string, primary string) {
	if strings.TrimSpace(diffText) == "" {
		return nil, ""
	}

	fileDiffs, err := godiff.ParseMultiFileDiff([]byte(diffText))
	if err != nil {
		return nil, ""
	}

	for _, fd := range fileDiffs {
		path := cleanDiffPath(fd.NewName)
		if path == "" || path == "/dev/null" {
			path = cleanDiffPath(fd.OrigName)
		}
		if path == "" || path == "/dev/null" {
			continue
		}
		affected = append(affected, path)
		if primary == "" {
			primary = path
		}
	}
	return affected, primary
}

func cleanDiffPath(path string) string {
	if strings.HasPrefix(path, "a/") || strings.HasPrefix(path, "b/") {
		return path[2:]
	}
	return path
}
