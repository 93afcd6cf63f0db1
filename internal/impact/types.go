// Package impact orchestrates the breaking-change detector, the cascade
// detector, and the dependency graph into one architectural impact
// report, bridging several independent sub-analyses into a single scored
// outcome.
package impact

import (
	"time"

	"github.com/gitai-dev/gitai-core/internal/breaking"
	"github.com/gitai-dev/gitai-core/internal/cascade"
)

// GitInfo is optional repository context attached to an analysis. The
// core never invokes git itself; a caller that already has this
// information can attach it for reporting.
type GitInfo struct {
	CommitHash string
	Branch     string
	Author     string
}

// AnalysisMetadata is the bookkeeping half of an
// ArchitecturalImpactAnalysis: counts, timing, and affected files.
type AnalysisMetadata struct {
	AnalyzedFiles int
	TotalChanges  int
	Duration      time.Duration
	AffectedFiles []string
	Git           *GitInfo
}

// ArchitecturalImpactAnalysis is the unified report tying breaking
// changes, their cascades, and an overall risk assessment together.
type ArchitecturalImpactAnalysis struct {
	Changes   []breaking.BreakingChange
	Cascades  []cascade.CascadeEffect
	RiskLevel breaking.RiskLevel
	Summary   string
	AIContext string
	Metadata  AnalysisMetadata
}
