package breaking

import (
	"fmt"
	"strings"
)

// Summarize renders a short human-readable summary of changes, grouped by
// risk-relevant headline counts.
func Summarize(changes []BreakingChange) string {
	if len(changes) == 0 {
		return "no breaking changes detected"
	}

	risk := OverallRisk(changes)
	return fmt.Sprintf("%d change(s) detected, overall risk %s", len(changes), risk)
}

// AIContext renders a deterministic, stable-structure sentence per change
// so that repeated analyses of the same diff produce byte-identical
// prompts, which lets downstream prompt caching key on the text.
func AIContext(changes []BreakingChange) string {
	if len(changes) == 0 {
		return "No breaking changes were detected in this diff."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This diff introduces %d breaking change(s) with overall risk %s.\n", len(changes), OverallRisk(changes))
	for _, c := range changes {
		fmt.Fprintf(&b, "- [%s/%s] %s (%s)\n", c.ImpactLevel, c.ChangeType, c.Description, c.Component)
	}
	return b.String()
}
