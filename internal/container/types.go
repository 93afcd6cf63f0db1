// Package container implements an async service container: per-type
// singleton construction with at-most-once success semantics, coalesced
// concurrent resolution, and hit/miss accounting via Go generics.
package container

// Stats is a snapshot of container counters.
type Stats struct {
	Hits   int64
	Misses int64

	// Evictions stays at zero: singletons live for the container's
	// lifetime and are never evicted. The field is kept alongside
	// Hits/Misses for a uniform counters shape.
	Evictions int64
}

// HitRate returns Hits / (Hits + Misses), or 0 when there have been no
// resolutions at all.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
