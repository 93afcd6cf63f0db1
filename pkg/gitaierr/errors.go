// Package gitaierr defines the error taxonomy shared by every gitai-core
// subsystem (structural analysis, caching, graph construction, cascade
// detection, and the service container).
//
// Read paths (cache Get, graph queries, cascade/call resolution) never
// return these errors: absence is represented by a zero value and a bool,
// never an error. Write paths (cache Set, container Resolve) return them,
// wrapped with fmt.Errorf("%w", ...) so callers can use errors.Is/As.
package gitaierr

import "errors"

var (
	// ErrUnsupportedLanguage is returned when a language tag has no
	// registered grammar. Not retryable.
	ErrUnsupportedLanguage = errors.New("gitai: unsupported language")

	// ErrParseFailure is returned when a grammar produced no parse tree.
	// Not retryable; callers may fall back to text heuristics.
	ErrParseFailure = errors.New("gitai: parse failure")

	// ErrCacheCorrupt names a disk cache entry that failed to deserialize.
	// The disk tier handles that case locally without returning it: the
	// corrupt file is deleted and the call treated as a miss.
	ErrCacheCorrupt = errors.New("gitai: corrupt cache entry")

	// ErrDiskIOFailure wraps a filesystem error encountered while writing,
	// renaming, or removing a cache file. Surfaced from Set; swallowed into
	// a cache miss from Get.
	ErrDiskIOFailure = errors.New("gitai: disk I/O failure")

	// ErrGraphInconsistency names an edge that references a node id not
	// present in the graph. No package returns it: the graph does not
	// check edge endpoints, and the builder only links nodes it created.
	ErrGraphInconsistency = errors.New("gitai: graph inconsistency")

	// ErrServiceNotRegistered is returned by Resolve when no factory was
	// registered for the requested type before the call.
	ErrServiceNotRegistered = errors.New("gitai: service not registered")

	// ErrCreationFailed wraps a factory error. Not cached: the next
	// Resolve call retries construction from scratch.
	ErrCreationFailed = errors.New("gitai: service creation failed")
)
