// Package heap implements a user-space general-purpose allocator with a
// malloc/free/calloc/realloc-shaped contract.
//
// Small-to-medium requests are served from a preallocated, contiguous
// binary-buddy arena; requests above the mmap threshold bypass the arena
// and are each backed by an independent anonymous mapping. Both paths
// share one set of bookkeeping counters.
//
// An Allocator is not safe for concurrent use. All state — the arena, its
// free lists, the mmap list and the counters — is owned by the Allocator
// value with no internal locking; callers that need concurrent access
// must serialize calls to it themselves.
package heap
