package heap

import "unsafe"

// header is the fixed-size metadata record prefixed to every block, buddy
// or mmap. It is never allocated on the Go heap: it is written directly
// into arena bytes (at a split point, or at arena init) or into the front
// of an mmap'd region, and read back via an unsafe.Pointer overlay.
//
// prev/next/buddy are not Go pointers. For a buddy block they are byte
// offsets relative to the arena base, with nilOffset (-1) meaning nil. For
// an mmap block (which has no shared arena to be relative to) prev/next
// are raw memory addresses of neighbouring mmap headers, with 0 meaning
// nil — an mmap header's own address is never 0, but arena offset 0 is a
// valid buddy block, hence the two distinct sentinels. buddy is unused on
// mmap blocks. Storing offsets/addresses instead of *header avoids asking
// the garbage collector to scan raw mmap'd memory or a []byte arena for
// pointers it was never told about.
type header struct {
	size  uint64 // payload size in bytes (block size minus headerSize)
	free  bool
	mmap  bool
	_     [6]byte // explicit padding: keeps the layout identical across platforms
	prev  int64
	next  int64
	buddy int64
}

// headerSize is the constant returned by the public HeaderSize accessor.
// The spec requires it fit in 64 bytes; unsafe.Sizeof(header{}) is checked
// against that bound in header_test.go.
const headerSize = int(unsafe.Sizeof(header{}))

const nilOffset int64 = -1

func headerAt(ptr unsafe.Pointer) *header {
	return (*header)(ptr)
}

// payloadPtr returns the pointer to the first payload byte for a block
// whose header starts at ptr.
func payloadPtr(ptr unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(ptr, headerSize)
}

// headerFromBlock recovers the header preceding a payload slice by reading
// the slice header's data pointer directly, the same trick the teacher's
// BuddyAllocator.Free uses to go from a returned []byte back to its
// bookkeeping struct without threading an explicit pointer type through the
// public API.
func headerFromBlock(block []byte) *header {
	dataPtr := *(*uintptr)(unsafe.Pointer(&block))
	return headerAt(unsafe.Pointer(dataPtr - uintptr(headerSize)))
}
