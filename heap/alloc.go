package heap

import "unsafe"

// Allocate returns a slice of at least n writable bytes, or nil if n==0,
// n exceeds the allocator's MaxRequestSize, or no memory is available.
//
// The arena is obtained lazily on the first call that needs it (buddy or
// mmap path both trigger it, matching spec §4.3: "on first call,
// initialize the arena").
func (a *Allocator) Allocate(n int) []byte {
	if n <= 0 || n > a.cfg.MaxRequestSize {
		return nil
	}
	a.ensureArena()

	if n+headerSize <= a.maxBlockSize() {
		return a.allocateBuddy(n)
	}
	return a.allocateMmap(n)
}

func (a *Allocator) allocateBuddy(n int) []byte {
	order, ok := a.orderOf(n)
	if !ok {
		return nil
	}

	found := -1
	for j := order; j <= a.cfg.MaxOrder; j++ {
		if a.freeListHead[j] != nilOffset {
			found = j
			break
		}
	}
	if found == -1 {
		return nil
	}

	b := a.splitDownTo(found, order)
	b.free = false
	b.mmap = false
	// b.size already equals orderSize(order)-headerSize, the full usable
	// capacity of the block (spec §3: a buddy block's size always equals
	// its order's capacity, not the literal request — see scenario 2 in
	// spec.md §8, where allocate(50) reports used_bytes = 128-headerSize).

	blockSize := a.orderSize(order)
	a.usedBlocks++
	a.usedBytes += uint64(blockSize - headerSize)

	payload := payloadPtr(unsafe.Pointer(b))
	return unsafe.Slice((*byte)(payload), blockSize-headerSize)[:n]
}
