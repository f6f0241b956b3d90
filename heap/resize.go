package heap

import "github.com/bytedance/gopkg/lang/mcache"

// Resize implements spec §4.6. A nil old block behaves as Allocate(n); a
// zero n frees old and returns nil. When the existing block already has
// room (old.size >= n, true for both buddy and mmap blocks), it is handed
// back unchanged.
//
// Open question resolution (spec §9, "Speculative in-place grow in
// resize"): the source's in-place buddy-coalescing growth mutates state
// speculatively and never reverses a failed probe, which the spec flags as
// likely a bug rather than intended behavior. Per the spec's own
// conservative fallback, this implementation does not attempt in-place
// buddy growth at all — every growth goes through allocate+copy+free. This
// keeps the free-list and counter invariants trivially correct at the cost
// of giving up in-place growth for the (rare) case where a live block's
// buddy happens to already be free.
//
// The old payload is snapshotted into a pooled mcache buffer before the
// new block is allocated, then copied from that buffer into the new block;
// the old block is freed only after the copy, and is left untouched when
// the new allocation fails.
func (a *Allocator) Resize(old []byte, n int) []byte {
	if old == nil {
		return a.Allocate(n)
	}
	if n == 0 {
		a.Free(old)
		return nil
	}

	h := headerFromBlock(old)
	oldSize := int(h.size)
	if oldSize >= n {
		h.free = false
		return old[:n]
	}

	scratch := mcache.Malloc(oldSize)
	copy(scratch, old[:oldSize])

	newBlock := a.Allocate(n)
	if newBlock == nil {
		mcache.Free(scratch)
		return nil
	}

	copy(newBlock, scratch)
	mcache.Free(scratch)
	a.Free(old)
	return newBlock
}
