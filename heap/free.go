package heap

// Free returns block to the allocator. A nil or zero-capacity block, or a
// block that is already free, is a silent no-op (spec §7's defensive
// no-op rule). Passing a pointer this Allocator did not produce is
// undefined, per spec §1/§7.
func (a *Allocator) Free(block []byte) {
	if cap(block) == 0 {
		return
	}

	h := headerFromBlock(block)
	if h.free {
		return
	}

	a.usedBlocks--
	a.usedBytes -= h.size

	if h.mmap {
		a.freeMmap(h)
		return
	}
	a.freeBuddy(h)
}

// freeBuddy implements the coalescing loop of spec §4.4: insert the freed
// block into its order's free-list, then repeatedly look for a mergeable
// buddy — first the right-hand neighbour on the same list (recognized via
// the explicit buddy back-reference, not an address XOR), then the
// left-hand one — merging upward until MAX_ORDER or no buddy is found.
// A neighbour only counts when it also sits exactly orderSize(k) bytes
// away, so a stale back-reference never pairs two blocks that are not
// buddies.
func (a *Allocator) freeBuddy(h *header) {
	for {
		k := a.orderOfSize(int(h.size) + headerSize)
		a.insertFree(k, h)

		if k == a.cfg.MaxOrder {
			return
		}

		step := int64(a.orderSize(k))
		next := a.nextOf(h)
		if next != nil && a.offsetOf(next) == a.offsetOf(h)+step &&
			(h.buddy == a.offsetOf(next) || next.buddy == a.offsetOf(h)) {
			a.removeFree(k, next)
			a.removeFree(k, h)
			h.size = uint64(a.orderSize(k+1) - headerSize)
			continue
		}

		prev := a.prevOf(h)
		if prev != nil && a.offsetOf(prev)+step == a.offsetOf(h) && h.buddy == a.offsetOf(prev) {
			a.removeFree(k, h)
			a.removeFree(k, prev)
			h = prev
			h.size = uint64(a.orderSize(k+1) - headerSize)
			continue
		}

		return
	}
}
