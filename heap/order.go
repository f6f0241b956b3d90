package heap

import "math/bits"

// orderOf returns the smallest order k such that orderSize(k) >= n+headerSize,
// and reports whether such an order exists within [0, cfg.MaxOrder].
//
// Tightest fit is a correctness property, not an optimization: callers
// depend on the smallest sufficient order being chosen so that reuse after
// a free lands back on the same order (see the "tightest fit" scenario in
// the allocator's tests).
func (a *Allocator) orderOf(n int) (int, bool) {
	if n < 0 {
		return 0, false
	}
	total := n + headerSize
	if total < headerSize { // overflow
		return 0, false
	}
	if total > a.maxBlockSize() {
		return 0, false
	}
	if total <= a.cfg.BaseBlockSize {
		return 0, true
	}
	order := bits.Len(uint(total-1)) - a.baseBlockShift
	if order > a.cfg.MaxOrder {
		return 0, false
	}
	return order, true
}

// orderOfSize returns the order of a block whose total size (payload +
// header) is exactly totalSize. totalSize is always a power-of-two
// multiple of BaseBlockSize by construction (every buddy block's total
// size equals orderSize(k) for some k), so this is an exact lookup, not
// a ceiling search.
func (a *Allocator) orderOfSize(totalSize int) int {
	ratio := totalSize >> a.baseBlockShift
	return bits.Len(uint(ratio)) - 1
}

// orderSize returns the total block byte size (header included) for the
// given order: BaseBlockSize * 2^order.
func (a *Allocator) orderSize(order int) int {
	return a.cfg.BaseBlockSize << uint(order)
}

// maxBlockSize is the total size of a MAX_ORDER block; requests whose
// n+headerSize exceed it take the mmap path.
func (a *Allocator) maxBlockSize() int {
	return a.orderSize(a.cfg.MaxOrder)
}
