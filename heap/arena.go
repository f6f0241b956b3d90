package heap

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ensureArena performs the one-time, lazy arena acquisition described in
// spec §4.2: cfg.ArenaBlocks contiguous MAX_ORDER blocks, obtained as a
// single anonymous mapping (the Go analogue of repeatedly extending the
// process data segment — there is no sbrk equivalent in the runtime, and
// the spec itself treats the OS primitive as an external collaborator).
func (a *Allocator) ensureArena() {
	if a.arenaReady {
		return
	}

	size := a.cfg.ArenaBlocks * a.maxBlockSize()
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		panic(fmt.Sprintf("heap: failed to map %d-byte arena: %v", size, err))
	}

	a.arena = mem
	a.arenaBase = uintptr(unsafe.Pointer(&mem[0]))
	a.arenaReady = true

	// Alignment note (spec §4.2): the buddy-address relationship here is
	// computed through the explicit `buddy` back-reference, not an
	// arena-base XOR, so the arena need not itself be aligned to
	// maxBlockSize (see the arena.go design choice in DESIGN.md).
	maxOrder := a.cfg.MaxOrder
	blockSize := a.maxBlockSize()
	for i := 0; i < a.cfg.ArenaBlocks; i++ {
		h := a.headerAtOffset(int64(i * blockSize))
		h.size = uint64(blockSize - headerSize)
		h.free = true
		h.mmap = false
		h.buddy = nilOffset
		h.prev = nilOffset
		h.next = nilOffset
		a.appendFree(maxOrder, h)
	}

	a.freeBlocks = uint64(a.cfg.ArenaBlocks)
	a.freeBytes = uint64(a.cfg.ArenaBlocks) * uint64(blockSize-headerSize)
}

func (a *Allocator) ptrAtOffset(off int64) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(&a.arena[0]), off)
}

func (a *Allocator) headerAtOffset(off int64) *header {
	return headerAt(a.ptrAtOffset(off))
}

func (a *Allocator) offsetOf(h *header) int64 {
	return int64(uintptr(unsafe.Pointer(h)) - a.arenaBase)
}

func (a *Allocator) nextOf(h *header) *header {
	if h.next == nilOffset {
		return nil
	}
	return a.headerAtOffset(h.next)
}

func (a *Allocator) prevOf(h *header) *header {
	if h.prev == nilOffset {
		return nil
	}
	return a.headerAtOffset(h.prev)
}

// appendFree is used only during arena initialization, where every block
// is produced in ascending address order already — it walks to the tail
// and appends there, which preserves the free-list's address-sorted
// invariant without the general insert's address comparisons. It does not
// touch the free counters; ensureArena seeds them directly.
func (a *Allocator) appendFree(order int, h *header) {
	h.free = true
	h.next = nilOffset
	head := a.freeListHead[order]
	if head == nilOffset {
		a.freeListHead[order] = a.offsetOf(h)
		h.prev = nilOffset
		return
	}
	tail := a.headerAtOffset(head)
	for tail.next != nilOffset {
		tail = a.headerAtOffset(tail.next)
	}
	tail.next = a.offsetOf(h)
	h.prev = a.offsetOf(tail)
}

// insertFree links h into free_lists[order] in ascending address order
// and updates the free counters. Apart from arena initialization
// (appendFree), all free-list membership changes funnel through
// insertFree/removeFree so the counters stay centralized, per the
// spec's Design Notes on statistics accounting.
func (a *Allocator) insertFree(order int, h *header) {
	h.free = true
	hOff := a.offsetOf(h)

	head := a.freeListHead[order]
	if head == nilOffset || hOff < head {
		h.prev = nilOffset
		h.next = head
		if head != nilOffset {
			a.headerAtOffset(head).prev = hOff
		}
		a.freeListHead[order] = hOff
	} else {
		cur := a.headerAtOffset(head)
		for cur.next != nilOffset && cur.next < hOff {
			cur = a.headerAtOffset(cur.next)
		}
		h.next = cur.next
		h.prev = a.offsetOf(cur)
		if cur.next != nilOffset {
			a.headerAtOffset(cur.next).prev = hOff
		}
		cur.next = hOff
	}

	a.freeBlocks++
	a.freeBytes += uint64(a.orderSize(order) - headerSize)
}

// removeFree unlinks h from free_lists[order] and updates the free
// counters. h must currently be free and on that list.
func (a *Allocator) removeFree(order int, h *header) {
	hOff := a.offsetOf(h)
	if a.freeListHead[order] == hOff {
		a.freeListHead[order] = h.next
	}
	if h.prev != nilOffset {
		a.headerAtOffset(h.prev).next = h.next
	}
	if h.next != nilOffset {
		a.headerAtOffset(h.next).prev = h.prev
	}
	h.prev = nilOffset
	h.next = nilOffset
	h.free = false

	a.freeBlocks--
	a.freeBytes -= uint64(a.orderSize(order) - headerSize)
}

// splitDownTo removes the head block of free_lists[fromOrder] and splits
// it down to toOrder, inserting every right-half buddy produced along the
// way. It returns the left-most survivor, still unlinked from any
// free-list, sized for toOrder.
//
// Buddy back-references follow spec §4.3 exactly: every right half R
// gets buddy=B (the block it was split from); only when the very first
// split peels a block off the top order does the left half B also get
// buddy=R, making that one pair bidirectional.
func (a *Allocator) splitDownTo(fromOrder, toOrder int) *header {
	head := a.freeListHead[fromOrder]
	b := a.headerAtOffset(head)
	a.removeFree(fromOrder, b)

	for i := fromOrder - 1; i >= toOrder; i-- {
		rOff := a.offsetOf(b) + int64(a.orderSize(i))
		r := a.headerAtOffset(rOff)
		r.size = uint64(a.orderSize(i) - headerSize)
		r.free = true
		r.mmap = false
		r.buddy = a.offsetOf(b)
		a.insertFree(i, r)

		if i == a.cfg.MaxOrder-1 {
			b.buddy = rOff
		}
	}

	b.size = uint64(a.orderSize(toOrder) - headerSize)
	return b
}
