package heap

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// allocateMmap implements spec §4.3's large-block path: obtain n+headerSize
// bytes as an independent anonymous mapping, write the header at its
// front, and append it to the global mmap list. Unlike buddy blocks, each
// mmap block is its own mapping with no shared arena to be relative to,
// so its prev/next are raw addresses of neighbouring mmap headers rather
// than arena offsets.
func (a *Allocator) allocateMmap(n int) []byte {
	total := n + headerSize
	mem, err := unix.Mmap(-1, 0, total, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil
	}

	h := headerAt(unsafe.Pointer(&mem[0]))
	h.size = uint64(n)
	h.free = false
	h.mmap = true
	h.buddy = nilOffset // unused for mmap blocks, per the data model
	h.next = 0          // 0, not nilOffset: mmap prev/next are real addresses, never 0

	addr := uintptr(unsafe.Pointer(h))
	h.prev = int64(a.mmapTail)
	if a.mmapTail != 0 {
		headerAtAddr(a.mmapTail).next = int64(addr)
	}
	a.mmapTail = addr
	if a.mmapHead == 0 {
		a.mmapHead = addr
	}

	a.usedBlocks++
	a.usedBytes += uint64(n)

	payload := payloadPtr(unsafe.Pointer(h))
	return unsafe.Slice((*byte)(payload), n)[:n]
}

// freeMmap unlinks h from the mmap list and unmaps its backing region.
func (a *Allocator) freeMmap(h *header) {
	addr := uintptr(unsafe.Pointer(h))

	if h.prev != 0 {
		headerAtAddr(uintptr(h.prev)).next = h.next
	} else if a.mmapHead == addr {
		a.mmapHead = uintptr(h.next)
	}
	if h.next != 0 {
		headerAtAddr(uintptr(h.next)).prev = h.prev
	} else if a.mmapTail == addr {
		a.mmapTail = uintptr(h.prev)
	}

	total := int(h.size) + headerSize
	mem := unsafe.Slice((*byte)(unsafe.Pointer(h)), total)
	if err := unix.Munmap(mem); err != nil {
		panic(fmt.Sprintf("heap: failed to unmap %d-byte mmap block: %v", total, err))
	}
}

func headerAtAddr(addr uintptr) *header {
	return headerAt(unsafe.Pointer(addr))
}
