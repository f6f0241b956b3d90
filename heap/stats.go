package heap

// HeaderSize returns the fixed per-block metadata size in bytes, the same
// for every Allocator regardless of Config.
func HeaderSize() int {
	return headerSize
}

// NumFreeBlocks returns the number of blocks currently on a free-list,
// buddy path only (mmap blocks are never free — they are destroyed on
// Free, not recycled).
func (a *Allocator) NumFreeBlocks() uint64 {
	return a.freeBlocks
}

// NumFreeBytes returns the sum of payload capacity (header bytes excluded)
// across all free blocks.
func (a *Allocator) NumFreeBytes() uint64 {
	return a.freeBytes
}

// NumAllocatedBlocks returns free blocks plus used blocks, buddy and mmap
// combined.
func (a *Allocator) NumAllocatedBlocks() uint64 {
	return a.freeBlocks + a.usedBlocks
}

// NumAllocatedBytes returns free bytes plus used bytes, buddy and mmap
// combined, header bytes excluded.
func (a *Allocator) NumAllocatedBytes() uint64 {
	return a.freeBytes + a.usedBytes
}

// NumMetaDataBytes returns NumAllocatedBlocks * HeaderSize, derived rather
// than tracked as its own counter so split/merge/mmap bookkeeping can never
// drift out of sync with it.
func (a *Allocator) NumMetaDataBytes() uint64 {
	return a.NumAllocatedBlocks() * uint64(headerSize)
}
