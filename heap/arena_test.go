package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureArenaSeedsTopOrderFreeList(t *testing.T) {
	a := NewAllocator()
	a.ensureArena()

	require.True(t, a.arenaReady)
	assert.Equal(t, uint64(DefaultArenaBlocks), a.freeBlocks)
	assert.Equal(t, uint64(DefaultArenaBlocks)*uint64(a.maxBlockSize()-headerSize), a.freeBytes)

	count := 0
	prevOff := int64(-1)
	off := a.freeListHead[a.cfg.MaxOrder]
	for off != nilOffset {
		h := a.headerAtOffset(off)
		assert.True(t, h.free)
		assert.Equal(t, uint64(a.maxBlockSize()-headerSize), h.size)
		assert.Greater(t, off, prevOff, "free list must be address sorted")
		prevOff = off
		off = h.next
		count++
	}
	assert.Equal(t, DefaultArenaBlocks, count)
}

func TestEnsureArenaIsIdempotent(t *testing.T) {
	a := NewAllocator()
	a.ensureArena()
	arenaBase := a.arenaBase
	a.ensureArena()
	assert.Equal(t, arenaBase, a.arenaBase)
}

func TestInsertRemoveFreeKeepsAddressOrder(t *testing.T) {
	a := NewAllocator()
	a.ensureArena()

	b := a.splitDownTo(a.cfg.MaxOrder, 0)
	a.insertFree(0, b)

	off := a.freeListHead[0]
	require.NotEqual(t, nilOffset, off)
	h := a.headerAtOffset(off)
	assert.True(t, h.free)
	// b is the lowest-addressed block, so it goes in ahead of its buddy.
	assert.Equal(t, a.offsetOf(b), off)
	assert.Greater(t, h.next, off, "free list must be address sorted")

	next := h.next
	a.removeFree(0, h)
	assert.False(t, h.free)
	assert.Equal(t, next, a.freeListHead[0])
}
